// Env loader
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	LogLevel   string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSchema   string
	DBURL      string
	JWTSecret  string
	JWTTTL     time.Duration

	// Audio source used when a verse carries no audio_url override.
	AudioBaseURL     string
	AudioReciterPath string

	QuranAPIURL string
	QuranAPIRPS float64

	// Zero disables the periodic para reconciliation.
	ParaSyncInterval   time.Duration
	PlaybackSessionTTL time.Duration
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {
	switch GetAppEnv() {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "8000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DBHost:     getEnv("BLUEPRINT_DB_HOST", "localhost"),
		DBPort:     getEnv("BLUEPRINT_DB_PORT", "5432"),
		DBName:     getEnv("BLUEPRINT_DB_DATABASE", "quran"),
		DBUser:     getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
		DBPassword: getEnv("BLUEPRINT_DB_PASSWORD", ""),
		DBSchema:   getEnv("BLUEPRINT_DB_SCHEMA", "public"),
		DBURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTTTL:     getDuration("JWT_TTL", 7*24*time.Hour),

		AudioBaseURL:     getEnv("AUDIO_BASE_URL", "https://everyayah.com/data"),
		AudioReciterPath: getEnv("AUDIO_RECITER_PATH", "Alafasy_128kbps"),

		QuranAPIURL: getEnv("QURAN_API_URL", "https://api.quran.com/api/v4"),
		QuranAPIRPS: getFloat("QURAN_API_RPS", 2),

		ParaSyncInterval:   getDuration("PARA_SYNC_INTERVAL", 0),
		PlaybackSessionTTL: getDuration("PLAYBACK_SESSION_TTL", 2*time.Hour),
	}

	return cfg
}

// DSN returns the connection string handed to the pgx driver. DATABASE_URL wins
// over the individual BLUEPRINT_DB_* parts.
func (c *Config) DSN() string {
	if c.DBURL != "" {
		return c.DBURL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	if c.DBSchema != "" {
		q.Set("search_path", c.DBSchema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		fmt.Printf("Invalid duration for %s (%q), using %s\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		fmt.Printf("Invalid number for %s (%q), using %v\n", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
