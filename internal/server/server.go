package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/taiwoajasa245/quran-api/internal/database"
	"github.com/taiwoajasa245/quran-api/internal/logger"
	"github.com/taiwoajasa245/quran-api/internal/para"
	"github.com/taiwoajasa245/quran-api/internal/playback"
	"github.com/taiwoajasa245/quran-api/pkg/config"
	"github.com/taiwoajasa245/quran-api/pkg/util"
)

var ErrDatabaseDown = errors.New("database connection failed")

type Server struct {
	port     string
	db       database.Service
	handler  http.Handler
	cfg      *config.Config
	log      *logger.Logger
	tokens   *util.TokenIssuer
	paras    *para.ParaService
	playback *playback.PlaybackService
	cancel   context.CancelFunc
	jobs     sync.WaitGroup
}

// NewServer constructs your app server with all dependencies injected.
func NewServer(db database.Service, cfg *config.Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}

	stats := db.Health()
	if stats["status"] != "up" {
		log.Error("database health check failed", "error", stats["error"])
		return nil, ErrDatabaseDown
	}
	log.Info("database connection successful", "open_connections", stats["open_connections"])

	tokens, err := util.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	paras, err := para.NewParaService(para.NewRepository(db), log.With("component", "para"))
	if err != nil {
		return nil, fmt.Errorf("para service: %w", err)
	}

	sessions := playback.NewSessionManager(cfg.PlaybackSessionTTL, log.With("component", "playback"))
	pb := playback.NewPlaybackService(
		playback.NewRepository(db),
		sessions,
		playback.NewResolver(cfg.AudioBaseURL, cfg.AudioReciterPath),
		log.With("component", "playback"),
	)

	s := &Server{
		port:     cfg.Port,
		db:       db,
		cfg:      cfg,
		log:      log,
		tokens:   tokens,
		paras:    paras,
		playback: pb,
	}

	s.handler = s.RegisterRoutes()
	return s, nil
}

// HTTPServer returns the actual *http.Server instance
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", s.port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartBackgroundJobs runs the para reconciliation ticker and the playback
// session sweeper.
func (s *Server) StartBackgroundJobs() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.jobs.Add(2)
	go func() {
		defer s.jobs.Done()
		s.paras.StartScheduler(ctx, s.cfg.ParaSyncInterval)
	}()
	go func() {
		defer s.jobs.Done()
		s.playback.Sessions().StartSweeper(ctx, sweepInterval(s.cfg.PlaybackSessionTTL))
	}()
	s.log.Info("background jobs started")
}

// StopBackgroundJobs cancels the jobs and waits for them to return.
func (s *Server) StopBackgroundJobs() {
	if s.cancel != nil {
		s.cancel()
		s.jobs.Wait()
		s.log.Info("background jobs stopped gracefully")
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if d := ttl / 4; d > time.Minute {
		return d
	}
	return time.Minute
}
