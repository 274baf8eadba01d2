package playback

import (
	"fmt"
	"strings"
)

const (
	DefaultAudioBaseURL = "https://everyayah.com/data"
	DefaultReciterPath  = "Alafasy_128kbps"
)

// Resolver maps a verse to its audio clip:
// <BaseURL>/<ReciterPath>/<ccc><vvv>.mp3
type Resolver struct {
	BaseURL     string
	ReciterPath string
}

func NewResolver(baseURL, reciterPath string) Resolver {
	if baseURL == "" {
		baseURL = DefaultAudioBaseURL
	}
	if reciterPath == "" {
		reciterPath = DefaultReciterPath
	}
	return Resolver{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		ReciterPath: strings.Trim(reciterPath, "/"),
	}
}

func (r Resolver) VerseURL(chapter, verse int) string {
	return fmt.Sprintf("%s/%s/%03d%03d.mp3", r.BaseURL, r.ReciterPath, chapter, verse)
}

// Resolve prefers the verse's own audio_url when it has one.
func (r Resolver) Resolve(chapter, verse int, override string) string {
	if override != "" {
		return override
	}
	return r.VerseURL(chapter, verse)
}
