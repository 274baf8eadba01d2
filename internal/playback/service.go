package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taiwoajasa245/quran-api/internal/logger"
)

type CreateSessionRequest struct {
	Chapter   int  `json:"chapter" validate:"required,min=1,max=114"`
	Autoplay  bool `json:"autoplay"`
	ReciterID *int `json:"reciter_id,omitempty" validate:"omitempty,min=1"`
}

type PositionRequest struct {
	Elapsed  float64 `json:"elapsed" validate:"min=0"`
	Duration float64 `json:"duration" validate:"min=0"`
}

type LoadFailedRequest struct {
	URI    string `json:"uri" validate:"required"`
	Reason string `json:"reason"`
}

type SeekRequest struct {
	Seconds float64 `json:"seconds" validate:"min=0"`
}

type SelectRequest struct {
	Chapter  int  `json:"chapter" validate:"required,min=1,max=114"`
	Verse    int  `json:"verse" validate:"omitempty,min=1"`
	Preamble bool `json:"preamble"`
	// AutoAdvance defaults to true.
	AutoAdvance *bool `json:"auto_advance,omitempty"`
}

type PlaybackService struct {
	repo     Repository
	sessions *SessionManager
	resolver Resolver
	log      *logger.Logger

	mu      sync.Mutex
	catalog *MemoryCatalog
}

func NewPlaybackService(repo Repository, sessions *SessionManager, resolver Resolver, log *logger.Logger) *PlaybackService {
	if log == nil {
		log = logger.NewNop()
	}
	return &PlaybackService{
		repo:     repo,
		sessions: sessions,
		resolver: resolver,
		log:      log,
	}
}

func (s *PlaybackService) Sessions() *SessionManager {
	return s.sessions
}

// Catalog returns the chapters loaded from the database, loading them on
// first use. An empty load is not kept, so a server started before seeding
// picks up the ayahs once they exist.
func (s *PlaybackService) Catalog(ctx context.Context) (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog != nil && s.catalog.Len() > 0 {
		return s.catalog, nil
	}
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s.catalog, nil
}

// ReloadCatalog picks up ayah edits. Existing sessions keep the chapters they
// already hold.
func (s *PlaybackService) ReloadCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *PlaybackService) loadLocked(ctx context.Context) error {
	chapters, err := s.repo.LoadChapters(ctx)
	if err != nil {
		return err
	}
	s.catalog = NewMemoryCatalog(chapters)
	s.log.Info("playback catalog loaded", "chapters", s.catalog.Len())
	return nil
}

func (s *PlaybackService) CreateSession(ctx context.Context, req CreateSessionRequest) (*Snapshot, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	resolver := s.resolver
	if req.ReciterID != nil {
		rc, err := s.repo.GetReciter(ctx, *req.ReciterID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("reciter %d: %w", *req.ReciterID, err)
			}
			return nil, err
		}
		base := rc.BaseURL
		if base == "" {
			base = s.resolver.BaseURL
		}
		resolver = NewResolver(base, rc.Path)
	}

	return s.sessions.Create(catalog, resolver, func(c *Controller) error {
		return c.Open(req.Chapter, req.Autoplay)
	})
}

func (r SelectRequest) autoAdvance() bool {
	return r.AutoAdvance == nil || *r.AutoAdvance
}
