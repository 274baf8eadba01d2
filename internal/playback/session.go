package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taiwoajasa245/quran-api/internal/logger"
)

var ErrSessionNotFound = errors.New("playback session not found")

// Command is a player instruction queued for the client that owns a session.
type Command struct {
	Op      string  `json:"op"`
	URI     string  `json:"uri,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

// commandRecorder is the Player behind a remote session. It never fails on
// its own; clients report failures back through OnLoadFailed.
type commandRecorder struct {
	pending []Command
}

func (p *commandRecorder) Load(uri string) error {
	p.pending = append(p.pending, Command{Op: "load", URI: uri})
	return nil
}

func (p *commandRecorder) Play() error {
	p.pending = append(p.pending, Command{Op: "play"})
	return nil
}

func (p *commandRecorder) Pause() error {
	p.pending = append(p.pending, Command{Op: "pause"})
	return nil
}

func (p *commandRecorder) Seek(seconds float64) error {
	p.pending = append(p.pending, Command{Op: "seek", Seconds: seconds})
	return nil
}

func (p *commandRecorder) drain() []Command {
	out := p.pending
	p.pending = nil
	if out == nil {
		out = []Command{}
	}
	return out
}

type session struct {
	id       string
	mu       sync.Mutex
	ctrl     *Controller
	player   *commandRecorder
	lastSeen time.Time
}

// Snapshot is what a session command returns: the controller status and the
// player commands the client should run, in order.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Status    Status    `json:"status"`
	Commands  []Command `json:"commands"`
}

// SessionManager owns one Controller per listening client. Commands on a
// session are serialised; sessions idle longer than the TTL are swept.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	log      *logger.Logger
}

func NewSessionManager(ttl time.Duration, log *logger.Logger) *SessionManager {
	if log == nil {
		log = logger.NewNop()
	}
	return &SessionManager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Create runs init against a fresh controller and registers the session when
// init succeeds.
func (m *SessionManager) Create(catalog Catalog, resolver Resolver, init func(*Controller) error) (*Snapshot, error) {
	player := &commandRecorder{}
	s := &session{
		id:     uuid.NewString(),
		player: player,
		ctrl:   NewController(catalog, player, resolver, m.log),
	}

	var err error
	if init != nil {
		err = init(s.ctrl)
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	s.lastSeen = m.now()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.log.Debug("playback session created", "session", s.id)
	return s.snapshot(), nil
}

// Do runs fn against the session's controller. A nil fn only reads state.
// The snapshot is returned even when fn fails.
func (m *SessionManager) Do(id string, fn func(*Controller) error) (*Snapshot, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = m.now()
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if fn != nil {
		err = fn(s.ctrl)
	}
	return s.snapshot(), err
}

func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	s.ctrl.Close()
	s.mu.Unlock()
	return nil
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions not touched within the TTL and returns how many went.
func (m *SessionManager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	var expired []*session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.mu.Lock()
		s.ctrl.Close()
		s.mu.Unlock()
	}
	if len(expired) > 0 {
		m.log.Info("expired playback sessions", "count", len(expired))
	}
	return len(expired)
}

// StartSweeper calls Sweep every interval until ctx is done.
func (m *SessionManager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("playback session sweeper stopped")
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (s *session) snapshot() *Snapshot {
	return &Snapshot{
		SessionID: s.id,
		Status:    s.ctrl.Status(),
		Commands:  s.player.drain(),
	}
}
