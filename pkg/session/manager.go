package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/suggestion"
)

// Observer receives session events for metrics.
type Observer interface {
	SnapshotFailed()
	StaleSuggestionDropped(category models.Category)
}

// Config wires a Manager.
type Config struct {
	Store     SnapshotStore
	Generator *suggestion.Generator
	Repo      BuildRepository
	Logger    *zap.SugaredLogger
	Observer  Observer
	// AutoRefresh starts suggestion fetches for failing categories after every mutation.
	AutoRefresh bool
}

// Manager owns the live sessions.
type Manager struct {
	mu     sync.Mutex
	builds map[string]*Build

	store       SnapshotStore
	generator   *suggestion.Generator
	repo        BuildRepository
	s           *zap.SugaredLogger
	observer    Observer
	autoRefresh bool
}

func NewManager(cfg Config) *Manager {
	m := &Manager{
		builds:      map[string]*Build{},
		store:       cfg.Store,
		generator:   cfg.Generator,
		repo:        cfg.Repo,
		s:           cfg.Logger,
		observer:    cfg.Observer,
		autoRefresh: cfg.AutoRefresh,
	}
	if m.store == nil {
		m.store = NewMemoryStore()
	}
	if m.s == nil {
		m.s = zap.NewNop().Sugar()
	}
	return m
}

// Create starts an empty session with a fresh id.
func (m *Manager) Create() *Build {
	id := uuid.NewString()
	b := newBuild(id, m)
	m.mu.Lock()
	m.builds[id] = b
	m.mu.Unlock()

	b.mu.Lock()
	b.persist()
	b.mu.Unlock()
	m.s.Debugf("Created session %s", id)
	return b
}

// Open returns a live session, restoring it from its snapshot the first time it is opened in this process.
func (m *Manager) Open(id string) (*Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.builds[id]; ok {
		return b, nil
	}
	snap, ok, err := m.store.Load(id)
	if err != nil {
		m.s.Warnf("Failed to read snapshot for session %s: %v", id, err)
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	b := newBuild(id, m)
	b.restore(snap)
	m.builds[id] = b
	m.s.Debugf("Restored session %s at version %d with %d components", id, snap.Version, len(snap.Selection))
	return b, nil
}

// Len is the number of live sessions in this process.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.builds)
}

// Discard drops a session and its snapshot.
func (m *Manager) Discard(id string) error {
	m.mu.Lock()
	delete(m.builds, id)
	m.mu.Unlock()
	return m.store.Delete(id)
}

func (m *Manager) snapshotFailed() {
	if m.observer != nil {
		m.observer.SnapshotFailed()
	}
}

func (m *Manager) staleDropped(c models.Category) {
	m.s.Debugf("Dropped stale suggestion response for %s", c)
	if m.observer != nil {
		m.observer.StaleSuggestionDropped(c)
	}
}
