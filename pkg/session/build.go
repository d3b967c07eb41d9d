// Package session holds in-progress builds: the per-category selection, the wizard step, and the
// suggestion lists fetched for failing categories. Every mutation bumps the selection version; suggestion
// fetches are tagged with the version and a per-category sequence so late responses are dropped.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/compatibility"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/suggestion"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidStep     = errors.New("wizard step out of range")
	ErrEmptyBuild      = errors.New("build has no components")
)

// BuildRepository persists named builds.
type BuildRepository interface {
	SaveBuild(ctx context.Context, name string, payload models.BuildPayload) (models.SavedBuild, error)
}

// Ticket tags a suggestion fetch with the state that started it.
type Ticket struct {
	Category models.Category
	Version  uint64
	Seq      uint64
}

// CategorySuggestions is the latest suggestion state for one category.
type CategorySuggestions struct {
	Loading    bool                  `json:"loading"`
	Version    uint64                `json:"version"`
	Generation suggestion.Generation `json:"generation"`
}

// State is a read-only view of a session.
type State struct {
	ID           string                                  `json:"id"`
	Selection    models.BuildSelection                   `json:"selection"`
	Step         int                                     `json:"step"`
	StepCategory models.Category                         `json:"stepCategory"`
	Version      uint64                                  `json:"version"`
	Report       models.CompatibilityReport              `json:"report"`
	TotalPrice   float64                                 `json:"totalPrice"`
	Complete     bool                                    `json:"complete"`
	Suggestions  map[models.Category]CategorySuggestions `json:"suggestions"`
}

// Build is one session. Methods are safe for concurrent use.
type Build struct {
	mu          sync.Mutex
	id          string
	selection   models.BuildSelection
	step        int
	version     uint64
	seq         map[models.Category]uint64
	suggestions map[models.Category]*CategorySuggestions

	m *Manager
}

func newBuild(id string, m *Manager) *Build {
	return &Build{
		id:          id,
		selection:   models.BuildSelection{},
		seq:         map[models.Category]uint64{},
		suggestions: map[models.Category]*CategorySuggestions{},
		m:           m,
	}
}

func (b *Build) ID() string { return b.id }

// Select places comp in the slot named by its own category.
func (b *Build) Select(comp models.Component) error {
	return b.SelectInto(comp.Category, comp)
}

// SelectInto places comp in slot c, replacing any previous component, and moves the wizard to the next
// empty slot.
func (b *Build) SelectInto(c models.Category, comp models.Component) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.selection.Set(c, &comp); err != nil {
		return err
	}
	b.step = b.nextEmptyStep(b.step)
	b.mutated()
	return nil
}

// Remove empties slot c.
func (b *Build) Remove(c models.Category) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !c.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownCategory, c)
	}
	if !b.selection.Has(c) {
		return nil
	}
	delete(b.selection, c)
	b.mutated()
	return nil
}

// ClearAll empties every slot and rewinds the wizard.
func (b *Build) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = models.BuildSelection{}
	b.step = 0
	b.mutated()
}

// SetStep moves the wizard to step i.
func (b *Build) SetStep(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(models.Categories) {
		return fmt.Errorf("%w: %d", ErrInvalidStep, i)
	}
	b.step = i
	b.persist()
	return nil
}

// Next advances the wizard one step, stopping at the last.
func (b *Build) Next() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.step < len(models.Categories)-1 {
		b.step++
		b.persist()
	}
	return b.step
}

// Prev moves the wizard back one step, stopping at the first.
func (b *Build) Prev() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.step > 0 {
		b.step--
		b.persist()
	}
	return b.step
}

// Selection returns a copy of the current selection.
func (b *Build) Selection() models.BuildSelection {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection.Clone()
}

// Version is the selection version, bumped on every mutation.
func (b *Build) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// Report evaluates the current selection.
func (b *Build) Report() models.CompatibilityReport {
	return compatibility.Report(b.Selection())
}

// State returns a consistent view of the session.
func (b *Build) State() State {
	b.mu.Lock()
	sel := b.selection.Clone()
	st := State{
		ID:           b.id,
		Selection:    sel,
		Step:         b.step,
		StepCategory: models.Categories[b.step],
		Version:      b.version,
		TotalPrice:   sel.TotalPrice(),
		Complete:     sel.Complete(),
		Suggestions:  make(map[models.Category]CategorySuggestions, len(b.suggestions)),
	}
	for c, s := range b.suggestions {
		st.Suggestions[c] = *s
	}
	b.mu.Unlock()

	st.Report = compatibility.Report(sel)
	return st
}

// Suggestions returns the suggestion state for c.
func (b *Build) Suggestions(c models.Category) (CategorySuggestions, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.suggestions[c]
	if !ok {
		return CategorySuggestions{}, false
	}
	return *s, true
}

// begin records a new fetch for c and returns its ticket and the selection it runs against.
// Caller holds b.mu.
func (b *Build) begin(c models.Category) (Ticket, models.BuildSelection) {
	b.seq[c]++
	t := Ticket{Category: c, Version: b.version, Seq: b.seq[c]}
	state, ok := b.suggestions[c]
	if !ok {
		state = &CategorySuggestions{}
		b.suggestions[c] = state
	}
	state.Loading = true
	state.Version = b.version
	return t, b.selection.Clone()
}

// apply stores gen if t is still the newest fetch for its category at the current selection version.
func (b *Build) apply(t Ticket, gen suggestion.Generation) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.suggestions[t.Category]
	if !ok || t.Version != b.version || t.Seq != b.seq[t.Category] {
		b.m.staleDropped(t.Category)
		return false
	}
	state.Loading = false
	state.Version = t.Version
	state.Generation = gen
	return true
}

// RequestSuggestions starts a background fetch for c and returns its ticket. The result is applied only if
// no mutation or newer request for c happened in the meantime.
func (b *Build) RequestSuggestions(ctx context.Context, c models.Category) Ticket {
	b.mu.Lock()
	t, sel := b.begin(c)
	b.mu.Unlock()
	go b.run(ctx, t, sel)
	return t
}

// LoadSuggestions fetches suggestions for c and waits for them. The bool reports whether the result was
// applied; when a newer request or mutation won, the returned state is the newer one.
func (b *Build) LoadSuggestions(ctx context.Context, c models.Category) (CategorySuggestions, bool) {
	b.mu.Lock()
	t, sel := b.begin(c)
	b.mu.Unlock()
	applied := b.run(ctx, t, sel)
	s, _ := b.Suggestions(c)
	return s, applied
}

func (b *Build) run(ctx context.Context, t Ticket, sel models.BuildSelection) bool {
	gen := b.m.generator.Generate(ctx, t.Category, sel)
	return b.apply(t, gen)
}

// mutated bumps the version, persists, and drops suggestion state derived from the previous selection.
// Caller holds b.mu.
func (b *Build) mutated() {
	b.version++
	b.persist()

	// In-flight fetches for dropped categories find no entry in apply and are discarded.
	clear(b.suggestions)
	if !b.m.autoRefresh {
		return
	}
	for _, c := range suggestion.FailingCategories(b.selection) {
		t, sel := b.begin(c)
		go b.run(context.Background(), t, sel)
	}
}

// persist writes a snapshot. Failures are logged; the in-memory session stays authoritative.
// Caller holds b.mu.
func (b *Build) persist() {
	snap := Snapshot{Selection: b.selection.Clone(), Step: b.step, Version: b.version, SavedAt: time.Now().UTC()}
	if err := b.m.store.Save(b.id, snap); err != nil {
		b.m.s.Warnw("session snapshot failed", "session", b.id, zap.Error(err))
		b.m.snapshotFailed()
	}
}

func (b *Build) restore(snap Snapshot) {
	b.selection = snap.Selection.Clone()
	b.version = snap.Version
	b.step = snap.Step
	if b.step < 0 || b.step >= len(models.Categories) {
		b.step = 0
	}
}

// nextEmptyStep returns the first empty slot after from, wrapping around, or from when all are full.
// Caller holds b.mu.
func (b *Build) nextEmptyStep(from int) int {
	n := len(models.Categories)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if !b.selection.Has(models.Categories[idx]) {
			return idx
		}
	}
	return from
}

// SaveBuild stores the selection under name, then clears the session.
func (b *Build) SaveBuild(ctx context.Context, name string) (models.SavedBuild, error) {
	if b.m.repo == nil {
		return models.SavedBuild{}, errors.New("no build repository configured")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.selection) == 0 {
		return models.SavedBuild{}, ErrEmptyBuild
	}
	sel := b.selection.Clone()
	checks := compatibility.Evaluate(sel)
	payload := models.BuildPayload{
		Components:         sel,
		CompatibilityScore: compatibility.Score(checks, sel.FilledRequired()),
		TotalPrice:         sel.TotalPrice(),
	}
	saved, err := b.m.repo.SaveBuild(ctx, name, payload)
	if err != nil {
		return models.SavedBuild{}, fmt.Errorf("save build: %w", err)
	}
	b.selection = models.BuildSelection{}
	b.step = 0
	b.mutated()
	return saved, nil
}
