package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/compatibility"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/suggestion"
)

type fakeCatalog struct {
	items []models.Component
}

func (f *fakeCatalog) Components(_ context.Context, category models.Category) ([]models.Component, error) {
	var out []models.Component
	for _, c := range f.items {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Recommendations(_ context.Context, category models.Category, req models.Requirements) ([]models.Component, error) {
	var out []models.Component
	for i := range f.items {
		c := f.items[i]
		if c.Category == category && compatibility.Satisfies(&c, req) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeRepo struct {
	name    string
	payload models.BuildPayload
	err     error
}

func (r *fakeRepo) SaveBuild(_ context.Context, name string, payload models.BuildPayload) (models.SavedBuild, error) {
	if r.err != nil {
		return models.SavedBuild{}, r.err
	}
	r.name, r.payload = name, payload
	return models.SavedBuild{ID: "saved-1", Name: name, Payload: payload}, nil
}

type countingObserver struct {
	mu        sync.Mutex
	stale     int
	snapshots int
}

func (o *countingObserver) SnapshotFailed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snapshots++
}

func (o *countingObserver) StaleSuggestionDropped(models.Category) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stale++
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Save(string, Snapshot) error { return errors.New("disk full") }

type unreadableStore struct{ *MemoryStore }

func (u *unreadableStore) Load(string) (Snapshot, bool, error) {
	return Snapshot{}, false, errors.New("corrupt value")
}

var (
	board = models.Component{ID: "mb", Category: models.CategoryMotherboard, Name: "B550", Price: 120,
		Attributes: models.Fields{"socket": "AM4", "ram_type": "DDR4"}}
	ddr5 = models.Component{ID: "ddr5", Category: models.CategoryRAM, Name: "DDR5 kit", Price: 150,
		Attributes: models.Fields{"type": "DDR5"}}
	ddr4 = models.Component{ID: "ddr4", Category: models.CategoryRAM, Name: "DDR4 kit", Price: 80, StockQuantity: 4,
		Attributes: models.Fields{"type": "DDR4"}}
	cpu = models.Component{ID: "cpu", Category: models.CategoryCPU, Name: "Ryzen 5 5600X", Price: 200,
		Attributes: models.Fields{"socket": "AM4", "tdp": "65 W"}}
)

func newTestManager(t *testing.T, store SnapshotStore, repo BuildRepository, obs Observer, auto bool) *Manager {
	t.Helper()
	cat := &fakeCatalog{items: []models.Component{board, ddr5, ddr4, cpu}}
	return NewManager(Config{
		Store:       store,
		Generator:   suggestion.NewGenerator(cat, suggestion.Options{}, nil),
		Repo:        repo,
		Observer:    obs,
		AutoRefresh: auto,
	})
}

func TestSelectAdvancesStep(t *testing.T) {
	b := newTestManager(t, nil, nil, nil, false).Create()
	assert.Equal(t, 0, b.State().Step)

	require.NoError(t, b.Select(cpu))
	st := b.State()
	assert.Equal(t, 1, st.Step)
	assert.Equal(t, models.CategoryMotherboard, st.StepCategory)
	assert.Equal(t, uint64(1), st.Version)

	require.NoError(t, b.SetStep(2))
	require.NoError(t, b.SelectInto(models.CategoryMotherboard, board))
	// First empty slot after GPU is RAM.
	assert.Equal(t, 3, b.State().Step)
	assert.Equal(t, 320.0, b.State().TotalPrice)
	assert.False(t, b.State().Complete)

	err := b.SelectInto(models.CategoryGPU, cpu)
	assert.ErrorIs(t, err, models.ErrCategoryMismatch)
	err = b.SelectInto("fan", cpu)
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
	assert.Equal(t, uint64(2), b.Version())
}

func TestWizardSteps(t *testing.T) {
	b := newTestManager(t, nil, nil, nil, false).Create()

	assert.Equal(t, 0, b.Prev())
	assert.ErrorIs(t, b.SetStep(-1), ErrInvalidStep)
	assert.ErrorIs(t, b.SetStep(len(models.Categories)), ErrInvalidStep)

	require.NoError(t, b.SetStep(len(models.Categories)-1))
	assert.Equal(t, len(models.Categories)-1, b.Next())
	assert.Equal(t, len(models.Categories)-2, b.Prev())
	// Navigation does not change the selection version.
	assert.Equal(t, uint64(0), b.Version())
}

func TestRemoveAndClear(t *testing.T) {
	b := newTestManager(t, nil, nil, nil, false).Create()
	require.NoError(t, b.Select(cpu))
	require.NoError(t, b.Select(board))

	require.NoError(t, b.Remove(models.CategoryGPU))
	assert.Equal(t, uint64(2), b.Version())

	require.NoError(t, b.Remove(models.CategoryCPU))
	assert.False(t, b.Selection().Has(models.CategoryCPU))
	assert.Equal(t, uint64(3), b.Version())

	assert.ErrorIs(t, b.Remove("fan"), models.ErrUnknownCategory)

	b.ClearAll()
	st := b.State()
	assert.Empty(t, st.Selection)
	assert.Equal(t, 0, st.Step)
	assert.Equal(t, 0, st.Report.Score)
	assert.Equal(t, 0, st.Report.SelectionProgress)
}

func TestOpenUnknownSession(t *testing.T) {
	m := newTestManager(t, nil, nil, nil, false)
	_, err := m.Open("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	b := m.Create()
	require.NoError(t, m.Discard(b.ID()))
	_, err = m.Open(b.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestOpenReportsStoreFailure(t *testing.T) {
	_, err := newTestManager(t, &unreadableStore{NewMemoryStore()}, nil, nil, false).Open("abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
	assert.Contains(t, err.Error(), "corrupt value")
}

func TestLen(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store, nil, nil, false)
	a := m.Create()
	m.Create()
	assert.Equal(t, 2, m.Len())
	require.NoError(t, m.Discard(a.ID()))
	assert.Equal(t, 1, m.Len())

	other := newTestManager(t, store, nil, nil, false)
	assert.Equal(t, 0, other.Len())
	_, err := other.Open(a.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRestoreFromSnapshot(t *testing.T) {
	store := NewMemoryStore()
	b := newTestManager(t, store, nil, nil, false).Create()
	require.NoError(t, b.Select(cpu))
	require.NoError(t, b.Select(board))
	require.NoError(t, b.SetStep(5))

	restored, err := newTestManager(t, store, nil, nil, false).Open(b.ID())
	require.NoError(t, err)
	st := restored.State()
	assert.Equal(t, 5, st.Step)
	assert.Equal(t, uint64(2), st.Version)
	require.True(t, st.Selection.Has(models.CategoryCPU))
	assert.Equal(t, "Ryzen 5 5600X", st.Selection.Get(models.CategoryCPU).Name)
	assert.Equal(t, "AM4", st.Selection.Get(models.CategoryMotherboard).Attributes["socket"])
}

func TestSnapshotFailureKeepsSession(t *testing.T) {
	obs := &countingObserver{}
	b := newTestManager(t, &failingStore{}, nil, obs, false).Create()
	require.NoError(t, b.Select(cpu))

	assert.True(t, b.Selection().Has(models.CategoryCPU))
	assert.Equal(t, 2, obs.snapshots)
}

func TestStaleSuggestionsDropped(t *testing.T) {
	obs := &countingObserver{}
	b := newTestManager(t, nil, nil, obs, false).Create()
	require.NoError(t, b.Select(board))
	require.NoError(t, b.Select(ddr5))

	b.mu.Lock()
	old, sel := b.begin(models.CategoryRAM)
	b.mu.Unlock()
	gen := b.m.generator.Generate(context.Background(), models.CategoryRAM, sel)

	// A mutation lands before the response.
	require.NoError(t, b.SetStep(0))
	require.NoError(t, b.Select(cpu))
	assert.False(t, b.apply(old, gen))
	assert.Equal(t, 1, obs.stale)

	// A newer request for the same category wins over an older one.
	b.mu.Lock()
	first, _ := b.begin(models.CategoryRAM)
	second, _ := b.begin(models.CategoryRAM)
	b.mu.Unlock()
	assert.False(t, b.apply(first, gen))
	assert.True(t, b.apply(second, gen))
	assert.Equal(t, 2, obs.stale)

	s, ok := b.Suggestions(models.CategoryRAM)
	require.True(t, ok)
	assert.False(t, s.Loading)
	assert.Equal(t, b.Version(), s.Version)
}

func TestLoadSuggestions(t *testing.T) {
	b := newTestManager(t, nil, nil, nil, false).Create()
	require.NoError(t, b.Select(board))
	require.NoError(t, b.Select(ddr5))

	s, applied := b.LoadSuggestions(context.Background(), models.CategoryRAM)
	require.True(t, applied)
	require.Len(t, s.Generation.Suggestions, 1)
	assert.Equal(t, "DDR4", s.Generation.Requirements.RAMType)
	require.Len(t, s.Generation.Result.Candidates, 1)
	assert.Equal(t, "ddr4", s.Generation.Result.Candidates[0].ID)

	// Fixing the conflict drops the category's suggestion state.
	require.NoError(t, b.Select(ddr4))
	_, ok := b.Suggestions(models.CategoryRAM)
	assert.False(t, ok)
}

func TestSuggestionsDroppedWhenConflictChanges(t *testing.T) {
	b := newTestManager(t, nil, nil, nil, false).Create()
	require.NoError(t, b.Select(board))
	require.NoError(t, b.Select(ddr5))
	_, applied := b.LoadSuggestions(context.Background(), models.CategoryRAM)
	require.True(t, applied)

	// RAM still conflicts, but with a board that wants something else.
	ddr3Board := models.Component{ID: "mb3", Category: models.CategoryMotherboard, Name: "H61",
		Attributes: models.Fields{"socket": "LGA1155", "ram_type": "DDR3"}}
	require.NoError(t, b.Select(ddr3Board))
	_, ok := b.Suggestions(models.CategoryRAM)
	assert.False(t, ok)
	_, ok = b.State().Suggestions[models.CategoryRAM]
	assert.False(t, ok)

	s, applied := b.LoadSuggestions(context.Background(), models.CategoryRAM)
	require.True(t, applied)
	assert.Equal(t, "DDR3", s.Generation.Requirements.RAMType)
	assert.Equal(t, b.Version(), s.Version)
}

func TestAutoRefresh(t *testing.T) {
	b := newTestManager(t, nil, nil, nil, true).Create()
	require.NoError(t, b.Select(board))
	require.NoError(t, b.Select(ddr5))

	assert.Eventually(t, func() bool {
		s, ok := b.Suggestions(models.CategoryRAM)
		return ok && !s.Loading && len(s.Generation.Result.Candidates) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSaveBuild(t *testing.T) {
	repo := &fakeRepo{}
	b := newTestManager(t, nil, repo, nil, false).Create()

	_, err := b.SaveBuild(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrEmptyBuild)

	require.NoError(t, b.Select(cpu))
	require.NoError(t, b.Select(board))
	saved, err := b.SaveBuild(context.Background(), "Office PC")
	require.NoError(t, err)
	assert.Equal(t, "saved-1", saved.ID)
	assert.Equal(t, "Office PC", repo.name)
	assert.Equal(t, 320.0, repo.payload.TotalPrice)
	assert.Equal(t, 100, repo.payload.CompatibilityScore)
	assert.Len(t, repo.payload.Components, 2)

	st := b.State()
	assert.Empty(t, st.Selection)
	assert.Equal(t, 0, st.Step)
}

func TestSaveBuildFailureKeepsSelection(t *testing.T) {
	b := newTestManager(t, nil, &fakeRepo{err: errors.New("db down")}, nil, false).Create()
	require.NoError(t, b.Select(cpu))

	_, err := b.SaveBuild(context.Background(), "x")
	assert.Error(t, err)
	assert.True(t, b.Selection().Has(models.CategoryCPU))

	_, err = newTestManager(t, nil, nil, nil, false).Create().SaveBuild(context.Background(), "x")
	assert.Error(t, err)
}
