package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), zap.NewNop().Sugar(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedRAM(t *testing.T, st *Store) {
	t.Helper()
	for _, c := range []models.Component{
		{ID: "r1", Category: models.CategoryRAM, Brand: "Corsair", Name: "Vengeance DDR5", Price: 120, StockQuantity: 3,
			Attributes: models.Fields{"type": "DDR5", "speed": "6000"}},
		{ID: "r2", Category: models.CategoryRAM, Brand: "Kingston", Name: "Fury DDR4", Price: 60, StockQuantity: 10,
			Attributes: models.Fields{"type": "DDR4", "speed": "3200"}},
		{ID: "r3", Category: models.CategoryRAM, Brand: "G.Skill", Name: "Ripjaws DDR4", Price: 45, StockQuantity: 0,
			Attributes: models.Fields{"type": "DDR4"}},
		{ID: "r4", Category: models.CategoryRAM, Brand: "Crucial", Name: "Pro DDR4", Price: 75, StockQuantity: 2,
			Specs: models.Fields{"memory_type": "DDR4"}},
		{ID: "c1", Category: models.CategoryCPU, Brand: "AMD", Name: "Ryzen 5 7600", Price: 210, StockQuantity: 5,
			Attributes: models.Fields{"socket": "AM5"}},
	} {
		require.NoError(t, st.Upsert(context.Background(), c))
	}
}

func ids(components []models.Component) []string {
	out := make([]string, 0, len(components))
	for _, c := range components {
		out = append(out, c.ID)
	}
	return out
}

func TestUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedRAM(t, st)

	c, err := st.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryRAM, c.Category)
	assert.Equal(t, "Corsair", c.Brand)
	assert.Equal(t, 120.0, c.Price)
	assert.Equal(t, 3, c.StockQuantity)
	assert.Equal(t, "DDR5", c.Attributes["type"])
	assert.Nil(t, c.Specs)

	c.Price = 99.5
	require.NoError(t, st.Upsert(ctx, c))
	c, err = st.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 99.5, c.Price)

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrComponentNotFound)

	require.NoError(t, st.Delete(ctx, "r1"))
	_, err = st.Get(ctx, "r1")
	assert.ErrorIs(t, err, ErrComponentNotFound)

	assert.ErrorIs(t, st.Upsert(ctx, models.Component{ID: "x", Category: "fan"}), models.ErrUnknownCategory)
	assert.ErrorIs(t, st.Upsert(ctx, models.Component{Category: models.CategoryGPU}), models.ErrUnknownCategory)
}

func TestComponents(t *testing.T) {
	st := openTestStore(t)
	seedRAM(t, st)

	got, err := st.Components(context.Background(), models.CategoryRAM)
	require.NoError(t, err)
	assert.Equal(t, []string{"r3", "r2", "r4", "r1"}, ids(got))

	got, err = st.Components(context.Background(), models.CategoryGPU)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommendations(t *testing.T) {
	st := openTestStore(t)
	seedRAM(t, st)

	tests := []struct {
		name string
		req  models.Requirements
		want []string
	}{
		{name: "in stock only", req: models.Requirements{}, want: []string{"r2", "r4", "r1"}},
		{name: "ram type", req: models.Requirements{RAMType: "DDR4"}, want: []string{"r2", "r4"}},
		{name: "type lowercase", req: models.Requirements{RAMType: "ddr5"}, want: []string{"r1"}},
		{name: "price band", req: models.Requirements{MinPrice: 70, MaxPrice: 130}, want: []string{"r4", "r1"}},
		{name: "limit", req: models.Requirements{RAMType: "DDR4", Limit: 1}, want: []string{"r2"}},
		{name: "speed ceiling", req: models.Requirements{MaxSpeed: 3600}, want: []string{"r2"}},
		{name: "no match", req: models.Requirements{RAMType: "DDR3"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.Recommendations(context.Background(), models.CategoryRAM, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestBuilds(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	payload := models.BuildPayload{
		Components: models.BuildSelection{
			models.CategoryCPU: {ID: "c1", Category: models.CategoryCPU, Name: "Ryzen 5 7600", Price: 210},
		},
		CompatibilityScore: 100,
		TotalPrice:         210,
	}

	_, err := st.SaveBuild(ctx, "", payload)
	assert.ErrorIs(t, err, ErrEmptyBuildName)

	saved, err := st.SaveBuild(ctx, "Gaming", payload)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := st.GetBuild(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gaming", got.Name)
	assert.Equal(t, 100, got.Payload.CompatibilityScore)
	assert.Equal(t, 210.0, got.Payload.TotalPrice)
	assert.Equal(t, "Ryzen 5 7600", got.Payload.Components.Get(models.CategoryCPU).Name)

	payload.TotalPrice = 250
	_, err = st.UpdateBuild(ctx, saved.ID, "Gaming v2", payload)
	require.NoError(t, err)
	got, err = st.GetBuild(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gaming v2", got.Name)
	assert.Equal(t, 250.0, got.Payload.TotalPrice)

	_, err = st.UpdateBuild(ctx, saved.ID, "", payload)
	assert.ErrorIs(t, err, ErrEmptyBuildName)
	_, err = st.UpdateBuild(ctx, "missing", "x", payload)
	assert.ErrorIs(t, err, ErrBuildNotFound)

	require.NoError(t, st.DeleteBuild(ctx, saved.ID))
	_, err = st.GetBuild(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrBuildNotFound)
	assert.ErrorIs(t, st.DeleteBuild(ctx, saved.ID), ErrBuildNotFound)
}

const seedYAML = `
components:
  - id: 101
    category: processor
    brand: AMD
    name: Ryzen 7 7700X
    price: 299.99
    stockQuantity: 4
    socket: AM5
    tdp: 105W
  - id: gpu-1
    category: gpu
    name: RTX 4070
    price: 549
    specs:
      length: 244 mm
`

func TestParseSeed(t *testing.T) {
	components, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, components, 2)

	cpu := components[0]
	assert.Equal(t, "101", cpu.ID)
	assert.Equal(t, models.CategoryCPU, cpu.Category)
	assert.Equal(t, 299.99, cpu.Price)
	assert.Equal(t, 4, cpu.StockQuantity)
	assert.Equal(t, "AM5", cpu.Attributes["socket"])
	assert.Equal(t, "105W", cpu.Attributes["tdp"])

	assert.Equal(t, models.CategoryGPU, components[1].Category)
	assert.Equal(t, "244 mm", components[1].Specs["length"])

	_, err = ParseSeed([]byte("components:\n  - id: x\n    category: fan\n"))
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
}

func TestLoadSeed(t *testing.T) {
	st := openTestStore(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	n, err := st.LoadSeed(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	c, err := st.Get(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "Ryzen 7 7700X", c.Name)

	_, err = st.LoadSeed(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
