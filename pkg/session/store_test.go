package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Selection: models.BuildSelection{
			models.CategoryCPU: {ID: "cpu", Category: models.CategoryCPU, Name: "Core i5-13400", Price: 199.99,
				Attributes: models.Fields{"socket": "LGA1700"}},
		},
		Step:    1,
		Version: 7,
		SavedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotStores(t *testing.T) {
	for _, backend := range []string{"memory", "pebble", "badger"} {
		t.Run(backend, func(t *testing.T) {
			store, err := OpenSnapshotStore(backend, filepath.Join(t.TempDir(), backend))
			require.NoError(t, err)
			defer store.Close()

			_, ok, err := store.Load("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			want := testSnapshot()
			require.NoError(t, store.Save("abc", want))
			got, ok, err := store.Load("abc")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want.Step, got.Step)
			assert.Equal(t, want.Version, got.Version)
			assert.True(t, want.SavedAt.Equal(got.SavedAt))
			assert.Equal(t, "Core i5-13400", got.Selection.Get(models.CategoryCPU).Name)
			assert.Equal(t, 199.99, got.Selection.Get(models.CategoryCPU).Price)

			require.NoError(t, store.Delete("abc"))
			_, ok, err = store.Load("abc")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestOpenSnapshotStoreUnknownBackend(t *testing.T) {
	_, err := OpenSnapshotStore("redis", t.TempDir())
	assert.Error(t, err)
}

func TestDecodeSnapshotEmptySelection(t *testing.T) {
	snap, err := decodeSnapshot([]byte(`{"step":2,"version":3}`))
	require.NoError(t, err)
	assert.NotNil(t, snap.Selection)
	assert.Equal(t, 2, snap.Step)

	_, err = decodeSnapshot([]byte(`{`))
	assert.Error(t, err)
}
