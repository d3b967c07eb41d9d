package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

func TestRequirementsQuery(t *testing.T) {
	q := RequirementsQuery(models.Requirements{RAMType: "DDR4", MinWattage: 550, MaxLength: 320.5, Limit: 3})
	assert.Equal(t, "DDR4", q.Get("type"))
	assert.Equal(t, "550", q.Get("minWattage"))
	assert.Equal(t, "320.5", q.Get("maxLength"))
	assert.Equal(t, "3", q.Get("limit"))
	assert.Len(t, q, 4)

	assert.Empty(t, RequirementsQuery(models.Requirements{}))
}

func TestRemoteClient(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		if r.URL.Query().Get("category") == "GPU" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"category":"psu","name":"RM750","price":99.9,"wattage":"750 W"}]`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL+"/", 0)

	got, err := client.Recommendations(context.Background(), models.CategoryPSU, models.Requirements{MinWattage: 600})
	require.NoError(t, err)
	assert.Equal(t, "/recommendations", gotPath)
	assert.Contains(t, gotQuery, "minWattage=600")
	assert.Contains(t, gotQuery, "category=PSU")
	require.Len(t, got, 1)
	assert.Equal(t, "7", got[0].ID)
	assert.Equal(t, "750 W", got[0].Attributes["wattage"])

	_, err = client.Components(context.Background(), models.CategoryGPU)
	assert.Error(t, err)
	assert.Equal(t, "/components", gotPath)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Components(ctx, models.CategoryPSU)
	assert.ErrorIs(t, err, context.Canceled)
}
