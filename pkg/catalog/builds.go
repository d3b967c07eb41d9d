package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

type buildRow struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Payload string `db:"payload"`
}

func (r buildRow) decode() (models.SavedBuild, error) {
	var p models.BuildPayload
	if err := json.Unmarshal([]byte(r.Payload), &p); err != nil {
		return models.SavedBuild{}, fmt.Errorf("failed to decode build %s: %w", r.ID, err)
	}
	return models.SavedBuild{ID: r.ID, Name: r.Name, Payload: p}, nil
}

// SaveBuild stores a new named build.
func (st *Store) SaveBuild(ctx context.Context, name string, payload models.BuildPayload) (models.SavedBuild, error) {
	if name == "" {
		return models.SavedBuild{}, ErrEmptyBuildName
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return models.SavedBuild{}, err
	}
	id := uuid.NewString()
	if _, err := st.db.ExecContext(ctx, "INSERT INTO builds (id, name, payload) VALUES ($1, $2, $3)", id, name, string(data)); err != nil {
		st.s.Errorf("Failed to save build %q: %v", name, err)
		return models.SavedBuild{}, fmt.Errorf("failed to save build: %w", err)
	}
	st.s.Infof("Saved build %s (%s) score=%d total=%.2f", id, name, payload.CompatibilityScore, payload.TotalPrice)
	return models.SavedBuild{ID: id, Name: name, Payload: payload}, nil
}

// UpdateBuild replaces a saved build's name and payload.
func (st *Store) UpdateBuild(ctx context.Context, id, name string, payload models.BuildPayload) (models.SavedBuild, error) {
	if name == "" {
		return models.SavedBuild{}, ErrEmptyBuildName
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return models.SavedBuild{}, err
	}
	res, err := st.db.ExecContext(ctx, "UPDATE builds SET name = $1, payload = $2 WHERE id = $3", name, string(data), id)
	if err != nil {
		return models.SavedBuild{}, fmt.Errorf("failed to update build %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.SavedBuild{}, fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	return models.SavedBuild{ID: id, Name: name, Payload: payload}, nil
}

// GetBuild loads a saved build.
func (st *Store) GetBuild(ctx context.Context, id string) (models.SavedBuild, error) {
	var row buildRow
	err := st.db.GetContext(ctx, &row, "SELECT id, name, payload FROM builds WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SavedBuild{}, fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	if err != nil {
		return models.SavedBuild{}, fmt.Errorf("failed to query build %s: %w", id, err)
	}
	return row.decode()
}

// DeleteBuild removes a saved build.
func (st *Store) DeleteBuild(ctx context.Context, id string) error {
	res, err := st.db.ExecContext(ctx, "DELETE FROM builds WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete build %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	return nil
}
