// Package catalog implements the catalog and recommendation collaborators over a relational store, a YAML
// seed loader, and an HTTP client for a remote catalog service.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/compatibility"
)

var (
	ErrComponentNotFound = errors.New("component not found")
	ErrBuildNotFound     = errors.New("build not found")
	ErrEmptyBuildName    = errors.New("please specify a build name")
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS components (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		brand TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		specs TEXT NOT NULL DEFAULT '{}',
		attributes TEXT NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS components_category_price ON components (category, price)`,
	`CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		payload TEXT NOT NULL
	)`,
}

const componentColumns = "id, category, brand, name, price, stock_quantity, specs, attributes"

// Store is a catalog backed by sqlite or postgres.
type Store struct {
	db *sqlx.DB
	s  *zap.SugaredLogger
}

// Open connects to driver/dsn ("sqlite" or "postgres") and creates the schema.
func Open(ctx context.Context, s *zap.SugaredLogger, driver, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s catalog: %w", driver, err)
	}
	if driver == "sqlite" {
		// An in-memory database exists per connection.
		db.SetMaxOpenConns(1)
	}
	store := NewStore(s, db)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an existing connection pool.
func NewStore(s *zap.SugaredLogger, db *sqlx.DB) *Store {
	return &Store{db: db, s: s}
}

// Migrate creates missing tables.
func (st *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := st.db.ExecContext(ctx, stmt); err != nil {
			st.s.Errorf("Failed to apply catalog schema: %v", err)
			return fmt.Errorf("failed to migrate catalog: %w", err)
		}
	}
	return nil
}

func (st *Store) Close() error { return st.db.Close() }

// Upsert inserts or replaces a component.
func (st *Store) Upsert(ctx context.Context, c models.Component) error {
	if c.ID == "" || !c.Category.Valid() {
		return fmt.Errorf("%w: component needs an id and a known category", models.ErrUnknownCategory)
	}
	if c.Specs == nil {
		c.Specs = models.Fields{}
	}
	if c.Attributes == nil {
		c.Attributes = models.Fields{}
	}
	_, err := st.db.NamedExecContext(ctx,
		"INSERT INTO components ("+componentColumns+") "+
			"VALUES (:id, :category, :brand, :name, :price, :stock_quantity, :specs, :attributes) "+
			"ON CONFLICT (id) DO UPDATE SET category = excluded.category, brand = excluded.brand, "+
			"name = excluded.name, price = excluded.price, stock_quantity = excluded.stock_quantity, "+
			"specs = excluded.specs, attributes = excluded.attributes", c)
	if err != nil {
		st.s.Errorf("Failed to upsert component %s: %v", c.ID, err)
		return fmt.Errorf("failed to upsert component %s: %w", c.ID, err)
	}
	return nil
}

// Get returns one component by id.
func (st *Store) Get(ctx context.Context, id string) (models.Component, error) {
	var c models.Component
	err := st.db.GetContext(ctx, &c, "SELECT "+componentColumns+" FROM components WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Component{}, fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	if err != nil {
		st.s.Errorf("Failed to query component %s: %v", id, err)
		return models.Component{}, fmt.Errorf("failed to query component %s: %w", id, err)
	}
	return c, nil
}

// Delete removes a component.
func (st *Store) Delete(ctx context.Context, id string) error {
	if _, err := st.db.ExecContext(ctx, "DELETE FROM components WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete component %s: %w", id, err)
	}
	return nil
}

// Components lists a category, cheapest first.
func (st *Store) Components(ctx context.Context, category models.Category) ([]models.Component, error) {
	var out []models.Component
	err := st.db.SelectContext(ctx, &out,
		"SELECT "+componentColumns+" FROM components WHERE category = $1 ORDER BY price ASC, name ASC",
		string(category))
	if err != nil {
		st.s.Errorf("Failed to query %s components: %v", category, err)
		return nil, fmt.Errorf("failed to query %s components: %w", category, err)
	}
	return out, nil
}

// Recommendations returns in-stock components of a category that satisfy req, cheapest first. The price band
// is applied in SQL; spec constraints are matched on the decoded records since specs are free-form.
func (st *Store) Recommendations(ctx context.Context, category models.Category, req models.Requirements) ([]models.Component, error) {
	stmt := "SELECT " + componentColumns + " FROM components WHERE category = $1 AND stock_quantity > 0"
	args := []any{string(category)}
	if req.MinPrice > 0 {
		args = append(args, req.MinPrice)
		stmt += fmt.Sprintf(" AND price >= $%d", len(args))
	}
	if req.MaxPrice > 0 {
		args = append(args, req.MaxPrice)
		stmt += fmt.Sprintf(" AND price <= $%d", len(args))
	}
	stmt += " ORDER BY price ASC, name ASC"

	var rows []models.Component
	if err := st.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		st.s.Errorf("Failed to query %s recommendations: %v", category, err)
		return nil, fmt.Errorf("failed to query %s recommendations: %w", category, err)
	}
	out := []models.Component{}
	for i := range rows {
		if !compatibility.Satisfies(&rows[i], req) {
			continue
		}
		out = append(out, rows[i])
		if req.Limit > 0 && len(out) == req.Limit {
			break
		}
	}
	st.s.Debugf("Found %d of %d %s recommendations", len(out), len(rows), category)
	return out, nil
}
