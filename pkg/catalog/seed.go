package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

// seedFile is the YAML layout of a catalog seed. Each component is a free-form mapping so seeds can use the
// same inconsistent field names real catalog exports do.
type seedFile struct {
	Components []map[string]any `yaml:"components"`
}

// ParseSeed decodes a YAML seed into components.
func ParseSeed(data []byte) ([]models.Component, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal seed: %w", err)
	}
	out := make([]models.Component, 0, len(f.Components))
	for i, raw := range f.Components {
		// Round-trip through JSON so untyped keys land in Attributes exactly as they would from the API.
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("seed component %d: %w", i, err)
		}
		var c models.Component
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("seed component %d: %w", i, err)
		}
		category, err := models.ParseCategory(string(c.Category))
		if err != nil {
			return nil, fmt.Errorf("seed component %d (%s): %w", i, c.Name, err)
		}
		c.Category = category
		out = append(out, c)
	}
	return out, nil
}

// LoadSeed reads a YAML seed file and upserts every component. It returns the number loaded.
func (st *Store) LoadSeed(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	components, err := ParseSeed(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for _, c := range components {
		if err := st.Upsert(ctx, c); err != nil {
			return 0, err
		}
	}
	st.s.Infof("Loaded %d catalog components from %s", len(components), path)
	return len(components), nil
}
