package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// BuildSelection holds at most one component per category.
type BuildSelection map[Category]*Component

// Get returns the component in slot c or nil.
func (s BuildSelection) Get(c Category) *Component {
	if s == nil {
		return nil
	}
	return s[c]
}

// Has reports whether slot c is filled.
func (s BuildSelection) Has(c Category) bool {
	return s.Get(c) != nil
}

// Set places comp in slot c. The slot must be a known category and must match the component's own category
// when the component declares one.
func (s BuildSelection) Set(c Category, comp *Component) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	if comp == nil {
		delete(s, c)
		return nil
	}
	if comp.Category != "" && comp.Category != c {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrCategoryMismatch, comp.Name, comp.Category, c)
	}
	s[c] = comp
	return nil
}

// Validate checks every key against the fixed category set.
func (s BuildSelection) Validate() error {
	for c, comp := range s {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
		if comp != nil && comp.Category != "" && comp.Category != c {
			return fmt.Errorf("%w: %s is a %s, not a %s", ErrCategoryMismatch, comp.Name, comp.Category, c)
		}
	}
	return nil
}

// UnmarshalJSON decodes a category-keyed object, dropping null slots and accepting category aliases.
func (s *BuildSelection) UnmarshalJSON(data []byte) error {
	raw := map[string]*Component{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := BuildSelection{}
	for name, comp := range raw {
		c, err := ParseCategory(name)
		if err != nil {
			return err
		}
		if comp == nil {
			continue
		}
		if err := out.Set(c, comp); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

// Clone copies the slot map. Components are shared since they are read-only snapshots.
func (s BuildSelection) Clone() BuildSelection {
	out := make(BuildSelection, len(s))
	for c, comp := range s {
		if comp != nil {
			out[c] = comp
		}
	}
	return out
}

// FilledRequired counts the filled required slots.
func (s BuildSelection) FilledRequired() int {
	n := 0
	for _, c := range Categories {
		if c.Required() && s.Has(c) {
			n++
		}
	}
	return n
}

// Complete reports whether every required slot is filled.
func (s BuildSelection) Complete() bool {
	return s.FilledRequired() == RequiredCategoryCount
}

// TotalPrice sums component prices, rounded to cents.
func (s BuildSelection) TotalPrice() float64 {
	total := 0.0
	for _, comp := range s {
		if comp != nil {
			total += comp.Price
		}
	}
	return math.Round(total*100) / 100
}

// BuildPayload is what the build repository persists for a saved build.
type BuildPayload struct {
	Components         BuildSelection `json:"components"`
	CompatibilityScore int            `json:"compatibilityScore"`
	TotalPrice         float64        `json:"totalPrice"`
}

// SavedBuild is a named build record.
type SavedBuild struct {
	ID      string       `json:"id" db:"id"`
	Name    string       `json:"name" db:"name"`
	Payload BuildPayload `json:"payload"`
}
