package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Fields is an open attribute map as stored by the catalog. Values are strings, numbers or nested objects.
type Fields map[string]any

// Value stores the map as JSON text.
func (f Fields) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSON text column.
func (f *Fields) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported fields column type %T", src)
	}
	if len(data) == 0 {
		*f = nil
		return nil
	}
	m := Fields{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) == 0 {
		m = nil
	}
	*f = m
	return nil
}

// Component is one catalog item. Catalog sources disagree on where attributes live, so any top-level key
// that is not a typed field is kept in Attributes and the nested "specs" object is kept in Specs.
type Component struct {
	ID            string   `json:"id" db:"id"`
	Category      Category `json:"category" db:"category"`
	Brand         string   `json:"brand" db:"brand"`
	Name          string   `json:"name" db:"name"`
	Price         float64  `json:"price" db:"price"`
	StockQuantity int      `json:"stockQuantity" db:"stock_quantity"`
	Specs         Fields   `json:"specs,omitempty" db:"specs"`
	Attributes    Fields   `json:"-" db:"attributes"`
}

var typedKeys = []string{"id", "category", "brand", "name", "price", "stockQuantity", "specs"}

// UnmarshalJSON accepts numeric or string ids, normalizes category aliases, and collects untyped top-level
// keys into Attributes.
func (c *Component) UnmarshalJSON(data []byte) error {
	type plain Component
	aux := struct {
		ID any `json:"id"`
		*plain
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch id := aux.ID.(type) {
	case nil:
		c.ID = ""
	case string:
		c.ID = id
	case float64:
		c.ID = strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return errors.New("component id must be a string or a number")
	}
	// Unrecognized names are kept as-is; selection and catalog writes reject them.
	if known, err := ParseCategory(string(c.Category)); err == nil {
		c.Category = known
	}

	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range typedKeys {
		delete(raw, k)
	}
	c.Attributes = nil
	if len(raw) > 0 {
		c.Attributes = raw
	}
	return nil
}

// MarshalJSON flattens Attributes back to the top level.
func (c Component) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Attributes)+len(typedKeys))
	for k, v := range c.Attributes {
		out[k] = v
	}
	out["id"] = c.ID
	out["category"] = c.Category
	out["brand"] = c.Brand
	out["name"] = c.Name
	out["price"] = c.Price
	out["stockQuantity"] = c.StockQuantity
	if len(c.Specs) > 0 {
		out["specs"] = c.Specs
	}
	return json.Marshal(out)
}

// Field returns a non-empty top-level value by its raw key.
func (c *Component) Field(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	switch key {
	case "brand":
		return c.Brand, c.Brand != ""
	case "name":
		return c.Name, c.Name != ""
	case "category":
		return string(c.Category), c.Category != ""
	}
	return present(c.Attributes[key])
}

// Spec returns a non-empty value nested under specs.
func (c *Component) Spec(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	return present(c.Specs[key])
}

func present(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		return t, t != ""
	}
	return v, true
}

// SourceURL is the product page a component was imported from, if any.
func (c *Component) SourceURL() string {
	if v, ok := c.Field("url"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
