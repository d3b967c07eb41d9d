package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentUnmarshalKeepsUntypedKeys(t *testing.T) {
	data := `{"id": 12, "category": "CPU", "brand": "AMD", "name": "Ryzen 5 5600X", "price": 199.99,
		"stockQuantity": 3, "socket": "AM4", "model": "5600X", "specs": {"tdp": "65 W"}}`

	var c Component
	require.NoError(t, json.Unmarshal([]byte(data), &c))

	assert.Equal(t, "12", c.ID)
	assert.Equal(t, CategoryCPU, c.Category)
	assert.Equal(t, "AMD", c.Brand)
	assert.Equal(t, 199.99, c.Price)
	assert.Equal(t, 3, c.StockQuantity)
	assert.Equal(t, Fields{"socket": "AM4", "model": "5600X"}, c.Attributes)
	assert.Equal(t, Fields{"tdp": "65 W"}, c.Specs)

	v, ok := c.Field("socket")
	assert.True(t, ok)
	assert.Equal(t, "AM4", v)
	_, ok = c.Field("chipset")
	assert.False(t, ok)
	v, ok = c.Spec("tdp")
	assert.True(t, ok)
	assert.Equal(t, "65 W", v)
}

func TestComponentUnmarshalRejectsBadID(t *testing.T) {
	var c Component
	assert.Error(t, json.Unmarshal([]byte(`{"id": true, "name": "x"}`), &c))
}

func TestComponentMarshalFlattensAttributes(t *testing.T) {
	c := Component{
		ID:         "a1",
		Category:   CategoryPSU,
		Name:       "RM750",
		Price:      99.5,
		Attributes: Fields{"wattage": "750 W", "url": "https://pcpartpicker.com/product/abcd12/x"},
	}
	b, err := json.Marshal(c)
	require.NoError(t, err)

	raw := map[string]any{}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "750 W", raw["wattage"])
	assert.Equal(t, "PSU", raw["category"])
	assert.NotContains(t, raw, "specs")

	var back Component
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, c, back)
	assert.Equal(t, "https://pcpartpicker.com/product/abcd12/x", back.SourceURL())
}

func TestFieldsScan(t *testing.T) {
	var f Fields
	require.NoError(t, f.Scan(`{"socket":"AM5"}`))
	assert.Equal(t, Fields{"socket": "AM5"}, f)

	require.NoError(t, f.Scan([]byte("{}")))
	assert.Nil(t, f)

	require.NoError(t, f.Scan(nil))
	assert.Nil(t, f)

	assert.Error(t, f.Scan(42))

	v, err := Fields(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"CPU", CategoryCPU},
		{" motherboard ", CategoryMotherboard},
		{"Video Card", CategoryGPU},
		{"Memory", CategoryRAM},
		{"Power Supply", CategoryPSU},
		{"CPU Cooler", CategoryCooler},
		{"Case", CategoryCase},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCategory("Monitor")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.True(t, CategoryCase.Required())
	assert.False(t, CategoryCooler.Required())
	assert.True(t, CategoryCooler.Valid())
	assert.False(t, Category("Monitor").Valid())
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in       string
		amount   float64
		currency string
	}{
		{"$1,299.99", 1299.99, "$"},
		{"1.299,99 €", 1299.99, "€"},
		{"£45.00", 45, "£"},
		{"+$5.99", 5.99, "$"},
		{"", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			amount, currency, err := ParsePrice(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.amount, amount, 1e-9)
			assert.Equal(t, tt.currency, currency)
		})
	}
}

func TestBestVendor(t *testing.T) {
	p := Part{Vendors: []Vendor{
		{Name: "a", InStock: true, Price: Price{Total: 120}},
		{Name: "b", InStock: false, Price: Price{Total: 90}},
		{Name: "c", InStock: true, Price: Price{Base: 110}},
	}}
	best, ok := p.BestVendor()
	require.True(t, ok)
	assert.Equal(t, "c", best.Name)

	_, ok = Part{}.BestVendor()
	assert.False(t, ok)
}

func TestComponentCategoryAliases(t *testing.T) {
	var c Component
	require.NoError(t, json.Unmarshal([]byte(`{"id": "g1", "category": "video card"}`), &c))
	assert.Equal(t, CategoryGPU, c.Category)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "m1", "category": "Monitor"}`), &c))
	assert.Equal(t, Category("Monitor"), c.Category)
}
