package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/compatibility"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/resolver"
)

func TestProductID(t *testing.T) {
	assert.Equal(t, "9nm323", ProductID("https://pcpartpicker.com/product/9nm323/amd-ryzen-5-5600x"))
	assert.Equal(t, "Zxw7YJ", ProductID("https://uk.pcpartpicker.com/product/Zxw7YJ"))
	assert.Empty(t, ProductID("https://pcpartpicker.com/list/abcd12"))
}

func TestToComponent(t *testing.T) {
	part := models.Part{
		Type:   "Memory",
		Name:   "Corsair Vengeance LPX 16 GB",
		URL:    "https://pcpartpicker.com/product/p6RFf7/corsair-vengeance-lpx",
		Images: []string{"https://cdna.pcpartpicker.com/a.jpg"},
		Rating: models.RatingStats{Stars: 5, Count: 120, Average: 4.8},
		Vendors: []models.Vendor{
			{Name: "amazon", InStock: true, Price: models.Price{Total: 54.99}},
			{Name: "newegg", InStock: true, Price: models.Price{Total: 49.99}},
			{Name: "bestbuy", InStock: false, Price: models.Price{Total: 39.99}},
		},
		Specs: []models.PartSpec{
			{Name: "Manufacturer", Values: []string{"Corsair"}},
			{Name: "Speed", Values: []string{"DDR4-3200"}},
			{Name: "Modules", Values: []string{"2 x 8GB"}},
			{Name: "Color", Values: []string{"Black"}},
			{Name: "Heat Spreader", Values: []string{" "}},
		},
	}

	c := ToComponent(part, models.CategoryRAM)
	assert.Equal(t, "p6RFf7", c.ID)
	assert.Equal(t, models.CategoryRAM, c.Category)
	assert.Equal(t, "Corsair", c.Brand)
	assert.Equal(t, 49.99, c.Price)
	assert.Equal(t, 2, c.StockQuantity)
	assert.Equal(t, "newegg", c.Attributes["vendor"])
	assert.Equal(t, 4.8, c.Attributes["rating"])
	assert.Equal(t, part.URL, c.SourceURL())
	assert.Equal(t, "DDR4", c.Specs["ram_type"])
	assert.NotContains(t, c.Specs, "color")

	assert.Equal(t, "ddr4", compatibility.RAMGeneration(&c))
	modules, ok := compatibility.ModuleCount(&c)
	assert.True(t, ok)
	assert.Equal(t, 2, modules)
	speed, ok := compatibility.MemorySpeed(&c, resolver.Speed)
	assert.True(t, ok)
	assert.Equal(t, 3200, speed)
}

func TestToComponentWithoutProductID(t *testing.T) {
	c := ToComponent(models.Part{Name: "Mystery PSU", Specs: []models.PartSpec{
		{Name: "Wattage", Values: []string{"750 W"}},
		{Name: "Form Factor", Values: []string{"ATX"}},
	}}, models.CategoryPSU)

	require.NotEmpty(t, c.ID)
	assert.Zero(t, c.Price)
	assert.Zero(t, c.StockQuantity)
	watts, ok := resolver.Number(&c, resolver.Wattage)
	assert.True(t, ok)
	assert.Equal(t, 750.0, watts)
	assert.Equal(t, "ATX", resolver.Text(&c, resolver.FormFactor))

	empty := ToComponent(models.Part{Name: "Bare"}, models.CategoryCase)
	assert.Nil(t, empty.Specs)
}
