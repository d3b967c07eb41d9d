package pcpartpicker_automation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

func imported(category models.Category, url string) *models.Component {
	return &models.Component{ID: string(category), Category: category, Attributes: models.Fields{"url": url}}
}

func TestSourceLinks(t *testing.T) {
	sel := models.BuildSelection{
		models.CategoryGPU: imported(models.CategoryGPU, "https://pcpartpicker.com/product/abcd12/rtx-4070"),
		models.CategoryCPU: imported(models.CategoryCPU, "https://pcpartpicker.com/product/9nm323/ryzen"),
		models.CategoryRAM: imported(models.CategoryRAM, "https://example.com/ram"),
		models.CategoryPSU: {ID: "psu", Category: models.CategoryPSU},
	}
	assert.Equal(t, []string{
		"https://pcpartpicker.com/product/9nm323/ryzen",
		"https://pcpartpicker.com/product/abcd12/rtx-4070",
	}, SourceLinks(sel))
}

func TestExportSelectionWithoutSourceParts(t *testing.T) {
	_, err := ExportSelection("us", models.BuildSelection{models.CategoryPSU: {ID: "psu", Category: models.CategoryPSU}})
	assert.ErrorIs(t, err, ErrNoSourceParts)
}

func TestProcessPartLinksInvalidRegion(t *testing.T) {
	_, err := ProcessPartLinks("not a region", []string{"https://pcpartpicker.com/product/9nm323/ryzen"})
	assert.ErrorIs(t, err, ErrInvalidRegion)
}
