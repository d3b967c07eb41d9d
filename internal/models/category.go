package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category names one slot of a build.
type Category string

const (
	CategoryCPU         Category = "CPU"
	CategoryMotherboard Category = "Motherboard"
	CategoryGPU         Category = "GPU"
	CategoryRAM         Category = "RAM"
	CategoryStorage     Category = "Storage"
	CategoryPSU         Category = "PSU"
	CategoryCase        Category = "Case"
	CategoryCooler      Category = "Cooler"
)

var (
	ErrUnknownCategory  = errors.New("unknown component category")
	ErrCategoryMismatch = errors.New("component does not belong to category")
)

// Categories lists every slot in wizard order. The cooler is the only optional slot.
var Categories = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryGPU,
	CategoryRAM,
	CategoryStorage,
	CategoryPSU,
	CategoryCase,
	CategoryCooler,
}

// RequiredCategoryCount is the number of slots a complete build fills.
const RequiredCategoryCount = 7

var categoryAliases = map[string]Category{
	"cpu":            CategoryCPU,
	"processor":      CategoryCPU,
	"motherboard":    CategoryMotherboard,
	"mobo":           CategoryMotherboard,
	"gpu":            CategoryGPU,
	"video card":     CategoryGPU,
	"graphics card":  CategoryGPU,
	"ram":            CategoryRAM,
	"memory":         CategoryRAM,
	"storage":        CategoryStorage,
	"psu":            CategoryPSU,
	"power supply":   CategoryPSU,
	"case":           CategoryCase,
	"chassis":        CategoryCase,
	"cooler":         CategoryCooler,
	"cpu cooler":     CategoryCooler,
	"procie cooler":  CategoryCooler,
	"thermal cooler": CategoryCooler,
}

// ParseCategory maps a free-form category name (including PCPartPicker part types) to a Category.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Valid reports whether c is one of the fixed slots.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Required reports whether c must be filled for a complete build.
func (c Category) Required() bool {
	return c.Valid() && c != CategoryCooler
}
