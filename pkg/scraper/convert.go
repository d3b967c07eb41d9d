package scraper

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
)

// specKeys maps PCPartPicker spec group titles (lower-cased) to the keys the resolver looks for.
var specKeys = map[string]string{
	"socket":                    "socket",
	"socket / cpu":              "socket",
	"form factor":               "form_factor",
	"memory type":               "ram_type",
	"memory slots":              "ram_slots",
	"memory speed":              "max_memory_speed",
	"chipset":                   "chipset",
	"wattage":                   "wattage",
	"length":                    "length",
	"type":                      "type",
	"speed":                     "speed",
	"modules":                   "modules",
	"capacity":                  "capacity",
	"interface":                 "interface",
	"m.2 slots":                 "storage_support",
	"tdp":                       "tdp",
	"cpu socket":                "socket_support",
	"height":                    "height",
	"maximum video card length": "max_gpu_length",
	"cpu cooler clearance":      "max_cooler_height",
	"motherboard form factor":   "motherboard_support",
	"power supply":              "psu_support",
}

var productIDMatcher = regexp2.MustCompile(`(?<=/product/)[a-zA-Z0-9]{4,8}(?=/|$)`, 0)

// ProductID returns the short PCPartPicker product id embedded in a product URL.
func ProductID(URL string) string {
	ids := utils.Regexp2SearchAllText(productIDMatcher, URL)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// ToComponent converts a scraped product into a catalog component of the given category. The price is the
// cheapest in-stock vendor's and the stock quantity counts in-stock vendors.
func ToComponent(part models.Part, category models.Category) models.Component {
	c := models.Component{
		ID:       ProductID(part.URL),
		Category: category,
		Name:     part.Name,
		Specs:    models.Fields{},
		Attributes: models.Fields{
			"url": part.URL,
		},
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if len(part.Images) > 0 {
		c.Attributes["image"] = part.Images[0]
	}
	if part.Rating.Count > 0 {
		c.Attributes["rating"] = part.Rating.Average
	}

	if best, ok := part.BestVendor(); ok {
		c.Price = best.Price.Amount()
		c.Attributes["vendor"] = best.Name
	}
	for _, v := range part.Vendors {
		if v.InStock {
			c.StockQuantity++
		}
	}

	for _, spec := range part.Specs {
		title := strings.ToLower(strings.TrimSpace(spec.Name))
		value := strings.Join(nonEmpty(spec.Values), ", ")
		if value == "" {
			continue
		}
		if title == "manufacturer" {
			c.Brand = value
			continue
		}
		if key, ok := specKeys[title]; ok {
			c.Specs[key] = value
		}
	}

	// RAM pages only list "Speed: DDR4-3200"; the generation is the part before the dash.
	if category == models.CategoryRAM {
		if _, ok := c.Specs["ram_type"]; !ok {
			if speed, ok := c.Specs["speed"].(string); ok && strings.HasPrefix(strings.ToLower(speed), "ddr") {
				gen, _, _ := strings.Cut(speed, "-")
				c.Specs["ram_type"] = strings.ToUpper(gen)
			}
		}
	}

	if len(c.Specs) == 0 {
		c.Specs = nil
	}
	return c
}

// ImportPart scrapes URL and converts it. The category comes from the page's breadcrumb unless given.
func (scrap *Scraper) ImportPart(URL string, category models.Category) (models.Component, error) {
	part, err := scrap.GetPart(URL)
	if err != nil {
		return models.Component{}, err
	}
	if category == "" {
		category, err = models.ParseCategory(part.Type)
		if err != nil {
			return models.Component{}, err
		}
	}
	return ToComponent(*part, category), nil
}

// ImportPartList scrapes every product of a part list. Parts whose type has no build slot are skipped.
func (scrap *Scraper) ImportPartList(URL string) ([]models.Component, error) {
	list, err := scrap.GetPartList(URL)
	if err != nil {
		return nil, err
	}
	var out []models.Component
	for _, lp := range list.Parts {
		category, err := models.ParseCategory(lp.Type)
		if err != nil || lp.URL == "" {
			continue
		}
		c, err := scrap.ImportPart(lp.URL, category)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
