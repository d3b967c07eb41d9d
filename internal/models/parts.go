package models

// Records scraped from PCPartPicker before they are turned into catalog Components.

type Vendor struct {
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
	InStock bool   `json:"inStock"`
	Price   Price  `json:"price"`
	URL     string `json:"url,omitempty"`
}

type SearchPart struct {
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
	URL    string `json:"url"`
	Vendor Vendor `json:"vendor"`
}

type RatingStats struct {
	Stars   uint    `json:"stars"`
	Count   uint    `json:"count"`
	Average float64 `json:"average"`
}

type PartSpec struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Part struct {
	Type    string      `json:"type,omitempty"`
	Name    string      `json:"name"`
	Images  []string    `json:"images,omitempty"`
	URL     string      `json:"url"`
	Vendors []Vendor    `json:"vendors,omitempty"`
	Specs   []PartSpec  `json:"specs"`
	Rating  RatingStats `json:"rating"`
}

// BestVendor returns the cheapest in-stock vendor, or false when none has a price.
func (p Part) BestVendor() (Vendor, bool) {
	var best Vendor
	found := false
	for _, v := range p.Vendors {
		if !v.InStock || v.Price.Amount() <= 0 {
			continue
		}
		if !found || v.Price.Amount() < best.Price.Amount() {
			best, found = v, true
		}
	}
	return best, found
}

type ListPart struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
	URL    string `json:"url"`
	Vendor Vendor `json:"vendor"`
}

type CompatibilityInfo struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

type PartList struct {
	URL           string              `json:"url"`
	Parts         []ListPart          `json:"parts"`
	Price         Price               `json:"price"`
	Wattage       string              `json:"wattage"`
	Compatibility []CompatibilityInfo `json:"compatibility"`
}
