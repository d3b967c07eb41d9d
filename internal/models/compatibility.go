package models

// Check identifiers.
const (
	CheckCPUMotherboard   = "cpu_motherboard"
	CheckRAMMotherboard   = "ram_motherboard"
	CheckRAMSlots         = "ram_slots"
	CheckRAMSpeed         = "ram_speed"
	CheckRAMCPUSpeed      = "ram_cpu_speed"
	CheckStorageInterface = "storage_interface"
	CheckPSUPower         = "psu_power"
	CheckPSUFormFactor    = "psu_form_factor"
	CheckCaseMotherboard  = "case_motherboard"
	CheckGPULength        = "gpu_length"
	CheckCoolerHeight     = "cooler_height"
	CheckCoolerSocket     = "cooler_socket"
)

// CompatibilityCheck is one rule result. A nil Status means the data needed to decide was missing.
type CompatibilityCheck struct {
	ID         string     `json:"id"`
	Status     *bool      `json:"status,omitempty"`
	Detail     string     `json:"detail,omitempty"`
	Critical   bool       `json:"critical"`
	Categories []Category `json:"categories"`
}

// Verdict returns a status pointer for b.
func Verdict(b bool) *bool {
	return &b
}

func (c CompatibilityCheck) Compatible() bool {
	return c.Status != nil && *c.Status
}

func (c CompatibilityCheck) Incompatible() bool {
	return c.Status != nil && !*c.Status
}

func (c CompatibilityCheck) Indeterminate() bool {
	return c.Status == nil
}

// Involves reports whether cat is one of the check's inputs.
func (c CompatibilityCheck) Involves(cat Category) bool {
	for _, in := range c.Categories {
		if in == cat {
			return true
		}
	}
	return false
}

// CompatibilityReport is the full evaluation of a selection.
type CompatibilityReport struct {
	Checks            []CompatibilityCheck `json:"checks"`
	Score             int                  `json:"score"`
	SelectionProgress int                  `json:"selectionProgress"`
	RecommendedWatts  int                  `json:"recommendedWattage"`
}

// Check looks up a result by id.
func (r CompatibilityReport) Check(id string) (CompatibilityCheck, bool) {
	for _, c := range r.Checks {
		if c.ID == id {
			return c, true
		}
	}
	return CompatibilityCheck{}, false
}

// Failing returns the checks with a confirmed incompatibility.
func (r CompatibilityReport) Failing() []CompatibilityCheck {
	var out []CompatibilityCheck
	for _, c := range r.Checks {
		if c.Incompatible() {
			out = append(out, c)
		}
	}
	return out
}

// Requirements is a constraint record used to search for replacement components. Zero values mean
// "unconstrained".
type Requirements struct {
	Socket          string  `json:"socket,omitempty" query:"socket"`
	Brand           string  `json:"brand,omitempty" query:"brand"`
	RAMType         string  `json:"type,omitempty" query:"type"`
	FormFactor      string  `json:"formFactor,omitempty" query:"formFactor"`
	Interface       string  `json:"interface,omitempty" query:"interface"`
	PSUSupport      string  `json:"psuSupport,omitempty" query:"psuSupport"`
	MinWattage      int     `json:"minWattage,omitempty" query:"minWattage"`
	MaxTDP          int     `json:"maxTdp,omitempty" query:"maxTdp"`
	MinSlots        int     `json:"minSlots,omitempty" query:"minSlots"`
	MaxModules      int     `json:"maxModules,omitempty" query:"maxModules"`
	MaxSpeed        int     `json:"maxSpeed,omitempty" query:"maxSpeed"`
	MinMemorySpeed  int     `json:"minMemorySpeed,omitempty" query:"minMemorySpeed"`
	MaxLength       float64 `json:"maxLength,omitempty" query:"maxLength"`
	MinGPULength    float64 `json:"minGpuLength,omitempty" query:"minGpuLength"`
	MaxHeight       float64 `json:"maxHeight,omitempty" query:"maxHeight"`
	MinCoolerHeight float64 `json:"minCoolerHeight,omitempty" query:"minCoolerHeight"`
	MinPrice        float64 `json:"minPrice,omitempty" query:"minPrice"`
	MaxPrice        float64 `json:"maxPrice,omitempty" query:"maxPrice"`
	Limit           int     `json:"limit,omitempty" query:"limit"`
}

// Merge overlays the non-zero constraints of o onto r. Bounds are tightened rather than replaced.
func (r Requirements) Merge(o Requirements) Requirements {
	pickString := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	maxInt := func(a, b int) int {
		if b > a {
			return b
		}
		return a
	}
	minInt := func(a, b int) int {
		if a == 0 || (b != 0 && b < a) {
			return b
		}
		return a
	}
	maxF := func(a, b float64) float64 {
		if b > a {
			return b
		}
		return a
	}
	minF := func(a, b float64) float64 {
		if a == 0 || (b != 0 && b < a) {
			return b
		}
		return a
	}
	return Requirements{
		Socket:          pickString(r.Socket, o.Socket),
		Brand:           pickString(r.Brand, o.Brand),
		RAMType:         pickString(r.RAMType, o.RAMType),
		FormFactor:      pickString(r.FormFactor, o.FormFactor),
		Interface:       pickString(r.Interface, o.Interface),
		PSUSupport:      pickString(r.PSUSupport, o.PSUSupport),
		MinWattage:      maxInt(r.MinWattage, o.MinWattage),
		MaxTDP:          minInt(r.MaxTDP, o.MaxTDP),
		MinSlots:        maxInt(r.MinSlots, o.MinSlots),
		MaxModules:      minInt(r.MaxModules, o.MaxModules),
		MaxSpeed:        minInt(r.MaxSpeed, o.MaxSpeed),
		MinMemorySpeed:  maxInt(r.MinMemorySpeed, o.MinMemorySpeed),
		MaxLength:       minF(r.MaxLength, o.MaxLength),
		MinGPULength:    maxF(r.MinGPULength, o.MinGPULength),
		MaxHeight:       minF(r.MaxHeight, o.MaxHeight),
		MinCoolerHeight: maxF(r.MinCoolerHeight, o.MinCoolerHeight),
		MinPrice:        maxF(r.MinPrice, o.MinPrice),
		MaxPrice:        minF(r.MaxPrice, o.MaxPrice),
		Limit:           maxInt(r.Limit, o.Limit),
	}
}

// Suggestion asks for a replacement in TargetCategory satisfying Requirements.
type Suggestion struct {
	TargetCategory Category     `json:"targetCategory"`
	CheckID        string       `json:"checkId"`
	Message        string       `json:"message"`
	Requirements   Requirements `json:"requirements"`
}
