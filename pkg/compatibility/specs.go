package compatibility

import (
	"strings"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/resolver"
)

const (
	// DefaultModuleCount is assumed for a memory kit with no module count.
	DefaultModuleCount = 1
	// DefaultSlotCount is assumed for a motherboard with no DIMM slot count.
	DefaultSlotCount = 2
)

var formFactorAliases = map[string]string{
	"matx": "microatx",
	"uatx": "microatx",
	"mitx": "miniitx",
	"itx":  "miniitx",
}

// BrandOf resolves the platform vendor ("amd" or "intel"), inferring it from the socket when no field names
// the vendor.
func BrandOf(c *models.Component) string {
	if b := resolver.Text(c, resolver.Brand); b != "" {
		return b
	}
	switch s := resolver.Text(c, resolver.Socket); {
	case strings.HasPrefix(s, "am"):
		return "amd"
	case strings.HasPrefix(s, "lga"):
		return "intel"
	}
	return ""
}

// RAMGeneration resolves the memory generation as "ddr4"/"ddr5"; "DDR4-3200" and "ddr4" both give "ddr4".
func RAMGeneration(c *models.Component) string {
	return ramGeneration(resolver.Text(c, resolver.RAMType))
}

func ramGeneration(text string) string {
	t := utils.NormalizeToken(text)
	if !strings.HasPrefix(t, "ddr") {
		return ""
	}
	if len(t) > 4 {
		return t[:4]
	}
	return t
}

// MemorySpeed resolves a rated or supported memory speed in MT/s.
func MemorySpeed(c *models.Component, attr resolver.Attribute) (int, bool) {
	v, ok := resolver.Resolve(c, attr)
	if !ok {
		return 0, false
	}
	f, ok := utils.ParseMaxNumber(v.Raw)
	return int(f), ok && f > 0
}

// ModuleCount is the number of sticks in a memory kit.
func ModuleCount(ram *models.Component) (int, bool) {
	v, ok := resolver.Resolve(ram, resolver.Modules)
	if !ok {
		return DefaultModuleCount, false
	}
	if n, ok := utils.ParseModuleCount(v.Raw); ok {
		return n, true
	}
	return DefaultModuleCount, false
}

// SlotCount is the number of DIMM slots on a motherboard.
func SlotCount(mb *models.Component) (int, bool) {
	if n, ok := resolver.Number(mb, resolver.Slots); ok && n >= 1 {
		return int(n), true
	}
	return DefaultSlotCount, false
}

func normalizeFormFactor(s string) string {
	t := utils.NormalizeToken(s)
	if alias, ok := formFactorAliases[t]; ok {
		return alias
	}
	return t
}

// FormFactorIn reports whether formFactor is one of the entries of a delimited support list.
func FormFactorIn(formFactor, supported string) bool {
	want := normalizeFormFactor(formFactor)
	if want == "" {
		return false
	}
	for _, item := range utils.SplitList(supported) {
		if normalizeFormFactor(item) == want {
			return true
		}
	}
	return false
}

// SupportsSocket reports whether a cooler's socket support text includes the socket token.
func SupportsSocket(supported, socket string) bool {
	return socket != "" && strings.Contains(utils.NormalizeToken(supported), socket)
}

// DisplayToken renders a normalized token for messages ("amd" -> "AMD", "am5" -> "AM5").
func DisplayToken(token string) string {
	switch token {
	case "amd":
		return "AMD"
	case "intel":
		return "Intel"
	}
	return strings.ToUpper(token)
}
