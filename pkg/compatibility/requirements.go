package compatibility

import (
	"strings"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/resolver"
)

// Satisfies reports whether c meets every constraint set in req. The meaning of a constraint depends on the
// component's category: a socket requirement on a cooler means "supports this socket", on a CPU or board
// it means "uses this socket". A constraint whose attribute cannot be resolved is not satisfied.
func Satisfies(c *models.Component, req models.Requirements) bool {
	if c == nil {
		return false
	}
	if req.MinPrice > 0 && c.Price < req.MinPrice {
		return false
	}
	if req.MaxPrice > 0 && c.Price > req.MaxPrice {
		return false
	}

	for _, ok := range []func() bool{
		func() bool { return req.Socket == "" || socketMatches(c, req.Socket) },
		func() bool { return req.Brand == "" || BrandOf(c) == strings.ToLower(req.Brand) },
		func() bool { return req.RAMType == "" || RAMGeneration(c) == ramGeneration(req.RAMType) },
		func() bool { return req.FormFactor == "" || formFactorMatches(c, req.FormFactor) },
		func() bool { return req.Interface == "" || interfaceMatches(c, req.Interface) },
		func() bool {
			return req.PSUSupport == "" || utils.ContainsFold(resolver.Text(c, resolver.PSUSupport), req.PSUSupport)
		},
		func() bool { return req.MinWattage == 0 || atLeast(c, resolver.Wattage, float64(req.MinWattage)) },
		func() bool { return req.MaxTDP == 0 || atMost(c, resolver.TDP, float64(req.MaxTDP)) },
		func() bool {
			if req.MinSlots == 0 {
				return true
			}
			slots, _ := SlotCount(c)
			return slots >= req.MinSlots
		},
		func() bool {
			if req.MaxModules == 0 {
				return true
			}
			modules, _ := ModuleCount(c)
			return modules <= req.MaxModules
		},
		func() bool {
			if req.MaxSpeed == 0 {
				return true
			}
			speed, ok := MemorySpeed(c, resolver.Speed)
			return ok && speed <= req.MaxSpeed
		},
		func() bool {
			if req.MinMemorySpeed == 0 {
				return true
			}
			speed, ok := MemorySpeed(c, resolver.MaxMemorySpeed)
			return ok && speed >= req.MinMemorySpeed
		},
		func() bool { return req.MaxLength == 0 || atMost(c, resolver.Length, req.MaxLength) },
		func() bool { return req.MinGPULength == 0 || atLeast(c, resolver.MaxGPULength, req.MinGPULength) },
		func() bool { return req.MaxHeight == 0 || atMost(c, resolver.Height, req.MaxHeight) },
		func() bool { return req.MinCoolerHeight == 0 || atLeast(c, resolver.MaxCoolerHeight, req.MinCoolerHeight) },
	} {
		if !ok() {
			return false
		}
	}
	return true
}

func socketMatches(c *models.Component, socket string) bool {
	want := resolver.MatchVocabulary(socket, resolver.SocketVocabulary)
	if want == "" {
		want = utils.NormalizeToken(socket)
	}
	if c.Category == models.CategoryCooler {
		return SupportsSocket(resolver.Text(c, resolver.SupportedSockets), want)
	}
	return resolver.Text(c, resolver.Socket) == want
}

// formFactorMatches: a case must list ff; a PSU's form factor must appear in ff, which is the case's PSU
// support text, the same way the PSU form factor check reads it; a board's form factor must be one of the
// entries of ff.
func formFactorMatches(c *models.Component, ff string) bool {
	switch c.Category {
	case models.CategoryCase:
		return FormFactorIn(ff, resolver.Text(c, resolver.SupportedFormFactors))
	case models.CategoryPSU:
		own := resolver.Text(c, resolver.FormFactor)
		return own != "" && utils.ContainsFold(ff, own)
	}
	return FormFactorIn(resolver.Text(c, resolver.FormFactor), ff)
}

// interfaceMatches: a board must support iface; a drive's interface must appear in iface, which is the
// board's storage support string.
func interfaceMatches(c *models.Component, iface string) bool {
	if c.Category == models.CategoryMotherboard {
		return utils.ContainsFold(resolver.Text(c, resolver.StorageSupport), iface)
	}
	own := resolver.Text(c, resolver.Interface)
	return own != "" && utils.ContainsFold(iface, own)
}

func atLeast(c *models.Component, attr resolver.Attribute, bound float64) bool {
	v, ok := resolver.Number(c, attr)
	return ok && v >= bound
}

func atMost(c *models.Component, attr resolver.Attribute, bound float64) bool {
	v, ok := resolver.Number(c, attr)
	return ok && v <= bound
}
