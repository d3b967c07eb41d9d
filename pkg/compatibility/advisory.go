package compatibility

import (
	"fmt"
	"strings"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/resolver"
)

// chipsetCaveat flags a board/CPU generation pair that shares a socket but needs firmware support.
type chipsetCaveat struct {
	chipsets []string
	cpu      func(name string) bool
	message  string
}

func ryzenSeries(series ...int) func(string) bool {
	return func(name string) bool {
		got := utils.RyzenSeries(name)
		for _, s := range series {
			if got == s {
				return true
			}
		}
		return false
	}
}

func intelGeneration(gens ...int) func(string) bool {
	return func(name string) bool {
		got := utils.IntelGeneration(name)
		for _, g := range gens {
			if got == g {
				return true
			}
		}
		return false
	}
}

var chipsetCaveats = []chipsetCaveat{
	{
		chipsets: []string{"b450", "x470"},
		cpu:      ryzenSeries(5),
		message:  "%s boards need a BIOS update before they can run Ryzen 5000 series CPUs",
	},
	{
		chipsets: []string{"a320", "b350", "x370"},
		cpu:      ryzenSeries(3, 5),
		message:  "%s boards need a BIOS update for this CPU and support varies by board vendor",
	},
	{
		chipsets: []string{"h610", "b660", "h670", "z690"},
		cpu:      intelGeneration(13, 14),
		message:  "%s boards need a BIOS update before they can run 13th/14th gen Intel CPUs",
	},
}

func chipsetOf(mb *models.Component) string {
	if c := utils.Chipset(resolver.Text(mb, resolver.Chipset)); c != "" {
		return c
	}
	if model, ok := mb.Field("model"); ok {
		if c := utils.Chipset(utils.Text(model)); c != "" {
			return c
		}
	}
	return utils.Chipset(mb.Name)
}

func cpuModelName(cpu *models.Component) string {
	parts := []string{cpu.Name}
	if model, ok := cpu.Field("model"); ok {
		parts = append(parts, utils.Text(model))
	}
	if model, ok := cpu.Spec("model"); ok {
		parts = append(parts, utils.Text(model))
	}
	return strings.Join(parts, " ")
}

// ChipsetAdvisory returns a caveat for a socket-compatible pair whose chipset predates the CPU generation,
// or "" when no known pattern applies.
func ChipsetAdvisory(cpu, mb *models.Component) string {
	chipset := chipsetOf(mb)
	if chipset == "" {
		return ""
	}
	name := cpuModelName(cpu)
	for _, caveat := range chipsetCaveats {
		for _, c := range caveat.chipsets {
			if c == chipset && caveat.cpu(name) {
				return fmt.Sprintf(caveat.message, strings.ToUpper(chipset))
			}
		}
	}
	return ""
}
