package suggestion

import (
	"fmt"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/compatibility"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/resolver"
)

// fix derives the constraint a replacement for one side of a failing check must meet. ok is false when the
// other side lacks the data to say what would fit.
type fix func(sel models.BuildSelection) (req models.Requirements, message string, ok bool)

var fixes = map[string]map[models.Category]fix{
	models.CheckCPUMotherboard: {
		models.CategoryCPU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			return platformOf(sel.Get(models.CategoryMotherboard), "CPU", "motherboard")
		},
		models.CategoryMotherboard: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			return platformOf(sel.Get(models.CategoryCPU), "motherboard", "CPU")
		},
	},
	models.CheckRAMMotherboard: {
		models.CategoryRAM: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			gen := compatibility.RAMGeneration(sel.Get(models.CategoryMotherboard))
			return models.Requirements{RAMType: compatibility.DisplayToken(gen)},
				fmt.Sprintf("Choose %s memory to match the motherboard", compatibility.DisplayToken(gen)), gen != ""
		},
		models.CategoryMotherboard: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			gen := compatibility.RAMGeneration(sel.Get(models.CategoryRAM))
			return models.Requirements{RAMType: compatibility.DisplayToken(gen)},
				fmt.Sprintf("Choose a motherboard with %s memory slots", compatibility.DisplayToken(gen)), gen != ""
		},
	},
	models.CheckRAMSlots: {
		models.CategoryRAM: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			slots, _ := compatibility.SlotCount(sel.Get(models.CategoryMotherboard))
			return models.Requirements{MaxModules: slots},
				fmt.Sprintf("Choose a memory kit with at most %d modules", slots), true
		},
		models.CategoryMotherboard: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			modules, _ := compatibility.ModuleCount(sel.Get(models.CategoryRAM))
			return models.Requirements{MinSlots: modules},
				fmt.Sprintf("Choose a motherboard with at least %d memory slots", modules), true
		},
	},
	models.CheckRAMSpeed: {
		models.CategoryRAM: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			limit, ok := compatibility.MemorySpeed(sel.Get(models.CategoryMotherboard), resolver.MaxMemorySpeed)
			return models.Requirements{MaxSpeed: limit},
				fmt.Sprintf("Memory rated up to %d MT/s runs at full speed on this motherboard", limit), ok
		},
		models.CategoryMotherboard: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			speed, ok := compatibility.MemorySpeed(sel.Get(models.CategoryRAM), resolver.Speed)
			return models.Requirements{MinMemorySpeed: speed},
				fmt.Sprintf("Choose a motherboard that supports %d MT/s memory", speed), ok
		},
	},
	models.CheckRAMCPUSpeed: {
		models.CategoryRAM: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			limit, ok := compatibility.MemorySpeed(sel.Get(models.CategoryCPU), resolver.MaxMemorySpeed)
			return models.Requirements{MaxSpeed: limit},
				fmt.Sprintf("Memory rated up to %d MT/s runs at full speed on this CPU", limit), ok
		},
		models.CategoryCPU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			speed, ok := compatibility.MemorySpeed(sel.Get(models.CategoryRAM), resolver.Speed)
			return models.Requirements{MinMemorySpeed: speed},
				fmt.Sprintf("Choose a CPU that supports %d MT/s memory", speed), ok
		},
	},
	models.CheckStorageInterface: {
		models.CategoryStorage: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			support := resolver.Text(sel.Get(models.CategoryMotherboard), resolver.StorageSupport)
			return models.Requirements{Interface: support},
				fmt.Sprintf("Choose a drive using an interface the motherboard supports (%s)", support), support != ""
		},
		models.CategoryMotherboard: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			iface := resolver.Text(sel.Get(models.CategoryStorage), resolver.Interface)
			return models.Requirements{Interface: iface},
				fmt.Sprintf("Choose a motherboard with %s storage support", iface), iface != ""
		},
	},
	models.CheckPSUPower: {
		models.CategoryPSU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			need := compatibility.RecommendedWattage(sel.Get(models.CategoryCPU), sel.Get(models.CategoryGPU))
			return models.Requirements{MinWattage: need},
				fmt.Sprintf("Choose a power supply of at least %dW", need), true
		},
		models.CategoryCPU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			return tdpBudget(sel, compatibility.TDP(sel.Get(models.CategoryGPU), compatibility.DefaultGPUTDP), "CPU")
		},
		models.CategoryGPU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			return tdpBudget(sel, compatibility.TDP(sel.Get(models.CategoryCPU), compatibility.DefaultCPUTDP), "GPU")
		},
	},
	models.CheckPSUFormFactor: {
		models.CategoryPSU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			support := resolver.Text(sel.Get(models.CategoryCase), resolver.PSUSupport)
			return models.Requirements{FormFactor: support},
				fmt.Sprintf("Choose a %s power supply to fit the case", support), support != ""
		},
		models.CategoryCase: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			ff := resolver.Text(sel.Get(models.CategoryPSU), resolver.FormFactor)
			return models.Requirements{PSUSupport: ff},
				fmt.Sprintf("Choose a case that takes %s power supplies", ff), ff != ""
		},
	},
	models.CheckCaseMotherboard: {
		models.CategoryCase: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			ff := resolver.Text(sel.Get(models.CategoryMotherboard), resolver.FormFactor)
			return models.Requirements{FormFactor: ff},
				fmt.Sprintf("Choose a case that supports %s motherboards", ff), ff != ""
		},
		models.CategoryMotherboard: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			support := resolver.Text(sel.Get(models.CategoryCase), resolver.SupportedFormFactors)
			return models.Requirements{FormFactor: support},
				fmt.Sprintf("Choose a motherboard in a form factor the case supports (%s)", support), support != ""
		},
	},
	models.CheckGPULength: {
		models.CategoryGPU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			clearance, ok := resolver.Number(sel.Get(models.CategoryCase), resolver.MaxGPULength)
			return models.Requirements{MaxLength: clearance},
				fmt.Sprintf("Choose a graphics card no longer than %gmm", clearance), ok
		},
		models.CategoryCase: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			length, ok := resolver.Number(sel.Get(models.CategoryGPU), resolver.Length)
			return models.Requirements{MinGPULength: length},
				fmt.Sprintf("Choose a case with at least %gmm of GPU clearance", length), ok
		},
	},
	models.CheckCoolerHeight: {
		models.CategoryCooler: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			clearance, ok := resolver.Number(sel.Get(models.CategoryCase), resolver.MaxCoolerHeight)
			return models.Requirements{MaxHeight: clearance},
				fmt.Sprintf("Choose a cooler no taller than %gmm", clearance), ok
		},
		models.CategoryCase: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			height, ok := resolver.Number(sel.Get(models.CategoryCooler), resolver.Height)
			return models.Requirements{MinCoolerHeight: height},
				fmt.Sprintf("Choose a case with at least %gmm of cooler clearance", height), ok
		},
	},
	models.CheckCoolerSocket: {
		models.CategoryCooler: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			socket := resolver.Text(sel.Get(models.CategoryCPU), resolver.Socket)
			return models.Requirements{Socket: compatibility.DisplayToken(socket)},
				fmt.Sprintf("Choose a cooler that mounts on %s", compatibility.DisplayToken(socket)), socket != ""
		},
		models.CategoryCPU: func(sel models.BuildSelection) (models.Requirements, string, bool) {
			support := resolver.Text(sel.Get(models.CategoryCooler), resolver.SupportedSockets)
			socket := resolver.MatchVocabulary(support, resolver.SocketVocabulary)
			return models.Requirements{Socket: compatibility.DisplayToken(socket)},
				fmt.Sprintf("Choose a CPU for a socket the cooler supports (%s)", support), socket != ""
		},
	},
}

// platformOf asks for a part on the same platform as other.
func platformOf(other *models.Component, want, otherName string) (models.Requirements, string, bool) {
	socket := resolver.Text(other, resolver.Socket)
	brand := compatibility.BrandOf(other)
	switch {
	case socket != "":
		return models.Requirements{Socket: compatibility.DisplayToken(socket), Brand: brand},
			fmt.Sprintf("Choose a %s with socket %s to match the %s", want, compatibility.DisplayToken(socket), otherName), true
	case brand != "":
		return models.Requirements{Brand: brand},
			fmt.Sprintf("Choose an %s %s to match the %s", compatibility.DisplayToken(brand), want, otherName), true
	}
	return models.Requirements{}, "", false
}

func tdpBudget(sel models.BuildSelection, otherTDP float64, want string) (models.Requirements, string, bool) {
	watts, ok := resolver.Number(sel.Get(models.CategoryPSU), resolver.Wattage)
	if !ok {
		return models.Requirements{}, "", false
	}
	budget := compatibility.TDPBudget(watts, otherTDP)
	return models.Requirements{MaxTDP: budget},
		fmt.Sprintf("Choose a %s rated at most %dW TDP for the %gW power supply", want, budget, watts), budget > 0
}
