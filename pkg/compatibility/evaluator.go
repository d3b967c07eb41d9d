// Package compatibility evaluates a build selection: pairwise rule checks, the PSU power budget, and the
// aggregate score. Every function here is pure and never fails; missing data yields indeterminate checks.
package compatibility

import (
	"fmt"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/internal/utils"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/resolver"
)

type checkBuilder struct {
	id         string
	critical   bool
	categories []models.Category
}

func newCheck(id string, critical bool, categories ...models.Category) checkBuilder {
	return checkBuilder{id: id, critical: critical, categories: categories}
}

func (b checkBuilder) result(status *bool, format string, args ...any) models.CompatibilityCheck {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	return models.CompatibilityCheck{
		ID:         b.id,
		Status:     status,
		Detail:     detail,
		Critical:   b.critical,
		Categories: b.categories,
	}
}

func (b checkBuilder) pass(format string, args ...any) models.CompatibilityCheck {
	return b.result(models.Verdict(true), format, args...)
}

func (b checkBuilder) fail(format string, args ...any) models.CompatibilityCheck {
	return b.result(models.Verdict(false), format, args...)
}

func (b checkBuilder) unknown(format string, args ...any) models.CompatibilityCheck {
	return b.result(nil, format, args...)
}

// missing names the sides of a pair that did not resolve.
func missing(leftName string, leftOK bool, rightName string, rightOK bool) string {
	switch {
	case !leftOK && !rightOK:
		return leftName + " and " + rightName
	case !leftOK:
		return leftName
	default:
		return rightName
	}
}

// Evaluate runs every check whose inputs are selected, in a fixed order.
func Evaluate(sel models.BuildSelection) []models.CompatibilityCheck {
	cpu := sel.Get(models.CategoryCPU)
	mb := sel.Get(models.CategoryMotherboard)
	gpu := sel.Get(models.CategoryGPU)
	ram := sel.Get(models.CategoryRAM)
	storage := sel.Get(models.CategoryStorage)
	psu := sel.Get(models.CategoryPSU)
	pcCase := sel.Get(models.CategoryCase)
	cooler := sel.Get(models.CategoryCooler)

	var checks []models.CompatibilityCheck
	add := func(c models.CompatibilityCheck, ok bool) {
		if ok {
			checks = append(checks, c)
		}
	}

	if cpu != nil && mb != nil {
		add(CheckCPUMotherboard(cpu, mb), true)
	}
	if ram != nil && mb != nil {
		add(CheckRAMMotherboard(ram, mb), true)
		add(CheckRAMSlots(ram, mb), true)
		add(CheckRAMSpeed(ram, mb))
	}
	if ram != nil && cpu != nil {
		add(CheckRAMCPUSpeed(ram, cpu))
	}
	if storage != nil && mb != nil {
		add(CheckStorageInterface(storage, mb), true)
	}
	if psu != nil && (cpu != nil || gpu != nil) {
		add(CheckPSUPower(psu, cpu, gpu), true)
	}
	if psu != nil && pcCase != nil {
		add(CheckPSUFormFactor(psu, pcCase), true)
	}
	if pcCase != nil && mb != nil {
		add(CheckCaseMotherboard(pcCase, mb), true)
	}
	if gpu != nil && pcCase != nil {
		add(CheckGPULength(gpu, pcCase), true)
	}
	if cooler != nil && pcCase != nil {
		add(CheckCoolerHeight(cooler, pcCase), true)
	}
	if cooler != nil && cpu != nil {
		add(CheckCoolerSocket(cooler, cpu), true)
	}
	return checks
}

// CheckCPUMotherboard compares platform vendor and socket. A vendor mismatch is always incompatible.
func CheckCPUMotherboard(cpu, mb *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckCPUMotherboard, true, models.CategoryCPU, models.CategoryMotherboard)

	cpuBrand, mbBrand := BrandOf(cpu), BrandOf(mb)
	if cpuBrand != "" && mbBrand != "" && cpuBrand != mbBrand {
		return b.fail("%s CPU cannot be used on %s motherboard", DisplayToken(cpuBrand), DisplayToken(mbBrand))
	}

	cpuSocket := resolver.Text(cpu, resolver.Socket)
	mbSocket := resolver.Text(mb, resolver.Socket)
	if cpuSocket == "" || mbSocket == "" {
		return b.unknown("Cannot verify CPU/motherboard socket: %s socket unknown",
			missing("CPU", cpuSocket != "", "motherboard", mbSocket != ""))
	}
	if cpuSocket != mbSocket {
		return b.fail("CPU socket %s does not match motherboard socket %s", DisplayToken(cpuSocket), DisplayToken(mbSocket))
	}
	if caveat := ChipsetAdvisory(cpu, mb); caveat != "" {
		return b.pass("Socket %s matches, but %s", DisplayToken(cpuSocket), caveat)
	}
	return b.pass("Socket %s matches", DisplayToken(cpuSocket))
}

// CheckRAMMotherboard compares memory generations.
func CheckRAMMotherboard(ram, mb *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckRAMMotherboard, true, models.CategoryRAM, models.CategoryMotherboard)

	ramType, mbType := RAMGeneration(ram), RAMGeneration(mb)
	if ramType == "" || mbType == "" {
		return b.unknown("Cannot verify RAM type: %s memory type unknown",
			missing("RAM", ramType != "", "motherboard", mbType != ""))
	}
	if ramType != mbType {
		return b.fail("%s RAM does not fit a %s motherboard", DisplayToken(ramType), DisplayToken(mbType))
	}
	return b.pass("%s RAM matches motherboard", DisplayToken(ramType))
}

// CheckRAMSlots compares the kit's module count with the board's DIMM slots, assuming one module and two
// slots when either is unknown.
func CheckRAMSlots(ram, mb *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckRAMSlots, true, models.CategoryRAM, models.CategoryMotherboard)

	modules, modulesKnown := ModuleCount(ram)
	slots, slotsKnown := SlotCount(mb)
	var note string
	switch {
	case !modulesKnown && !slotsKnown:
		note = " (module and slot counts assumed)"
	case !modulesKnown:
		note = " (module count assumed)"
	case !slotsKnown:
		note = " (slot count assumed)"
	}
	if modules > slots {
		return b.fail("RAM kit has %d modules but motherboard has %d slots%s", modules, slots, note)
	}
	return b.pass("%d of %d RAM slots used%s", modules, slots, note)
}

// CheckRAMSpeed is advisory: faster RAM still works but runs at the board's limit. The check is omitted when
// neither side states a speed.
func CheckRAMSpeed(ram, mb *models.Component) (models.CompatibilityCheck, bool) {
	return memorySpeedCheck(newCheck(models.CheckRAMSpeed, false, models.CategoryRAM, models.CategoryMotherboard),
		ram, mb, "motherboard")
}

// CheckRAMCPUSpeed is advisory like CheckRAMSpeed, against the CPU memory controller.
func CheckRAMCPUSpeed(ram, cpu *models.Component) (models.CompatibilityCheck, bool) {
	return memorySpeedCheck(newCheck(models.CheckRAMCPUSpeed, false, models.CategoryRAM, models.CategoryCPU),
		ram, cpu, "CPU")
}

func memorySpeedCheck(b checkBuilder, ram, limit *models.Component, limitName string) (models.CompatibilityCheck, bool) {
	speed, speedOK := MemorySpeed(ram, resolver.Speed)
	supported, supportedOK := MemorySpeed(limit, resolver.MaxMemorySpeed)
	switch {
	case !speedOK && !supportedOK:
		return models.CompatibilityCheck{}, false
	case !speedOK || !supportedOK:
		return b.unknown("Cannot verify RAM speed: %s speed unknown", missing("RAM", speedOK, limitName, supportedOK)), true
	case speed > supported:
		return b.fail("RAM rated %d MT/s will run at the %s limit of %d MT/s", speed, limitName, supported), true
	}
	return b.pass("RAM speed %d MT/s is supported by the %s (up to %d MT/s)", speed, limitName, supported), true
}

// CheckStorageInterface requires the drive's interface to appear in the board's storage support string.
func CheckStorageInterface(storage, mb *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckStorageInterface, true, models.CategoryStorage, models.CategoryMotherboard)

	iface := resolver.Text(storage, resolver.Interface)
	support := resolver.Text(mb, resolver.StorageSupport)
	if iface == "" || support == "" {
		return b.unknown("Cannot verify storage interface: %s unknown",
			missing("drive interface", iface != "", "motherboard storage support", support != ""))
	}
	if !utils.ContainsFold(support, iface) {
		return b.fail("Motherboard storage support (%s) does not include %s", support, iface)
	}
	return b.pass("%s is supported by the motherboard", iface)
}

// CheckPSUPower compares PSU wattage with RecommendedWattage.
func CheckPSUPower(psu, cpu, gpu *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckPSUPower, true, models.CategoryPSU, models.CategoryCPU, models.CategoryGPU)

	need := RecommendedWattage(cpu, gpu)
	watts, ok := resolver.Number(psu, resolver.Wattage)
	if !ok {
		return b.unknown("Cannot verify PSU power: PSU wattage unknown (build needs %dW)", need)
	}
	if int(watts) < need {
		return b.fail("PSU provides %dW but the build needs %dW", int(watts), need)
	}
	return b.pass("PSU provides %dW, build needs %dW", int(watts), need)
}

// CheckPSUFormFactor requires the PSU form factor to appear in the case's PSU support string.
func CheckPSUFormFactor(psu, pcCase *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckPSUFormFactor, true, models.CategoryPSU, models.CategoryCase)

	ff := resolver.Text(psu, resolver.FormFactor)
	support := resolver.Text(pcCase, resolver.PSUSupport)
	if ff == "" || support == "" {
		return b.unknown("Cannot verify PSU form factor: %s unknown",
			missing("PSU form factor", ff != "", "case PSU support", support != ""))
	}
	if !utils.ContainsFold(support, ff) {
		return b.fail("Case supports %s power supplies, not %s", support, ff)
	}
	return b.pass("%s PSU fits the case", ff)
}

// CheckCaseMotherboard requires the board form factor to be one of the case's supported form factors.
func CheckCaseMotherboard(pcCase, mb *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckCaseMotherboard, true, models.CategoryCase, models.CategoryMotherboard)

	ff := resolver.Text(mb, resolver.FormFactor)
	support := resolver.Text(pcCase, resolver.SupportedFormFactors)
	if ff == "" || support == "" {
		return b.unknown("Cannot verify case/motherboard fit: %s unknown",
			missing("case form factors", support != "", "motherboard form factor", ff != ""))
	}
	if !FormFactorIn(ff, support) {
		return b.fail("Case supports %s, motherboard is %s", support, ff)
	}
	return b.pass("%s motherboard fits the case", ff)
}

// CheckGPULength compares card length with case clearance in millimetres.
func CheckGPULength(gpu, pcCase *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckGPULength, true, models.CategoryGPU, models.CategoryCase)

	length, lengthOK := resolver.Number(gpu, resolver.Length)
	clearance, clearanceOK := resolver.Number(pcCase, resolver.MaxGPULength)
	if !lengthOK || !clearanceOK {
		return b.unknown("Cannot verify GPU clearance: %s unknown",
			missing("GPU length", lengthOK, "case GPU clearance", clearanceOK))
	}
	if length > clearance {
		return b.fail("GPU is %gmm long but the case fits %gmm", length, clearance)
	}
	return b.pass("GPU (%gmm) fits the case (%gmm)", length, clearance)
}

// CheckCoolerHeight compares cooler height with case clearance. Advisory.
func CheckCoolerHeight(cooler, pcCase *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckCoolerHeight, false, models.CategoryCooler, models.CategoryCase)

	height, heightOK := resolver.Number(cooler, resolver.Height)
	clearance, clearanceOK := resolver.Number(pcCase, resolver.MaxCoolerHeight)
	if !heightOK || !clearanceOK {
		return b.unknown("Cannot verify cooler clearance: %s unknown",
			missing("cooler height", heightOK, "case cooler clearance", clearanceOK))
	}
	if height > clearance {
		return b.fail("Cooler is %gmm tall but the case fits %gmm", height, clearance)
	}
	return b.pass("Cooler (%gmm) fits the case (%gmm)", height, clearance)
}

// CheckCoolerSocket requires the cooler to list the CPU's socket.
func CheckCoolerSocket(cooler, cpu *models.Component) models.CompatibilityCheck {
	b := newCheck(models.CheckCoolerSocket, true, models.CategoryCooler, models.CategoryCPU)

	socket := resolver.Text(cpu, resolver.Socket)
	support := resolver.Text(cooler, resolver.SupportedSockets)
	if socket == "" || support == "" {
		return b.unknown("Cannot verify cooler mounting: %s unknown",
			missing("CPU socket", socket != "", "cooler socket support", support != ""))
	}
	if !SupportsSocket(support, socket) {
		return b.fail("Cooler supports %s but the CPU uses %s", support, DisplayToken(socket))
	}
	return b.pass("Cooler supports %s", DisplayToken(socket))
}
