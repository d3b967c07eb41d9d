package compatibility

import (
	"math"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/resolver"
)

const (
	// DefaultCPUTDP is assumed when the CPU is missing or carries no TDP.
	DefaultCPUTDP = 65
	// DefaultGPUTDP is assumed when the GPU is missing or carries no TDP.
	DefaultGPUTDP = 150
	// PlatformHeadroom covers motherboard, storage and fans.
	PlatformHeadroom = 100
	// SafetyMarginPercent is added on top of the estimated draw.
	SafetyMarginPercent = 20
)

// TDP resolves a component's thermal design power, or def when unavailable.
func TDP(c *models.Component, def float64) float64 {
	if tdp, ok := resolver.Number(c, resolver.TDP); ok && tdp > 0 {
		return tdp
	}
	return def
}

// RecommendedWattage returns the PSU wattage for the pair: (cpu + gpu + headroom) plus the safety margin,
// rounded up to the next 10 W.
func RecommendedWattage(cpu, gpu *models.Component) int {
	return RecommendedWattageFor(TDP(cpu, DefaultCPUTDP), TDP(gpu, DefaultGPUTDP))
}

// RecommendedWattageFor is RecommendedWattage on raw TDP figures.
func RecommendedWattageFor(cpuTDP, gpuTDP float64) int {
	total := cpuTDP + gpuTDP + PlatformHeadroom
	withMargin := total * (100 + SafetyMarginPercent) / 100
	return int(math.Ceil(withMargin/10-1e-9)) * 10
}

// TDPBudget is the largest TDP a replacement part may have so that a PSU of psuWatts still covers the build,
// given the TDP of the part that stays.
func TDPBudget(psuWatts, otherTDP float64) int {
	budget := psuWatts*100/(100+SafetyMarginPercent) - PlatformHeadroom - otherTDP
	if budget < 0 {
		return 0
	}
	return int(math.Floor(budget))
}
