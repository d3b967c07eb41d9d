package compatibility

import (
	"math"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

// ScoredChecks is the fixed subset the score is computed over. Other critical checks are reported but do not
// move the score.
var ScoredChecks = []string{
	models.CheckCPUMotherboard,
	models.CheckRAMMotherboard,
	models.CheckPSUPower,
	models.CheckCaseMotherboard,
}

func scored(id string) bool {
	for _, s := range ScoredChecks {
		if s == id {
			return true
		}
	}
	return false
}

// Score returns 0..100. Each scored check counts as passed unless it ran and confirmed an incompatibility;
// checks that did not run or were indeterminate count as passed. With no required category filled the score
// is 0.
func Score(checks []models.CompatibilityCheck, filledRequired int) int {
	if filledRequired <= 0 {
		return 0
	}
	failed := map[string]bool{}
	for _, c := range checks {
		if scored(c.ID) && c.Incompatible() {
			failed[c.ID] = true
		}
	}
	passed := len(ScoredChecks) - len(failed)
	return passed * 100 / len(ScoredChecks)
}

// Progress is the share of required categories filled, rounded to a whole percent.
func Progress(sel models.BuildSelection) int {
	return int(math.Round(float64(sel.FilledRequired()) * 100 / models.RequiredCategoryCount))
}

// Report evaluates sel and aggregates the result.
func Report(sel models.BuildSelection) models.CompatibilityReport {
	checks := Evaluate(sel)
	if checks == nil {
		checks = []models.CompatibilityCheck{}
	}
	report := models.CompatibilityReport{
		Checks:            checks,
		Score:             Score(checks, sel.FilledRequired()),
		SelectionProgress: Progress(sel),
	}
	cpu, gpu := sel.Get(models.CategoryCPU), sel.Get(models.CategoryGPU)
	if cpu != nil || gpu != nil {
		report.RecommendedWatts = RecommendedWattage(cpu, gpu)
	}
	return report
}
