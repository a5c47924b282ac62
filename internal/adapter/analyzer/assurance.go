package analyzer

import (
	"math"

	"wordfreq/internal/domain"
)

// Names of the assurance checks.
const (
	CheckTotalWords      = "Total Word Count"
	CheckUniqueWords     = "Unique Word Count"
	CheckSumPercentages  = "Sum of Percentages"
	CheckNumberOfRanks   = "Number of Ranks"
	CheckTotalFromCounts = "Total from Counts"
)

// DefaultPctTolerance is the allowed drift of the percentage sum.
const DefaultPctTolerance = 0.01

// Checker cross-checks a report against the token stream it came from.
type Checker struct {
	tolerance float64
}

// NewChecker creates a Checker. A non-positive tolerance selects DefaultPctTolerance.
func NewChecker(tolerance float64) *Checker {
	if tolerance <= 0 {
		tolerance = DefaultPctTolerance
	}
	return &Checker{tolerance: tolerance}
}

// Check recomputes totals, percentages and ranks independently of report.
// It never mutates its inputs.
func (c *Checker) Check(report domain.DocumentReport, tokens []string) domain.AssuranceRecord {
	unique := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		unique[tok] = struct{}{}
	}

	sumPct := 0.0
	sumCounts := 0
	for _, row := range report.WordStats {
		sumPct += row.Percentage
		sumCounts += row.Count
	}

	// an empty report has no percentages to sum
	expectedPct := 100.0
	if report.TotalWords == 0 {
		expectedPct = 0
	}

	checks := []domain.AssuranceCheck{
		exact(CheckTotalWords, report.TotalWords, len(tokens)),
		exact(CheckUniqueWords, report.UniqueWords, len(unique)),
		{
			Name:     CheckSumPercentages,
			Expected: expectedPct,
			Actual:   sumPct,
			Passed:   math.Abs(sumPct-expectedPct) <= c.tolerance,
		},
		exact(CheckNumberOfRanks, report.UniqueWords, len(report.WordStats)),
		exact(CheckTotalFromCounts, report.TotalWords, sumCounts),
	}

	all := true
	for _, ch := range checks {
		all = all && ch.Passed
	}
	return domain.AssuranceRecord{Checks: checks, AllPassed: all}
}

func exact(name string, expected, actual int) domain.AssuranceCheck {
	return domain.AssuranceCheck{
		Name:     name,
		Expected: float64(expected),
		Actual:   float64(actual),
		Passed:   expected == actual,
	}
}
