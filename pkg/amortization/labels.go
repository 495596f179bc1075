package amortization

import "fmt"

// LabelSet holds the words used to build period labels.
type LabelSet struct {
	Year     string
	Month    string
	Quarter  string
	HalfYear string
}

// EnglishLabels is the label set used by the engine.
var EnglishLabels = LabelSet{
	Year:     "Year",
	Month:    "Month",
	Quarter:  "Quarter",
	HalfYear: "Half-year",
}

// FrenchLabels abbreviates quarter and half-year the way French loan tables do.
var FrenchLabels = LabelSet{
	Year:     "Année",
	Month:    "Mois",
	Quarter:  "Trim.",
	HalfYear: "Sem.",
}

// Label returns the label of the 1-based period index for the frequency.
// Annual periods are "Year i"; other frequencies are "Year y - Sub p".
func (ls LabelSet) Label(f Frequency, index int) string {
	n, ok := f.PeriodsPerYear()
	if !ok || n == 1 {
		return fmt.Sprintf("%s %d", ls.Year, index)
	}
	year := (index-1)/n + 1
	position := (index-1)%n + 1
	return fmt.Sprintf("%s %d - %s %d", ls.Year, year, ls.sub(f), position)
}

func (ls LabelSet) sub(f Frequency) string {
	switch f {
	case Monthly:
		return ls.Month
	case Quarterly:
		return ls.Quarter
	default:
		return ls.HalfYear
	}
}

// Relabel returns a copy of result whose period labels come from labels.
// Numeric fields are untouched.
func Relabel(result *AmortizationResult, labels LabelSet) *AmortizationResult {
	if result == nil {
		return nil
	}
	relabeled := *result
	relabeled.Periods = make([]PeriodRecord, len(result.Periods))
	for i, period := range result.Periods {
		period.Label = labels.Label(result.Request.Frequency, period.Index)
		relabeled.Periods[i] = period
	}
	return &relabeled
}
