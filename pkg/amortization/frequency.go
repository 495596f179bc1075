package amortization

import (
	"strings"

	"github.com/iwvelando/loan-amortization/pkg/constants"
)

// Frequency is the repayment frequency of a loan.
type Frequency string

// Supported repayment frequencies.
const (
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
)

var periodsPerYear = map[Frequency]int{
	Monthly:    constants.MonthsPerYear,
	Quarterly:  constants.QuartersPerYear,
	Semiannual: constants.HalfYearsPerYear,
	Annual:     constants.YearsPerYear,
}

// aliases maps accepted spellings, including the French form keys, to a Frequency.
var aliases = map[string]Frequency{
	"monthly":      Monthly,
	"month":        Monthly,
	"mensuel":      Monthly,
	"quarterly":    Quarterly,
	"quarter":      Quarterly,
	"trimestriel":  Quarterly,
	"semiannual":   Semiannual,
	"semi-annual":  Semiannual,
	"semiannually": Semiannual,
	"semestriel":   Semiannual,
	"annual":       Annual,
	"annually":     Annual,
	"yearly":       Annual,
	"annuel":       Annual,
}

// Frequencies returns the supported frequencies from most to least frequent.
func Frequencies() []Frequency {
	return []Frequency{Monthly, Quarterly, Semiannual, Annual}
}

// ParseFrequency normalizes a raw frequency string. Unknown values are
// returned as-is so that validation can report them.
func ParseFrequency(raw string) Frequency {
	key := strings.ToLower(strings.TrimSpace(raw))
	if f, ok := aliases[key]; ok {
		return f
	}
	return Frequency(raw)
}

// PeriodsPerYear returns the number of repayment periods in one year.
func (f Frequency) PeriodsPerYear() (int, bool) {
	n, ok := periodsPerYear[f]
	return n, ok
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := periodsPerYear[f]
	return ok
}

func (f Frequency) String() string {
	return string(f)
}
