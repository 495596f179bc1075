// Package format renders amounts as locale-specific currency text.
package format

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale describes how amounts are written for one language.
type Locale struct {
	Tag     language.Tag
	Pattern string // go-humanize FormatFloat pattern
	Prefix  string
	Suffix  string
}

var locales = []Locale{
	{Tag: language.AmericanEnglish, Pattern: "#,###.##", Prefix: "$"},
	{Tag: language.French, Pattern: "# ###,##", Suffix: " €"},
}

var matcher = language.NewMatcher(tags())

func tags() []language.Tag {
	out := make([]language.Tag, len(locales))
	for i, l := range locales {
		out[i] = l.Tag
	}
	return out
}

// ResolveLocale returns the supported locale closest to the given BCP 47
// tag. Unparseable or unsupported tags resolve to American English.
func ResolveLocale(tag string) Locale {
	parsed, err := language.Parse(tag)
	if err != nil {
		return locales[0]
	}
	_, idx, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return locales[0]
	}
	return locales[idx]
}

// Currency returns amount as currency text for the locale, e.g. "-$1,234.56"
// or "1 234,56 €".
func Currency(amount float64, locale string) string {
	return ResolveLocale(locale).Currency(amount)
}

// Currency formats amount with the locale's separators and symbol.
func (l Locale) Currency(amount float64) string {
	rounded := mathutil.Round(amount)
	formatted := humanize.FormatFloat(l.Pattern, math.Abs(rounded))
	if rounded < 0 {
		return "-" + l.Prefix + formatted + l.Suffix
	}
	return l.Prefix + formatted + l.Suffix
}

// Printer returns a message printer for the locale.
func (l Locale) Printer() *message.Printer {
	return message.NewPrinter(l.Tag)
}
