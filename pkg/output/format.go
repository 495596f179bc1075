// Package output provides utilities for formatting and displaying amortization schedules.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// PrettyFormat writes a human-readable table with locale currency formatting.
func PrettyFormat(w io.Writer, result *amortization.AmortizationResult, locale string) error {
	loc := format.ResolveLocale(locale)
	p := loc.Printer()
	req := result.Request

	if _, err := p.Fprintf(w, "--- Amortization schedule: %s at %.2f%% over %d year(s), %s, %s ---\n",
		loc.Currency(req.Principal), mathutil.FractionToPercent(req.AnnualRate), req.DurationYears,
		req.Frequency, req.Policy()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Period\tInstallment\tInterest\tPrincipal\tRemaining\t\n")
	fmt.Fprintf(tw, "______\t___________\t________\t_________\t_________\t\n")
	for _, period := range result.Periods {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			period.Label,
			loc.Currency(period.Installment),
			loc.Currency(period.Interest),
			loc.Currency(period.PrincipalRepaid),
			loc.Currency(period.RemainingBalance),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary := result.Summary
	_, err := fmt.Fprintf(w, "\nTotal cost:          %s\nTotal interest:      %s\nPrincipal borrowed:  %s\nAverage installment: %s\n",
		loc.Currency(summary.TotalCost),
		loc.Currency(summary.TotalInterest),
		loc.Currency(summary.PrincipalBorrowed),
		loc.Currency(summary.AverageInstallment),
	)
	return err
}

// CsvFormat writes the schedule in comma-separated value format. Amounts are
// rounded half away from zero to cents.
func CsvFormat(w io.Writer, result *amortization.AmortizationResult) error {
	if _, err := fmt.Fprintf(w, `"period","label","installment","interest","principal","remaining balance"`+"\n"); err != nil {
		return err
	}
	for _, period := range result.Periods {
		_, err := fmt.Fprintf(w, `"%d","%s","%s","%s","%s","%s"`+"\n",
			period.Index,
			period.Label,
			cents(period.Installment),
			cents(period.Interest),
			cents(period.PrincipalRepaid),
			cents(period.RemainingBalance),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// CsvString returns the CSV rendering of the schedule.
func CsvString(result *amortization.AmortizationResult) string {
	var buf bytes.Buffer
	_ = CsvFormat(&buf, result)
	return buf.String()
}

type jsonPeriod struct {
	Index            int             `json:"index"`
	Label            string          `json:"label"`
	Installment      decimal.Decimal `json:"installment"`
	Interest         decimal.Decimal `json:"interest"`
	PrincipalRepaid  decimal.Decimal `json:"principalRepaid"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

type jsonSummary struct {
	TotalCost          decimal.Decimal `json:"totalCost"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	PrincipalBorrowed  decimal.Decimal `json:"principalBorrowed"`
	AverageInstallment decimal.Decimal `json:"averageInstallment"`
	PeriodCount        int             `json:"periodCount"`
}

type jsonSchedule struct {
	Request amortization.LoanRequest `json:"request"`
	Periods []jsonPeriod             `json:"periods"`
	Summary jsonSummary              `json:"summary"`
}

// JSONFormat writes the schedule as indented JSON with amounts as decimal
// strings rounded to cents.
func JSONFormat(w io.Writer, result *amortization.AmortizationResult) error {
	out := jsonSchedule{
		Request: result.Request,
		Periods: make([]jsonPeriod, 0, len(result.Periods)),
		Summary: jsonSummary{
			TotalCost:          toCents(result.Summary.TotalCost),
			TotalInterest:      toCents(result.Summary.TotalInterest),
			PrincipalBorrowed:  toCents(result.Summary.PrincipalBorrowed),
			AverageInstallment: toCents(result.Summary.AverageInstallment),
			PeriodCount:        result.Summary.PeriodCount,
		},
	}
	for _, period := range result.Periods {
		out.Periods = append(out.Periods, jsonPeriod{
			Index:            period.Index,
			Label:            period.Label,
			Installment:      toCents(period.Installment),
			Interest:         toCents(period.Interest),
			PrincipalRepaid:  toCents(period.PrincipalRepaid),
			RemainingBalance: toCents(period.RemainingBalance),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toCents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

func cents(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
