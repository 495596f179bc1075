// Package amortization computes loan amortization schedules for constant
// principal and constant installment (annuity) repayment policies.
package amortization

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"go.uber.org/zap"
)

// MaxDurationYears bounds the loan term, and with it the size of a schedule.
const MaxDurationYears = 100

// Repayment policy names.
const (
	PolicyConstantPrincipal   = "constant-principal"
	PolicyConstantInstallment = "constant-installment"
)

// LoanRequest holds the inputs of a schedule computation. AnnualRate is a
// decimal fraction, e.g. 0.045 for 4.5%.
type LoanRequest struct {
	Principal            float64   `json:"principal"`
	AnnualRate           float64   `json:"annualRate"`
	DurationYears        int       `json:"durationYears"`
	Frequency            Frequency `json:"frequency"`
	ConstantAmortization bool      `json:"constantAmortization"`
}

// Policy returns the name of the repayment policy selected by the request.
func (r LoanRequest) Policy() string {
	if r.ConstantAmortization {
		return PolicyConstantPrincipal
	}
	return PolicyConstantInstallment
}

// PeriodRecord holds the values for a given period.
type PeriodRecord struct {
	Index            int     `json:"index"`
	Label            string  `json:"label"`
	Installment      float64 `json:"installment"`
	Interest         float64 `json:"interest"`
	PrincipalRepaid  float64 `json:"principalRepaid"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// ScheduleSummary aggregates a schedule.
type ScheduleSummary struct {
	TotalCost            float64 `json:"totalCost"`
	TotalInterest        float64 `json:"totalInterest"`
	TotalPrincipalRepaid float64 `json:"totalPrincipalRepaid"`
	PrincipalBorrowed    float64 `json:"principalBorrowed"`
	AverageInstallment   float64 `json:"averageInstallment"`
	PeriodRate           float64 `json:"periodRate"`
	PeriodCount          int     `json:"periodCount"`
}

// AmortizationResult is a complete schedule in chronological order.
type AmortizationResult struct {
	Request LoanRequest     `json:"request"`
	Periods []PeriodRecord  `json:"periods"`
	Summary ScheduleSummary `json:"summary"`
}

// Validate checks the request fields in a fixed order and returns the first
// violation as an *InvalidInputError.
func (r LoanRequest) Validate() error {
	if !r.Frequency.Valid() {
		return invalid(FieldFrequency, "one of monthly, quarterly, semiannual, annual", string(r.Frequency))
	}
	if r.DurationYears <= 0 {
		return invalid(FieldDurationYears, "> 0", r.DurationYears)
	}
	if r.DurationYears > MaxDurationYears {
		return invalid(FieldDurationYears, fmt.Sprintf("<= %d", MaxDurationYears), r.DurationYears)
	}
	// Negated comparisons so that NaN fails too.
	if !(r.Principal > 0) {
		return invalid(FieldPrincipal, "> 0", r.Principal)
	}
	if math.IsInf(r.Principal, 1) {
		return invalid(FieldPrincipal, "finite", r.Principal)
	}
	if !(r.AnnualRate > 0) {
		return invalid(FieldAnnualRate, "> 0", r.AnnualRate)
	}
	if !(r.AnnualRate < 1) {
		return invalid(FieldAnnualRate, "< 1", r.AnnualRate)
	}
	return nil
}

// PeriodRate converts an annual rate into the effective rate of one period.
// Sub-annual rates compound back to the annual rate: (1+r)^(1/n) - 1,
// evaluated with Log1p/Expm1 so tiny rates do not cancel to zero.
func PeriodRate(annualRate float64, f Frequency) float64 {
	n, ok := f.PeriodsPerYear()
	if !ok || n == 1 {
		return annualRate
	}
	return math.Expm1(math.Log1p(annualRate) / float64(n))
}

// AnnuityInstallment calculates the constant installment repaying principal
// over periodCount periods at periodRate. A zero period rate yields the
// limit of the formula, principal / periodCount.
func AnnuityInstallment(principal, periodRate float64, periodCount int) float64 {
	if periodRate == 0 {
		return principal / float64(periodCount)
	}
	// 1 - (1+r)^-N
	discount := -math.Expm1(-float64(periodCount) * math.Log1p(periodRate))
	if discount == 0 {
		return principal / float64(periodCount)
	}
	return principal * periodRate / discount
}

// ScheduleGenerator computes amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
	labels LabelSet
}

// NewScheduleGenerator creates a new generator instance using English labels.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger, labels: EnglishLabels}
}

// WithLabels returns a generator producing labels from the given set.
func (g *ScheduleGenerator) WithLabels(labels LabelSet) *ScheduleGenerator {
	return &ScheduleGenerator{logger: g.logger, labels: labels}
}

// ComputeSchedule computes a schedule without logging.
func ComputeSchedule(req LoanRequest) (*AmortizationResult, error) {
	return NewScheduleGenerator(nil).Generate(req)
}

// Generate validates req and computes its complete schedule. Nothing is
// computed when validation fails.
func (g *ScheduleGenerator) Generate(req LoanRequest) (*AmortizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, _ := req.Frequency.PeriodsPerYear()
	periodCount := req.DurationYears * n
	periodRate := PeriodRate(req.AnnualRate, req.Frequency)

	var fixedPrincipal, installment float64
	if req.ConstantAmortization {
		fixedPrincipal = req.Principal / float64(periodCount)
	} else {
		installment = AnnuityInstallment(req.Principal, periodRate, periodCount)
	}

	g.logger.Debug(fmt.Sprintf("computing %d %s periods at period rate %.6f", periodCount, req.Frequency, periodRate),
		zap.String("op", "amortization.Generate"),
		zap.String("policy", req.Policy()),
	)

	result := &AmortizationResult{
		Request: req,
		Periods: make([]PeriodRecord, 0, periodCount),
	}
	summary := &result.Summary

	balance := req.Principal
	for i := 1; i <= periodCount; i++ {
		var period PeriodRecord
		period.Index = i
		period.Interest = balance * periodRate
		if req.ConstantAmortization {
			period.PrincipalRepaid = fixedPrincipal
			period.Installment = period.Interest + fixedPrincipal
		} else {
			period.Installment = installment
			period.PrincipalRepaid = installment - period.Interest
		}

		balance -= period.PrincipalRepaid
		if i == periodCount && mathutil.BelowTolerance(balance) {
			if balance != 0 {
				g.logger.Debug(fmt.Sprintf("clearing residual balance %g on final period", balance),
					zap.String("op", "amortization.Generate"),
				)
			}
			// Absorb floating point drift so the schedule ends at zero.
			balance = 0
		}
		period.RemainingBalance = balance
		period.Label = g.labels.Label(req.Frequency, i)

		summary.TotalInterest += period.Interest
		summary.TotalPrincipalRepaid += period.PrincipalRepaid
		summary.TotalCost += period.Installment
		result.Periods = append(result.Periods, period)
	}

	summary.PrincipalBorrowed = req.Principal
	summary.AverageInstallment = summary.TotalCost / float64(periodCount)
	summary.PeriodRate = periodRate
	summary.PeriodCount = periodCount

	return result, nil
}
