package metrics

import (
	"context"
	"fmt"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Recorder holds the instruments updated by the server.
type Recorder struct {
	schedules          metric.Int64Counter
	periods            metric.Int64Counter
	validationFailures metric.Int64Counter
	cacheHits          metric.Int64Counter
}

// NewRecorder creates the instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	schedules, err := meter.Int64Counter("amortization.schedules",
		metric.WithDescription("Schedules computed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create schedules counter: %w", err)
	}
	periods, err := meter.Int64Counter("amortization.periods",
		metric.WithDescription("Periods generated across all schedules"))
	if err != nil {
		return nil, fmt.Errorf("failed to create periods counter: %w", err)
	}
	validationFailures, err := meter.Int64Counter("amortization.validation_failures",
		metric.WithDescription("Requests rejected as invalid input"))
	if err != nil {
		return nil, fmt.Errorf("failed to create validation failures counter: %w", err)
	}
	cacheHits, err := meter.Int64Counter("amortization.cache_hits",
		metric.WithDescription("Schedules served from cache"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache hits counter: %w", err)
	}

	return &Recorder{
		schedules:          schedules,
		periods:            periods,
		validationFailures: validationFailures,
		cacheHits:          cacheHits,
	}, nil
}

// NopRecorder returns a Recorder whose instruments discard everything.
func NopRecorder() *Recorder {
	r, _ := NewRecorder(noop.NewMeterProvider().Meter(MeterName))
	return r
}

// ScheduleComputed counts one computed schedule and its periods.
func (r *Recorder) ScheduleComputed(ctx context.Context, req amortization.LoanRequest, periodCount int) {
	attrs := metric.WithAttributes(
		attribute.String("frequency", req.Frequency.String()),
		attribute.String("policy", req.Policy()),
	)
	r.schedules.Add(ctx, 1, attrs)
	r.periods.Add(ctx, int64(periodCount), attrs)
}

// ValidationFailed counts a rejected request by offending field.
func (r *Recorder) ValidationFailed(ctx context.Context, field string) {
	r.validationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("field", field)))
}

// CacheHit counts a schedule served from cache.
func (r *Recorder) CacheHit(ctx context.Context) {
	r.cacheHits.Add(ctx, 1)
}
