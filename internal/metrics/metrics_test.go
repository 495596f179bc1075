package metrics

import (
	"context"
	"testing"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	return sums
}

func TestRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	rec, err := NewRecorder(mp.Meter(MeterName))
	require.NoError(t, err)

	ctx := context.Background()
	req := amortization.LoanRequest{Principal: 1000, AnnualRate: 0.05, DurationYears: 2, Frequency: amortization.Monthly}
	rec.ScheduleComputed(ctx, req, 24)
	rec.ScheduleComputed(ctx, req, 24)
	rec.ValidationFailed(ctx, amortization.FieldPrincipal)
	rec.CacheHit(ctx)

	sums := collectSums(t, reader)
	assert.Equal(t, int64(2), sums["amortization.schedules"])
	assert.Equal(t, int64(48), sums["amortization.periods"])
	assert.Equal(t, int64(1), sums["amortization.validation_failures"])
	assert.Equal(t, int64(1), sums["amortization.cache_hits"])
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		expectErr bool
	}{
		{"Disabled by default", Config{}, false},
		{"Explicit none", Config{Exporter: ExporterNone}, false},
		{"Console exporter", Config{Exporter: ExporterConsole, IntervalSeconds: 1}, false},
		{"Unknown exporter", Config{Exporter: "statsd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg, zap.NewNop())
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			rec, err := NewRecorder(p.Meter())
			require.NoError(t, err)
			rec.CacheHit(context.Background())

			assert.NoError(t, p.Shutdown(context.Background()))
		})
	}
}

func TestNopRecorder(t *testing.T) {
	rec := NopRecorder()
	require.NotNil(t, rec)
	assert.NotPanics(t, func() {
		rec.ScheduleComputed(context.Background(), amortization.LoanRequest{Frequency: amortization.Annual}, 1)
		rec.ValidationFailed(context.Background(), amortization.FieldFrequency)
		rec.CacheHit(context.Background())
	})
}
