// Package metrics records schedule computations with OpenTelemetry.
package metrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"
)

// Exporter names accepted in configuration.
const (
	ExporterNone    = "none"
	ExporterConsole = "console"
	ExporterOTLP    = "otlp"
)

// MeterName is the instrumentation scope of every instrument in this package.
const MeterName = "github.com/iwvelando/loan-amortization"

// Config selects the metrics exporter.
type Config struct {
	Exporter        string `yaml:"exporter"`
	Endpoint        string `yaml:"endpoint"`
	IntervalSeconds int    `yaml:"intervalSeconds"`
	ServiceName     string `yaml:"serviceName"`
}

// Provider owns the meter provider and its exporter.
type Provider struct {
	provider metric.MeterProvider
	shutdown func(context.Context) error
}

// NewProvider builds a meter provider for cfg. The "none" exporter yields a
// no-op provider.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var exporter sdkmetric.Exporter
	var err error
	switch cfg.Exporter {
	case "", ExporterNone:
		logger.Debug("metrics export disabled", zap.String("op", "metrics.NewProvider"))
		return &Provider{
			provider: noop.NewMeterProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	case ExporterConsole:
		exporter, err = stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("failed to create console exporter: %w", err)
		}
	case ExporterOTLP:
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		exporter, err = otlpmetricgrpc.New(dialCtx,
			otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown exporter type: %s", cfg.Exporter)
	}

	interval := cfg.IntervalSeconds
	if interval <= 0 {
		interval = constants.DefaultMetricsIntervalSeconds
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "loan-amortization"
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(time.Duration(interval)*time.Second),
		)),
	)
	logger.Info("metrics export enabled",
		zap.String("op", "metrics.NewProvider"),
		zap.String("exporter", cfg.Exporter),
		zap.Int("intervalSeconds", interval),
	)
	return &Provider{provider: mp, shutdown: mp.Shutdown}, nil
}

// Meter returns the meter used by the Recorder.
func (p *Provider) Meter() metric.Meter {
	return p.provider.Meter(MeterName)
}

// Shutdown flushes pending metrics and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}
