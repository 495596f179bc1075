// Package cache memoizes computed amortization schedules. Schedules are a
// pure function of the request, so entries never need invalidation.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"go.uber.org/zap"
)

// Backend names accepted in configuration.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Cache stores schedules by request key.
type Cache interface {
	Get(ctx context.Context, key string) (*amortization.AmortizationResult, bool)
	Set(ctx context.Context, key string, result *amortization.AmortizationResult) error
}

// Config selects and sizes the cache backend.
type Config struct {
	Backend      string        `yaml:"backend"`
	Size         int           `yaml:"size"`
	RedisAddress string        `yaml:"redisAddress"`
	TTL          time.Duration `yaml:"ttl"`
}

// New builds the cache described by cfg.
func New(cfg Config, logger *zap.Logger) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return Nop{}, nil
	case BackendMemory:
		return NewMemory(cfg.Size)
	case BackendRedis:
		if cfg.RedisAddress == "" {
			return nil, fmt.Errorf("redis cache requires redisAddress")
		}
		return NewRedis(cfg.RedisAddress, cfg.TTL, logger), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}

// Key returns a deterministic key for the request.
func Key(req amortization.LoanRequest) string {
	return fmt.Sprintf("%s|%s|%d|%s|%t",
		strconv.FormatFloat(req.Principal, 'g', -1, 64),
		strconv.FormatFloat(req.AnnualRate, 'g', -1, 64),
		req.DurationYears,
		req.Frequency,
		req.ConstantAmortization,
	)
}

// Nop never stores anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) (*amortization.AmortizationResult, bool) { return nil, false }

// Set discards the result.
func (Nop) Set(context.Context, string, *amortization.AmortizationResult) error { return nil }

// clone copies the period slice so callers own what they receive.
func clone(result *amortization.AmortizationResult) *amortization.AmortizationResult {
	if result == nil {
		return nil
	}
	c := *result
	c.Periods = append([]amortization.PeriodRecord(nil), result.Periods...)
	return &c
}
