package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
)

// Memory is an in-process LRU cache.
type Memory struct {
	entries *lru.Cache[string, *amortization.AmortizationResult]
}

// NewMemory creates an LRU cache holding up to size schedules.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = constants.DefaultCacheSize
	}
	entries, err := lru.New[string, *amortization.AmortizationResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &Memory{entries: entries}, nil
}

// Get returns a copy of the cached schedule.
func (m *Memory) Get(_ context.Context, key string) (*amortization.AmortizationResult, bool) {
	result, ok := m.entries.Get(key)
	if !ok {
		return nil, false
	}
	return clone(result), true
}

// Set stores a copy of the schedule.
func (m *Memory) Set(_ context.Context, key string, result *amortization.AmortizationResult) error {
	m.entries.Add(key, clone(result))
	return nil
}

// Len returns the number of cached schedules.
func (m *Memory) Len() int {
	return m.entries.Len()
}
