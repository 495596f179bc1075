package amortization

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every validation failure returned by the engine.
var ErrInvalidInput = errors.New("invalid input")

// Request fields reported by InvalidInputError.
const (
	FieldFrequency     = "frequency"
	FieldDurationYears = "durationYears"
	FieldPrincipal     = "principal"
	FieldAnnualRate    = "annualRate"
)

// InvalidInputError identifies the request field and the constraint it violated.
type InvalidInputError struct {
	Field      string
	Constraint string
	Value      interface{}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s must be %s, got %v", e.Field, e.Constraint, e.Value)
}

// Is lets errors.Is(err, ErrInvalidInput) match any InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, constraint string, value interface{}) error {
	return &InvalidInputError{Field: field, Constraint: constraint, Value: value}
}
