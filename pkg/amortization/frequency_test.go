package amortization

import "testing"

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		raw      string
		expected Frequency
	}{
		{"monthly", Monthly},
		{"  Monthly ", Monthly},
		{"mensuel", Monthly},
		{"QUARTERLY", Quarterly},
		{"trimestriel", Quarterly},
		{"semiannual", Semiannual},
		{"semi-annual", Semiannual},
		{"semestriel", Semiannual},
		{"annual", Annual},
		{"yearly", Annual},
		{"annuel", Annual},
		{"weekly", Frequency("weekly")},
		{"", Frequency("")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseFrequency(tt.raw); got != tt.expected {
				t.Errorf("ParseFrequency(%q) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestPeriodsPerYear(t *testing.T) {
	expected := map[Frequency]int{Monthly: 12, Quarterly: 4, Semiannual: 2, Annual: 1}
	for _, f := range Frequencies() {
		n, ok := f.PeriodsPerYear()
		if !ok {
			t.Fatalf("%s not recognized", f)
		}
		if n != expected[f] {
			t.Errorf("%s.PeriodsPerYear() = %d, expected %d", f, n, expected[f])
		}
		if !f.Valid() {
			t.Errorf("%s.Valid() = false", f)
		}
	}

	if _, ok := Frequency("biweekly").PeriodsPerYear(); ok {
		t.Error("expected biweekly to be unrecognized")
	}
	if Frequency("mensuel").Valid() {
		t.Error("aliases must be normalized before validation")
	}
}

func TestInvalidInputErrorMessage(t *testing.T) {
	err := &InvalidInputError{Field: FieldAnnualRate, Constraint: "< 1", Value: 1.0}
	expected := "invalid input: annualRate must be < 1, got 1"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
}
