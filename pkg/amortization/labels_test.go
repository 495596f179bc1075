package amortization

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		name      string
		labels    LabelSet
		frequency Frequency
		index     int
		expected  string
	}{
		{"Annual first", EnglishLabels, Annual, 1, "Year 1"},
		{"Annual tenth", EnglishLabels, Annual, 10, "Year 10"},
		{"Monthly first", EnglishLabels, Monthly, 1, "Year 1 - Month 1"},
		{"Monthly end of year", EnglishLabels, Monthly, 12, "Year 1 - Month 12"},
		{"Monthly wraps year", EnglishLabels, Monthly, 13, "Year 2 - Month 1"},
		{"Quarterly fourth", EnglishLabels, Quarterly, 4, "Year 1 - Quarter 4"},
		{"Quarterly seventh", EnglishLabels, Quarterly, 7, "Year 2 - Quarter 3"},
		{"Semiannual second", EnglishLabels, Semiannual, 2, "Year 1 - Half-year 2"},
		{"Semiannual fifth", EnglishLabels, Semiannual, 5, "Year 3 - Half-year 1"},
		{"French annual", FrenchLabels, Annual, 3, "Année 3"},
		{"French monthly", FrenchLabels, Monthly, 14, "Année 2 - Mois 2"},
		{"French quarterly", FrenchLabels, Quarterly, 5, "Année 2 - Trim. 1"},
		{"French semiannual", FrenchLabels, Semiannual, 4, "Année 2 - Sem. 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.labels.Label(tt.frequency, tt.index); got != tt.expected {
				t.Errorf("Label(%s, %d) = %q, expected %q", tt.frequency, tt.index, got, tt.expected)
			}
		})
	}
}

func TestRelabel(t *testing.T) {
	result, err := ComputeSchedule(LoanRequest{Principal: 1200, AnnualRate: 0.05, DurationYears: 1, Frequency: Quarterly})
	if err != nil {
		t.Fatalf("ComputeSchedule() error = %v", err)
	}

	french := Relabel(result, FrenchLabels)
	if french == result {
		t.Fatal("Relabel returned the same pointer")
	}
	if got := french.Periods[1].Label; got != "Année 1 - Trim. 2" {
		t.Errorf("relabeled period = %q, expected %q", got, "Année 1 - Trim. 2")
	}
	if got := result.Periods[1].Label; got != "Year 1 - Quarter 2" {
		t.Errorf("original label changed to %q", got)
	}
	for i := range result.Periods {
		if french.Periods[i].Installment != result.Periods[i].Installment ||
			french.Periods[i].RemainingBalance != result.Periods[i].RemainingBalance {
			t.Fatalf("numeric fields changed at period %d", i+1)
		}
	}
	if french.Summary != result.Summary {
		t.Errorf("summary changed by relabeling")
	}

	if Relabel(nil, FrenchLabels) != nil {
		t.Error("Relabel(nil) should return nil")
	}
}
