package benchmark

import (
	"math"
	"testing"
)

func TestCompare_HigherIsBetter(t *testing.T) {
	entry := Entry{Min: 10, Max: 20, Ideal: 15}

	tests := []struct {
		name  string
		value float64
		want  Status
	}{
		{"above max", 20.01, StatusAbove},
		{"exactly max", 20, StatusWithin},
		{"inside", 15, StatusWithin},
		{"exactly min", 10, StatusWithin},
		{"below min", 9.99, StatusBelow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.value, entry, HigherIsBetter)
			if got.Status != tt.want {
				t.Fatalf("Compare(%v) = %s, want %s", tt.value, got.Status, tt.want)
			}
		})
	}
}

func TestCompare_LowerIsBetter(t *testing.T) {
	entry := Entry{Min: 10, Max: 20, Ideal: 12}

	tests := []struct {
		name  string
		value float64
		want  Status
	}{
		{"under min beats the range", 9.99, StatusAbove},
		{"exactly min", 10, StatusWithin},
		{"exactly max", 20, StatusWithin},
		{"over max", 20.01, StatusBelow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.value, entry, LowerIsBetter)
			if got.Status != tt.want {
				t.Fatalf("Compare(%v) = %s, want %s", tt.value, got.Status, tt.want)
			}
		})
	}
}

func TestCompare_NaNIsUnknown(t *testing.T) {
	got := Compare(math.NaN(), Table[MetricXG], HigherIsBetter)
	if got.Status != StatusUnknown {
		t.Fatalf("NaN must classify Unknown, got %s", got.Status)
	}
	if got.Label != "insufficient data" {
		t.Fatalf("unexpected label %q", got.Label)
	}
}

func allIdeal() map[Metric]float64 {
	values := make(map[Metric]float64, len(Table))
	for metric, entry := range Table {
		values[metric] = entry.Ideal
	}
	return values
}

func TestScore_AllWithinIsZero(t *testing.T) {
	if got := Score(allIdeal()); got != 0 {
		t.Fatalf("Score = %d, want 0", got)
	}
}

func TestScore_AboveAndBelow(t *testing.T) {
	values := allIdeal()
	values[MetricXG] = Table[MetricXG].Max + 1
	values[MetricGoals] = Table[MetricGoals].Max + 1
	values[MetricWinRate] = Table[MetricWinRate].Min - 1

	if got := Score(values); got != 1 {
		t.Fatalf("Score = %d, want 1", got)
	}
}

func TestScore_SkipsMissing(t *testing.T) {
	values := allIdeal()
	values[MetricPossession] = math.NaN()
	values[MetricShots] = Table[MetricShots].Max + 1

	if got := Score(values); got != 1 {
		t.Fatalf("Score = %d, want 1", got)
	}
}

func TestScore_Extremes(t *testing.T) {
	values := make(map[Metric]float64, len(Table))
	for metric, entry := range Table {
		values[metric] = entry.Max + 1
	}
	if got := Score(values); got != 7 {
		t.Fatalf("all-above Score = %d, want 7", got)
	}

	for metric, entry := range Table {
		values[metric] = entry.Min - 1
	}
	if got := Score(values); got != -7 {
		t.Fatalf("all-below Score = %d, want -7", got)
	}
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		score int
		want  Severity
	}{
		{7, SeveritySuccess},
		{3, SeveritySuccess},
		{2, SeverityWarning},
		{0, SeverityWarning},
		{-2, SeverityWarning},
		{-3, SeverityError},
		{-7, SeverityError},
	}

	for _, tt := range tests {
		severity, msg := Diagnose(tt.score)
		if severity != tt.want {
			t.Errorf("Diagnose(%d) = %s, want %s", tt.score, severity, tt.want)
		}
		if msg == "" {
			t.Errorf("Diagnose(%d) returned empty message", tt.score)
		}
	}
}
