// Package benchmark holds the static European-league reference table and
// the comparison/scoring logic that grades a team's aggregates against it.
package benchmark

import (
	"fmt"
	"math"
)

// Metric identifies one tracked reference metric.
type Metric string

const (
	MetricXG              Metric = "xg_per_game"
	MetricGoals           Metric = "goals_per_game"
	MetricShots           Metric = "shots_per_game"
	MetricShotsOnTarget   Metric = "shots_on_target_per_game"
	MetricPossession      Metric = "possession_avg"
	MetricPassesCompleted Metric = "passes_completed_avg"
	MetricWinRate         Metric = "win_rate"
)

// Entry is the accepted range for one metric across the top European
// leagues, plus the ideal point inside it.
type Entry struct {
	Min   float64
	Max   float64
	Ideal float64
}

// Table is the process-wide reference table. Loaded once, never mutated.
var Table = map[Metric]Entry{
	MetricXG:              {Min: 0.80, Max: 2.20, Ideal: 1.23},
	MetricGoals:           {Min: 0.80, Max: 2.35, Ideal: 1.40},
	MetricShots:           {Min: 8.0, Max: 17.50, Ideal: 13.0},
	MetricShotsOnTarget:   {Min: 3.0, Max: 6.50, Ideal: 4.8},
	MetricPossession:      {Min: 35.0, Max: 58.0, Ideal: 54.0},
	MetricPassesCompleted: {Min: 300, Max: 570, Ideal: 430},
	MetricWinRate:         {Min: 20.0, Max: 60.0, Ideal: 55.0},
}

// Direction states which side of the interval is the good side.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Status classifies a value against a reference interval.
type Status int

const (
	StatusUnknown Status = iota
	StatusAbove
	StatusWithin
	StatusBelow
)

func (s Status) String() string {
	switch s {
	case StatusAbove:
		return "above"
	case StatusWithin:
		return "within"
	case StatusBelow:
		return "below"
	default:
		return "unknown"
	}
}

// Result is a classified comparison, ready for presentation.
type Result struct {
	Status   Status
	Label    string
	Color    string
	Interval string
}

// Compare classifies value against the entry's interval. Values exactly at
// either bound classify as Within. NaN values (empty aggregation sets)
// classify as Unknown rather than zero.
func Compare(value float64, entry Entry, dir Direction) Result {
	if math.IsNaN(value) {
		return Result{Status: StatusUnknown, Label: "insufficient data", Color: "gray"}
	}

	interval := fmt.Sprintf("%.2f - %.2f", entry.Min, entry.Max)

	if dir == HigherIsBetter {
		switch {
		case value > entry.Max:
			return Result{StatusAbove, "above the European standard", "green", interval}
		case value >= entry.Min:
			return Result{StatusWithin, "within the European standard", "orange", interval}
		default:
			return Result{StatusBelow, "below the European standard", "red", interval}
		}
	}

	// lower-is-better (defensive metrics): beating the range means
	// staying under its minimum.
	switch {
	case value < entry.Min:
		return Result{StatusAbove, "above the defensive standard", "green", interval}
	case value <= entry.Max:
		return Result{StatusWithin, "within the defensive standard", "orange", interval}
	default:
		return Result{StatusBelow, "below the defensive standard", "red", interval}
	}
}

// Score sums +1/0/-1 over the tracked metrics: +1 above the interval,
// -1 below it, 0 inside. Metrics with no data (NaN) are skipped, so the
// result ranges over [-7, 7] at most.
func Score(values map[Metric]float64) int {
	score := 0
	for metric, value := range values {
		entry, ok := Table[metric]
		if !ok || math.IsNaN(value) {
			continue
		}
		switch {
		case value > entry.Max:
			score++
		case value < entry.Min:
			score--
		}
	}
	return score
}

// Severity grades the overall diagnosis.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnose maps a benchmark score to an overall verdict. The thresholds
// are fixed, not configurable.
func Diagnose(score int) (Severity, string) {
	switch {
	case score >= 3:
		return SeveritySuccess, "The team performs at a competitive European level."
	case score >= -2:
		return SeverityWarning, "The team is within the European standard, but with clear room to grow."
	default:
		return SeverityError, "The team performs below the standard of the main European leagues."
	}
}
