// Package stats contains the pure aggregation functions behind the
// dashboard: win rate, accuracy ratios, per-game averages and trailing
// form windows. Every function is a pure transformation over its
// arguments; empty inputs follow the documented 0.0 / NaN conventions.
package stats

import (
	"math"
	"sort"

	"github.com/onzevirtual/fm-analytics/internal/domain"
)

// WinRate returns the points-earned percentage (3-1-0 scoring) over the
// given set, 0.0 for an empty set.
func WinRate(matches []domain.Match) float64 {
	if len(matches) == 0 {
		return 0.0
	}

	points := 0
	for _, m := range matches {
		switch m.Outcome {
		case domain.OutcomeWin:
			points += 3
		case domain.OutcomeDraw:
			points++
		}
	}

	return float64(points) / float64(len(matches)*3) * 100
}

// Results counts wins, draws and losses over the set.
func Results(matches []domain.Match) (wins, draws, losses int) {
	for _, m := range matches {
		switch m.Outcome {
		case domain.OutcomeWin:
			wins++
		case domain.OutcomeDraw:
			draws++
		case domain.OutcomeLoss:
			losses++
		}
	}
	return wins, draws, losses
}

// Accuracy returns completed/total as a percentage, 0.0 when total is zero.
func Accuracy(completed, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(completed) / float64(total) * 100
}

// FinishingEfficiency returns goals/xG as a percentage, 0.0 when xG is zero.
func FinishingEfficiency(goals int, xg float64) float64 {
	if xg == 0 {
		return 0.0
	}
	return float64(goals) / xg * 100
}

// Mean averages f over the set. An empty set yields NaN, which downstream
// consumers must treat as "insufficient data", never as zero.
func Mean(matches []domain.Match, f func(domain.Match) float64) float64 {
	if len(matches) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, m := range matches {
		sum += f(m)
	}
	return sum / float64(len(matches))
}

// Own and Opponent select which side of the record an aggregate reads.
func Own(m domain.Match) domain.TeamStats      { return m.Us }
func Opponent(m domain.Match) domain.TeamStats { return m.Them }

// Averages are the per-game means and accumulated accuracy ratios for one
// side of a match set. Mean fields are NaN when the set is empty; the
// accuracy and efficiency ratios follow the zero-denominator convention.
type Averages struct {
	Games int

	Goals            float64
	XG               float64
	Shots            float64
	ShotsOnTarget    float64
	ClearCutChances  float64
	Corners          float64
	Possession       float64
	PassesTotal      float64
	PassesCompleted  float64
	CrossesTotal     float64
	CrossesCompleted float64

	PassAccuracy        float64
	CrossAccuracy       float64
	ShotAccuracy        float64
	FinishingEfficiency float64
}

// ComputeAverages aggregates one side of the given set. The accuracy
// ratios are computed over summed totals, the same way the dashboard
// reports them, not as means of per-match ratios.
func ComputeAverages(matches []domain.Match, side func(domain.Match) domain.TeamStats) Averages {
	a := Averages{Games: len(matches)}

	a.Goals = Mean(matches, func(m domain.Match) float64 { return float64(side(m).Goals) })
	a.XG = Mean(matches, func(m domain.Match) float64 { return side(m).XG })
	a.Shots = Mean(matches, func(m domain.Match) float64 { return float64(side(m).Shots) })
	a.ShotsOnTarget = Mean(matches, func(m domain.Match) float64 { return float64(side(m).ShotsOnTarget) })
	a.ClearCutChances = Mean(matches, func(m domain.Match) float64 { return float64(side(m).ClearCutChances) })
	a.Corners = Mean(matches, func(m domain.Match) float64 { return float64(side(m).Corners) })
	a.Possession = Mean(matches, func(m domain.Match) float64 { return side(m).Possession })
	a.PassesTotal = Mean(matches, func(m domain.Match) float64 { return float64(side(m).PassesTotal) })
	a.PassesCompleted = Mean(matches, func(m domain.Match) float64 { return float64(side(m).PassesCompleted) })
	a.CrossesTotal = Mean(matches, func(m domain.Match) float64 { return float64(side(m).CrossesTotal) })
	a.CrossesCompleted = Mean(matches, func(m domain.Match) float64 { return float64(side(m).CrossesCompleted) })

	var passesCompleted, passesTotal int
	var crossesCompleted, crossesTotal int
	var shotsOnTarget, shots int
	var goals int
	var xg float64
	for _, m := range matches {
		s := side(m)
		passesCompleted += s.PassesCompleted
		passesTotal += s.PassesTotal
		crossesCompleted += s.CrossesCompleted
		crossesTotal += s.CrossesTotal
		shotsOnTarget += s.ShotsOnTarget
		shots += s.Shots
		goals += s.Goals
		xg += s.XG
	}
	a.PassAccuracy = Accuracy(passesCompleted, passesTotal)
	a.CrossAccuracy = Accuracy(crossesCompleted, crossesTotal)
	a.ShotAccuracy = Accuracy(shotsOnTarget, shots)
	a.FinishingEfficiency = FinishingEfficiency(goals, xg)

	return a
}

// SortByDate returns a copy of the set ordered by match date ascending.
// The sort is stable so same-day matches keep their stored order.
func SortByDate(matches []domain.Match) []domain.Match {
	out := make([]domain.Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// LastN sorts the set by date ascending and returns the trailing n
// matches. Sets smaller than n are returned whole.
func LastN(matches []domain.Match, n int) []domain.Match {
	sorted := SortByDate(matches)
	if len(sorted) <= n {
		return sorted
	}
	return sorted[len(sorted)-n:]
}

// ByVenue filters the set to matches played at the given venue.
func ByVenue(matches []domain.Match, venue domain.Venue) []domain.Match {
	var out []domain.Match
	for _, m := range matches {
		if m.Venue == venue {
			out = append(out, m)
		}
	}
	return out
}

// LastNAtVenue filters to the venue first, then takes the trailing n of
// that subset by date. An away match played between two home matches can
// therefore still appear in a "last n home" window even though it is not
// among the n most recent matches overall; the per-venue windows are
// independent timelines.
func LastNAtVenue(matches []domain.Match, venue domain.Venue, n int) []domain.Match {
	return LastN(ByVenue(matches, venue), n)
}
