package domain

import (
	"time"
)

type Venue string

const (
	VenueHome Venue = "Home"
	VenueAway Venue = "Away"
)

type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeDraw Outcome = "Draw"
	OutcomeLoss Outcome = "Loss"
)

// TeamStats holds the per-side statistics of a single match.
type TeamStats struct {
	Possession       float64
	Shots            int
	ShotsOnTarget    int
	XG               float64
	ClearCutChances  int
	Corners          int
	PassesTotal      int
	PassesCompleted  int
	CrossesTotal     int
	CrossesCompleted int
	Goals            int
}

// Match is one recorded game from the tracked user's perspective.
// Records are immutable once stored; the outcome is derived at save
// time from the goal counts and never recomputed.
type Match struct {
	ID          int64
	UserID      int64
	Team        string
	Opponent    string
	Venue       Venue
	Competition string
	Season      string
	Date        time.Time
	Round       int
	Us          TeamStats
	Them        TeamStats
	Outcome     Outcome
}

// DeriveOutcome computes the match outcome from the stored goal counts.
func (m Match) DeriveOutcome() Outcome {
	switch {
	case m.Us.Goals > m.Them.Goals:
		return OutcomeWin
	case m.Us.Goals < m.Them.Goals:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Plan         string
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}
