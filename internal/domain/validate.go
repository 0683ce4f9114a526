package domain

import (
	"errors"
	"math"
)

// Validation errors, one per consistency rule. The first failing rule wins,
// so callers always get a single field-identifying message.
var (
	ErrTeamNamesRequired = errors.New("both team names are required")

	ErrPassesExceedTotal         = errors.New("completed passes cannot exceed total passes")
	ErrOpponentPassesExceedTotal = errors.New("opponent completed passes cannot exceed total passes")

	ErrShotsOnTargetExceedShots         = errors.New("shots on target cannot exceed shots attempted")
	ErrOpponentShotsOnTargetExceedShots = errors.New("opponent shots on target cannot exceed shots attempted")

	ErrCrossesExceedTotal         = errors.New("completed crosses cannot exceed total crosses")
	ErrOpponentCrossesExceedTotal = errors.New("opponent completed crosses cannot exceed total crosses")

	ErrGoalsExceedShotsOnTarget         = errors.New("goals cannot exceed shots on target")
	ErrOpponentGoalsExceedShotsOnTarget = errors.New("opponent goals cannot exceed shots on target")
)

// PossessionWarning is returned as an advisory when the possession figures of
// both sides do not add up to roughly 100%. It never blocks acceptance.
const PossessionWarning = "possession figures do not add up to roughly 100%"

// possessionSumTolerance is how far the two possession values may stray from
// summing to 100 before the advisory warning fires.
const possessionSumTolerance = 5.0

type check struct {
	failed func(Match) bool
	err    error
}

// The rules run in a fixed order and short-circuit on the first failure.
var checks = []check{
	{func(m Match) bool { return m.Team == "" || m.Opponent == "" }, ErrTeamNamesRequired},
	{func(m Match) bool { return m.Us.PassesCompleted > m.Us.PassesTotal }, ErrPassesExceedTotal},
	{func(m Match) bool { return m.Them.PassesCompleted > m.Them.PassesTotal }, ErrOpponentPassesExceedTotal},
	{func(m Match) bool { return m.Us.ShotsOnTarget > m.Us.Shots }, ErrShotsOnTargetExceedShots},
	{func(m Match) bool { return m.Them.ShotsOnTarget > m.Them.Shots }, ErrOpponentShotsOnTargetExceedShots},
	{func(m Match) bool { return m.Us.CrossesCompleted > m.Us.CrossesTotal }, ErrCrossesExceedTotal},
	{func(m Match) bool { return m.Them.CrossesCompleted > m.Them.CrossesTotal }, ErrOpponentCrossesExceedTotal},
	{func(m Match) bool { return m.Us.Goals > m.Us.ShotsOnTarget }, ErrGoalsExceedShotsOnTarget},
	{func(m Match) bool { return m.Them.Goals > m.Them.ShotsOnTarget }, ErrOpponentGoalsExceedShotsOnTarget},
}

// IsValidationError reports whether err is (or wraps) one of the
// consistency rule errors, as opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	for _, c := range checks {
		if errors.Is(err, c.err) {
			return true
		}
	}
	return false
}

// Validate runs the cross-field consistency rules over a candidate match.
// A non-nil error rejects the record. The warning string is advisory only:
// the record is accepted but the caller should surface it to the user.
func Validate(m Match) (warning string, err error) {
	for _, c := range checks {
		if c.failed(m) {
			return "", c.err
		}
	}

	if math.Abs(m.Us.Possession+m.Them.Possession-100) > possessionSumTolerance {
		return PossessionWarning, nil
	}

	return "", nil
}
