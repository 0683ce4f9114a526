package domain

import (
	"errors"
	"testing"
)

// valid returns a match that passes every hard check with room to spare.
func valid() Match {
	return Match{
		Team:     "Sporting",
		Opponent: "Porto",
		Venue:    VenueHome,
		Us: TeamStats{
			Possession:       55,
			Shots:            14,
			ShotsOnTarget:    6,
			XG:               1.8,
			PassesTotal:      480,
			PassesCompleted:  410,
			CrossesTotal:     18,
			CrossesCompleted: 7,
			Goals:            2,
		},
		Them: TeamStats{
			Possession:       45,
			Shots:            9,
			ShotsOnTarget:    3,
			XG:               0.9,
			PassesTotal:      390,
			PassesCompleted:  310,
			CrossesTotal:     12,
			CrossesCompleted: 4,
			Goals:            1,
		},
	}
}

func TestValidate_Accepts(t *testing.T) {
	warning, err := Validate(valid())
	if err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
	if warning != "" {
		t.Fatalf("unexpected warning: %q", warning)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match)
		want   error
	}{
		{
			name:   "missing own team name",
			mutate: func(m *Match) { m.Team = "" },
			want:   ErrTeamNamesRequired,
		},
		{
			name:   "missing opponent name",
			mutate: func(m *Match) { m.Opponent = "" },
			want:   ErrTeamNamesRequired,
		},
		{
			name:   "completed passes above total",
			mutate: func(m *Match) { m.Us.PassesCompleted = m.Us.PassesTotal + 1 },
			want:   ErrPassesExceedTotal,
		},
		{
			name:   "opponent completed passes above total",
			mutate: func(m *Match) { m.Them.PassesCompleted = m.Them.PassesTotal + 1 },
			want:   ErrOpponentPassesExceedTotal,
		},
		{
			name:   "shots on target above shots",
			mutate: func(m *Match) { m.Us.ShotsOnTarget = m.Us.Shots + 1 },
			want:   ErrShotsOnTargetExceedShots,
		},
		{
			name:   "opponent shots on target above shots",
			mutate: func(m *Match) { m.Them.ShotsOnTarget = m.Them.Shots + 1 },
			want:   ErrOpponentShotsOnTargetExceedShots,
		},
		{
			name:   "completed crosses above total",
			mutate: func(m *Match) { m.Us.CrossesCompleted = m.Us.CrossesTotal + 1 },
			want:   ErrCrossesExceedTotal,
		},
		{
			name:   "opponent completed crosses above total",
			mutate: func(m *Match) { m.Them.CrossesCompleted = m.Them.CrossesTotal + 1 },
			want:   ErrOpponentCrossesExceedTotal,
		},
		{
			name:   "goals above shots on target",
			mutate: func(m *Match) { m.Us.Goals = m.Us.ShotsOnTarget + 1 },
			want:   ErrGoalsExceedShotsOnTarget,
		},
		{
			name:   "opponent goals above shots on target",
			mutate: func(m *Match) { m.Them.Goals = m.Them.ShotsOnTarget + 1 },
			want:   ErrOpponentGoalsExceedShotsOnTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(&m)
			_, err := Validate(m)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	m := valid()
	m.Us.PassesCompleted = m.Us.PassesTotal + 1
	m.Us.Goals = m.Us.ShotsOnTarget + 1

	_, err := Validate(m)
	if !errors.Is(err, ErrPassesExceedTotal) {
		t.Fatalf("expected passes rule to fire first, got %v", err)
	}
}

func TestValidate_GoalsEqualShotsOnTargetBoundary(t *testing.T) {
	m := valid()
	m.Us.Goals = m.Us.ShotsOnTarget

	if _, err := Validate(m); err != nil {
		t.Fatalf("goals == shots on target should be accepted, got %v", err)
	}
}

func TestValidate_PossessionAdvisory(t *testing.T) {
	tests := []struct {
		name       string
		us, them   float64
		wantNotice bool
	}{
		{"sums to 100", 55, 45, false},
		{"within tolerance", 58, 45, false},
		{"just inside tolerance", 60, 45, false},
		{"over tolerance", 61, 45, true},
		{"well under", 30, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			m.Us.Possession = tt.us
			m.Them.Possession = tt.them

			warning, err := Validate(m)
			if err != nil {
				t.Fatalf("advisory must never reject: %v", err)
			}
			if got := warning != ""; got != tt.wantNotice {
				t.Fatalf("warning=%q, wantNotice=%v", warning, tt.wantNotice)
			}
		})
	}
}

func TestDeriveOutcome(t *testing.T) {
	tests := []struct {
		us, them int
		want     Outcome
	}{
		{2, 1, OutcomeWin},
		{0, 0, OutcomeDraw},
		{1, 3, OutcomeLoss},
	}

	for _, tt := range tests {
		m := Match{Us: TeamStats{Goals: tt.us}, Them: TeamStats{Goals: tt.them}}
		if got := m.DeriveOutcome(); got != tt.want {
			t.Errorf("DeriveOutcome(%d, %d) = %s, want %s", tt.us, tt.them, got, tt.want)
		}
	}
}
