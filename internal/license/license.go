package license

import (
	"fmt"
	"time"
)

// UnlimitedDays is the days-remaining sentinel for the Free tier, which
// never expires.
const UnlimitedDays = 999999

// License is a per-session view over a user's stored (plan, expiration)
// pair. It is recomputed whenever it is needed, never persisted, so an
// expiration crossing "now" demotes the user on the next read without any
// background timer.
type License struct {
	Plan      Plan
	ExpiresAt *time.Time
}

func New(plan Plan, expiresAt *time.Time) License {
	return License{Plan: plan, ExpiresAt: expiresAt}
}

func (l License) Config() Config { return l.Plan.Config() }

// IsActive reports whether the license currently grants its plan. Free is
// always active; paid tiers require an expiration set and in the future.
func (l License) IsActive() bool {
	if l.Plan == PlanFree {
		return true
	}
	if l.ExpiresAt == nil {
		return false
	}
	return time.Now().Before(*l.ExpiresAt)
}

// DaysRemaining returns whole days until expiration: the unlimited
// sentinel for Free, zero for unset or past expirations.
func (l License) DaysRemaining() int {
	if l.Plan == PlanFree {
		return UnlimitedDays
	}
	if l.ExpiresAt == nil {
		return 0
	}
	days := int(time.Until(*l.ExpiresAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// CanAddMatch decides whether another match may be stored given the
// user's current count. The refusal message identifies the cause.
func (l License) CanAddMatch(currentCount int) (bool, string) {
	if !l.IsActive() {
		return false, "License expired! Renew to continue."
	}

	limit := l.Config().MatchLimit
	if currentCount >= limit {
		return false, fmt.Sprintf("Limit of %d matches reached! Upgrade to continue.", limit)
	}

	return true, ""
}

// Feature gates. Every gate collapses to false the instant the license
// goes inactive, regardless of the plan's nominal flags.

func (l License) CanExportPDF() bool      { return l.IsActive() && l.Config().ExportPDF }
func (l License) CanExportExcel() bool    { return l.IsActive() && l.Config().ExportExcel }
func (l License) CanCloudBackup() bool    { return l.IsActive() && l.Config().CloudBackup }
func (l License) CanMultiTeam() bool      { return l.IsActive() && l.Config().MultiTeam }
func (l License) HasAdvancedCharts() bool { return l.IsActive() && l.Config().AdvancedCharts }
func (l License) CanCompareSeasons() bool { return l.IsActive() && l.Config().CompareSeasons }

// Info is the presentation summary of a license.
type Info struct {
	Plan          Plan   `json:"plan"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
	DaysRemaining int    `json:"days_remaining"`
	MatchLimit    int    `json:"match_limit"`
	Badge         string `json:"badge"`
	Color         string `json:"color"`
}

func (l License) Info() Info {
	cfg := l.Config()
	return Info{
		Plan:          l.Plan,
		Name:          cfg.Name,
		Active:        l.IsActive(),
		DaysRemaining: l.DaysRemaining(),
		MatchLimit:    cfg.MatchLimit,
		Badge:         cfg.Badge,
		Color:         cfg.Color,
	}
}
