package service

import (
	"context"
	"fmt"
	"time"

	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/onzevirtual/fm-analytics/internal/license"
	"github.com/onzevirtual/fm-analytics/internal/repository"
	"github.com/rs/zerolog"
)

type LicenseService struct {
	users  *repository.UserRepository
	logger zerolog.Logger
}

func NewLicenseService(users *repository.UserRepository, logger zerolog.Logger) *LicenseService {
	return &LicenseService{
		users:  users,
		logger: logger.With().Str("service", "license").Logger(),
	}
}

// LicenseFor resolves the user's current license. Expiry is checked
// lazily here: a lapsed paid plan is demoted to the free tier and the
// demotion is persisted before the license is returned.
func (s *LicenseService) LicenseFor(ctx context.Context, user *domain.User) (license.License, error) {
	plan := license.Plan(user.Plan)
	if !plan.Valid() {
		plan = license.PlanFree
	}
	lic := license.New(plan, user.ExpiresAt)

	if plan != license.PlanFree && !lic.IsActive() {
		s.logger.Info().
			Int64("user_id", user.ID).
			Str("plan", string(plan)).
			Msg("paid plan lapsed, demoting to free tier")

		if err := s.users.UpdatePlan(ctx, user.ID, string(license.PlanFree), nil); err != nil {
			return lic, fmt.Errorf("failed to demote lapsed plan: %w", err)
		}
		user.Plan = string(license.PlanFree)
		user.ExpiresAt = nil
		lic = license.New(license.PlanFree, nil)
	}

	return lic, nil
}

// Activate redeems an activation or promotional code for the user.
// Promotional codes granting free days take precedence; otherwise the
// code's plan prefix decides, falling back to the free tier when the
// prefix is unknown.
func (s *LicenseService) Activate(ctx context.Context, user *domain.User, code string) (license.Info, error) {
	var lic license.License
	if promo, ok := license.LookupPromotion(code); ok && promo.FreeDays > 0 && promo.Plan != "" {
		expires := time.Now().AddDate(0, 0, promo.FreeDays)
		lic = license.New(promo.Plan, &expires)
	} else {
		lic = license.Activate(code)
	}

	if err := s.users.UpdatePlan(ctx, user.ID, string(lic.Plan), lic.ExpiresAt); err != nil {
		return license.Info{}, fmt.Errorf("failed to persist activation: %w", err)
	}
	user.Plan = string(lic.Plan)
	user.ExpiresAt = lic.ExpiresAt

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("plan", string(lic.Plan)).
		Msg("license activated")
	return lic.Info(), nil
}

// Upgrade moves the user to the given plan for a number of days.
// Upgrading to the free tier clears any expiration.
func (s *LicenseService) Upgrade(ctx context.Context, user *domain.User, plan license.Plan, days int) (license.Info, error) {
	if !plan.Valid() {
		return license.Info{}, fmt.Errorf("unknown plan %q", plan)
	}

	var expiresAt *time.Time
	if plan != license.PlanFree {
		t := time.Now().AddDate(0, 0, days)
		expiresAt = &t
	}

	if err := s.users.UpdatePlan(ctx, user.ID, string(plan), expiresAt); err != nil {
		return license.Info{}, fmt.Errorf("failed to persist upgrade: %w", err)
	}
	user.Plan = string(plan)
	user.ExpiresAt = expiresAt

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("plan", string(plan)).
		Int("days", days).
		Msg("plan upgraded")
	return license.New(plan, expiresAt).Info(), nil
}
