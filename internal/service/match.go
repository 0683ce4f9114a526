package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/onzevirtual/fm-analytics/internal/repository"
	"github.com/rs/zerolog"
)

// EntitlementError carries the user-facing refusal message for an
// operation the current plan does not allow. Reason keys the upsell
// copy shown alongside the refusal.
type EntitlementError struct {
	Reason  string
	Message string
}

func (e *EntitlementError) Error() string { return e.Message }

// IsEntitlement reports whether err is a plan refusal rather than an
// internal failure, so handlers can map it to a 403.
func IsEntitlement(err error) bool {
	var ee *EntitlementError
	return errors.As(err, &ee)
}

type MatchService struct {
	matches  *repository.MatchRepository
	licenses *LicenseService
	logger   zerolog.Logger
}

func NewMatchService(matches *repository.MatchRepository, licenses *LicenseService, logger zerolog.Logger) *MatchService {
	return &MatchService{
		matches:  matches,
		licenses: licenses,
		logger:   logger.With().Str("service", "match").Logger(),
	}
}

// Add validates and stores a new match for the user. The returned
// warning is advisory only; a non-nil error means nothing was stored.
func (s *MatchService) Add(ctx context.Context, user *domain.User, m domain.Match) (*domain.Match, string, error) {
	lic, err := s.licenses.LicenseFor(ctx, user)
	if err != nil {
		return nil, "", err
	}

	count, err := s.matches.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	if ok, msg := lic.CanAddMatch(count); !ok {
		s.logger.Info().
			Int64("user_id", user.ID).
			Int("stored", count).
			Msg("match insert refused by license")
		return nil, "", &EntitlementError{Reason: "match_limit", Message: msg}
	}

	warning, err := domain.Validate(m)
	if err != nil {
		return nil, "", fmt.Errorf("invalid match record: %w", err)
	}

	m.UserID = user.ID
	m.Outcome = m.DeriveOutcome()

	id, err := s.matches.Insert(ctx, &m)
	if err != nil {
		return nil, "", err
	}
	m.ID = id

	s.logger.Info().
		Int64("user_id", user.ID).
		Int64("match_id", id).
		Str("outcome", string(m.Outcome)).
		Msg("match recorded")
	return &m, warning, nil
}

func (s *MatchService) List(ctx context.Context, userID int64, filter repository.MatchFilter) ([]domain.Match, error) {
	return s.matches.ListByUser(ctx, userID, filter)
}

func (s *MatchService) Get(ctx context.Context, id, userID int64) (*domain.Match, error) {
	return s.matches.GetByID(ctx, id, userID)
}

func (s *MatchService) Delete(ctx context.Context, id, userID int64) (bool, error) {
	deleted, err := s.matches.Delete(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info().Int64("match_id", id).Int64("user_id", userID).Msg("match deleted")
	}
	return deleted, nil
}

func (s *MatchService) Seasons(ctx context.Context, userID int64) ([]string, error) {
	return s.matches.Seasons(ctx, userID)
}
