package service

import (
	"context"
	"errors"
	"time"

	"github.com/onzevirtual/fm-analytics/internal/api"
	"github.com/onzevirtual/fm-analytics/internal/constants"
	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/onzevirtual/fm-analytics/internal/repository"
	"github.com/rs/zerolog"
)

type BackupService struct {
	matches  *repository.MatchRepository
	licenses *LicenseService
	client   *api.BackupClient
	logger   zerolog.Logger
}

func NewBackupService(matches *repository.MatchRepository, licenses *LicenseService, client *api.BackupClient, logger zerolog.Logger) *BackupService {
	return &BackupService{
		matches:  matches,
		licenses: licenses,
		client:   client,
		logger:   logger.With().Str("service", "backup").Logger(),
	}
}

// Run snapshots the user's full match set and uploads it to the backup
// endpoint. The cloud backup entitlement gates the operation.
func (s *BackupService) Run(ctx context.Context, user *domain.User) (*api.BackupReceipt, error) {
	lic, err := s.licenses.LicenseFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if !lic.CanCloudBackup() {
		return nil, &EntitlementError{Reason: "cloud_backup", Message: "Cloud backup requires the Pro plan."}
	}
	if !s.client.Configured() {
		return nil, errors.New("cloud backup endpoint is not configured")
	}

	matches, err := s.matches.ListByUser(ctx, user.ID, repository.MatchFilter{})
	if err != nil {
		return nil, err
	}

	uploadCtx, cancel := context.WithTimeout(ctx, constants.BackupTimeout)
	defer cancel()

	receipt, err := s.client.Upload(uploadCtx, api.BackupSnapshot{
		UserEmail: user.Email,
		Plan:      user.Plan,
		TakenAt:   time.Now().UTC(),
		Matches:   matches,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("backup upload failed")
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("backup_id", receipt.ID).
		Int("records", receipt.Records).
		Msg("backup uploaded")
	return receipt, nil
}
