package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/onzevirtual/fm-analytics/internal/repository"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	matches  *repository.MatchRepository
	licenses *LicenseService
	logger   zerolog.Logger
}

func NewExportService(matches *repository.MatchRepository, licenses *LicenseService, logger zerolog.Logger) *ExportService {
	return &ExportService{
		matches:  matches,
		licenses: licenses,
		logger:   logger.With().Str("service", "export").Logger(),
	}
}

var exportHeader = []string{
	"Date", "Team", "Opponent", "Venue", "Competition", "Season", "Round",
	"Goals", "Goals Against", "Outcome",
	"Possession %", "Shots", "Shots on Target", "xG",
	"Clear-Cut Chances", "Corners",
	"Passes", "Completed Passes", "Crosses", "Completed Crosses",
}

// ExcelWorkbook renders the user's matches as an xlsx workbook. The
// export entitlement is checked against the caller's current license.
func (s *ExportService) ExcelWorkbook(ctx context.Context, user *domain.User, filter repository.MatchFilter) (*bytes.Buffer, error) {
	lic, err := s.licenses.LicenseFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if !lic.CanExportExcel() {
		return nil, &EntitlementError{Reason: "export_pdf", Message: "Excel export requires the Pro plan."}
	}

	matches, err := s.matches.ListByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Matches"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, m := range matches {
		values := []any{
			m.Date.Format("2006-01-02"), m.Team, m.Opponent, string(m.Venue),
			m.Competition, m.Season, m.Round,
			m.Us.Goals, m.Them.Goals, string(m.Outcome),
			m.Us.Possession, m.Us.Shots, m.Us.ShotsOnTarget, m.Us.XG,
			m.Us.ClearCutChances, m.Us.Corners,
			m.Us.PassesTotal, m.Us.PassesCompleted, m.Us.CrossesTotal, m.Us.CrossesCompleted,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Int("matches", len(matches)).
		Msg("excel export generated")
	return buf, nil
}
