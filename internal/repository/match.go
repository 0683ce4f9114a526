package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// matchColumns is the stable column order for match rows. Every query
// that reads or writes full records uses this list so scans stay in
// lockstep with the schema.
const matchColumns = `user_id, team, opponent, venue, competition, season, date, round,
	possession, shots, shots_on_target, xg, clear_cut_chances, corners,
	passes_total, passes_completed, crosses_total, crosses_completed, goals,
	opp_possession, opp_shots, opp_shots_on_target, opp_xg, opp_clear_cut_chances, opp_corners,
	opp_passes_total, opp_passes_completed, opp_crosses_total, opp_crosses_completed, opp_goals,
	outcome`

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(db *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     db,
		logger: logger.With().Str("repository", "match").Logger(),
	}
}

// MatchFilter narrows listings; zero values mean no filtering.
type MatchFilter struct {
	Season      string
	Competition string
	Team        string
}

func (r *MatchRepository) Insert(ctx context.Context, m *domain.Match) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO matches (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?)`, matchColumns)

	res, err := r.db.ExecContext(ctx, query, matchArgs(m)...)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", m.UserID).Msg("failed to insert match")
		return 0, fmt.Errorf("failed to insert match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted match id: %w", err)
	}

	r.logger.Debug().Int64("match_id", id).Int64("user_id", m.UserID).Msg("match inserted")
	return id, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Match, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM matches WHERE id = ? AND user_id = ?`, matchColumns)

	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("match_id", id).Msg("failed to get match")
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

func (r *MatchRepository) ListByUser(ctx context.Context, userID int64, filter MatchFilter) ([]domain.Match, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM matches WHERE user_id = ?`, matchColumns)
	args := []any{userID}

	if filter.Season != "" {
		query += " AND season = ?"
		args = append(args, filter.Season)
	}
	if filter.Competition != "" {
		query += " AND competition = ?"
		args = append(args, filter.Competition)
	}
	if filter.Team != "" {
		query += " AND team = ?"
		args = append(args, filter.Team)
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list matches")
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}

func (r *MatchRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to count matches")
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// Delete removes one match owned by the user. Returns false when no
// such row exists, so ownership violations and missing ids look alike.
func (r *MatchRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM matches WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("match_id", id).Msg("failed to delete match")
		return false, fmt.Errorf("failed to delete match: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// Seasons lists the distinct seasons a user has recorded, newest first.
func (r *MatchRepository) Seasons(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT season FROM matches WHERE user_id = ? AND season != '' ORDER BY season DESC`,
		userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list seasons")
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func matchArgs(m *domain.Match) []any {
	return []any{
		m.UserID, m.Team, m.Opponent, string(m.Venue), m.Competition, m.Season,
		m.Date.Format(dateLayout), m.Round,
		m.Us.Possession, m.Us.Shots, m.Us.ShotsOnTarget, m.Us.XG, m.Us.ClearCutChances, m.Us.Corners,
		m.Us.PassesTotal, m.Us.PassesCompleted, m.Us.CrossesTotal, m.Us.CrossesCompleted, m.Us.Goals,
		m.Them.Possession, m.Them.Shots, m.Them.ShotsOnTarget, m.Them.XG, m.Them.ClearCutChances, m.Them.Corners,
		m.Them.PassesTotal, m.Them.PassesCompleted, m.Them.CrossesTotal, m.Them.CrossesCompleted, m.Them.Goals,
		string(m.Outcome),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*domain.Match, error) {
	var (
		m       domain.Match
		venue   string
		outcome string
		date    string
	)
	err := row.Scan(
		&m.ID, &m.UserID, &m.Team, &m.Opponent, &venue, &m.Competition, &m.Season,
		&date, &m.Round,
		&m.Us.Possession, &m.Us.Shots, &m.Us.ShotsOnTarget, &m.Us.XG, &m.Us.ClearCutChances, &m.Us.Corners,
		&m.Us.PassesTotal, &m.Us.PassesCompleted, &m.Us.CrossesTotal, &m.Us.CrossesCompleted, &m.Us.Goals,
		&m.Them.Possession, &m.Them.Shots, &m.Them.ShotsOnTarget, &m.Them.XG, &m.Them.ClearCutChances, &m.Them.Corners,
		&m.Them.PassesTotal, &m.Them.PassesCompleted, &m.Them.CrossesTotal, &m.Them.CrossesCompleted, &m.Them.Goals,
		&outcome,
	)
	if err != nil {
		return nil, err
	}

	m.Venue = domain.Venue(venue)
	m.Outcome = domain.Outcome(outcome)
	m.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse match date %q: %w", date, err)
	}
	return &m, nil
}
