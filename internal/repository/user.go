package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/rs/zerolog"
)

type UserRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash, name string) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`,
		email, passwordHash, name)
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read created user id: %w", err)
	}

	r.logger.Info().Int64("user_id", id).Msg("user created")
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx,
		`SELECT id, email, password_hash, name, plan, expires_at, created_at FROM users WHERE email = ?`,
		email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getUser(ctx,
		`SELECT id, email, password_hash, name, plan, expires_at, created_at FROM users WHERE id = ?`,
		id)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		u       domain.User
		expires sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Plan, &expires, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if expires.Valid {
		u.ExpiresAt = &expires.Time
	}
	return &u, nil
}

// UpdatePlan persists a plan change. Passing a nil expiration clears it,
// which is how expired paid plans are demoted back to the free tier.
func (r *UserRepository) UpdatePlan(ctx context.Context, userID int64, plan string, expiresAt *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET plan = ?, expires_at = ? WHERE id = ?`,
		plan, expiresAt, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Str("plan", plan).Msg("failed to update plan")
		return fmt.Errorf("failed to update plan: %w", err)
	}

	r.logger.Info().Int64("user_id", userID).Str("plan", plan).Msg("plan updated")
	return nil
}

func (r *UserRepository) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create session")
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSessionUser resolves a session token to its user. Expired or
// unknown tokens return nil without error.
func (r *UserRepository) GetSessionUser(ctx context.Context, token string) (*domain.User, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM sessions WHERE token = ? AND expires_at > ?`,
		token, time.Now()).Scan(&userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to resolve session")
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return r.GetByID(ctx, userID)
}

func (r *UserRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}
