package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schoolhub/api/internal/models"
	"schoolhub/api/internal/session"
)

// SessionRepository is the durable session.Backend, stored in account_sessions.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Get(ctx context.Context, token string) (models.Session, error) {
	const query = `
		SELECT token, account_id, username, logged_in, created_at, expires_at
		FROM account_sessions
		WHERE token = $1
	`

	row := r.pool.QueryRow(ctx, query, token)
	var s models.Session
	if err := row.Scan(
		&s.Token,
		&s.AccountID,
		&s.Username,
		&s.LoggedIn,
		&s.CreatedAt,
		&s.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, session.ErrNotFound
		}
		return models.Session{}, err
	}
	return s, nil
}

func (r *SessionRepository) Set(ctx context.Context, token string, s models.Session) error {
	const query = `
		INSERT INTO account_sessions (
			token, account_id, username, logged_in, created_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (token)
		DO UPDATE SET
			account_id = EXCLUDED.account_id,
			username = EXCLUDED.username,
			logged_in = EXCLUDED.logged_in
	`

	_, err := r.pool.Exec(ctx, query,
		token,
		s.AccountID,
		s.Username,
		s.LoggedIn,
		s.CreatedAt,
		s.ExpiresAt,
	)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM account_sessions WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}

// DeleteExpired removes every record whose expiry is at or before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM account_sessions WHERE expires_at <= $1`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
