package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schoolhub/api/internal/models"
)

const accountColumns = `
	account_id, name, surname, username, email, password,
	is_active, is_confirmed, is_administrator, is_educator, created_at
`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts account and returns the generated ID. A unique violation on
// username or email is reported as ErrUsernameTaken or ErrEmailTaken.
func (r *AccountRepository) Create(ctx context.Context, account models.Account) (int64, error) {
	const query = `
		INSERT INTO accounts (name, surname, username, email, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING account_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		account.Name,
		account.Surname,
		account.Username,
		account.Email,
		string(account.PasswordHash),
	).Scan(&id)
	if err != nil {
		if conflict := uniqueConflict(err); conflict != nil {
			return 0, conflict
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	return r.getOne(ctx, query, id)
}

func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username)
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email)
}

func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY account_id`
	return r.list(ctx, query)
}

// Search matches term as a case-insensitive substring of the username.
func (r *AccountRepository) Search(ctx context.Context, term string) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username ILIKE $1 ORDER BY account_id`
	return r.list(ctx, query, likePattern(term))
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, hash []byte) error {
	const query = `UPDATE accounts SET password = $2 WHERE account_id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, string(hash))
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM accounts WHERE account_id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) exists(ctx context.Context, query string, value string) (bool, error) {
	var found bool
	if err := r.pool.QueryRow(ctx, query, value).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg any) (models.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, err
	}
	return account, nil
}

func (r *AccountRepository) list(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var (
		account  models.Account
		password string
	)
	if err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Surname,
		&account.Username,
		&account.Email,
		&password,
		&account.IsActive,
		&account.IsConfirmed,
		&account.IsAdministrator,
		&account.IsEducator,
		&account.CreatedAt,
	); err != nil {
		return models.Account{}, err
	}
	account.PasswordHash = []byte(password)
	return account, nil
}
