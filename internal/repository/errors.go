package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrEmailTaken        = errors.New("email already exists")
)

const uniqueViolation = "23505"

// uniqueConflict maps a unique-constraint violation on accounts to a domain error.
// It returns nil for any other error.
func uniqueConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch {
	case pgErr.ConstraintName == "accounts_username_key", strings.Contains(pgErr.Detail, "(username)"):
		return ErrUsernameTaken
	case pgErr.ConstraintName == "accounts_email_key", strings.Contains(pgErr.Detail, "(email)"):
		return ErrEmailTaken
	}
	return nil
}

// likePattern builds a substring pattern for ILIKE with the wildcards in term escaped.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
