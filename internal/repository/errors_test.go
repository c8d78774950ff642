package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestUniqueConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username constraint",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "accounts_username_key"},
			want: ErrUsernameTaken,
		},
		{
			name: "email constraint wrapped",
			err:  fmt.Errorf("insert account: %w", &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"}),
			want: ErrEmailTaken,
		},
		{
			name: "detail fallback",
			err:  &pgconn.PgError{Code: "23505", Detail: "Key (email)=(a@x.com) already exists."},
			want: ErrEmailTaken,
		},
		{
			name: "other violation",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "accounts_username_key"},
			want: nil,
		},
		{
			name: "not a postgres error",
			err:  errors.New("connection reset"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uniqueConflict(tt.err); got != tt.want {
				t.Errorf("uniqueConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLikePattern(t *testing.T) {
	tests := map[string]string{
		"alice":   "%alice%",
		"50%":     `%50\%%`,
		"a_b":     `%a\_b%`,
		`back\sl`: `%back\\sl%`,
		"":        "%%",
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}
