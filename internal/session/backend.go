// Package session keeps login state on the server and hands the client a
// signed cookie that references it.
package session

import (
	"context"
	"errors"
	"time"

	"schoolhub/api/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Backend persists session records by token.
type Backend interface {
	Get(ctx context.Context, token string) (models.Session, error)
	Set(ctx context.Context, token string, s models.Session) error
	Delete(ctx context.Context, token string) error
}

// Purger is implemented by backends that keep expired records until told to drop them.
type Purger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
