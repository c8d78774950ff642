package session

import (
	"time"

	"github.com/gorilla/sessions"
)

// Principal is the authenticated account attached to a session.
type Principal struct {
	AccountID int64
	Username  string
	ExpiresAt time.Time
}

// PrincipalFrom reports the logged-in principal held by s, if any.
func PrincipalFrom(s *sessions.Session) (Principal, bool) {
	if s == nil || s.ID == "" {
		return Principal{}, false
	}
	record := takeRecord(s)
	if !record.LoggedIn || record.AccountID == 0 {
		return Principal{}, false
	}
	return Principal{
		AccountID: record.AccountID,
		Username:  record.Username,
		ExpiresAt: record.ExpiresAt,
	}, true
}
