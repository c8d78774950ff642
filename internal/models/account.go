package models

import "time"

type Account struct {
	ID              int64     `json:"accountID"`
	Name            string    `json:"name"`
	Surname         string    `json:"surname"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    []byte    `json:"-"`
	IsActive        bool      `json:"is_active"`
	IsConfirmed     bool      `json:"is_confirmed"`
	IsAdministrator bool      `json:"is_administrator"`
	IsEducator      bool      `json:"is_educator"`
	CreatedAt       time.Time `json:"created_at"`
}

// Session is the server-side record behind a session cookie.
// ExpiresAt is fixed when the record is created and never extended.
type Session struct {
	Token     string    `json:"token"`
	AccountID int64     `json:"accountID"`
	Username  string    `json:"username"`
	LoggedIn  bool      `json:"loggedIn"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
