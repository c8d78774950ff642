package session

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"schoolhub/api/internal/config"
	"schoolhub/api/internal/ids"
	"schoolhub/api/internal/models"
)

type valueKey string

const (
	keyAccountID valueKey = "accountID"
	keyUsername  valueKey = "username"
	keyLoggedIn  valueKey = "loggedIn"
	keyCreatedAt valueKey = "createdAt"
	keyExpiresAt valueKey = "expiresAt"
)

// Manager is a sessions.Store whose cookie carries only a signed token.
// The session values live in a Backend and expire a fixed TTL after creation.
type Manager struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	backend Backend
	name    string
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

var _ sessions.Store = (*Manager)(nil)

func NewManager(backend Backend, cfg config.SessionConfig, log zerolog.Logger) *Manager {
	codecs := securecookie.CodecsFromPairs([]byte(cfg.HashKey))
	for _, codec := range codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(int(cfg.TTL / time.Second))
		}
	}

	return &Manager{
		Codecs: codecs,
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(cfg.TTL / time.Second),
			Secure:   cfg.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		backend: backend,
		name:    cfg.CookieName,
		ttl:     cfg.TTL,
		now:     time.Now,
		log:     log,
	}
}

func (m *Manager) Name() string {
	return m.name
}

// Get returns the session for the request, cached in the request registry.
func (m *Manager) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(m, name)
}

// New loads the session referenced by the request cookie. A missing, unknown or
// expired record yields a fresh anonymous session; a bad signature yields the
// same anonymous session together with the decode error.
func (m *Manager) New(r *http.Request, name string) (*sessions.Session, error) {
	s := sessions.NewSession(m, name)
	opts := *m.Options
	s.Options = &opts
	s.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return s, nil
	}

	var token string
	if err := securecookie.DecodeMulti(name, c.Value, &token, m.Codecs...); err != nil {
		return s, fmt.Errorf("decode session cookie: %w", err)
	}

	record, err := m.backend.Get(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s, nil
		}
		return s, fmt.Errorf("load session: %w", err)
	}

	if record.Expired(m.now()) {
		if err := m.backend.Delete(r.Context(), token); err != nil {
			m.log.Warn().Err(err).Msg("delete expired session failed")
		}
		return s, nil
	}

	s.ID = token
	s.IsNew = false
	putRecord(s, record)
	return s, nil
}

// Save persists the session record and writes the signed cookie. A negative
// MaxAge deletes the record and expires the cookie.
func (m *Manager) Save(r *http.Request, w http.ResponseWriter, s *sessions.Session) error {
	if s.Options.MaxAge < 0 {
		return m.remove(r, w, s)
	}

	now := m.now()
	record := takeRecord(s)
	if record.ExpiresAt.IsZero() {
		record.CreatedAt = now
		record.ExpiresAt = now.Add(m.ttl)
		s.Values[keyCreatedAt] = record.CreatedAt
		s.Values[keyExpiresAt] = record.ExpiresAt
	}

	remaining := record.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return m.remove(r, w, s)
	}

	if s.ID == "" {
		s.ID = ids.New()
	}
	record.Token = s.ID

	if err := m.backend.Set(r.Context(), s.ID, record); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(s.Name(), s.ID, m.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}

	s.Options.MaxAge = int(math.Ceil(remaining.Seconds()))
	http.SetCookie(w, sessions.NewCookie(s.Name(), encoded, s.Options))
	return nil
}

// Establish starts an authenticated session for p under a new token, dropping
// any session the request already carried.
func (m *Manager) Establish(r *http.Request, w http.ResponseWriter, p Principal) (*sessions.Session, error) {
	s, err := m.Get(r, m.name)
	if err != nil {
		m.log.Debug().Err(err).Msg("discarding unreadable session cookie")
	}
	if s == nil {
		s = sessions.NewSession(m, m.name)
	}

	if s.ID != "" {
		if err := m.backend.Delete(r.Context(), s.ID); err != nil {
			return nil, fmt.Errorf("drop previous session: %w", err)
		}
	}

	opts := *m.Options
	s.Options = &opts
	s.ID = ""
	s.IsNew = true
	s.Values = map[interface{}]interface{}{
		keyAccountID: p.AccountID,
		keyUsername:  p.Username,
		keyLoggedIn:  true,
	}

	if err := s.Save(r, w); err != nil {
		return nil, err
	}
	return s, nil
}

// Destroy deletes the request's session, if any, and expires its cookie.
func (m *Manager) Destroy(r *http.Request, w http.ResponseWriter) error {
	s, err := m.Get(r, m.name)
	if err != nil {
		m.log.Debug().Err(err).Msg("destroying unreadable session cookie")
	}
	if s == nil {
		s = sessions.NewSession(m, m.name)
		opts := *m.Options
		s.Options = &opts
	}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

func (m *Manager) remove(r *http.Request, w http.ResponseWriter, s *sessions.Session) error {
	if s.ID != "" {
		if err := m.backend.Delete(r.Context(), s.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	s.Options.MaxAge = -1
	http.SetCookie(w, sessions.NewCookie(s.Name(), "", s.Options))
	return nil
}

func putRecord(s *sessions.Session, record models.Session) {
	s.Values[keyAccountID] = record.AccountID
	s.Values[keyUsername] = record.Username
	s.Values[keyLoggedIn] = record.LoggedIn
	s.Values[keyCreatedAt] = record.CreatedAt
	s.Values[keyExpiresAt] = record.ExpiresAt
}

func takeRecord(s *sessions.Session) models.Session {
	var record models.Session
	record.AccountID, _ = s.Values[keyAccountID].(int64)
	record.Username, _ = s.Values[keyUsername].(string)
	record.LoggedIn, _ = s.Values[keyLoggedIn].(bool)
	record.CreatedAt, _ = s.Values[keyCreatedAt].(time.Time)
	record.ExpiresAt, _ = s.Values[keyExpiresAt].(time.Time)
	return record
}
