package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"schoolhub/api/internal/config"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestManager(t *testing.T) (*Manager, *MemoryBackend, *clock) {
	t.Helper()
	backend := NewMemoryBackend()
	m := NewManager(backend, config.SessionConfig{
		CookieName: "schoolhub_session",
		HashKey:    "0123456789abcdef0123456789abcdef",
		TTL:        5 * time.Minute,
	}, zerolog.Nop())
	c := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	m.now = c.now
	return m, backend, c
}

func login(t *testing.T, m *Manager, p Principal) *http.Cookie {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/accounts/login", nil)
	w := httptest.NewRecorder()
	if _, err := m.Establish(r, w, p); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func requestWith(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/accounts/accounts", nil)
	if c != nil {
		r.AddCookie(c)
	}
	return r
}

func TestEstablishSetsSignedHTTPOnlyCookie(t *testing.T) {
	m, backend, _ := newTestManager(t)

	cookie := login(t, m, Principal{AccountID: 7, Username: "alice1"})

	if cookie.Name != "schoolhub_session" {
		t.Errorf("cookie name = %q", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	if cookie.MaxAge != 300 {
		t.Errorf("cookie MaxAge = %d, want 300", cookie.MaxAge)
	}
	if backend.Len() != 1 {
		t.Errorf("backend holds %d sessions, want 1", backend.Len())
	}
}

func TestSessionRestoredFromCookie(t *testing.T) {
	m, _, c := newTestManager(t)
	cookie := login(t, m, Principal{AccountID: 7, Username: "alice1"})

	c.t = c.t.Add(4 * time.Minute)
	s, err := m.Get(requestWith(cookie), m.Name())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	p, ok := PrincipalFrom(s)
	if !ok {
		t.Fatal("expected authenticated session")
	}
	if p.AccountID != 7 || p.Username != "alice1" {
		t.Errorf("principal = %+v", p)
	}
	if want := time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC); !p.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", p.ExpiresAt, want)
	}
}

func TestSessionExpiresAfterFixedWindow(t *testing.T) {
	m, backend, c := newTestManager(t)
	cookie := login(t, m, Principal{AccountID: 7, Username: "alice1"})

	// activity inside the window does not extend it
	c.t = c.t.Add(4 * time.Minute)
	if _, err := m.Get(requestWith(cookie), m.Name()); err != nil {
		t.Fatal(err)
	}

	c.t = c.t.Add(time.Minute)
	s, err := m.Get(requestWith(cookie), m.Name())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := PrincipalFrom(s); ok {
		t.Error("session should be anonymous after expiry")
	}
	if backend.Len() != 0 {
		t.Errorf("expired record should be deleted, backend holds %d", backend.Len())
	}
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	m, _, _ := newTestManager(t)
	cookie := login(t, m, Principal{AccountID: 7, Username: "alice1"})
	cookie.Value = cookie.Value[:len(cookie.Value)-2] + "xx"

	s, err := m.Get(requestWith(cookie), m.Name())
	if err == nil {
		t.Error("expected decode error for tampered cookie")
	}
	if _, ok := PrincipalFrom(s); ok {
		t.Error("tampered cookie must not authenticate")
	}
}

func TestUnknownTokenIsAnonymous(t *testing.T) {
	m, backend, _ := newTestManager(t)
	cookie := login(t, m, Principal{AccountID: 7, Username: "alice1"})
	if _, err := backend.DeleteExpired(context.Background(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	s, err := m.Get(requestWith(cookie), m.Name())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := PrincipalFrom(s); ok {
		t.Error("record-less cookie must be anonymous")
	}
}

func TestEstablishRotatesToken(t *testing.T) {
	m, backend, _ := newTestManager(t)
	first := login(t, m, Principal{AccountID: 7, Username: "alice1"})

	r := requestWith(first)
	w := httptest.NewRecorder()
	if _, err := m.Establish(r, w, Principal{AccountID: 8, Username: "bobby2"}); err != nil {
		t.Fatal(err)
	}
	second := w.Result().Cookies()[0]

	if second.Value == first.Value {
		t.Error("login should issue a new token")
	}
	if backend.Len() != 1 {
		t.Errorf("previous session should be dropped, backend holds %d", backend.Len())
	}
}

func TestDestroy(t *testing.T) {
	m, backend, _ := newTestManager(t)
	cookie := login(t, m, Principal{AccountID: 7, Username: "alice1"})

	w := httptest.NewRecorder()
	if err := m.Destroy(requestWith(cookie), w); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if backend.Len() != 0 {
		t.Errorf("backend holds %d sessions after destroy", backend.Len())
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected an expiring cookie, got %+v", cookies)
	}
}

func TestPrincipalFromAnonymous(t *testing.T) {
	m, _, _ := newTestManager(t)
	s, err := m.Get(requestWith(nil), m.Name())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := PrincipalFrom(s); ok {
		t.Error("fresh session must be anonymous")
	}
	if _, ok := PrincipalFrom(nil); ok {
		t.Error("nil session must be anonymous")
	}
}
