package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"schoolhub/api/internal/models"
)

func newTestRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis, *clock) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	b := NewRedisBackend(client)
	b.now = clk.now
	return b, mr, clk
}

func TestRedisBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, mr, clk := newTestRedisBackend(t)

	want := models.Session{
		Token:     "tok1",
		AccountID: 1001,
		Username:  "alice1",
		LoggedIn:  true,
		CreatedAt: clk.t,
		ExpiresAt: clk.t.Add(5 * time.Minute),
	}
	if err := b.Set(ctx, "tok1", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if ttl := mr.TTL("session:tok1"); ttl != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", ttl)
	}

	got, err := b.Get(ctx, "tok1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Token != want.Token || got.AccountID != want.AccountID || got.Username != want.Username || !got.LoggedIn {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("times = %v/%v, want %v/%v", got.CreatedAt, got.ExpiresAt, want.CreatedAt, want.ExpiresAt)
	}
}

func TestRedisBackendTTLIsRemainingLifetime(t *testing.T) {
	ctx := context.Background()
	b, mr, clk := newTestRedisBackend(t)

	record := models.Session{Token: "tok1", CreatedAt: clk.t, ExpiresAt: clk.t.Add(5 * time.Minute)}
	clk.t = clk.t.Add(2 * time.Minute)
	if err := b.Set(ctx, "tok1", record); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("session:tok1"); ttl != 3*time.Minute {
		t.Errorf("ttl = %v, want 3m", ttl)
	}

	mr.FastForward(3 * time.Minute)
	if _, err := b.Get(ctx, "tok1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrNotFound", err)
	}
}

func TestRedisBackendMissingToken(t *testing.T) {
	b, _, _ := newTestRedisBackend(t)

	if _, err := b.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestRedisBackendSetExpiredDeletes(t *testing.T) {
	ctx := context.Background()
	b, mr, clk := newTestRedisBackend(t)

	record := models.Session{Token: "tok1", CreatedAt: clk.t, ExpiresAt: clk.t.Add(5 * time.Minute)}
	if err := b.Set(ctx, "tok1", record); err != nil {
		t.Fatal(err)
	}

	clk.t = record.ExpiresAt
	if err := b.Set(ctx, "tok1", record); err != nil {
		t.Fatalf("Set() expired error = %v", err)
	}
	if mr.Exists("session:tok1") {
		t.Error("expired record still stored")
	}
}

func TestRedisBackendDelete(t *testing.T) {
	ctx := context.Background()
	b, mr, clk := newTestRedisBackend(t)

	if err := b.Set(ctx, "tok1", models.Session{ExpiresAt: clk.t.Add(time.Minute)}); err != nil {
		t.Fatal(err)
	}
	if err := b.Delete(ctx, "tok1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if mr.Exists("session:tok1") {
		t.Error("record still stored after Delete")
	}
	if err := b.Delete(ctx, "tok1"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}
