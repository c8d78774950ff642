package session

import (
	"context"
	"sync"
	"time"

	"schoolhub/api/internal/models"
)

type MemoryBackend struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sessions: make(map[string]models.Session)}
}

func (b *MemoryBackend) Get(_ context.Context, token string) (models.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, ok := b.sessions[token]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	return s, nil
}

func (b *MemoryBackend) Set(_ context.Context, token string, s models.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sessions[token] = s
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.sessions, token)
	return nil
}

func (b *MemoryBackend) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var n int64
	for token, s := range b.sessions {
		if s.Expired(now) {
			delete(b.sessions, token)
			n++
		}
	}
	return n, nil
}

func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions)
}
