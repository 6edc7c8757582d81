// Package ram is the in-memory engine behind the notification-token
// port, with the same token-uniqueness semantics as the mysql engine.
package ram

import (
	"context"
	"sync"
)

type TokenDB struct {
	mu      sync.RWMutex
	byUser  map[string]string
	byToken map[string]string
}

func New() *TokenDB {
	return &TokenDB{
		byUser:  make(map[string]string),
		byToken: make(map[string]string),
	}
}

func (t *TokenDB) SetNotificationToken(_ context.Context, userEmail, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.byToken[token]; ok && prev != userEmail {
		delete(t.byUser, prev)
	}
	if old, ok := t.byUser[userEmail]; ok {
		delete(t.byToken, old)
	}
	t.byUser[userEmail] = token
	t.byToken[token] = userEmail
	return nil
}

func (t *TokenDB) GetNotificationToken(_ context.Context, userEmail string) (string, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	token, ok := t.byUser[userEmail]
	return token, ok, nil
}

func (t *TokenDB) Close() error { return nil }
