package lock

import (
	"context"
	"sync"
	"time"
)

// Locker garante que um job agendado rode em uma única instância por vez
type Locker interface {
	// TryLock não bloqueia: acquired=false indica que outra execução detém a chave
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// LocalLocker é usado quando não há Redis configurado; protege apenas o processo atual
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	nowFn func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]time.Time),
		nowFn: time.Now,
	}
}

func (l *LocalLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if expiresAt, ok := l.held[key]; ok && now.Before(expiresAt) {
		return nil, false, nil
	}

	expiresAt := now.Add(ttl)
	l.held[key] = expiresAt

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, ok := l.held[key]; ok && current.Equal(expiresAt) {
			delete(l.held, key)
		}
	}

	return release, true, nil
}
