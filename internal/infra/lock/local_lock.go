package lock

import (
	"context"
	"sync"

	"booking-platform/internal/usecase/shared"
)

// LocalLocker serializes keys within one process. It backs single-instance
// deployments without Redis and the concurrency tests.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*localSlot
}

// localSlot lives while a holder or waiter references it.
type localSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*localSlot)}
}

func (l *LocalLocker) ref(key string) *localSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		return
	}
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// Keys reports how many keys are currently held or awaited.
func (l *LocalLocker) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (shared.Lease, error) {
	s := l.ref(key)
	select {
	case s.ch <- struct{}{}:
		return &localLease{owner: l, key: key, ch: s.ch}, nil
	case <-ctx.Done():
		l.unref(key)
		return nil, ctx.Err()
	}
}

type localLease struct {
	once  sync.Once
	owner *LocalLocker
	key   string
	ch    chan struct{}
}

func (l *localLease) Release(context.Context) error {
	l.once.Do(func() {
		<-l.ch
		l.owner.unref(l.key)
	})
	return nil
}
