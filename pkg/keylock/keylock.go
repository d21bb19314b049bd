// Package keylock provides mutual exclusion scoped to a key.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Locker serializes holders of the same key while letting different keys
// proceed in parallel. Entries are dropped once nobody holds or waits for them.
type Locker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

func New[K comparable]() *Locker[K] {
	return &Locker[K]{locks: make(map[K]*entry)}
}

// Lock blocks until key is acquired or ctx is done. The returned func
// releases the key and must be called exactly once.
func (l *Locker[K]) Lock(ctx context.Context, key K) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return func() { l.release(key, e) }, nil
	case <-ctx.Done():
		l.mu.Lock()
		l.drop(key, e)
		l.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (l *Locker[K]) release(key K, e *entry) {
	<-e.ch
	l.mu.Lock()
	l.drop(key, e)
	l.mu.Unlock()
}

func (l *Locker[K]) drop(key K, e *entry) {
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// Len returns the number of keys currently held or awaited.
func (l *Locker[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
