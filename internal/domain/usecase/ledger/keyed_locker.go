package ledger

import (
	"context"
	"slices"
	"sync"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

type heldKey struct{}

// KeyedLocker serializes mutations per balance. Each user ID owns a one-slot channel
// while someone holds or waits for it; multi-key acquisition is done in ascending order
// so two transfers between the same pair of users cannot deadlock.
//
// Locks are reentrant through the context: keys already held by a parent call are skipped,
// which lets a saga hold both balances while calling into the saldo service.
type KeyedLocker struct {
	logger coreport.Logger
	mu     sync.Mutex
	slots  map[uint64]*slot
}

// slot is dropped from the locker once refs, its holders plus waiters, reaches zero
type slot struct {
	key  uint64
	ch   chan struct{}
	refs int
}

// NewKeyedLocker creates a new keyed locker
func NewKeyedLocker(logger coreport.Logger) *KeyedLocker {
	return &KeyedLocker{logger: logger, slots: make(map[uint64]*slot)}
}

// Acquire blocks until every key is held or ctx is done. The returned release is safe
// to call more than once. The returned context marks the keys as held.
func (l *KeyedLocker) Acquire(ctx context.Context, keys ...uint64) (context.Context, func(), error) {
	held, _ := ctx.Value(heldKey{}).(map[uint64]struct{})

	wanted := make([]uint64, 0, len(keys))
	for _, k := range keys {
		if _, ok := held[k]; !ok {
			wanted = append(wanted, k)
		}
	}
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)

	if len(wanted) == 0 {
		return ctx, func() {}, nil
	}

	acquired := make([]*slot, 0, len(wanted))
	for _, key := range wanted {
		s := l.ref(key)
		select {
		case s.ch <- struct{}{}:
			acquired = append(acquired, s)
		case <-ctx.Done():
			l.unref(s)
			l.unlock(acquired)
			l.logger.Warn("Context canceled while waiting for balance lock", map[string]any{
				"user_id": key,
				"error":   ctx.Err().Error(),
			})
			return ctx, nil, ctx.Err()
		}
	}

	next := make(map[uint64]struct{}, len(held)+len(wanted))
	for k := range held {
		next[k] = struct{}{}
	}
	for _, k := range wanted {
		next[k] = struct{}{}
	}

	var once sync.Once
	release := func() {
		once.Do(func() { l.unlock(acquired) })
	}

	return context.WithValue(ctx, heldKey{}, next), release, nil
}

func (l *KeyedLocker) ref(key uint64) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{key: key, ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *KeyedLocker) unref(s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, s.key)
	}
}

func (l *KeyedLocker) unlock(acquired []*slot) {
	for i := len(acquired) - 1; i >= 0; i-- {
		<-acquired[i].ch
		l.unref(acquired[i])
	}
}

// tracked returns how many keys currently have a slot
func (l *KeyedLocker) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
