package scheduling

import (
	"sync"
	"time"
)

// Gate serializes the check-availability-then-create-booking sequence per
// logical key (one key per conversation/session). TryAcquire never blocks: a
// second caller that loses the race gets false and must treat the key as
// busy rather than queue, which keeps SMS/voice turns snappy.
type Gate interface {
	TryAcquire(key string, ttl time.Duration) bool
	Release(key string)
	IsHeld(key string) bool
}

type lease struct {
	acquiredAt time.Time
	ttl        time.Duration
}

func (l lease) expired(now time.Time) bool {
	return now.Sub(l.acquiredAt) >= l.ttl
}

// MemoryGate is the single-instance Gate: a mutex-guarded lease table. The
// check-then-insert in TryAcquire runs under one critical section, so two
// racing callers can never both see "no lease" and both insert. Expiry is
// lazy; a crashed holder self-heals once its TTL passes.
//
// Lease state is process-local. A horizontally scaled deployment should use
// RedisGate instead; the interface is identical so callers are unaffected.
type MemoryGate struct {
	mu     sync.Mutex
	leases map[string]lease
}

func NewMemoryGate() *MemoryGate {
	return &MemoryGate{leases: make(map[string]lease)}
}

// TryAcquire takes the lease for key if no unexpired lease exists, returning
// false immediately otherwise.
func (g *MemoryGate) TryAcquire(key string, ttl time.Duration) bool {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if l, ok := g.leases[key]; ok && !l.expired(now) {
		return false
	}
	g.leases[key] = lease{acquiredAt: now, ttl: ttl}
	return true
}

// Release drops the lease for key. Releasing an unknown or already-expired
// key is a no-op.
func (g *MemoryGate) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.leases, key)
}

// IsHeld reports whether an unexpired lease exists for key, evicting an
// expired entry as a side effect.
func (g *MemoryGate) IsHeld(key string) bool {
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.leases[key]
	if !ok {
		return false
	}
	if l.expired(now) {
		delete(g.leases, key)
		return false
	}
	return true
}

// StartSweeper periodically evicts expired leases so the table stays small
// under high key cardinality. Purely memory hygiene; correctness never
// depends on it. The returned func stops the sweeper.
func (g *MemoryGate) StartSweeper(every time.Duration) func() {
	ticker := time.NewTicker(every)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g.sweep()
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

func (g *MemoryGate) sweep() {
	now := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, l := range g.leases {
		if l.expired(now) {
			delete(g.leases, key)
		}
	}
}
