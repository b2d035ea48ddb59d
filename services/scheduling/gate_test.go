package scheduling

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGateMutualExclusion(t *testing.T) {
	g := NewMemoryGate()

	const callers = 50
	var wins int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if g.TryAcquire("conv-1", time.Minute) {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), wins, "exactly one concurrent caller may hold the lease")
}

func TestMemoryGateBusyUntilReleased(t *testing.T) {
	g := NewMemoryGate()

	assert.True(t, g.TryAcquire("conv-1", time.Minute))
	assert.False(t, g.TryAcquire("conv-1", time.Minute))
	assert.True(t, g.IsHeld("conv-1"))

	// Different keys proceed independently.
	assert.True(t, g.TryAcquire("conv-2", time.Minute))

	g.Release("conv-1")
	assert.False(t, g.IsHeld("conv-1"))
	assert.True(t, g.TryAcquire("conv-1", time.Minute))
}

func TestMemoryGateLeaseExpiry(t *testing.T) {
	g := NewMemoryGate()

	assert.True(t, g.TryAcquire("conv-1", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	// The stale lease self-heals on the next acquire.
	assert.True(t, g.TryAcquire("conv-1", time.Minute))
}

func TestMemoryGateIsHeldEvictsExpired(t *testing.T) {
	g := NewMemoryGate()

	assert.True(t, g.TryAcquire("conv-1", time.Millisecond))
	time.Sleep(10 * time.Millisecond)
	assert.False(t, g.IsHeld("conv-1"))

	g.mu.Lock()
	_, present := g.leases["conv-1"]
	g.mu.Unlock()
	assert.False(t, present, "expired entry should be evicted by the check")
}

func TestMemoryGateReleaseIsIdempotent(t *testing.T) {
	g := NewMemoryGate()

	// Unknown and double releases are no-ops, never errors.
	g.Release("never-acquired")
	assert.True(t, g.TryAcquire("conv-1", time.Minute))
	g.Release("conv-1")
	g.Release("conv-1")
	assert.True(t, g.TryAcquire("conv-1", time.Minute))
}

func TestMemoryGateSweeper(t *testing.T) {
	g := NewMemoryGate()

	assert.True(t, g.TryAcquire("stale", time.Millisecond))
	assert.True(t, g.TryAcquire("fresh", time.Minute))

	stop := g.StartSweeper(5 * time.Millisecond)
	defer stop()
	time.Sleep(30 * time.Millisecond)

	g.mu.Lock()
	_, staleKept := g.leases["stale"]
	_, freshKept := g.leases["fresh"]
	g.mu.Unlock()

	assert.False(t, staleKept, "sweeper should drop expired leases")
	assert.True(t, freshKept, "sweeper must not touch live leases")
}
