package gate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_BoundsConcurrency(t *testing.T) {
	const budget = 4
	const workers = 50

	g := New(budget)
	ctx := context.Background()

	var inFlight atomic.Int32
	var peak atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, g.Acquire(ctx))
			defer g.Release()

			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(budget), "admitted more workers than the budget")
	assert.Equal(t, 0, g.InUse(), "all permits should be returned")
}

func TestGate_AcquireBlocksUntilRelease(t *testing.T) {
	g := New(1)
	ctx := context.Background()

	require.NoError(t, g.Acquire(ctx))

	acquired := make(chan struct{})
	go func() {
		_ = g.Acquire(ctx)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire should block while the permit is held")
	case <-time.After(20 * time.Millisecond):
	}

	g.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("acquire should succeed after release")
	}
}

func TestGate_AcquireHonorsContext(t *testing.T) {
	g := New(1)
	require.NoError(t, g.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, g.InUse(), "failed acquire must not consume a permit")
}

func TestNew_RaisesBudgetToOne(t *testing.T) {
	assert.Equal(t, 1, New(0).Budget())
	assert.Equal(t, 1, New(-5).Budget())
	assert.Equal(t, 10, New(10).Budget())
}
