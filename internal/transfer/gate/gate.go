// Package gate provides a counting admission gate that bounds how many chunk
// workers run concurrently.
//
// The gate is a channel-based semaphore. There is no bound on how many
// callers may queue waiting for a permit and no FIFO guarantee on admission;
// the only invariant is that at most the configured budget of permits is
// outstanding at any moment.
package gate

import (
	"context"
	"fmt"
)

// Gate is a counting admission gate. One Gate is shared by all workers of a
// single transfer and must not outlive it.
type Gate struct {
	permits chan struct{}
}

// New creates a gate with the given permit budget. Budgets below one are
// raised to one so the gate can always make progress.
func New(budget int) *Gate {
	if budget < 1 {
		budget = 1
	}
	return &Gate{
		permits: make(chan struct{}, budget),
	}
}

// Acquire blocks until a permit is free or the context is done. On success
// the caller holds a permit and must Release it on every exit path.
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case g.permits <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("acquire permit: %w", ctx.Err())
	}
}

// Release returns a permit to the gate.
func (g *Gate) Release() {
	<-g.permits
}

// Budget returns the gate's permit budget.
func (g *Gate) Budget() int {
	return cap(g.permits)
}

// InUse returns the number of permits currently held.
func (g *Gate) InUse() int {
	return len(g.permits)
}
