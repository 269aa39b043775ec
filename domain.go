// FILE: lixenwraith/gameini/domain.go
package gameini

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// domain is one of the two lock domains guarding a Section or File.
//
// The sync domain is a reader/writer mutex and ignores the context. The async
// domain is a weighted semaphore of size one; acquiring it is the only point
// where an async call can block or be cancelled. The domains do not exclude
// each other: the guarded list is an immutable snapshot behind an atomic
// pointer, published by compare-and-swap. A sync and an async writer racing on
// the same key never corrupt the list and the later publish wins; writes to
// different keys are both kept.
type domain interface {
	lock(ctx context.Context) error
	unlock()
	rlock(ctx context.Context) error
	runlock()
}

type syncDomain struct {
	mu sync.RWMutex
}

func (d *syncDomain) lock(context.Context) error {
	d.mu.Lock()
	return nil
}

func (d *syncDomain) unlock() { d.mu.Unlock() }

func (d *syncDomain) rlock(context.Context) error {
	d.mu.RLock()
	return nil
}

func (d *syncDomain) runlock() { d.mu.RUnlock() }

type asyncDomain struct {
	sem *semaphore.Weighted
}

func newAsyncDomain() *asyncDomain {
	return &asyncDomain{sem: semaphore.NewWeighted(1)}
}

// lock fails with ctx.Err() without acquiring if ctx is already done.
// Once acquired, the guarded operation runs to completion.
func (d *asyncDomain) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.sem.Acquire(ctx, 1)
}

func (d *asyncDomain) unlock() { d.sem.Release(1) }

// Async readers are serialized like writers.
func (d *asyncDomain) rlock(ctx context.Context) error { return d.lock(ctx) }

func (d *asyncDomain) runlock() { d.unlock() }
