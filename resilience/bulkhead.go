package resilience

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/promptkit/errors"
)

// Causes carried by the RATE_LIMITED errors a Bulkhead returns.
var (
	ErrBulkheadFull    = stderrors.New("bulkhead is full")
	ErrBulkheadTimeout = stderrors.New("bulkhead wait timeout")
)

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	// Name identifies the guarded backend in errors.
	Name string
	// MaxConcurrent is the maximum number of concurrent calls.
	MaxConcurrent int
	// MaxWait is how long to wait for a slot. 0 means fail immediately.
	MaxWait time.Duration
	// OnReject is called when a call is rejected.
	OnReject func(name string)
}

// Bulkhead limits concurrent calls with a counting semaphore.
type Bulkhead struct {
	config BulkheadConfig
	sem    chan struct{}
}

// NewBulkhead creates a bulkhead. MaxConcurrent below 1 is raised to 1.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 1
	}
	return &Bulkhead{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// Execute runs fn once a slot is free. It returns a RATE_LIMITED error
// wrapping ErrBulkheadFull or ErrBulkheadTimeout when no slot frees up, and
// the context error when ctx ends first.
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	if err := b.acquire(ctx); err != nil {
		if b.config.OnReject != nil {
			b.config.OnReject(b.config.Name)
		}
		return err
	}
	defer b.release()
	return fn()
}

// ExecuteWithResult runs a function that returns a value.
func ExecuteWithResult[T any](b *Bulkhead, ctx context.Context, fn func() (T, error)) (T, error) {
	var result T
	err := b.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

func (b *Bulkhead) acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	default:
	}

	if b.config.MaxWait <= 0 {
		return b.rejected(ErrBulkheadFull)
	}

	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()

	select {
	case b.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return b.rejected(ErrBulkheadTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bulkhead) rejected(cause error) error {
	msg := fmt.Sprintf("%s: %d generations already in flight", b.config.Name, b.config.MaxConcurrent)
	return errors.RateLimited(msg).WithCause(cause)
}

func (b *Bulkhead) release() {
	<-b.sem
}

// Available returns the number of free slots.
func (b *Bulkhead) Available() int {
	return b.config.MaxConcurrent - len(b.sem)
}

// InUse returns the number of slots currently held.
func (b *Bulkhead) InUse() int {
	return len(b.sem)
}

// MaxConcurrent returns the maximum concurrent calls allowed.
func (b *Bulkhead) MaxConcurrent() int {
	return b.config.MaxConcurrent
}
