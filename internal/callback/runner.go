package callback

import (
	"context"
	"sync"
)

// Runner executes fn on the goroutine that owns callback invocation.
// Event sources running on their own goroutines (network readers, data
// channels) hand work to a Runner instead of calling the Dispatcher directly.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// Direct runs fn inline on the calling goroutine, one call at a time.
// It is the Runner used when there is no game loop to marshal onto.
type Direct struct {
	mu sync.Mutex
}

// Do calls fn unless ctx is already done.
func (d *Direct) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
	return nil
}
