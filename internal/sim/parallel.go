package sim

import (
	"context"
	"sync"

	"github.com/san-kum/bungee/internal/dynamo"
)

// Sweep evaluates independent candidate systems concurrently. Every run
// gets a fresh simulator and integrator, so nothing is shared between
// goroutines beyond the read-only config.
type Sweep struct {
	newIntegrator func() dynamo.Integrator
	event         dynamo.Event
}

func NewSweep(newIntegrator func() dynamo.Integrator, event dynamo.Event) *Sweep {
	return &Sweep{newIntegrator: newIntegrator, event: event}
}

// Run simulates each system from its paired initial state. Results and
// errors are positional; a failed candidate leaves a nil result and its
// error in place rather than aborting the batch.
func (s *Sweep) Run(ctx context.Context, systems []dynamo.System, x0s []dynamo.State, cfg dynamo.Config) ([]*dynamo.Result, []error) {
	results := make([]*dynamo.Result, len(systems))
	errs := make([]error, len(systems))

	if len(x0s) != len(systems) {
		for i := range errs {
			errs[i] = dynamo.ErrDimensionMismatch
		}
		return results, errs
	}

	var wg sync.WaitGroup
	for i := range systems {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			runner := New(systems[idx], s.newIntegrator())
			if s.event != nil {
				runner.SetEvent(s.event)
			}
			results[idx], errs[idx] = runner.Run(ctx, x0s[idx], cfg)
		}(i)
	}
	wg.Wait()

	return results, errs
}
