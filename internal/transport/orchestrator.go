package transport

import (
	"context"
	"errors"
	"fmt"

	"skewbot/internal/logger"
)

// Budget limits how many times the orchestrator re-enters the same transport
// path (each entry runs the fetcher's full retry loop) before rotating to the
// next path.
type Budget struct {
	AttemptsPerPath int
}

// Orchestrator composes the two resilience layers: the fetcher's exponential
// backoff handles path-independent failures such as rate limiting, while path
// rotation handles path-dependent ones such as regional blocking.
type Orchestrator struct {
	resolver *Resolver
	fetcher  *Fetcher
	budget   Budget
}

func NewOrchestrator(resolver *Resolver, fetcher *Fetcher, budget Budget) *Orchestrator {
	if budget.AttemptsPerPath < 1 {
		budget.AttemptsPerPath = 1
	}
	return &Orchestrator{resolver: resolver, fetcher: fetcher, budget: budget}
}

// Do runs call over the resolved path sequence and returns on the first
// success. Request-shape failures abort immediately: a malformed request is
// rejected by every mirror alike. When every path fails the returned
// ExhaustedError carries one summary per path.
func (o *Orchestrator) Do(ctx context.Context, call Call) error {
	paths := o.resolver.Resolve(ctx)
	if len(paths) == 0 {
		return fmt.Errorf("no transport paths available")
	}

	failures := make([]PathFailure, 0, len(paths))
	for _, path := range paths {
		var last error
		for round := 1; round <= o.budget.AttemptsPerPath; round++ {
			err := o.fetcher.Fetch(ctx, path, call)
			if err == nil {
				return nil
			}
			last = err

			var fatal *FatalError
			if errors.As(err, &fatal) {
				if !fatal.PathSpecific {
					return err
				}
				// Region block: this path will keep failing, move on.
				break
			}
		}
		logger.Warnf("transport path failed: %s: %v", path, last)
		failures = append(failures, PathFailure{Path: path.String(), Err: last})
	}
	return &ExhaustedError{Failures: failures}
}
