// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package domain

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ValidateDomains runs [Validator.ValidateDomain] on every name
// concurrently and returns the outcomes in input order.
//
// At most [WithConcurrency] names are validated at once. If ctx is
// cancelled, names not yet started get an Outcome whose Interrupted field
// holds ctx.Err(), and that error is also returned.
func (v *Validator) ValidateDomains(ctx context.Context, names ...string) ([]Outcome, error) {
	return v.ValidateEach(ctx, CheckAll, names...)
}

// ValidateEach is like [Validator.ValidateDomains] but runs only checks.
func (v *Validator) ValidateEach(ctx context.Context, checks Check, names ...string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(names))

	var g errgroup.Group
	g.SetLimit(v.cfg.Concurrency)

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			// Stop spawning; running goroutines are still waited for.
			for j := i; j < len(names); j++ {
				outcomes[j] = Outcome{
					Name:        v.parse(names[j]),
					Requested:   checks & CheckAll,
					Interrupted: err,
				}
			}
			break
		}

		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = Outcome{
						Name:        v.parse(name),
						Requested:   checks & CheckAll,
						Interrupted: fmt.Errorf("%w: %v", ErrInternalPanic, r),
					}
				}
			}()

			outcomes[i] = v.Validate(ctx, name, checks)
			return nil
		})
	}

	_ = g.Wait() // goroutines never return an error
	return outcomes, ctx.Err()
}
