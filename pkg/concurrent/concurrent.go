package concurrent

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every item with at most limit goroutines in
// flight. A limit below one means GOMAXPROCS. The first error cancels ctx for
// the remaining actions and is returned once all of them finish.
func ForEach[T any](parent context.Context, items []T, limit int, action func(context.Context, int, T) error) error {
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(workers(limit))

	for idx, item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return action(ctx, idx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return parent.Err()
}

// Map applies mapFn to every item concurrently and keeps the input order in
// the result.
func Map[T, R any](ctx context.Context, items []T, limit int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	err := ForEach(ctx, items, limit, func(ctx context.Context, idx int, item T) error {
		r, err := mapFn(ctx, item)
		if err != nil {
			return err
		}
		out[idx] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func workers(limit int) int {
	if limit < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return limit
}
