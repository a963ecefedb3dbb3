package wavefront

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// ParallelFor is the parallel-for-with-barrier primitive: it applies fn to
// every position in [0, width) and returns only once all positions have
// completed. fn must be safe to run concurrently for distinct positions and
// must not write state shared across positions. Narrow ranges run inline;
// wide ranges fan out over a bounded conc pool, with the pool's Wait acting
// as the barrier.
func ParallelFor(ctx context.Context, width, maxWorkers, inlineBelow int, fn func(p int)) error {
	if width <= 0 {
		return nil
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if width < inlineBelow || maxWorkers == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		for p := 0; p < width; p++ {
			fn(p)
		}
		return nil
	}

	workers := min(maxWorkers, width)
	chunk := (width + workers - 1) / workers

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for start := 0; start < width; start += chunk {
		end := min(start+chunk, width)
		p.Go(func(ctx context.Context) error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	return p.Wait()
}
