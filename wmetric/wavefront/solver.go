package wavefront

import (
	"context"

	"gonum.org/v1/gonum/mat"

	internal "github.com/ZanzyTHEbar/wavemetric/wmetric"
)

// Solver fills the interior of a bordered distance matrix diagonal by
// diagonal. Within a diagonal every cell is computed concurrently; across
// diagonals the stream's ordering guarantee is the barrier, so no cell is
// read before the diagonals it depends on have completed.
type Solver struct {
	maxWorkers  int
	inlineBelow int
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithMaxWorkers bounds the number of goroutines fanned out per diagonal.
func WithMaxWorkers(n int) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.maxWorkers = n
		}
	}
}

// WithInlineThreshold sets the diagonal width below which a diagonal is
// computed inline instead of fanning out; goroutine dispatch costs more than
// a handful of cells.
func WithInlineThreshold(n int) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.inlineBelow = n
		}
	}
}

// NewSolver creates a solver with worker and threshold defaults.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		maxWorkers:  internal.DefaultMaxWorkers,
		inlineBelow: internal.DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fill enqueues the wavefront schedule for one hypothesis/reference pair
// onto the stream: one task per diagonal, in increasing diagonal order. The
// matrix must already have its borders initialized. Fill returns without
// waiting; completion is observed through the stream's Sync.
func (s *Solver) Fill(stream Stream, d *mat.Dense, hyp, ref []int64) {
	m, n := len(hyp), len(ref)
	for k := FirstDiagonal(); k <= LastDiagonal(m, n); k++ {
		stream.Enqueue(func(ctx context.Context) error {
			return s.fillDiagonal(ctx, d, hyp, ref, k)
		})
	}
}

// fillDiagonal computes every valid cell of diagonal k. Each position
// recomputes its substitution cost from the token slices and applies the
// three-way minimum over the deletion, insertion, and substitution
// predecessors. Positions write disjoint cells, so no locking is needed.
func (s *Solver) fillDiagonal(ctx context.Context, d *mat.Dense, hyp, ref []int64, k int) error {
	m, n := len(hyp), len(ref)
	return ParallelFor(ctx, Width(k, m, n), s.maxWorkers, s.inlineBelow, func(p int) {
		row, col := CellAt(k, p, m, n)
		cost := 1.0
		if hyp[row-1] == ref[col-1] {
			cost = 0
		}
		d.Set(row, col, min(
			d.At(row-1, col)+1,      // deletion
			d.At(row, col-1)+1,      // insertion
			d.At(row-1, col-1)+cost, // substitution
		))
	})
}
