package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/mat"

	internal "github.com/ZanzyTHEbar/wavemetric/wmetric"
	"github.com/ZanzyTHEbar/wavemetric/wmetric/batch"
	"github.com/ZanzyTHEbar/wavemetric/wmetric/distmat"
	"github.com/ZanzyTHEbar/wavemetric/wmetric/wavefront"
)

// Engine computes batched Levenshtein distances over paired variable-length
// token sequences. Batches are described by two flat token arrays plus two
// offset descriptors; the result is one scalar per pair, in batch order,
// either a raw edit count or an error rate normalized by reference length.
//
// Validation is eager: a malformed batch fails before any matrix work starts
// and never produces partial output. Once validation passes, the batch runs
// to completion.
type Engine struct {
	normalize       bool
	maxWorkers      int
	inlineBelow     int
	pairParallelism int
	alloc           distmat.Allocator
	streamFactory   func(ctx context.Context) wavefront.Stream
	assertHandler   *assert.AssertHandler
	solver          *wavefront.Solver
}

// New creates an engine. Defaults: raw (unnormalized) distances, sequential
// across pairs, heap allocation, ordered in-process streams.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxWorkers:      internal.DefaultMaxWorkers,
		inlineBelow:     internal.DefaultParallelThreshold,
		pairParallelism: internal.DefaultPairParallelism,
		alloc:           distmat.HeapAllocator{},
		streamFactory: func(ctx context.Context) wavefront.Stream {
			return wavefront.NewOrderedStream(ctx)
		},
		assertHandler: assert.NewAssertHandler(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.solver = wavefront.NewSolver(
		wavefront.WithMaxWorkers(e.maxWorkers),
		wavefront.WithInlineThreshold(e.inlineBelow),
	)
	return e
}

// Distances computes the edit distance for every pair delimited by the two
// offset descriptors and returns them as a column vector ordered identically
// to the batch. hyp and ref are the flat token arrays; hypOffsets and
// refOffsets delimit the per-pair subsequences within them.
func (e *Engine) Distances(ctx context.Context, hyp []int64, hypOffsets batch.Offsets, ref []int64, refOffsets batch.Offsets) (*mat.VecDense, error) {
	layout, err := batch.Resolve(hypOffsets, refOffsets)
	if err != nil {
		return nil, err
	}
	if err := hypOffsets.CheckBounds(len(hyp)); err != nil {
		return nil, fmt.Errorf("hypothesis offsets: %w", err)
	}
	if err := refOffsets.CheckBounds(len(ref)); err != nil {
		return nil, fmt.Errorf("reference offsets: %w", err)
	}

	if layout.Len() == 0 {
		// Empty batch: nothing to compute. mat.NewVecDense rejects zero
		// lengths, so return the usable zero vector.
		return &mat.VecDense{}, nil
	}

	runID := uuid.NewString()
	start := time.Now()
	slog.Debug("batch resolved",
		"run_id", runID,
		"pairs", layout.Len(),
		"degenerate", layout.Degenerate().GetCardinality(),
		"normalize", e.normalize)

	out := e.alloc.Vector(layout.Len())

	if e.pairParallelism > 1 {
		err = e.computePairsParallel(ctx, layout, hyp, ref, out)
	} else {
		err = e.computePairsSequential(ctx, layout, hyp, ref, out)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("batch completed",
		"run_id", runID,
		"pairs", layout.Len(),
		"duration", time.Since(start))
	return out, nil
}

// computePairsSequential is the baseline host-side loop: pairs are processed
// strictly in batch order, one scratch matrix live at a time.
func (e *Engine) computePairsSequential(ctx context.Context, layout *batch.Layout, hyp, ref []int64, out *mat.VecDense) error {
	for _, pair := range layout.Pairs {
		if err := e.computePair(ctx, layout, pair, hyp, ref, out); err != nil {
			return err
		}
	}
	return nil
}

// computePairsParallel fans pairs out over a bounded pool. Pairs are
// mutually independent and write disjoint output slots, so the only effect
// on semantics is overlapping scratch lifetimes.
func (e *Engine) computePairsParallel(ctx context.Context, layout *batch.Layout, hyp, ref []int64, out *mat.VecDense) error {
	p := pool.New().WithMaxGoroutines(e.pairParallelism).WithContext(ctx)
	for _, pair := range layout.Pairs {
		p.Go(func(ctx context.Context) error {
			return e.computePair(ctx, layout, pair, hyp, ref, out)
		})
	}
	return p.Wait()
}

// computePair produces the scalar for one pair and writes its output slot.
// Degenerate pairs (empty hypothesis) take the closed form max(m,n) with no
// matrix; everything else goes through allocate, border-fill, wavefront,
// extract.
func (e *Engine) computePair(ctx context.Context, layout *batch.Layout, pair batch.PairSpan, hyp, ref []int64, out *mat.VecDense) error {
	m := int(pair.Hyp.Len)
	n := int(pair.Ref.Len)

	if layout.Degenerate().Contains(uint32(pair.Index)) {
		// Pure insertions: the reference length is the distance. A zero
		// reference length cannot reach here; Resolve rejects it.
		return e.writeResult(ctx, pair.Index, float64(max(m, n)), n, out)
	}

	hypSeq := hyp[pair.Hyp.Start : pair.Hyp.Start+pair.Hyp.Len]
	refSeq := ref[pair.Ref.Start : pair.Ref.Start+pair.Ref.Len]

	d := distmat.New(e.alloc, m, n)
	defer e.alloc.Release(d)

	stream := e.streamFactory(ctx)
	e.solver.Fill(stream, d, hypSeq, refSeq)
	if err := stream.Sync(); err != nil {
		return fmt.Errorf("pair %d: %w", pair.Index, err)
	}

	return e.writeResult(ctx, pair.Index, d.At(m, n), n, out)
}

// writeResult applies normalization and stores the scalar in the pair's
// output slot.
func (e *Engine) writeResult(ctx context.Context, index int, dist float64, refLen int, out *mat.VecDense) error {
	if e.normalize {
		if refLen == 0 {
			// Defense in depth; unreachable while Resolve enforces the
			// empty-reference precondition.
			return fmt.Errorf("%w: pair %d", batch.ErrInvalidNormalization, index)
		}
		dist /= float64(refLen)
	}
	e.assertHandler.Assert(ctx, index >= 0 && index < out.Len(), "output slot index within batch")
	out.SetVec(index, dist)
	return nil
}
