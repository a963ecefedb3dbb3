package engine

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"github.com/ZanzyTHEbar/wavemetric/wmetric/config"
	"github.com/ZanzyTHEbar/wavemetric/wmetric/distmat"
	"github.com/ZanzyTHEbar/wavemetric/wmetric/wavefront"
)

// Option configures an Engine.
type Option func(*Engine)

// WithNormalize divides every distance by its reference length, yielding a
// relative error rate instead of a raw edit count.
func WithNormalize(normalize bool) Option {
	return func(e *Engine) {
		e.normalize = normalize
	}
}

// WithMaxWorkers bounds the goroutines fanned out per diagonal.
func WithMaxWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxWorkers = n
		}
	}
}

// WithInlineThreshold sets the diagonal width below which cells are computed
// inline rather than fanned out.
func WithInlineThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.inlineBelow = n
		}
	}
}

// WithPairParallelism processes up to n pairs concurrently. The default of 1
// keeps the host-side loop over pairs strictly sequential; pairs are
// independent, so any n preserves the per-pair results and output ordering.
func WithPairParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pairParallelism = n
		}
	}
}

// WithAllocator supplies the shape-keyed allocator used for scratch matrices
// and the output vector.
func WithAllocator(alloc distmat.Allocator) Option {
	return func(e *Engine) {
		if alloc != nil {
			e.alloc = alloc
		}
	}
}

// WithStreamFactory supplies the ordered work queue implementation; one
// stream is acquired per pair computation.
func WithStreamFactory(factory func(ctx context.Context) wavefront.Stream) Option {
	return func(e *Engine) {
		if factory != nil {
			e.streamFactory = factory
		}
	}
}

// WithAssertHandler supplies the assertion handler guarding internal
// invariants.
func WithAssertHandler(handler *assert.AssertHandler) Option {
	return func(e *Engine) {
		if handler != nil {
			e.assertHandler = handler
		}
	}
}

// FromConfig derives engine options from a loaded configuration.
func FromConfig(cfg *config.EngineConfig) Option {
	return func(e *Engine) {
		WithNormalize(cfg.Normalize)(e)
		WithMaxWorkers(cfg.MaxWorkers)(e)
		WithPairParallelism(cfg.PairParallelism)(e)
		WithInlineThreshold(cfg.ParallelThreshold)(e)
	}
}
