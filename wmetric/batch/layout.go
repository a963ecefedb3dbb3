package batch

import (
	"fmt"

	roaring "github.com/RoaringBitmap/roaring"
)

// Offsets is an offset descriptor: an ordered sequence of monotonically
// non-decreasing boundaries delimiting variable-length subsequences packed
// into one flat token array. N+1 boundaries describe N subsequences; the
// i-th subsequence spans [Offsets[i], Offsets[i+1]).
type Offsets []int64

// Validate checks structural well-formedness of the descriptor.
func (o Offsets) Validate() error {
	if len(o) == 0 {
		return ErrOffsetsEmpty
	}
	for i := 1; i < len(o); i++ {
		if o[i] < o[i-1] {
			return fmt.Errorf("%w: offset[%d]=%d < offset[%d]=%d", ErrOffsetsNotMonotonic, i, o[i], i-1, o[i-1])
		}
	}
	return nil
}

// PairCount returns the number of subsequences the descriptor delimits.
func (o Offsets) PairCount() int {
	if len(o) == 0 {
		return 0
	}
	return len(o) - 1
}

// SpanAt returns the (start, length) of the i-th subsequence.
func (o Offsets) SpanAt(i int) Span {
	return Span{Start: o[i], Len: o[i+1] - o[i]}
}

// CheckBounds verifies that the descriptor stays within a flat token array
// of the given length.
func (o Offsets) CheckBounds(tokens int) error {
	if len(o) == 0 {
		return ErrOffsetsEmpty
	}
	if o[0] < 0 || o[len(o)-1] > int64(tokens) {
		return fmt.Errorf("%w: descriptor covers [%d, %d) but token array has %d tokens",
			ErrOffsetsOutOfRange, o[0], o[len(o)-1], tokens)
	}
	return nil
}

// Span locates one subsequence inside a flat token array.
type Span struct {
	Start int64
	Len   int64
}

// PairSpan is the resolved layout of one hypothesis/reference pair.
type PairSpan struct {
	Index int
	Hyp   Span
	Ref   Span
}

// Layout is the resolved view of a whole batch: one PairSpan per pair, in
// batch order, plus a bitmap of the degenerate pairs (empty hypothesis).
// A Layout is immutable once resolved.
type Layout struct {
	Pairs      []PairSpan
	degenerate *roaring.Bitmap
}

// Resolve derives per-pair sequence boundaries from the two offset
// descriptors and validates the batch-level preconditions: equal pair
// counts, well-formed descriptors, and no zero-length reference. The
// empty-reference check applies regardless of whether normalization was
// requested.
func Resolve(hypOffsets, refOffsets Offsets) (*Layout, error) {
	if err := hypOffsets.Validate(); err != nil {
		return nil, fmt.Errorf("hypothesis offsets: %w", err)
	}
	if err := refOffsets.Validate(); err != nil {
		return nil, fmt.Errorf("reference offsets: %w", err)
	}
	if hypOffsets.PairCount() != refOffsets.PairCount() {
		return nil, fmt.Errorf("%w: %d hypothesis pairs vs %d reference pairs",
			ErrBatchSizeMismatch, hypOffsets.PairCount(), refOffsets.PairCount())
	}

	n := hypOffsets.PairCount()
	layout := &Layout{
		Pairs:      make([]PairSpan, 0, n),
		degenerate: roaring.New(),
	}
	for i := 0; i < n; i++ {
		hyp := hypOffsets.SpanAt(i)
		ref := refOffsets.SpanAt(i)
		if ref.Len == 0 {
			return nil, fmt.Errorf("%w: pair %d", ErrEmptyReference, i)
		}
		if hyp.Len == 0 {
			layout.degenerate.Add(uint32(i))
		}
		layout.Pairs = append(layout.Pairs, PairSpan{Index: i, Hyp: hyp, Ref: ref})
	}
	return layout, nil
}

// Len returns the number of pairs in the batch.
func (l *Layout) Len() int {
	return len(l.Pairs)
}

// Degenerate returns the set of pair indices whose hypothesis is empty.
// Zero-length references never appear here; Resolve rejects them outright.
func (l *Layout) Degenerate() *roaring.Bitmap {
	return l.degenerate
}
