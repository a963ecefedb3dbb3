package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsets_Validate(t *testing.T) {
	t.Run("accepts monotonically non-decreasing boundaries", func(t *testing.T) {
		assert.NoError(t, Offsets{0, 3, 3, 7}.Validate())
	})

	t.Run("rejects empty descriptor", func(t *testing.T) {
		err := Offsets{}.Validate()
		assert.ErrorIs(t, err, ErrOffsetsEmpty)
	})

	t.Run("rejects decreasing boundaries", func(t *testing.T) {
		err := Offsets{0, 5, 3}.Validate()
		assert.ErrorIs(t, err, ErrOffsetsNotMonotonic)
	})
}

func TestOffsets_SpanAt(t *testing.T) {
	offs := Offsets{0, 3, 3, 7}

	assert.Equal(t, 3, offs.PairCount())
	assert.Equal(t, Span{Start: 0, Len: 3}, offs.SpanAt(0))
	assert.Equal(t, Span{Start: 3, Len: 0}, offs.SpanAt(1))
	assert.Equal(t, Span{Start: 3, Len: 4}, offs.SpanAt(2))
}

func TestOffsets_CheckBounds(t *testing.T) {
	t.Run("within bounds", func(t *testing.T) {
		assert.NoError(t, Offsets{0, 3, 7}.CheckBounds(7))
	})

	t.Run("descriptor past end of token array", func(t *testing.T) {
		err := Offsets{0, 3, 9}.CheckBounds(7)
		assert.ErrorIs(t, err, ErrOffsetsOutOfRange)
	})
}

func TestResolve(t *testing.T) {
	t.Run("resolves per-pair spans in batch order", func(t *testing.T) {
		layout, err := Resolve(Offsets{0, 2, 6}, Offsets{0, 3, 5})
		require.NoError(t, err)
		require.Equal(t, 2, layout.Len())

		assert.Equal(t, PairSpan{Index: 0, Hyp: Span{0, 2}, Ref: Span{0, 3}}, layout.Pairs[0])
		assert.Equal(t, PairSpan{Index: 1, Hyp: Span{2, 4}, Ref: Span{3, 2}}, layout.Pairs[1])
		assert.True(t, layout.Degenerate().IsEmpty())
	})

	t.Run("fails when pair counts differ", func(t *testing.T) {
		// 2 hypothesis pairs vs 3 reference pairs
		_, err := Resolve(Offsets{0, 1, 2}, Offsets{0, 1, 2, 3})
		assert.ErrorIs(t, err, ErrBatchSizeMismatch)
	})

	t.Run("fails on zero-length reference regardless of normalization", func(t *testing.T) {
		_, err := Resolve(Offsets{0, 2, 4}, Offsets{0, 3, 3})
		assert.ErrorIs(t, err, ErrEmptyReference)
	})

	t.Run("tracks empty hypotheses as degenerate", func(t *testing.T) {
		layout, err := Resolve(Offsets{0, 0, 2, 2}, Offsets{0, 5, 8, 9})
		require.NoError(t, err)

		deg := layout.Degenerate()
		assert.True(t, deg.Contains(0))
		assert.False(t, deg.Contains(1))
		assert.True(t, deg.Contains(2))
		assert.Equal(t, uint64(2), deg.GetCardinality())
	})

	t.Run("propagates descriptor validation errors", func(t *testing.T) {
		_, err := Resolve(Offsets{0, 4, 2}, Offsets{0, 1, 2})
		assert.ErrorIs(t, err, ErrOffsetsNotMonotonic)

		_, err = Resolve(Offsets{0, 1}, Offsets{})
		assert.ErrorIs(t, err, ErrOffsetsEmpty)
	})
}
