package wavefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagonalBounds(t *testing.T) {
	t.Run("square matrix", func(t *testing.T) {
		// m=3, n=3: diagonals 2..6
		lo, hi := DiagonalBounds(2, 3, 3)
		assert.Equal(t, 1, lo)
		assert.Equal(t, 1, hi)

		lo, hi = DiagonalBounds(4, 3, 3)
		assert.Equal(t, 1, lo)
		assert.Equal(t, 3, hi)

		lo, hi = DiagonalBounds(6, 3, 3)
		assert.Equal(t, 3, lo)
		assert.Equal(t, 3, hi)
	})

	t.Run("wide matrix clamps to row count", func(t *testing.T) {
		lo, hi := DiagonalBounds(5, 2, 6)
		assert.Equal(t, 1, lo)
		assert.Equal(t, 2, hi)
	})

	t.Run("tall matrix clamps to column count", func(t *testing.T) {
		lo, hi := DiagonalBounds(7, 6, 2)
		assert.Equal(t, 5, lo)
		assert.Equal(t, 6, hi)
	})
}

func TestCellAt_EnumeratesEveryInteriorCellOnce(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 3}, {2, 6}, {6, 2}, {4, 7}} {
		m, n := dims[0], dims[1]
		seen := make(map[[2]int]int)
		for k := FirstDiagonal(); k <= LastDiagonal(m, n); k++ {
			for p := 0; p < Width(k, m, n); p++ {
				row, col := CellAt(k, p, m, n)
				require.Equal(t, k, row+col, "cell must lie on its diagonal")
				require.GreaterOrEqual(t, row, 1)
				require.LessOrEqual(t, row, m)
				require.GreaterOrEqual(t, col, 1)
				require.LessOrEqual(t, col, n)
				seen[[2]int{row, col}]++
			}
		}
		require.Len(t, seen, m*n, "m=%d n=%d", m, n)
		for cell, count := range seen {
			require.Equal(t, 1, count, "cell %v enumerated more than once", cell)
		}
	}
}

func TestWidth_SumsToInteriorSize(t *testing.T) {
	m, n := 5, 9
	total := 0
	for k := FirstDiagonal(); k <= LastDiagonal(m, n); k++ {
		total += Width(k, m, n)
	}
	assert.Equal(t, m*n, total)
}
