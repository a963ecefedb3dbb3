package wavefront

// Diagonal index math for an (m+1)x(n+1) bordered distance matrix. Cells
// sharing the same row+col sum form one anti-diagonal: they are mutually
// independent and depend only on the two previous diagonals, which is what
// lets a whole diagonal run concurrently. These functions are pure so the
// enumeration can be tested without any parallel machinery.

// DiagonalBounds returns the inclusive row range [lo, hi] of the valid
// interior cells on diagonal k. Row 0 and column 0 are border cells and
// never part of a diagonal's work.
func DiagonalBounds(k, m, n int) (lo, hi int) {
	lo = max(1, k-n)
	hi = min(m, k-1)
	return lo, hi
}

// Width returns the number of interior cells on diagonal k.
func Width(k, m, n int) int {
	lo, hi := DiagonalBounds(k, m, n)
	return hi - lo + 1
}

// CellAt maps a linear slice position p on diagonal k to its matrix
// coordinate. Position 0 is the lowest valid row; row+col = k always holds.
func CellAt(k, p, m, n int) (row, col int) {
	lo, _ := DiagonalBounds(k, m, n)
	row = lo + p
	col = k - row
	return row, col
}

// FirstDiagonal and LastDiagonal delimit the interior diagonals of an
// (m+1)x(n+1) matrix; diagonals 0 and 1 are fully covered by the borders.
func FirstDiagonal() int { return 2 }

func LastDiagonal(m, n int) int { return m + n }
