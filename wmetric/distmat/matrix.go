package distmat

import (
	"gonum.org/v1/gonum/mat"
)

// New provisions a bordered (m+1)x(n+1) distance matrix for one pair of
// sequence lengths and fills its base cases: column 0 counts deletions
// (0..m), row 0 counts insertions (0..n). The two border fills touch
// disjoint cells apart from cell(0,0)=0 and depend only on their own index.
func New(alloc Allocator, m, n int) *mat.Dense {
	d := alloc.Matrix(m+1, n+1)
	InitBorders(d)
	return d
}

// InitBorders writes the base-case row and column of a bordered distance
// matrix in place.
func InitBorders(d *mat.Dense) {
	rows, cols := d.Dims()
	for i := 0; i < rows; i++ {
		d.Set(i, 0, float64(i))
	}
	for j := 0; j < cols; j++ {
		d.Set(0, j, float64(j))
	}
}
