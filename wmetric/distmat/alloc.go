package distmat

import (
	"math/bits"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Allocator provisions scratch matrices and output vectors keyed by shape.
// The engine requests one scratch matrix per non-degenerate pair and one
// output vector per batch; callers may supply their own allocator to control
// memory placement.
type Allocator interface {
	Matrix(rows, cols int) *mat.Dense
	Vector(n int) *mat.VecDense
	Release(m *mat.Dense)
}

// HeapAllocator allocates fresh buffers on every request. It is the default
// for sequential-across-pairs processing, where at most one scratch matrix
// is live at a time.
type HeapAllocator struct{}

func (HeapAllocator) Matrix(rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, nil)
}

func (HeapAllocator) Vector(n int) *mat.VecDense {
	return mat.NewVecDense(n, nil)
}

func (HeapAllocator) Release(m *mat.Dense) {}

// PooledAllocator recycles matrix backing slices through size-bucketed
// sync.Pools. Useful under pair parallelism, where scratch lifetimes overlap
// and per-pair allocation would churn the GC.
type PooledAllocator struct {
	mu      sync.Mutex
	buckets map[int]*sync.Pool
}

// NewPooledAllocator creates an allocator with empty buckets.
func NewPooledAllocator() *PooledAllocator {
	return &PooledAllocator{buckets: make(map[int]*sync.Pool)}
}

// bucketFor rounds n up to the next power of two so that nearby shapes share
// a pool.
func bucketFor(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func (pa *PooledAllocator) pool(bucket int) *sync.Pool {
	pa.mu.Lock()
	defer pa.mu.Unlock()
	p, ok := pa.buckets[bucket]
	if !ok {
		p = &sync.Pool{New: func() any {
			return make([]float64, bucket)
		}}
		pa.buckets[bucket] = p
	}
	return p
}

func (pa *PooledAllocator) Matrix(rows, cols int) *mat.Dense {
	need := rows * cols
	bucket := bucketFor(need)
	backing := pa.pool(bucket).Get().([]float64)
	// Every cell is overwritten by the border fill and the wavefront, so the
	// recycled slice is handed out without zeroing.
	return mat.NewDense(rows, cols, backing[:need])
}

func (pa *PooledAllocator) Vector(n int) *mat.VecDense {
	return mat.NewVecDense(n, nil)
}

// Release returns the matrix backing slice to its bucket.
func (pa *PooledAllocator) Release(m *mat.Dense) {
	if m == nil {
		return
	}
	raw := m.RawMatrix()
	data := raw.Data[:cap(raw.Data)]
	bucket := bucketFor(cap(data))
	if bucket != cap(data) {
		// Backing did not originate from a bucket; drop it.
		return
	}
	pa.pool(bucket).Put(data)
}
