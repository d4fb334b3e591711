package kernel

import (
	"container/list"
	"math"
	"sync"
)

// Matrix2 is a dense 2x2 unitary, the shape every single-qubit gate in this
// package reduces to.
type Matrix2 [2][2]complex128

// matrixKey identifies a cached matrix by gate name and the raw bit
// pattern of its parameter, so distinct float64 angles (even ones that
// differ only in their last bit) never collide.
type matrixKey struct {
	name  string
	param uint64
}

// MatrixCache memoizes derived gate matrices keyed by (gate name, bit
// pattern of parameter) with bounded capacity and LRU eviction.
type MatrixCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[matrixKey]*list.Element
	order    *list.List // front = most recently used
}

type cacheEntry struct {
	key matrixKey
	mat Matrix2
}

// NewMatrixCache returns a cache bounded to capacity entries (capacity <= 0
// defaults to 256).
func NewMatrixCache(capacity int) *MatrixCache {
	if capacity <= 0 {
		capacity = 256
	}
	return &MatrixCache{
		capacity: capacity,
		entries:  make(map[matrixKey]*list.Element),
		order:    list.New(),
	}
}

// GetOrCompute returns the cached matrix for (name, theta), computing and
// storing it via compute if absent.
func (c *MatrixCache) GetOrCompute(name string, theta float64, compute func() Matrix2) Matrix2 {
	key := matrixKey{name: name, param: math.Float64bits(theta)}

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		mat := el.Value.(*cacheEntry).mat
		c.mu.Unlock()
		return mat
	}
	c.mu.Unlock()

	mat := compute()

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).mat
	}
	el := c.order.PushFront(&cacheEntry{key: key, mat: mat})
	c.entries[key] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	return mat
}

// Len reports the number of cached entries.
func (c *MatrixCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// RxMatrix, RyMatrix, RzMatrix build the dense 2x2 unitary for each
// rotation gate; used by callers (e.g. a matrix-based simulator backend)
// that want the matrix form rather than the in-place kernel.
func RxMatrix(theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return Matrix2{{c, s}, {s, c}}
}

func RyMatrix(theta float64) Matrix2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix2{{c, -s}, {s, c}}
}

func RzMatrix(theta float64) Matrix2 {
	neg := complexExp(-theta / 2)
	pos := complexExp(theta / 2)
	return Matrix2{{neg, 0}, {0, pos}}
}

func complexExp(theta float64) complex128 {
	return complex(math.Cos(theta), math.Sin(theta))
}
