// Package index implements the flat nearest-neighbor index and its on-disk
// lifecycle. The index is exact brute-force L2: at corpus scale (hundreds of
// documents per domain) exactness wins over approximate structures.
package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/careerdex/careerdex/internal/domain"
)

// Flat is an ordered, append-only collection of fixed-dimension vectors with
// exact Euclidean k-NN search. Rows are appended during a build and never
// mutated afterwards; queries are read-only and safe to run concurrently.
type Flat struct {
	dim  int
	vecs [][]float32
}

// Hit is one k-NN match: the vector's row and its L2 distance to the query.
type Hit struct {
	Row      int
	Distance float64
}

// NewFlat creates an empty index of the given dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("index dimension must be positive, got %d", dim)
	}
	return &Flat{dim: dim}, nil
}

// Add appends a vector. All vectors must share the index dimension.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("%w: vector dim %d, index dim %d", domain.ErrVectorDimMismatch, len(vec), f.dim)
	}
	f.vecs = append(f.vecs, vec)
	return nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int { return len(f.vecs) }

// Dim returns the index dimension.
func (f *Flat) Dim() int { return f.dim }

// Search returns up to k hits ordered by ascending L2 distance, ties broken
// by ascending row for determinism.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query dim %d, index dim %d", domain.ErrVectorDimMismatch, len(query), f.dim)
	}
	if k < 1 {
		return nil, domain.ErrInvalidTopK
	}

	hits := make([]Hit, len(f.vecs))
	for i, vec := range f.vecs {
		hits[i] = Hit{Row: i, Distance: l2(query, vec)}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		return hits[a].Row < hits[b].Row
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func l2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// MarshalBinary encodes the index as little-endian:
// dim(uint32), count(uint32), then count*dim float32 values row by row.
func (f *Flat) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 8+4*f.dim*len(f.vecs))
	out = binary.LittleEndian.AppendUint32(out, uint32(f.dim))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(f.vecs)))
	for _, vec := range f.vecs {
		for _, v := range vec {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
	}
	return out, nil
}

// UnmarshalBinary restores an index written by MarshalBinary.
func (f *Flat) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return errors.New("flat index: truncated header")
	}
	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	count := int(binary.LittleEndian.Uint32(data[4:8]))
	if dim <= 0 {
		return fmt.Errorf("flat index: invalid dimension %d", dim)
	}
	// Divide instead of multiplying: 4*dim*count overflows int for header
	// values near the uint32 ceiling.
	payload := len(data) - 8
	if payload%(4*dim) != 0 || payload/(4*dim) != count {
		return fmt.Errorf("flat index: %d payload bytes do not hold %d vectors of dim %d",
			payload, count, dim)
	}

	vecs := make([][]float32, count)
	off := 8
	for i := 0; i < count; i++ {
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
			off += 4
		}
		vecs[i] = vec
	}

	f.dim = dim
	f.vecs = vecs
	return nil
}
