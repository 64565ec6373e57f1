package index

import (
	"errors"
	"testing"

	"github.com/careerdex/careerdex/internal/domain"
)

func TestNewFlat_InvalidDimension(t *testing.T) {
	for _, dim := range []int{0, -1} {
		if _, err := NewFlat(dim); err == nil {
			t.Errorf("NewFlat(%d): expected error", dim)
		}
	}
}

func TestFlat_AddDimMismatch(t *testing.T) {
	f, err := NewFlat(3)
	if err != nil {
		t.Fatalf("NewFlat: %v", err)
	}

	err = f.Add([]float32{1, 2})
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("expected ErrVectorDimMismatch, got %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("Len = %d after rejected Add, want 0", f.Len())
	}
}

func TestFlat_SearchOrdersByDistance(t *testing.T) {
	f, err := NewFlat(2)
	if err != nil {
		t.Fatalf("NewFlat: %v", err)
	}
	vecs := [][]float32{
		{10, 0}, // row 0, distance 10
		{1, 0},  // row 1, distance 1
		{0, 3},  // row 2, distance 3
	}
	for _, v := range vecs {
		if err := f.Add(v); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	hits, err := f.Search([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	wantRows := []int{1, 2, 0}
	if len(hits) != len(wantRows) {
		t.Fatalf("got %d hits, want %d", len(hits), len(wantRows))
	}
	for i, hit := range hits {
		if hit.Row != wantRows[i] {
			t.Errorf("hits[%d].Row = %d, want %d", i, hit.Row, wantRows[i])
		}
	}
	if hits[0].Distance != 1 || hits[1].Distance != 3 || hits[2].Distance != 10 {
		t.Errorf("unexpected distances: %+v", hits)
	}
}

func TestFlat_SearchTieBreaksByRow(t *testing.T) {
	f, _ := NewFlat(2)
	// Equidistant from the origin.
	_ = f.Add([]float32{0, 1})
	_ = f.Add([]float32{1, 0})

	hits, err := f.Search([]float32{0, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if hits[0].Row != 0 || hits[1].Row != 1 {
		t.Errorf("expected row order 0,1 on equal distance, got %d,%d", hits[0].Row, hits[1].Row)
	}
}

func TestFlat_SearchKClamping(t *testing.T) {
	f, _ := NewFlat(2)
	_ = f.Add([]float32{1, 1})
	_ = f.Add([]float32{2, 2})

	hits, err := f.Search([]float32{0, 0}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("got %d hits for k beyond corpus size, want 2", len(hits))
	}
}

func TestFlat_SearchInvalidK(t *testing.T) {
	f, _ := NewFlat(2)
	_ = f.Add([]float32{1, 1})

	for _, k := range []int{0, -5} {
		if _, err := f.Search([]float32{0, 0}, k); !errors.Is(err, domain.ErrInvalidTopK) {
			t.Errorf("Search k=%d: expected ErrInvalidTopK, got %v", k, err)
		}
	}
}

func TestFlat_SearchQueryDimMismatch(t *testing.T) {
	f, _ := NewFlat(3)
	_ = f.Add([]float32{1, 2, 3})

	_, err := f.Search([]float32{1, 2}, 1)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("expected ErrVectorDimMismatch, got %v", err)
	}
}

func TestFlat_SearchEmptyIndex(t *testing.T) {
	f, _ := NewFlat(2)

	hits, err := f.Search([]float32{0, 0}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits from empty index, want 0", len(hits))
	}
}

func TestFlat_BinaryRoundTrip(t *testing.T) {
	f, _ := NewFlat(3)
	_ = f.Add([]float32{1, 2, 3})
	_ = f.Add([]float32{-0.5, 0, 7.25})

	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var restored Flat
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if restored.Dim() != 3 || restored.Len() != 2 {
		t.Fatalf("restored dim=%d len=%d, want dim=3 len=2", restored.Dim(), restored.Len())
	}

	hits, err := restored.Search([]float32{1, 2, 3}, 1)
	if err != nil {
		t.Fatalf("Search on restored index: %v", err)
	}
	if hits[0].Row != 0 || hits[0].Distance != 0 {
		t.Errorf("expected exact match on row 0, got %+v", hits[0])
	}
}

func TestFlat_UnmarshalBinary_Truncated(t *testing.T) {
	var f Flat
	if err := f.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated header")
	}
}

func TestFlat_UnmarshalBinary_LengthMismatch(t *testing.T) {
	src, _ := NewFlat(2)
	_ = src.Add([]float32{1, 2})
	data, _ := src.MarshalBinary()

	var f Flat
	if err := f.UnmarshalBinary(data[:len(data)-4]); err == nil {
		t.Error("expected error for short payload")
	}
}

func TestFlat_UnmarshalBinary_OversizedHeader(t *testing.T) {
	// dim and count at the uint32 ceiling make 8+4*dim*count wrap around;
	// the length check must reject the header instead of allocating.
	data := []byte{
		0x00, 0x00, 0x00, 0x80, // dim = 2^31
		0x00, 0x00, 0x00, 0x80, // count = 2^31
	}

	var f Flat
	if err := f.UnmarshalBinary(data); err == nil {
		t.Error("expected error for header larger than payload")
	}
	if f.Len() != 0 {
		t.Errorf("Len = %d after rejected decode, want 0", f.Len())
	}
}
