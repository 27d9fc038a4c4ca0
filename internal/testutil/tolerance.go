package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireMatNearlyEqual fails t if got and want differ in shape or if any
// entry pair exceeds eps (absolute tolerance).
func RequireMatNearlyEqual(t *testing.T, got, want mat.Matrix, eps float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for r := 0; r < gr; r++ {
		for c := 0; c < gc; c++ {
			diff := math.Abs(got.At(r, c) - want.At(r, c))
			if diff > eps {
				t.Fatalf("entry (%d,%d): got %v, want %v (diff %v > eps %v)",
					r, c, got.At(r, c), want.At(r, c), diff, eps)
			}
		}
	}
}

// RequireMatFinite fails t if any entry is NaN or Inf.
func RequireMatFinite(t *testing.T, m mat.Matrix) {
	t.Helper()
	rows, cols := m.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("entry (%d,%d): non-finite value %v", r, c, v)
			}
		}
	}
}
