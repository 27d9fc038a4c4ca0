package rerp

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidLags is returned when a lag matrix is requested with a
// non-positive lag count or an empty base vector.
var ErrInvalidLags = errors.New("rerp: lag matrix needs a non-empty indicator and nLags > 0")

// LagMatrix expands an indicator vector into its T x nLags lag (Toeplitz)
// matrix: entry (t, l) is indicator[t-l] when t-l is a valid index, else 0.
// Column l is the base vector delayed by l samples, so an event whose
// indicator entry sits at sample s spreads across rows s..s+nLags-1. When
// events stand closer together than nLags their contributions sum row-wise,
// which is what lets the joint fit separate overlapping responses.
func LagMatrix(indicator []float64, nLags int) (*mat.Dense, error) {
	if len(indicator) == 0 || nLags <= 0 {
		return nil, ErrInvalidLags
	}

	out := mat.NewDense(len(indicator), nLags, nil)
	for t := 0; t < len(indicator); t++ {
		fillLagRow(out.RawRowView(t), indicator, t)
	}

	return out, nil
}

// fillLagRow writes row t of the lag matrix into dst: dst[l] = indicator[t-l]
// for l in [0, len(dst)), zero where t-l is out of range. Callers hand in a
// slice of exactly nLags entries.
func fillLagRow(dst []float64, indicator []float64, t int) {
	for l := range dst {
		src := t - l
		if src >= 0 && src < len(indicator) {
			dst[l] = indicator[src]
		} else {
			dst[l] = 0
		}
	}
}
