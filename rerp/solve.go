package rerp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// machineEps is the float64 unit roundoff, the base of the rank tolerance.
const machineEps = 0x1p-52

// solveJoint computes the single least-squares fit B = argmin ||Y - X*B||^2
// across all channels at once, returning B with one column per channel. The
// fit goes through a thin SVD so rank deficiency is detected explicitly:
// singular values below max(rows, cols) * machineEps relative to the largest
// count as zero, and any shortfall against the column count is reported as
// ErrSingularDesign. A plain QR solve may return finite, arbitrary
// coefficients with a nil error on an exactly rank-deficient system, so the
// rank check cannot be left to the solver.
func solveJoint(x, y *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, fmt.Errorf("%w: factorization did not converge", ErrSingularDesign)
	}

	rank := svd.Rank(float64(max(rows, cols)) * machineEps)
	if rank < cols {
		return nil, fmt.Errorf("%w: design has rank %d for %d columns", ErrSingularDesign, rank, cols)
	}

	var b mat.Dense
	svd.SolveTo(&b, y, rank)

	if hasNonFinite(&b) {
		return nil, fmt.Errorf("%w: solution contains non-finite coefficients", ErrSingularDesign)
	}

	return &b, nil
}

// hasNonFinite reports whether the matrix contains any NaN or Inf entry.
func hasNonFinite(m mat.Matrix) bool {
	rows, cols := m.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return true
			}
		}
	}

	return false
}
