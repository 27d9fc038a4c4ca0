package rerp

import "errors"

// Error kinds returned by the estimator. Specific failures wrap one of these
// with additional context (condition names, dimensions), so callers can match
// the kind with errors.Is and still see the detail in the message.
var (
	// ErrConfiguration covers invalid inputs caught before any matrix work:
	// empty condition sets, bad windows, covariate length mismatches,
	// unknown channel types in rejection thresholds, oversized designs.
	ErrConfiguration = errors.New("rerp: invalid configuration")

	// ErrSingularDesign reports that the joint least-squares system is
	// rank-deficient or too ill-conditioned for a usable estimate.
	ErrSingularDesign = errors.New("rerp: design matrix is singular or ill-conditioned")

	// ErrEmptySelection reports that validity and artifact filtering left
	// no usable samples, either globally or for a single condition.
	ErrEmptySelection = errors.New("rerp: no usable samples after filtering")
)
