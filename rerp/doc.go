// Package rerp estimates time-locked response waveforms from a continuous
// multichannel recording by regression instead of trial averaging.
//
// Overlapping events are handled by deconvolution: every condition is
// expanded into a lag-structured (Toeplitz) predictor block spanning its
// estimation window, the blocks are joined into one design matrix with an
// intercept, artifact-contaminated and uninformative samples are dropped,
// and a single least-squares fit across all channels recovers one
// channel-by-lag response per condition, net of overlap. When no response
// windows overlap, the estimate reduces to the classic time-locked average.
//
// # Usage
//
//	est := rerp.NewEstimator(
//		rerp.WithTMin(rerp.Seconds(-0.1)),
//		rerp.WithTMax(rerp.Seconds(0.5)),
//		rerp.WithRejection(rerp.RejectionDisabled()),
//	)
//
//	responses, err := est.Estimate(rec, events, map[string][]int{
//		"target":   {1},
//		"standard": {2, 3},
//	})
//
// Continuous predictors (one value per event) are added through
// WithCovariates and estimated alongside the binary conditions.
//
// The pipeline is a single-shot batch computation: it either returns one
// response per condition or fails with an error wrapping ErrConfiguration,
// ErrSingularDesign, or ErrEmptySelection. There are no partial results.
package rerp
