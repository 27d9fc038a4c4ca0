package rerp

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-rerp/reject"
	"github.com/cwbudde/algo-rerp/signal"
)

// Estimator runs the regression-based deconvolution pipeline.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an estimator with the given options applied to the
// defaults.
func NewEstimator(opts ...Option) *Estimator {
	return &Estimator{cfg: ApplyOptions(opts...)}
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config {
	return e.cfg
}

// ConditionOrder returns the stable condition order used to lay out the
// predictor blocks: event-ID conditions sorted by name, then covariate
// conditions sorted by name.
func ConditionOrder(eventID map[string][]int, covariates map[string][]float64) []string {
	binary := make([]string, 0, len(eventID))
	for name := range eventID {
		binary = append(binary, name)
	}

	sort.Strings(binary)

	continuous := make([]string, 0, len(covariates))
	for name := range covariates {
		continuous = append(continuous, name)
	}

	sort.Strings(continuous)

	return append(binary, continuous...)
}

// Estimate fits one overlap-corrected response per condition from the
// continuous recording. eventID maps condition names to one or more event
// codes; continuous conditions come from the configured covariates. The
// returned map holds exactly one response per condition. Any failure aborts
// the whole call; no partial results are returned.
func (e *Estimator) Estimate(rec *signal.Recording, events []signal.Event, eventID map[string][]int) (map[string]*Response, error) {
	conds, err := e.prepareConditions(rec, events, eventID)
	if err != nil {
		return nil, err
	}

	windows, err := resolveWindows(e.cfg.Window, conditionNames(conds), rec.SampleRate)
	if err != nil {
		return nil, err
	}

	for _, c := range conds {
		c.win = windows[c.name]
	}

	for _, c := range conds {
		if err := buildIndicator(c, rec.NumSamples(), events, e.cfg.EdgePolicy); err != nil {
			return nil, err
		}
	}

	rejected, err := e.detectBadSegments(rec)
	if err != nil {
		return nil, err
	}

	x, y, _, err := assembleDesign(rec, conds, rejected, e.cfg.MaxDesignElements)
	if err != nil {
		return nil, err
	}

	b, err := solveJoint(x, y)
	if err != nil {
		return nil, err
	}

	return reconstructResponses(b, conds, rec.SampleRate, e.cfg.Factory), nil
}

// prepareConditions validates the inputs and lays out the condition list in
// its stable order. All configuration errors surface here, before any matrix
// is built.
func (e *Estimator) prepareConditions(rec *signal.Recording, events []signal.Event, eventID map[string][]int) ([]*condition, error) {
	if rec == nil || rec.NumChannels() == 0 || rec.NumSamples() == 0 {
		return nil, fmt.Errorf("%w: empty recording", ErrConfiguration)
	}

	if rec.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %g", ErrConfiguration, rec.SampleRate)
	}

	if len(eventID)+len(e.cfg.Covariates) == 0 {
		return nil, fmt.Errorf("%w: empty condition set", ErrConfiguration)
	}

	for name, values := range e.cfg.Covariates {
		if _, dup := eventID[name]; dup {
			return nil, fmt.Errorf("%w: condition %q is both an event condition and a covariate",
				ErrConfiguration, name)
		}

		if len(values) != len(events) {
			return nil, fmt.Errorf("%w: covariate %q has %d values for %d events",
				ErrConfiguration, name, len(values), len(events))
		}
	}

	for name, codes := range eventID {
		if len(codes) == 0 {
			return nil, fmt.Errorf("%w: condition %q has no event codes", ErrConfiguration, name)
		}
	}

	if e.cfg.Rejection.mode == rejectionCustom {
		if err := reject.ValidateThresholds(e.cfg.Rejection.thresholds); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	conds := make([]*condition, 0, len(eventID)+len(e.cfg.Covariates))
	for _, name := range ConditionOrder(eventID, e.cfg.Covariates) {
		if codes, ok := eventID[name]; ok {
			conds = append(conds, &condition{name: name, codes: codes})
		} else {
			conds = append(conds, &condition{name: name, covariate: e.cfg.Covariates[name]})
		}
	}

	return conds, nil
}

// detectBadSegments runs the configured detector when screening is enabled.
func (e *Estimator) detectBadSegments(rec *signal.Recording) ([]signal.Span, error) {
	if !e.cfg.Rejection.enabled() {
		return nil, nil
	}

	windowSeconds := e.cfg.Rejection.windowSeconds
	if windowSeconds == 0 {
		windowSeconds = reject.DefaultWindowSeconds
	}

	spans, err := e.cfg.Detector.Detect(rec, e.cfg.Rejection.resolvedThresholds(), windowSeconds)
	if err != nil {
		return nil, fmt.Errorf("rerp: segment detection failed: %w", err)
	}

	return spans, nil
}

func conditionNames(conds []*condition) []string {
	out := make([]string, len(conds))
	for i, c := range conds {
		out[i] = c.name
	}

	return out
}
