package rerp

import (
	"github.com/cwbudde/algo-rerp/reject"
	"github.com/cwbudde/algo-rerp/signal"
)

type rejectionMode int

const (
	rejectionDisabled rejectionMode = iota
	rejectionDefaults
	rejectionCustom
)

// Rejection selects how artifact screening is configured: disabled, the
// detector's default thresholds, or a custom channel-type threshold map.
// The zero value disables rejection.
type Rejection struct {
	mode          rejectionMode
	thresholds    map[signal.ChannelType]float64
	windowSeconds float64
}

// RejectionDisabled turns artifact screening off.
func RejectionDisabled() Rejection {
	return Rejection{mode: rejectionDisabled}
}

// RejectionDefaults screens with reject.DefaultThresholds.
func RejectionDefaults() Rejection {
	return Rejection{mode: rejectionDefaults}
}

// RejectionThresholds screens with a custom channel-type threshold map.
func RejectionThresholds(thresholds map[signal.ChannelType]float64) Rejection {
	m := make(map[signal.ChannelType]float64, len(thresholds))
	for typ, v := range thresholds {
		m[typ] = v
	}

	return Rejection{mode: rejectionCustom, thresholds: m}
}

// enabled reports whether screening runs at all.
func (r Rejection) enabled() bool {
	return r.mode != rejectionDisabled
}

// resolvedThresholds returns the threshold map to hand to the detector.
func (r Rejection) resolvedThresholds() map[signal.ChannelType]float64 {
	if r.mode == rejectionCustom {
		return r.thresholds
	}

	return reject.DefaultThresholds()
}

// SegmentDetector is the bad-segment collaborator contract: it returns the
// half-open sample spans to exclude from the fit. reject.Detector is the
// stock implementation.
type SegmentDetector interface {
	Detect(rec *signal.Recording, thresholds map[signal.ChannelType]float64, windowSeconds float64) ([]signal.Span, error)
}

// Config collects the estimator settings.
type Config struct {
	Window            Window
	Covariates        map[string][]float64
	Rejection         Rejection
	Detector          SegmentDetector
	Factory           ResponseFactory
	EdgePolicy        EdgePolicy
	MaxDesignElements int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the estimator defaults: the [-0.1 s, 1.0 s) window,
// screening with default thresholds, events with out-of-range shifted onsets
// dropped, and the standard design-size cap.
func DefaultConfig() Config {
	return Config{
		Window:            DefaultWindow(),
		Rejection:         RejectionDefaults(),
		Detector:          reject.NewDetector(),
		Factory:           NewResponse,
		EdgePolicy:        EdgeDrop,
		MaxDesignElements: DefaultMaxDesignElements,
	}
}

// WithWindow sets both window bounds.
func WithWindow(w Window) Option {
	return func(cfg *Config) {
		cfg.Window = w
	}
}

// WithTMin sets the lower window bound.
func WithTMin(b Bound) Option {
	return func(cfg *Config) {
		cfg.Window.TMin = b
	}
}

// WithTMax sets the upper window bound.
func WithTMax(b Bound) Option {
	return func(cfg *Config) {
		cfg.Window.TMax = b
	}
}

// WithCovariates adds continuous conditions, one value per event row.
func WithCovariates(covariates map[string][]float64) Option {
	return func(cfg *Config) {
		cfg.Covariates = covariates
	}
}

// WithRejection sets the artifact screening mode.
func WithRejection(r Rejection) Option {
	return func(cfg *Config) {
		cfg.Rejection = r
	}
}

// WithRejectionWindow sets the screening window length in seconds.
func WithRejectionWindow(seconds float64) Option {
	return func(cfg *Config) {
		cfg.Rejection.windowSeconds = seconds
	}
}

// WithDetector replaces the bad-segment detector.
func WithDetector(d SegmentDetector) Option {
	return func(cfg *Config) {
		if d != nil {
			cfg.Detector = d
		}
	}
}

// WithResponseFactory replaces the response container constructor.
func WithResponseFactory(f ResponseFactory) Option {
	return func(cfg *Config) {
		if f != nil {
			cfg.Factory = f
		}
	}
}

// WithEdgePolicy sets the handling of events whose shifted onset falls
// outside the recording.
func WithEdgePolicy(p EdgePolicy) Option {
	return func(cfg *Config) {
		cfg.EdgePolicy = p
	}
}

// WithMaxDesignElements caps the design matrix size in float64 entries.
// Zero disables the cap.
func WithMaxDesignElements(n int) Option {
	return func(cfg *Config) {
		cfg.MaxDesignElements = n
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
