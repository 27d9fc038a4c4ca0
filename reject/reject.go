// Package reject flags artifact segments in a continuous recording by
// peak-to-peak amplitude screening: the recording is scanned in fixed-length
// windows, and a window where any channel's max-minus-min amplitude exceeds
// the threshold for its channel type is reported as a bad segment.
package reject

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-rerp/signal"
)

// Errors returned by the detector.
var (
	ErrNoData             = errors.New("reject: recording has no samples")
	ErrInvalidWindow      = errors.New("reject: window length must be positive")
	ErrUnknownChannelType = errors.New("reject: unknown channel type in thresholds")
)

// DefaultWindowSeconds is the scan window length used when none is given.
const DefaultWindowSeconds = 1.0

// DefaultThresholds returns the standard peak-to-peak thresholds per channel
// type. Values follow common M/EEG practice: T/m for gradiometers, T for
// magnetometers, V for EEG and EOG.
func DefaultThresholds() map[signal.ChannelType]float64 {
	return map[signal.ChannelType]float64{
		signal.TypeGrad: 4000e-12,
		signal.TypeMag:  4e-11,
		signal.TypeEEG:  40e-5,
		signal.TypeEOG:  250e-5,
	}
}

// knownTypes lists the channel types a threshold map may address.
var knownTypes = map[signal.ChannelType]bool{
	signal.TypeGrad: true,
	signal.TypeMag:  true,
	signal.TypeEEG:  true,
	signal.TypeEOG:  true,
	signal.TypeECG:  true,
}

// ValidateThresholds rejects threshold maps that address channel types the
// detector does not know about.
func ValidateThresholds(thresholds map[signal.ChannelType]float64) error {
	for typ := range thresholds {
		if !knownTypes[typ] {
			return fmt.Errorf("%w: %q", ErrUnknownChannelType, typ)
		}
	}

	return nil
}

// Detector screens recordings for bad segments.
type Detector struct{}

// NewDetector creates a peak-to-peak segment detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect scans rec in consecutive windows of windowSeconds and returns the
// half-open sample spans where any thresholded channel exceeds its
// peak-to-peak limit. Channels whose type has no entry in thresholds are
// skipped. A windowSeconds of 0 selects DefaultWindowSeconds.
func (d *Detector) Detect(rec *signal.Recording, thresholds map[signal.ChannelType]float64, windowSeconds float64) ([]signal.Span, error) {
	if rec == nil || rec.NumSamples() == 0 {
		return nil, ErrNoData
	}

	if err := ValidateThresholds(thresholds); err != nil {
		return nil, err
	}

	if windowSeconds == 0 {
		windowSeconds = DefaultWindowSeconds
	}

	if windowSeconds < 0 {
		return nil, fmt.Errorf("%w: %g s", ErrInvalidWindow, windowSeconds)
	}

	step := int(windowSeconds * rec.SampleRate)
	if step < 1 {
		step = 1
	}

	numSamples := rec.NumSamples()

	var spans []signal.Span

	for start := 0; start < numSamples; start += step {
		end := start + step
		if end > numSamples {
			end = numSamples
		}

		if windowExceeds(rec, thresholds, start, end) {
			spans = append(spans, signal.Span{Start: start, End: end})
		}
	}

	return spans, nil
}

// windowExceeds reports whether any thresholded channel's peak-to-peak
// amplitude in [start, end) exceeds its limit.
func windowExceeds(rec *signal.Recording, thresholds map[signal.ChannelType]float64, start, end int) bool {
	for ch, row := range rec.Data {
		limit, ok := thresholds[rec.ChannelType(ch)]
		if !ok {
			continue
		}

		lo, hi := row[start], row[start]
		for t := start + 1; t < end; t++ {
			v := row[t]
			if v < lo {
				lo = v
			}

			if v > hi {
				hi = v
			}
		}

		if hi-lo > limit {
			return true
		}
	}

	return false
}
