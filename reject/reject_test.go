package reject

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-rerp/signal"
)

// eegRecording builds a quiet single-channel EEG recording.
func eegRecording(t *testing.T, numSamples int) *signal.Recording {
	t.Helper()

	data := [][]float64{make([]float64, numSamples)}
	for i := range data[0] {
		// Well under the default 40e-5 EEG peak-to-peak threshold.
		data[0][i] = 1e-5 * float64(i%3)
	}

	rec, err := signal.NewRecording(data, 100, []signal.Channel{{Name: "EEG 001", Type: signal.TypeEEG}})
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}

	return rec
}

func TestDetectFindsInjectedArtifact(t *testing.T) {
	rec := eegRecording(t, 1000)

	if err := signal.InjectArtifact(rec, signal.Span{Start: 430, End: 450}, 0.01); err != nil {
		t.Fatalf("InjectArtifact: %v", err)
	}

	// 1 s windows at 100 Hz: spans of 100 samples.
	spans, err := NewDetector().Detect(rec, DefaultThresholds(), 0)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(spans) != 1 {
		t.Fatalf("spans = %v, want exactly one", spans)
	}

	if spans[0].Start != 400 || spans[0].End != 500 {
		t.Fatalf("span = [%d, %d), want [400, 500)", spans[0].Start, spans[0].End)
	}
}

func TestDetectCleanRecording(t *testing.T) {
	rec := eegRecording(t, 1000)

	spans, err := NewDetector().Detect(rec, DefaultThresholds(), 1.0)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(spans) != 0 {
		t.Fatalf("spans = %v, want none", spans)
	}
}

func TestDetectCustomWindow(t *testing.T) {
	rec := eegRecording(t, 1000)

	if err := signal.InjectArtifact(rec, signal.Span{Start: 430, End: 450}, 0.01); err != nil {
		t.Fatalf("InjectArtifact: %v", err)
	}

	// 0.1 s windows: only the two 10-sample windows inside the burst trip.
	spans, err := NewDetector().Detect(rec, DefaultThresholds(), 0.1)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(spans) != 2 {
		t.Fatalf("spans = %v, want two", spans)
	}

	if spans[0].Start != 430 || spans[1].End != 450 {
		t.Fatalf("spans = %v, want [430,440) and [440,450)", spans)
	}
}

func TestDetectSkipsUnthresholdedChannels(t *testing.T) {
	// A misc channel with huge swings must not be screened.
	data := [][]float64{make([]float64, 200)}
	for i := range data[0] {
		data[0][i] = float64(i%2) * 100
	}

	rec, err := signal.NewRecording(data, 100, nil)
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}

	spans, err := NewDetector().Detect(rec, DefaultThresholds(), 1.0)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(spans) != 0 {
		t.Fatalf("spans = %v, want none for unthresholded channels", spans)
	}
}

func TestDetectUnknownChannelType(t *testing.T) {
	rec := eegRecording(t, 100)

	_, err := NewDetector().Detect(rec, map[signal.ChannelType]float64{"sts": 1}, 1.0)
	if !errors.Is(err, ErrUnknownChannelType) {
		t.Fatalf("err = %v, want ErrUnknownChannelType", err)
	}
}

func TestDetectInvalidInput(t *testing.T) {
	if _, err := NewDetector().Detect(nil, DefaultThresholds(), 1.0); !errors.Is(err, ErrNoData) {
		t.Fatalf("nil recording: err = %v, want ErrNoData", err)
	}

	rec := eegRecording(t, 100)

	if _, err := NewDetector().Detect(rec, DefaultThresholds(), -1); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("negative window: err = %v, want ErrInvalidWindow", err)
	}
}

func TestDetectThresholdIsExclusive(t *testing.T) {
	// Peak-to-peak exactly at the threshold does not trip the screen.
	data := [][]float64{make([]float64, 100)}
	data[0][10] = 40e-5

	rec, err := signal.NewRecording(data, 100, []signal.Channel{{Name: "EEG 001", Type: signal.TypeEEG}})
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}

	spans, err := NewDetector().Detect(rec, DefaultThresholds(), 1.0)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(spans) != 0 {
		t.Fatalf("spans = %v, want none at exact threshold", spans)
	}
}

func TestValidateThresholds(t *testing.T) {
	if err := ValidateThresholds(DefaultThresholds()); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}

	err := ValidateThresholds(map[signal.ChannelType]float64{signal.TypeMisc: 1})
	if !errors.Is(err, ErrUnknownChannelType) {
		t.Fatalf("err = %v, want ErrUnknownChannelType", err)
	}
}
