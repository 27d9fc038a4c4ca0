package signal

import (
	"math"
	"testing"
)

func TestEventRecordingPlacesKernels(t *testing.T) {
	events := []Event{{Sample: 10, Code: 1}, {Sample: 50, Code: 1}}
	kernel := []float64{1, 2, 3}

	gen := NewGenerator(100)

	rec, err := gen.EventRecording(2, 100, events, map[int][]float64{1: kernel}, 0)
	if err != nil {
		t.Fatalf("EventRecording: %v", err)
	}

	for ch := 0; ch < 2; ch++ {
		gain := 1 + 0.25*float64(ch)

		for _, ev := range events {
			for i, v := range kernel {
				got := rec.Data[ch][ev.Sample+i]
				if math.Abs(got-gain*v) > 1e-15 {
					t.Fatalf("ch %d sample %d: got %v, want %v", ch, ev.Sample+i, got, gain*v)
				}
			}
		}

		// Quiet outside the kernels.
		if rec.Data[ch][5] != 0 || rec.Data[ch][30] != 0 {
			t.Fatalf("ch %d: unexpected energy outside events", ch)
		}
	}
}

func TestEventRecordingOverlapSums(t *testing.T) {
	events := []Event{{Sample: 10, Code: 1}, {Sample: 11, Code: 1}}
	kernel := []float64{1, 1}

	gen := NewGenerator(100)

	rec, err := gen.EventRecording(1, 20, events, map[int][]float64{1: kernel}, 0)
	if err != nil {
		t.Fatalf("EventRecording: %v", err)
	}

	// Sample 11 receives mass from both events.
	if rec.Data[0][11] != 2 {
		t.Fatalf("overlap sample = %v, want 2", rec.Data[0][11])
	}
}

func TestEventRecordingTruncatesAtEnd(t *testing.T) {
	events := []Event{{Sample: 8, Code: 1}}
	kernel := []float64{1, 1, 1, 1}

	gen := NewGenerator(100)

	rec, err := gen.EventRecording(1, 10, events, map[int][]float64{1: kernel}, 0)
	if err != nil {
		t.Fatalf("EventRecording: %v", err)
	}

	if rec.Data[0][8] != 1 || rec.Data[0][9] != 1 {
		t.Fatalf("kernel head missing: %v", rec.Data[0][8:])
	}
}

func TestEventRecordingDeterministicNoise(t *testing.T) {
	events := []Event{{Sample: 10, Code: 1}}
	kernels := map[int][]float64{1: {1}}

	a, err := NewGenerator(100, WithSeed(42)).EventRecording(1, 50, events, kernels, 0.1)
	if err != nil {
		t.Fatalf("EventRecording: %v", err)
	}

	b, err := NewGenerator(100, WithSeed(42)).EventRecording(1, 50, events, kernels, 0.1)
	if err != nil {
		t.Fatalf("EventRecording: %v", err)
	}

	for i := range a.Data[0] {
		if a.Data[0][i] != b.Data[0][i] {
			t.Fatalf("non-deterministic at sample %d", i)
		}
	}
}

func TestEventRecordingErrors(t *testing.T) {
	gen := NewGenerator(100)

	if _, err := gen.EventRecording(1, 10, []Event{{Sample: 2, Code: 9}}, map[int][]float64{1: {1}}, 0); err == nil {
		t.Fatalf("unknown code accepted")
	}

	if _, err := gen.EventRecording(1, 10, []Event{{Sample: 99, Code: 1}}, map[int][]float64{1: {1}}, 0); err == nil {
		t.Fatalf("out-of-range event accepted")
	}

	if _, err := gen.EventRecording(0, 10, nil, nil, 0); err == nil {
		t.Fatalf("zero channels accepted")
	}
}

func TestHalfSine(t *testing.T) {
	k := HalfSine(10, 2)

	if len(k) != 10 {
		t.Fatalf("len = %d, want 10", len(k))
	}

	if k[0] != 0 {
		t.Fatalf("k[0] = %v, want 0", k[0])
	}

	peak := 0.0
	for _, v := range k {
		if v < 0 {
			t.Fatalf("negative sample %v in half sine", v)
		}

		if v > peak {
			peak = v
		}
	}

	if math.Abs(peak-2) > 0.1 {
		t.Fatalf("peak = %v, want about 2", peak)
	}
}

func TestInjectArtifact(t *testing.T) {
	rec, err := NewRecording([][]float64{make([]float64, 20)}, 100, nil)
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}

	if err := InjectArtifact(rec, Span{Start: 5, End: 9}, 3); err != nil {
		t.Fatalf("InjectArtifact: %v", err)
	}

	if rec.Data[0][5] != 3 || rec.Data[0][6] != -3 {
		t.Fatalf("burst not alternating: %v", rec.Data[0][5:9])
	}

	if rec.Data[0][4] != 0 || rec.Data[0][9] != 0 {
		t.Fatalf("burst leaked outside span")
	}

	if err := InjectArtifact(rec, Span{Start: 15, End: 30}, 1); err == nil {
		t.Fatalf("out-of-range span accepted")
	}
}
