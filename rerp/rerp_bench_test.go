package rerp

import (
	"testing"

	"github.com/cwbudde/algo-rerp/signal"
)

// benchRecording builds a minute of two-channel data at 250 Hz with two
// interleaved conditions and irregular event spacing.
func benchRecording(b *testing.B) (*signal.Recording, []signal.Event) {
	b.Helper()

	var events []signal.Event
	for s := 200; s < 14500; s += 140 {
		events = append(events, signal.Event{Sample: s, Code: 1})
		events = append(events, signal.Event{Sample: s + 35 + (s/140)%45, Code: 2})
	}

	kernels := map[int][]float64{
		1: signal.HalfSine(80, 1.0),
		2: signal.HalfSine(60, -0.5),
	}

	gen := signal.NewGenerator(250, signal.WithSeed(3))

	rec, err := gen.EventRecording(2, 15000, events, kernels, 0.01)
	if err != nil {
		b.Fatalf("EventRecording: %v", err)
	}

	return rec, events
}

func BenchmarkEstimate(b *testing.B) {
	rec, events := benchRecording(b)
	eventID := map[string][]int{"target": {1}, "distractor": {2}}
	est := NewEstimator(WithTMin(Seconds(-0.1)), WithTMax(Seconds(0.4)))

	b.ResetTimer()

	for b.Loop() {
		if _, err := est.Estimate(rec, events, eventID); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssembleDesign(b *testing.B) {
	rec, events := benchRecording(b)

	win := lagWindow{tmin: -25, tmax: 100}
	conds := []*condition{
		{name: "target", codes: []int{1}, win: win},
		{name: "distractor", codes: []int{2}, win: win},
	}

	for _, c := range conds {
		if err := buildIndicator(c, rec.NumSamples(), events, EdgeDrop); err != nil {
			b.Fatalf("buildIndicator: %v", err)
		}
	}

	b.ResetTimer()

	for b.Loop() {
		if _, _, _, err := assembleDesign(rec, conds, nil, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveJoint(b *testing.B) {
	rec, events := benchRecording(b)

	win := lagWindow{tmin: -25, tmax: 100}
	conds := []*condition{
		{name: "target", codes: []int{1}, win: win},
		{name: "distractor", codes: []int{2}, win: win},
	}

	for _, c := range conds {
		if err := buildIndicator(c, rec.NumSamples(), events, EdgeDrop); err != nil {
			b.Fatalf("buildIndicator: %v", err)
		}
	}

	x, y, _, err := assembleDesign(rec, conds, nil, 0)
	if err != nil {
		b.Fatalf("assembleDesign: %v", err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := solveJoint(x, y); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPredict(b *testing.B) {
	rec, events := benchRecording(b)
	eventID := map[string][]int{"target": {1}, "distractor": {2}}
	est := NewEstimator(WithTMin(Seconds(-0.1)), WithTMax(Seconds(0.4)))

	responses, err := est.Estimate(rec, events, eventID)
	if err != nil {
		b.Fatalf("Estimate: %v", err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := est.Predict(rec, events, eventID, responses); err != nil {
			b.Fatal(err)
		}
	}
}
