package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator synthesizes deterministic event-locked recordings.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for the given sampling rate.
func NewGenerator(sampleRate float64, opts ...Option) *Generator {
	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// SampleRate returns the generator sampling rate.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// EventRecording builds a recording of numChannels x numSamples where every
// event adds the kernel registered for its code, starting at the event
// sample. Channel ch sees the kernel scaled by 1 + 0.25*ch, so channels stay
// distinguishable. Kernel samples falling past the end of the recording are
// truncated. Optional white noise of the given amplitude is added per channel
// from the generator seed.
func (g *Generator) EventRecording(numChannels, numSamples int, events []Event, kernels map[int][]float64, noiseAmp float64) (*Recording, error) {
	if numChannels <= 0 {
		return nil, fmt.Errorf("event recording channels must be > 0: %d", numChannels)
	}

	if numSamples <= 0 {
		return nil, fmt.Errorf("event recording samples must be > 0: %d", numSamples)
	}

	if g.sampleRate <= 0 {
		return nil, fmt.Errorf("event recording sample rate must be > 0: %f", g.sampleRate)
	}

	data := make([][]float64, numChannels)
	rng := rand.New(rand.NewSource(g.seed))

	for ch := range data {
		row := make([]float64, numSamples)
		if noiseAmp > 0 {
			for i := range row {
				row[i] = (rng.Float64()*2 - 1) * noiseAmp
			}
		}

		data[ch] = row
	}

	for _, ev := range events {
		kernel, ok := kernels[ev.Code]
		if !ok {
			return nil, fmt.Errorf("event recording has no kernel for code %d", ev.Code)
		}

		if ev.Sample < 0 || ev.Sample >= numSamples {
			return nil, fmt.Errorf("event sample %d outside recording of %d samples", ev.Sample, numSamples)
		}

		for ch := range data {
			gain := 1 + 0.25*float64(ch)
			for i, v := range kernel {
				t := ev.Sample + i
				if t >= numSamples {
					break
				}

				data[ch][t] += gain * v
			}
		}
	}

	return NewRecording(data, g.sampleRate, nil)
}

// HalfSine returns a half-sine kernel of the given length and amplitude,
// a smooth single-peaked response shape for synthetic data.
func HalfSine(length int, amplitude float64) []float64 {
	out := make([]float64, length)
	if length <= 0 {
		return out
	}

	for i := range out {
		out[i] = amplitude * math.Sin(math.Pi*float64(i)/float64(length))
	}

	return out
}

// InjectArtifact adds a large alternating burst over the span to every
// channel, so peak-to-peak screening can pick it up.
func InjectArtifact(rec *Recording, span Span, amplitude float64) error {
	if rec == nil || rec.NumSamples() == 0 {
		return ErrNoSamples
	}

	if span.Start < 0 || span.End > rec.NumSamples() || span.Len() == 0 {
		return fmt.Errorf("signal: artifact span [%d, %d) outside recording of %d samples",
			span.Start, span.End, rec.NumSamples())
	}

	for _, row := range rec.Data {
		for t := span.Start; t < span.End; t++ {
			if (t-span.Start)%2 == 0 {
				row[t] += amplitude
			} else {
				row[t] -= amplitude
			}
		}
	}

	return nil
}
