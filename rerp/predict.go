package rerp

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rerp/signal"
)

// Predict rebuilds the event-related part of the continuous signal implied
// by a set of fitted responses: every event adds its condition's estimated
// kernel, shifted to the event onset, with continuous conditions scaled by
// their covariate value. The intercept (per-channel baseline) is not
// included. On noise-free data with a well-conditioned design the result
// reproduces the input recording over the modelled samples.
func (e *Estimator) Predict(rec *signal.Recording, events []signal.Event, eventID map[string][]int, responses map[string]*Response) (*signal.Recording, error) {
	if rec == nil || rec.NumChannels() == 0 || rec.NumSamples() == 0 {
		return nil, fmt.Errorf("%w: empty recording", ErrConfiguration)
	}

	numSamples := rec.NumSamples()
	numChannels := rec.NumChannels()

	out := make([][]float64, numChannels)
	for ch := range out {
		out[ch] = make([]float64, numSamples)
	}

	for _, name := range ConditionOrder(eventID, e.cfg.Covariates) {
		resp, ok := responses[name]
		if !ok {
			return nil, fmt.Errorf("%w: no response for condition %q", ErrConfiguration, name)
		}

		if rows, _ := resp.Coefficients.Dims(); rows != numChannels {
			return nil, fmt.Errorf("%w: response %q has %d channels, recording has %d",
				ErrConfiguration, name, rows, numChannels)
		}

		c := &condition{
			name: name,
			win:  responseWindow(resp),
		}

		if codes, isBinary := eventID[name]; isBinary {
			c.codes = codes
		} else {
			c.covariate = e.cfg.Covariates[name]
			if len(c.covariate) != len(events) {
				return nil, fmt.Errorf("%w: covariate %q has %d values for %d events",
					ErrConfiguration, name, len(c.covariate), len(events))
			}
		}

		if err := buildIndicator(c, numSamples, events, e.cfg.EdgePolicy); err != nil {
			return nil, err
		}

		if err := accumulateKernels(out, c, resp); err != nil {
			return nil, err
		}
	}

	return signal.NewRecording(out, rec.SampleRate, rec.Channels)
}

// responseWindow recovers the integer lag window from a response's offset
// and width.
func responseWindow(resp *Response) lagWindow {
	tmin := int(math.Round(resp.Offset * resp.SampleRate))
	return lagWindow{tmin: tmin, tmax: tmin + resp.NumLags()}
}

// accumulateKernels adds the condition's contribution to every channel.
// Sparse indicators use direct scaled-block accumulation; dense ones go
// through FFT convolution, the crossover picked by total work.
func accumulateKernels(out [][]float64, c *condition, resp *Response) error {
	nLags := c.win.nLags()
	numSamples := len(out[0])

	if c.nave*nLags <= 4*numSamples {
		accumulateDirect(out, c.indicator, resp)
		return nil
	}

	return accumulateFFT(out, c.indicator, resp)
}

// accumulateDirect adds indicator[s] * kernel at offset s for every nonzero
// indicator entry, truncating at the end of the recording. The scaled-block
// accumulation mirrors direct time-domain convolution.
func accumulateDirect(out [][]float64, indicator []float64, resp *Response) {
	nLags := resp.NumLags()
	numSamples := len(out[0])
	tmp := make([]float64, nLags)

	for ch := range out {
		kernel := resp.Coefficients.RawRowView(ch)

		for s, v := range indicator {
			if v == 0 {
				continue
			}

			n := nLags
			if s+n > numSamples {
				n = numSamples - s
			}

			vecmath.ScaleBlock(tmp[:n], kernel[:n], v)
			vecmath.AddBlockInPlace(out[ch][s:s+n], tmp[:n])
		}
	}
}

// accumulateFFT convolves the full indicator with each channel's kernel in
// the frequency domain and adds the first numSamples of the result.
func accumulateFFT(out [][]float64, indicator []float64, resp *Response) error {
	nLags := resp.NumLags()
	numSamples := len(indicator)
	fftSize := nextPowerOf2(numSamples + nLags - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return fmt.Errorf("rerp: failed to create FFT plan: %w", err)
	}

	indicatorPadded := make([]complex128, fftSize)
	for i, v := range indicator {
		indicatorPadded[i] = complex(v, 0)
	}

	indicatorFreq := make([]complex128, fftSize)
	if err := plan.Forward(indicatorFreq, indicatorPadded); err != nil {
		return fmt.Errorf("rerp: forward FFT failed: %w", err)
	}

	kernelPadded := make([]complex128, fftSize)
	kernelFreq := make([]complex128, fftSize)
	resultFreq := make([]complex128, fftSize)
	resultTime := make([]complex128, fftSize)

	for ch := range out {
		kernel := resp.Coefficients.RawRowView(ch)

		for i := range kernelPadded {
			if i < nLags {
				kernelPadded[i] = complex(kernel[i], 0)
			} else {
				kernelPadded[i] = 0
			}
		}

		if err := plan.Forward(kernelFreq, kernelPadded); err != nil {
			return fmt.Errorf("rerp: forward FFT failed: %w", err)
		}

		for i := range resultFreq {
			resultFreq[i] = indicatorFreq[i] * kernelFreq[i]
		}

		if err := plan.Inverse(resultTime, resultFreq); err != nil {
			return fmt.Errorf("rerp: inverse FFT failed: %w", err)
		}

		for t := 0; t < numSamples; t++ {
			out[ch][t] += real(resultTime[t])
		}
	}

	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
