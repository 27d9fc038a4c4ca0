package rerp

import (
	"gonum.org/v1/gonum/mat"
)

// Response is the overlap-corrected estimate for one condition: the
// channel-by-lag coefficient matrix plus its provenance.
type Response struct {
	// Label is the condition name.
	Label string

	// Coefficients holds one row per channel and one column per lag.
	Coefficients *mat.Dense

	// SampleRate is the sampling rate of the source recording in Hz.
	SampleRate float64

	// Offset is the time of the first lag relative to event onset, in
	// seconds (tmin_samples / sample rate, typically negative).
	Offset float64

	// Nave counts the events that contributed nonzero predictor mass.
	Nave int
}

// NumLags returns the response width in samples.
func (r *Response) NumLags() int {
	_, cols := r.Coefficients.Dims()
	return cols
}

// Times returns the time axis of the response in seconds, one entry per lag.
func (r *Response) Times() []float64 {
	out := make([]float64, r.NumLags())
	for i := range out {
		out[i] = r.Offset + float64(i)/r.SampleRate
	}

	return out
}

// ResponseFactory builds the per-condition response container. The
// reconstruction stage never assumes an ambient constructor; the factory is
// injected through the estimator configuration, defaulting to NewResponse.
type ResponseFactory func(label string, coefficients *mat.Dense, sampleRate, offsetSeconds float64, nave int) *Response

// NewResponse is the default ResponseFactory.
func NewResponse(label string, coefficients *mat.Dense, sampleRate, offsetSeconds float64, nave int) *Response {
	return &Response{
		Label:        label,
		Coefficients: coefficients,
		SampleRate:   sampleRate,
		Offset:       offsetSeconds,
		Nave:         nave,
	}
}

// reconstructResponses walks the conditions in the order their predictor
// blocks were laid out and slices the matching span of solved coefficient
// columns back into one channel-by-lag matrix per condition. b has one row
// per design column (lags first, intercept last) and one column per channel.
func reconstructResponses(b *mat.Dense, conds []*condition, sampleRate float64, build ResponseFactory) map[string]*Response {
	_, numChannels := b.Dims()
	out := make(map[string]*Response, len(conds))

	cum := 0
	for _, c := range conds {
		nLags := c.win.nLags()
		coefs := mat.NewDense(numChannels, nLags, nil)

		for ch := 0; ch < numChannels; ch++ {
			for l := 0; l < nLags; l++ {
				coefs.Set(ch, l, b.At(cum+l, ch))
			}
		}

		offset := float64(c.win.tmin) / sampleRate
		out[c.name] = build(c.name, coefs, sampleRate, offset, c.nave)
		cum += nLags
	}

	return out
}
