package rerp

import (
	"fmt"
	"math"
)

// Default window bounds in seconds, applied when a per-condition mapping
// leaves a condition unspecified.
const (
	DefaultTMinSeconds = -0.1
	DefaultTMaxSeconds = 1.0
)

type boundKind int

const (
	boundUniform boundKind = iota
	boundPerCondition
)

// Bound is one edge of an estimation window: either a single value in
// seconds applied to all conditions, or a per-condition mapping. The two
// cases are resolved once, up front; nothing downstream branches on the
// representation.
type Bound struct {
	kind    boundKind
	value   float64
	perCond map[string]float64
}

// Seconds returns a bound that applies the same value to every condition.
func Seconds(v float64) Bound {
	return Bound{kind: boundUniform, value: v}
}

// SecondsByCondition returns a bound with per-condition values. Conditions
// missing from the map fall back to the package default for that edge
// (DefaultTMinSeconds or DefaultTMaxSeconds).
func SecondsByCondition(values map[string]float64) Bound {
	m := make(map[string]float64, len(values))
	for cond, v := range values {
		m[cond] = v
	}

	return Bound{kind: boundPerCondition, perCond: m}
}

// seconds resolves the bound for one condition, using def for conditions a
// per-condition mapping does not name.
func (b Bound) seconds(cond string, def float64) float64 {
	if b.kind == boundUniform {
		return b.value
	}

	if v, ok := b.perCond[cond]; ok {
		return v
	}

	return def
}

// Window spans the estimation window [TMin, TMax) around each event onset.
type Window struct {
	TMin Bound
	TMax Bound
}

// DefaultWindow returns the default estimation window of [-0.1 s, 1.0 s).
func DefaultWindow() Window {
	return Window{TMin: Seconds(DefaultTMinSeconds), TMax: Seconds(DefaultTMaxSeconds)}
}

// lagWindow is a resolved per-condition window in integer sample offsets.
type lagWindow struct {
	tmin int
	tmax int
}

// nLags returns the window width in samples.
func (w lagWindow) nLags() int {
	return w.tmax - w.tmin
}

// resolveWindows converts the window bounds into integer sample offsets for
// every condition, flooring seconds*rate. A window that resolves to
// tmax <= tmin is a configuration error.
func resolveWindows(w Window, conds []string, sampleRate float64) (map[string]lagWindow, error) {
	if len(conds) == 0 {
		return nil, fmt.Errorf("%w: empty condition set", ErrConfiguration)
	}

	out := make(map[string]lagWindow, len(conds))

	for _, cond := range conds {
		tmin := int(math.Floor(w.TMin.seconds(cond, DefaultTMinSeconds) * sampleRate))
		tmax := int(math.Floor(w.TMax.seconds(cond, DefaultTMaxSeconds) * sampleRate))

		if tmax <= tmin {
			return nil, fmt.Errorf("%w: condition %q has window [%d, %d) samples",
				ErrConfiguration, cond, tmin, tmax)
		}

		out[cond] = lagWindow{tmin: tmin, tmax: tmax}
	}

	return out, nil
}
