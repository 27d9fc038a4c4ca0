package rerp

import (
	"fmt"

	"github.com/cwbudde/algo-rerp/signal"
)

// EdgePolicy decides what happens when an event's shifted onset
// (event.Sample + tmin) falls outside the recording.
type EdgePolicy int

const (
	// EdgeDrop silently skips such events; they contribute no predictor
	// mass and are not counted as trials. This is the default.
	EdgeDrop EdgePolicy = iota

	// EdgeClip clamps the shifted onset to the recording bounds. When two
	// events clamp to the same sample, the later one wins.
	EdgeClip

	// EdgeError aborts the estimation with a configuration error.
	EdgeError
)

// condition is one named predictor: binary (driven by event codes) or
// continuous (driven by a covariate, one value per event).
type condition struct {
	name      string
	codes     []int     // binary conditions only
	covariate []float64 // continuous conditions only
	win       lagWindow
	indicator []float64
	nave      int
}

func (c *condition) continuous() bool {
	return c.covariate != nil
}

// buildIndicator fills the length-T indicator vector for one condition: the
// value at event.Sample + tmin is 1 for binary conditions or the event's
// covariate value for continuous ones. The indicator is the base vector of
// the condition's lag matrix; its nonzero count becomes the trial count.
func buildIndicator(c *condition, numSamples int, events []signal.Event, policy EdgePolicy) error {
	ind := make([]float64, numSamples)

	codes := make(map[int]bool, len(c.codes))
	for _, code := range c.codes {
		codes[code] = true
	}

	for i, ev := range events {
		value := 1.0
		if c.continuous() {
			value = c.covariate[i]
		} else if !codes[ev.Code] {
			continue
		}

		t := ev.Sample + c.win.tmin

		if t < 0 || t >= numSamples {
			switch policy {
			case EdgeDrop:
				continue
			case EdgeClip:
				if t < 0 {
					t = 0
				} else {
					t = numSamples - 1
				}
			case EdgeError:
				return fmt.Errorf("%w: condition %q: event at sample %d shifts to %d, outside [0, %d)",
					ErrConfiguration, c.name, ev.Sample, t, numSamples)
			}
		}

		ind[t] = value
	}

	c.indicator = ind
	c.nave = countNonzero(ind)

	return nil
}

// countNonzero returns the number of nonzero entries in v.
func countNonzero(v []float64) int {
	n := 0
	for _, x := range v {
		if x != 0 {
			n++
		}
	}

	return n
}
