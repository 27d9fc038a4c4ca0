// Command rerpdemo runs the overlap-corrected response estimator on a
// synthetic recording and prints a per-condition summary.
//
// Usage:
//
//	rerpdemo [flags]
//
// Examples:
//
//	rerpdemo
//	rerpdemo -rate 200 -channels 4 -noise 0.05
//	rerpdemo -tmin -0.2 -tmax 0.8
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-rerp/rerp"
	"github.com/cwbudde/algo-rerp/signal"
)

func main() {
	var (
		rate     = flag.Float64("rate", 100, "sampling rate in Hz")
		channels = flag.Int("channels", 2, "number of channels")
		noise    = flag.Float64("noise", 0, "white noise amplitude added to the recording")
		seed     = flag.Int64("seed", 1, "noise seed")
		tmin     = flag.Float64("tmin", -0.1, "window start in seconds")
		tmax     = flag.Float64("tmax", 0.5, "window end in seconds")
	)

	flag.Parse()

	if err := run(*rate, *channels, *noise, *seed, *tmin, *tmax); err != nil {
		fmt.Fprintln(os.Stderr, "rerpdemo:", err)
		os.Exit(1)
	}
}

func run(rate float64, channels int, noise float64, seed int64, tmin, tmax float64) error {
	// Two event classes with windows that overlap at varying distances,
	// the situation plain averaging cannot untangle.
	events := []signal.Event{
		{Sample: 100, Code: 1},
		{Sample: 130, Code: 2},
		{Sample: 500, Code: 1},
		{Sample: 515, Code: 2},
		{Sample: 900, Code: 1},
		{Sample: 960, Code: 2},
	}

	kernels := map[int][]float64{
		1: signal.HalfSine(50, 1.0),
		2: signal.HalfSine(40, -0.6),
	}

	gen := signal.NewGenerator(rate, signal.WithSeed(seed))

	rec, err := gen.EventRecording(channels, 1100, events, kernels, noise)
	if err != nil {
		return err
	}

	est := rerp.NewEstimator(
		rerp.WithTMin(rerp.Seconds(tmin)),
		rerp.WithTMax(rerp.Seconds(tmax)),
		rerp.WithRejection(rerp.RejectionDisabled()),
	)

	eventID := map[string][]int{
		"target":     {1},
		"distractor": {2},
	}

	responses, err := est.Estimate(rec, events, eventID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONDITION\tNAVE\tWIDTH\tOFFSET\tPEAK\tPEAK TIME")

	for _, name := range rerp.ConditionOrder(eventID, nil) {
		resp := responses[name]
		peak, peakLag := responsePeak(resp)

		fmt.Fprintf(w, "%s\t%d\t%d\t%+.3fs\t%+.4f\t%+.3fs\n",
			resp.Label, resp.Nave, resp.NumLags(), resp.Offset,
			peak, resp.Offset+float64(peakLag)/resp.SampleRate)
	}

	return w.Flush()
}

// responsePeak returns the absolute-maximum coefficient of channel 0 and its
// lag index.
func responsePeak(resp *rerp.Response) (float64, int) {
	row := resp.Coefficients.RawRowView(0)

	peak, peakLag := 0.0, 0
	for l, v := range row {
		if math.Abs(v) > math.Abs(peak) {
			peak, peakLag = v, l
		}
	}

	return peak, peakLag
}
