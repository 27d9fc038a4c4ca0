package rerp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-rerp/signal"
)

// DefaultMaxDesignElements caps the design matrix at 2^27 float64 entries
// (1 GiB). The bound exists because the design has one row per retained
// sample and one column per lag, a product that grows quickly on
// undownsampled recordings. Use WithMaxDesignElements to raise it, or 0 to
// disable the cap.
const DefaultMaxDesignElements = 1 << 27

// assembleDesign builds the joint design matrix and target matrix. Only rows
// where at least one condition carries predictor mass, and which no artifact
// span covers, are materialized; the intercept is always the last column.
// It returns the retained sample indices alongside X and Y.
func assembleDesign(rec *signal.Recording, conds []*condition, rejected []signal.Span, maxElements int) (x, y *mat.Dense, rows []int, err error) {
	numSamples := rec.NumSamples()

	// A sample row carries information iff some condition's lag window
	// covers it: indicator[s] != 0 puts mass on rows s..s+nLags-1.
	valid := make([]bool, numSamples)

	for _, c := range conds {
		nLags := c.win.nLags()
		for s, v := range c.indicator {
			if v == 0 {
				continue
			}

			end := s + nLags
			if end > numSamples {
				end = numSamples
			}

			for t := s; t < end; t++ {
				valid[t] = true
			}
		}
	}

	for _, span := range rejected {
		start, end := span.Start, span.End
		if start < 0 {
			start = 0
		}

		if end > numSamples {
			end = numSamples
		}

		for t := start; t < end; t++ {
			valid[t] = false
		}
	}

	numValid := 0
	for _, ok := range valid {
		if ok {
			numValid++
		}
	}

	if numValid == 0 {
		return nil, nil, nil, fmt.Errorf("%w: every sample was filtered out", ErrEmptySelection)
	}

	// Every condition must keep at least one sample with predictor mass,
	// otherwise its response would be undefined.
	for _, c := range conds {
		if err := checkSupport(c, valid); err != nil {
			return nil, nil, nil, err
		}
	}

	totalCols := 1 // intercept
	for _, c := range conds {
		totalCols += c.win.nLags()
	}

	if maxElements > 0 && numValid*totalCols > maxElements {
		return nil, nil, nil, fmt.Errorf("%w: design matrix of %d x %d exceeds the %d element cap; downsample or raise the cap",
			ErrConfiguration, numValid, totalCols, maxElements)
	}

	rows = make([]int, 0, numValid)
	for t, ok := range valid {
		if ok {
			rows = append(rows, t)
		}
	}

	x = mat.NewDense(numValid, totalCols, nil)
	y = mat.NewDense(numValid, rec.NumChannels(), nil)

	for ri, t := range rows {
		row := x.RawRowView(ri)

		off := 0
		for _, c := range conds {
			nLags := c.win.nLags()
			fillLagRow(row[off:off+nLags], c.indicator, t)
			off += nLags
		}

		row[totalCols-1] = 1 // intercept

		for ch := range rec.Data {
			y.Set(ri, ch, rec.Data[ch][t])
		}
	}

	return x, y, rows, nil
}

// checkSupport verifies that condition c still touches at least one retained
// row: some nonzero indicator entry must have a lag landing on a valid
// sample.
func checkSupport(c *condition, valid []bool) error {
	nLags := c.win.nLags()

	for s, v := range c.indicator {
		if v == 0 {
			continue
		}

		end := s + nLags
		if end > len(valid) {
			end = len(valid)
		}

		for t := s; t < end; t++ {
			if valid[t] {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: condition %q has no contributing samples left", ErrEmptySelection, c.name)
}
