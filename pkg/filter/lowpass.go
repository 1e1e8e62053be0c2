package filter

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCutoff = errors.New("filter: cutoff must be within (0, sampleRate/2)")

// LowpassConfig describes a 2nd-order Butterworth low-pass filter.
type LowpassConfig struct {
	Cutoff     float64 // -3 dB frequency in Hz
	SampleRate float64
}

// Lowpass is a biquad section whose coefficients come from the bilinear
// transform of the analog Butterworth prototype.
type Lowpass struct {
	a0, a1, a2 float64
	b1, b2     float64

	x1, x2 float64
	y1, y2 float64
}

func (c LowpassConfig) New() (*Lowpass, error) {
	if c.SampleRate <= 0 || c.Cutoff <= 0 || c.Cutoff >= c.SampleRate/2 {
		return nil, fmt.Errorf("%w: cutoff %.3f Hz at %.1f Hz", ErrInvalidCutoff, c.Cutoff, c.SampleRate)
	}

	wc := 2 * math.Pi * c.Cutoff / c.SampleRate
	k := math.Tan(wc / 2)
	norm := 1 / (1 + math.Sqrt2*k + k*k)

	lp := &Lowpass{}
	lp.a0 = k * k * norm
	lp.a1 = 2 * lp.a0
	lp.a2 = lp.a0
	lp.b1 = 2 * (k*k - 1) * norm
	lp.b2 = (1 - math.Sqrt2*k + k*k) * norm
	return lp, nil
}

// Process filters one sample.
func (f *Lowpass) Process(x0 float64) float64 {
	y0 := f.a0*x0 + f.a1*f.x1 + f.a2*f.x2 - f.b1*f.y1 - f.b2*f.y2
	f.x2, f.x1 = f.x1, x0
	f.y2, f.y1 = f.y1, y0
	return y0
}

// Apply filters in from a zero state into out, which must be at least as long
// as in. The filter state is reset first, so Apply is repeatable.
func (f *Lowpass) Apply(in, out []float64) {
	f.Reset()
	for i, x := range in {
		out[i] = f.Process(x)
	}
}

func (f *Lowpass) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}

// Cutoff converts an angular bandwidth in rad/s to a cutoff in Hz.
func Cutoff(bandwidth float64) float64 {
	return bandwidth / (2 * math.Pi)
}
