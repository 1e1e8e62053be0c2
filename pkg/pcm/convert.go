package pcm

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// ToFloat converts integer PCM samples to float64 without rescaling.
func ToFloat[T constraints.Signed](input []T) []float64 {
	output := make([]float64, len(input))
	for i, v := range input {
		output[i] = float64(v)
	}
	return output
}

// FromFloat rounds float64 samples to the integer type T, clipping to its range.
func FromFloat[T constraints.Signed](input []float64) []T {
	lo, hi := limits[T]()
	output := make([]T, len(input))
	for i, v := range input {
		v = math.Round(v)
		switch {
		case v > hi:
			v = hi
		case v < lo:
			v = lo
		}
		output[i] = T(v)
	}
	return output
}

// Scale multiplies every sample by gain into a new slice.
func Scale(input []float64, gain float64) []float64 {
	output := make([]float64, len(input))
	for i, v := range input {
		output[i] = v * gain
	}
	return output
}

// Normalize scales input so that its peak magnitude is 1. Silence is returned
// as a zeroed copy.
func Normalize(input []float64) []float64 {
	peak := 0.0
	for _, v := range input {
		peak = max(peak, math.Abs(v))
	}
	if peak == 0 {
		return make([]float64, len(input))
	}
	return Scale(input, 1/peak)
}

// limits returns the representable range of T. hi sits just below the
// positive power of two so that the final conversion truncates in range.
func limits[T constraints.Signed]() (lo, hi float64) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	hi = math.Nextafter(math.Ldexp(1, bits-1), 0)
	lo = -math.Ldexp(1, bits-1)
	return
}
