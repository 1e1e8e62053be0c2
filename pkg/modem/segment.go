package modem

import (
	"fmt"
	"math"
)

// FindBounds locates the transmission inside x. start and end are the first
// and last indices (both inclusive) whose magnitude exceeds
// thresholdFactor times the peak magnitude of x.
func FindBounds(x []float64, thresholdFactor float64) (start, end int, err error) {
	if !(thresholdFactor >= 0 && thresholdFactor < 1) {
		return 0, 0, fmt.Errorf("%w: threshold factor %v must be within [0, 1)", ErrInvalidInput, thresholdFactor)
	}

	// the peak is a reduction over the whole buffer and must be known first
	peak := 0.0
	for _, v := range x {
		peak = max(peak, math.Abs(v))
	}
	if peak == 0 {
		return 0, 0, fmt.Errorf("%w: peak magnitude is zero over %d samples", ErrNoSignalDetected, len(x))
	}

	threshold := thresholdFactor * peak

	start = -1
	for i, v := range x {
		if math.Abs(v) > threshold {
			start = i
			break
		}
	}
	if start == -1 {
		return 0, 0, fmt.Errorf("%w: no sample above %v", ErrNoSignalDetected, threshold)
	}

	for end = len(x) - 1; end > start; end-- {
		if math.Abs(x[end]) > threshold {
			break
		}
	}

	return start, end, nil
}
