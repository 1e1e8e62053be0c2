package modem

import "fmt"

// ExtractBits slices a baseband segment, preamble symbol first, into
// symbolLen-sample windows and decides each bit by the sign of the window
// mean. The preamble bit is dropped from the result.
func ExtractBits(baseband []float64, symbolLen int, policy FramePolicy) ([]byte, error) {
	if symbolLen <= 0 {
		return nil, fmt.Errorf("%w: symbol length %d must be positive", ErrInvalidInput, symbolLen)
	}

	var symbolCount int
	switch policy {
	case FrameStrict:
		if len(baseband)%symbolLen != 0 {
			return nil, fmt.Errorf("%w: segment of %d samples is not a multiple of %d",
				ErrMalformedFrame, len(baseband), symbolLen)
		}
		symbolCount = len(baseband) / symbolLen
	case FrameRound:
		symbolCount = (len(baseband) + symbolLen/2) / symbolLen
	default:
		return nil, fmt.Errorf("%w: unknown framing policy %v", ErrInvalidInput, policy)
	}

	if symbolCount < 2 {
		return nil, fmt.Errorf("%w: segment of %d samples holds no payload after the preamble",
			ErrMalformedFrame, len(baseband))
	}

	bits := make([]byte, 0, symbolCount-1)
	for j := 1; j < symbolCount; j++ {
		window := baseband[j*symbolLen : min((j+1)*symbolLen, len(baseband))]
		if mean(window) > 0 {
			bits = append(bits, 1)
		} else {
			bits = append(bits, 0)
		}
	}

	logger.Debug("sliced frame", "samples", len(baseband), "symbols", symbolCount)
	return bits, nil
}
