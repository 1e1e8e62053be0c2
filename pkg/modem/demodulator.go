package modem

import (
	"fmt"

	"hz.tools/rf"
)

// Demodulator recovers bits from a captured waveform holding one
// transmission framed by silence. It keeps no state between calls.
type Demodulator struct {
	Config Config
}

// Demodulate finds the transmission in inputSignal, locks onto the carrier
// phase, low-passes the mixed signal and slices one bit per symbol. The
// preamble bit is not returned.
func (d Demodulator) Demodulate(inputSignal []float64) ([]byte, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, err
	}

	start, end, err := FindBounds(inputSignal, d.Config.ThresholdFactor)
	if err != nil {
		return nil, err
	}
	segment := inputSignal[start : end+1]
	logger.Debug("found transmission", "start", start, "end", end, "samples", len(segment))

	baseband, _, err := d.SearchPhase(segment)
	if err != nil {
		return nil, err
	}

	return ExtractBits(baseband, d.Config.SymbolLen, d.Config.Framing)
}

// SearchPhase returns the polarity-corrected baseband of a bounded segment
// together with the carrier phase that produced it.
func (d Demodulator) SearchPhase(segment []float64) ([]float64, PhaseEstimate, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, PhaseEstimate{}, err
	}
	if len(segment) == 0 {
		return nil, PhaseEstimate{}, fmt.Errorf("%w: empty segment", ErrInvalidInput)
	}
	return searchPhase(segment, d.Config)
}

// Demodulate decodes x with the default 16-point phase search and the round
// framing policy. lpfBandwidth is in rad/s.
func Demodulate(x []float64, freq rf.Hz, rate float64, symbolLen int, thresholdFactor, lpfBandwidth float64) ([]byte, error) {
	cfg := DefaultConfig()
	cfg.Freq = freq
	cfg.SampleRate = rate
	cfg.SymbolLen = symbolLen
	cfg.ThresholdFactor = thresholdFactor
	cfg.LPFBandwidth = lpfBandwidth
	return Demodulator{Config: cfg}.Demodulate(x)
}
