package modem

import (
	"fmt"

	"hz.tools/rf"
)

// PREAMBLE_BIT is sent ahead of every payload. The receiver uses it to
// settle the carrier polarity and strips it from the output.
const PREAMBLE_BIT byte = 1

type Modulator struct {
	Config Config
}

// Modulate encodes bits as
//
//	[SymbolLen zeros] [preamble symbol] [one symbol per bit] [SymbolLen zeros]
//
// where each symbol is +-Amplitude*cos(2*pi*Freq*t + Phase), + for 1 and - for 0.
// The result has SymbolLen*(len(bits)+3) samples.
func (m Modulator) Modulate(inputBits []byte) ([]float64, error) {
	if err := m.Config.validateCarrier(); err != nil {
		return nil, err
	}
	if err := checkBits(inputBits); err != nil {
		return nil, err
	}

	symbolLen := m.Config.SymbolLen
	symbolCount := len(inputBits) + 1

	carrier := CarrierConfig{
		Amplitude:  m.Config.Amplitude,
		Freq:       m.Config.Freq,
		Phase:      m.Config.Phase,
		SampleRate: m.Config.SampleRate,
		Size:       symbolCount * symbolLen,
	}.New()

	// leading and trailing guard bands stay zero
	modulatedData := make([]float64, (symbolCount+2)*symbolLen)
	body := modulatedData[symbolLen : symbolLen+len(carrier)]

	modulateBit := func(i int, bit byte) {
		for n := i * symbolLen; n < (i+1)*symbolLen; n++ {
			if bit == 1 {
				body[n] = carrier[n]
			} else {
				body[n] = -carrier[n]
			}
		}
	}

	modulateBit(0, PREAMBLE_BIT)
	for i, bit := range inputBits {
		modulateBit(i+1, bit)
	}

	logger.Debug("modulated", "bits", len(inputBits), "samples", len(modulatedData))
	return modulatedData, nil
}

// Modulate encodes bits with the default amplitude and a zero-phase carrier.
func Modulate(bits []byte, rate float64, symbolLen int, freq rf.Hz) ([]float64, error) {
	cfg := DefaultConfig()
	cfg.SampleRate = rate
	cfg.SymbolLen = symbolLen
	cfg.Freq = freq
	return Modulator{Config: cfg}.Modulate(bits)
}

func checkBits(bits []byte) error {
	if len(bits) == 0 {
		return fmt.Errorf("%w: empty bit sequence", ErrInvalidInput)
	}
	for i, b := range bits {
		if b > 1 {
			return fmt.Errorf("%w: bit %d has value %d", ErrInvalidInput, i, b)
		}
	}
	return nil
}
