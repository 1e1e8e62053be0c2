package modem

// Modem turns bits into a waveform and back. Bits are bytes holding 0 or 1.
type Modem interface {
	Modulate(inputBits []byte) ([]float64, error)
	Demodulate(inputSignal []float64) ([]byte, error)
}
