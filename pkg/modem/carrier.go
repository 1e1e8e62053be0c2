package modem

import (
	"math"

	"hz.tools/rf"
)

type CarrierConfig struct {
	Amplitude  float64
	Freq       rf.Hz
	Phase      float64
	SampleRate float64
	Size       int
}

// New samples Amplitude*cos(2*pi*Freq*t + Phase) at t = n/SampleRate for
// n in [0, Size).
func (p CarrierConfig) New() []float64 {
	signal := make([]float64, p.Size)
	w := 2 * math.Pi * float64(p.Freq)
	for i := 0; i < p.Size; i++ {
		t := float64(i) / p.SampleRate
		signal[i] = p.Amplitude * math.Cos(w*t+p.Phase)
	}
	return signal
}
