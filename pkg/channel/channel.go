package channel

import (
	"math"

	"golang.org/x/exp/rand"
)

// Loopback stands in for a speaker-to-microphone path when no sound card is
// involved. It delays, scales and adds white noise to a transmitted waveform.
type Loopback struct {
	Delay   int     // samples of silence before the transmission
	Trail   int     // samples of silence after the transmission
	Gain    float64 // 0 means unity
	NoiseSD float64 // standard deviation of additive Gaussian noise
	Seed    uint64
}

// Transmit returns what a receiver would capture. It is deterministic for a
// given Seed and does not modify signal.
func (l Loopback) Transmit(signal []float64) []float64 {
	gain := l.Gain
	if gain == 0 {
		gain = 1
	}

	out := make([]float64, l.Delay+len(signal)+l.Trail)
	for i, v := range signal {
		out[l.Delay+i] = gain * v
	}

	if l.NoiseSD > 0 {
		addNoise(out, l.NoiseSD, rand.New(rand.NewSource(l.Seed)))
	}
	return out
}

func addNoise(a []float64, sd float64, r *rand.Rand) {
	for i := range a {
		a[i] += sd * r.NormFloat64()
	}
}

// SNR returns the ratio in dB between the mean power of signal and the noise
// power NoiseSD^2, counting only non-zero samples of signal.
func (l Loopback) SNR(signal []float64) float64 {
	power, n := 0.0, 0
	for _, v := range signal {
		if v != 0 {
			power += v * v
			n++
		}
	}
	if n == 0 || l.NoiseSD == 0 {
		return math.Inf(1)
	}
	gain := l.Gain
	if gain == 0 {
		gain = 1
	}
	return 10 * math.Log10(gain*gain*power/float64(n)/(l.NoiseSD*l.NoiseSD))
}
