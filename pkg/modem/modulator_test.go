package modem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hz.tools/rf"
	"pgregory.net/rapid"
)

const (
	SAMPLE_RATE = 8000.0
	SYMBOL_LEN  = 250
	FREQ        = rf.Hz(1000)
	AMPLITUDE   = 7000.0
)

func TestModulateLength(t *testing.T) {
	wave, err := Modulate([]byte{1, 0, 1, 1}, SAMPLE_RATE, SYMBOL_LEN, FREQ)

	require.NoError(t, err)
	assert.Len(t, wave, 250*5+500)
}

func TestModulateLengthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.SliceOfN(rapid.ByteRange(0, 1), 1, 100).Draw(t, "bits")
		symbolLen := rapid.IntRange(1, 64).Draw(t, "symbolLen")
		rate := rapid.Float64Range(1000, 48000).Draw(t, "rate")
		freq := rapid.Float64Range(100, 4000).Draw(t, "freq")

		wave, err := Modulate(bits, rate, symbolLen, rf.Hz(freq))

		require.NoError(t, err)
		assert.Len(t, wave, symbolLen*(len(bits)+1)+2*symbolLen)
	})
}

func TestModulateShape(t *testing.T) {
	bits := []byte{1, 0, 1, 1}
	wave, err := Modulate(bits, SAMPLE_RATE, SYMBOL_LEN, FREQ)
	require.NoError(t, err)

	// guard bands are silent
	for i := 0; i < SYMBOL_LEN; i++ {
		assert.Zero(t, wave[i])
		assert.Zero(t, wave[len(wave)-1-i])
	}

	signs := append([]byte{PREAMBLE_BIT}, bits...)
	for n := 0; n < len(signs)*SYMBOL_LEN; n++ {
		sign := -1.0
		if signs[n/SYMBOL_LEN] == 1 {
			sign = 1
		}
		expected := AMPLITUDE * sign * math.Cos(2*math.Pi*float64(FREQ)*float64(n)/SAMPLE_RATE)
		require.InDelta(t, expected, wave[SYMBOL_LEN+n], 1e-6, "sample %d", n)
	}
}

func TestModulateBoundedByAmplitude(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.SliceOfN(rapid.ByteRange(0, 1), 1, 50).Draw(t, "bits")
		cfg := DefaultConfig()
		cfg.Phase = rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "phase")

		wave, err := Modulator{Config: cfg}.Modulate(bits)

		require.NoError(t, err)
		for _, v := range wave {
			assert.LessOrEqual(t, math.Abs(v), cfg.Amplitude)
		}
	})
}

func TestModulateDeterministic(t *testing.T) {
	bits := []byte{0, 1, 1, 0, 1, 0, 0, 1}

	first, err := Modulate(bits, SAMPLE_RATE, SYMBOL_LEN, FREQ)
	require.NoError(t, err)
	second, err := Modulate(bits, SAMPLE_RATE, SYMBOL_LEN, FREQ)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestModulateDoesNotModifyInput(t *testing.T) {
	bits := []byte{0, 1, 0}

	_, err := Modulate(bits, SAMPLE_RATE, SYMBOL_LEN, FREQ)

	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 0}, bits)
}

func TestModulateInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		bits      []byte
		rate      float64
		symbolLen int
		freq      rf.Hz
	}{
		{"empty bits", []byte{}, SAMPLE_RATE, SYMBOL_LEN, FREQ},
		{"nil bits", nil, SAMPLE_RATE, SYMBOL_LEN, FREQ},
		{"non-binary bit", []byte{1, 2, 0}, SAMPLE_RATE, SYMBOL_LEN, FREQ},
		{"ascii bit", []byte{'1'}, SAMPLE_RATE, SYMBOL_LEN, FREQ},
		{"zero rate", []byte{1}, 0, SYMBOL_LEN, FREQ},
		{"negative rate", []byte{1}, -8000, SYMBOL_LEN, FREQ},
		{"zero symbol length", []byte{1}, SAMPLE_RATE, 0, FREQ},
		{"zero frequency", []byte{1}, SAMPLE_RATE, SYMBOL_LEN, 0},
		{"negative frequency", []byte{1}, SAMPLE_RATE, SYMBOL_LEN, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wave, err := Modulate(tt.bits, tt.rate, tt.symbolLen, tt.freq)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, wave)
		})
	}
}

func TestCarrierConfig(t *testing.T) {
	carrier := CarrierConfig{
		Amplitude:  2,
		Freq:       FREQ,
		Phase:      math.Pi / 2,
		SampleRate: SAMPLE_RATE,
		Size:       8,
	}.New()

	// a quarter-cycle phase turns the cosine into -sin
	expected := []float64{0, -math.Sqrt2, -2, -math.Sqrt2, 0, math.Sqrt2, 2, math.Sqrt2}
	require.Len(t, carrier, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i], carrier[i], 1e-9)
	}
}
