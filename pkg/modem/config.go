package modem

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
	"hz.tools/rf"
)

// FramePolicy decides what happens when the detected segment is not a whole
// number of symbols long.
type FramePolicy int

const (
	// FrameRound decodes round(len/SymbolLen) symbols: a tail shorter than
	// half a symbol is dropped, a longer tail is decoded as a short final
	// window.
	FrameRound FramePolicy = iota
	// FrameStrict rejects any segment that is not an exact multiple of
	// SymbolLen with ErrMalformedFrame.
	FrameStrict
)

func (p FramePolicy) String() string {
	switch p {
	case FrameRound:
		return "round"
	case FrameStrict:
		return "strict"
	}
	return fmt.Sprintf("FramePolicy(%d)", int(p))
}

func ParseFramePolicy(s string) (FramePolicy, error) {
	switch s {
	case "round", "":
		return FrameRound, nil
	case "strict":
		return FrameStrict, nil
	}
	return 0, fmt.Errorf("%w: unknown framing policy %q", ErrInvalidInput, s)
}

const (
	DEFAULT_SAMPLE_RATE            = 8000
	DEFAULT_SYMBOL_LEN             = 250
	DEFAULT_FREQ             rf.Hz = 1000
	DEFAULT_AMPLITUDE              = 7000
	DEFAULT_THRESHOLD_FACTOR       = 0.3
	DEFAULT_LPF_BANDWIDTH          = 320 // rad/s
	DEFAULT_PHASE_COUNT            = 16
)

// Config holds the parameters shared by the modulator and the demodulator.
// SampleRate, SymbolLen and Freq must agree between both ends.
type Config struct {
	// SampleRate in samples per second.
	SampleRate float64

	// SymbolLen is the number of samples carrying one bit.
	SymbolLen int

	// Freq is the carrier frequency.
	Freq rf.Hz

	// Amplitude scales the transmitted carrier.
	Amplitude float64

	// Phase of the transmitted carrier in radians. The receiver does not
	// need to know it.
	Phase float64

	// ThresholdFactor is the fraction of the peak magnitude a sample must
	// exceed to count as part of the transmission.
	ThresholdFactor float64

	// LPFBandwidth is the low-pass bandwidth in rad/s applied after mixing
	// with the local carrier.
	LPFBandwidth float64

	// PhaseCount is the number of evenly spaced carrier phases tried by
	// the demodulator.
	PhaseCount int

	Framing FramePolicy
}

func DefaultConfig() Config {
	return Config{
		SampleRate:      DEFAULT_SAMPLE_RATE,
		SymbolLen:       DEFAULT_SYMBOL_LEN,
		Freq:            DEFAULT_FREQ,
		Amplitude:       DEFAULT_AMPLITUDE,
		ThresholdFactor: DEFAULT_THRESHOLD_FACTOR,
		LPFBandwidth:    DEFAULT_LPF_BANDWIDTH,
		PhaseCount:      DEFAULT_PHASE_COUNT,
		Framing:         FrameRound,
	}
}

// validateCarrier checks the parameters both directions depend on.
func (c Config) validateCarrier() error {
	switch {
	case !(c.SampleRate > 0):
		return fmt.Errorf("%w: sample rate %v must be positive", ErrInvalidInput, c.SampleRate)
	case c.SymbolLen <= 0:
		return fmt.Errorf("%w: symbol length %d must be positive", ErrInvalidInput, c.SymbolLen)
	case !(c.Freq > 0):
		return fmt.Errorf("%w: carrier frequency %v must be positive", ErrInvalidInput, float64(c.Freq))
	case !(c.Amplitude > 0):
		return fmt.Errorf("%w: amplitude %v must be positive", ErrInvalidInput, c.Amplitude)
	case math.IsNaN(c.Phase) || math.IsInf(c.Phase, 0):
		return fmt.Errorf("%w: phase %v must be finite", ErrInvalidInput, c.Phase)
	}
	return nil
}

// validateReceiver checks the parameters only the demodulator uses.
func (c Config) validateReceiver() error {
	switch {
	case !(c.ThresholdFactor >= 0 && c.ThresholdFactor < 1):
		return fmt.Errorf("%w: threshold factor %v must be within [0, 1)", ErrInvalidInput, c.ThresholdFactor)
	case !(c.LPFBandwidth > 0):
		return fmt.Errorf("%w: low-pass bandwidth %v rad/s must be positive", ErrInvalidInput, c.LPFBandwidth)
	case c.LPFBandwidth/(2*math.Pi) >= c.SampleRate/2:
		return fmt.Errorf("%w: low-pass bandwidth %v rad/s is above Nyquist", ErrInvalidInput, c.LPFBandwidth)
	case c.PhaseCount <= 0:
		return fmt.Errorf("%w: phase count %d must be positive", ErrInvalidInput, c.PhaseCount)
	case c.Framing != FrameRound && c.Framing != FrameStrict:
		return fmt.Errorf("%w: unknown framing policy %v", ErrInvalidInput, c.Framing)
	}
	return nil
}

// Validate reports the first unusable parameter as an ErrInvalidInput.
func (c Config) Validate() error {
	if err := c.validateCarrier(); err != nil {
		return err
	}
	return c.validateReceiver()
}

// fileConfig is the YAML form of Config. Absent keys keep their defaults.
type fileConfig struct {
	SampleRate      *float64 `yaml:"sample_rate"`
	SymbolLen       *int     `yaml:"symbol_len"`
	Freq            *float64 `yaml:"freq"`
	Amplitude       *float64 `yaml:"amplitude"`
	Phase           *float64 `yaml:"phase"`
	ThresholdFactor *float64 `yaml:"threshold_factor"`
	LPFBandwidth    *float64 `yaml:"lpf_bandwidth"`
	PhaseCount      *int     `yaml:"phase_count"`
	Framing         *string  `yaml:"framing"`
}

// LoadConfig reads a YAML document over DefaultConfig and validates the result.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if fc.SampleRate != nil {
		cfg.SampleRate = *fc.SampleRate
	}
	if fc.SymbolLen != nil {
		cfg.SymbolLen = *fc.SymbolLen
	}
	if fc.Freq != nil {
		cfg.Freq = rf.Hz(*fc.Freq)
	}
	if fc.Amplitude != nil {
		cfg.Amplitude = *fc.Amplitude
	}
	if fc.Phase != nil {
		cfg.Phase = *fc.Phase
	}
	if fc.ThresholdFactor != nil {
		cfg.ThresholdFactor = *fc.ThresholdFactor
	}
	if fc.LPFBandwidth != nil {
		cfg.LPFBandwidth = *fc.LPFBandwidth
	}
	if fc.PhaseCount != nil {
		cfg.PhaseCount = *fc.PhaseCount
	}
	if fc.Framing != nil {
		p, err := ParseFramePolicy(*fc.Framing)
		if err != nil {
			return Config{}, err
		}
		cfg.Framing = p
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigFile(filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	return LoadConfig(file)
}
