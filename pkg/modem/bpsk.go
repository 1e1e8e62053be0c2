package modem

// BPSK pairs a Modulator and a Demodulator built from the same Config.
type BPSK struct {
	Modulator
	Demodulator
}

var _ Modem = BPSK{}

func New(cfg Config) (BPSK, error) {
	if err := cfg.Validate(); err != nil {
		return BPSK{}, err
	}
	return BPSK{
		Modulator:   Modulator{Config: cfg},
		Demodulator: Demodulator{Config: cfg},
	}, nil
}
