package modem

import (
	"fmt"
	"math"

	"AcousticModem/pkg/async"
	"AcousticModem/pkg/filter"

	"hz.tools/rf"
)

// PhaseEstimate is the outcome of the brute-force carrier phase search.
type PhaseEstimate struct {
	Index    int     // winning candidate k
	Phase    float64 // -pi + k*2*pi/PhaseCount
	Score    float64 // peak magnitude of the filtered product
	Inverted bool    // baseband was negated to make the preamble positive
}

type phaseCandidate struct {
	baseband []float64
	score    float64
}

// CandidatePhases returns count phases evenly spaced over [-pi, pi).
func CandidatePhases(count int) []float64 {
	phases := make([]float64, count)
	for k := range phases {
		phases[k] = -math.Pi + float64(k)*2*math.Pi/float64(count)
	}
	return phases
}

// evaluatePhase mixes the segment with the local carrier at the given phase,
// low-passes the product and scores it by its peak magnitude.
func evaluatePhase(segment []float64, phase float64, cfg Config) (phaseCandidate, error) {
	lp, err := filter.LowpassConfig{
		Cutoff:     filter.Cutoff(cfg.LPFBandwidth),
		SampleRate: cfg.SampleRate,
	}.New()
	if err != nil {
		return phaseCandidate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	local := CarrierConfig{
		Amplitude:  1,
		Freq:       cfg.Freq,
		Phase:      phase,
		SampleRate: cfg.SampleRate,
		Size:       len(segment),
	}.New()

	product := make([]float64, len(segment))
	for n := range segment {
		product[n] = segment[n] * local[n]
	}

	baseband := make([]float64, len(product))
	lp.Apply(product, baseband)

	score := 0.0
	for _, v := range baseband {
		score = max(score, math.Abs(v))
	}
	return phaseCandidate{baseband: baseband, score: score}, nil
}

// rankPhases evaluates every candidate phase. Candidates are independent, so
// they run concurrently and come back in candidate order.
func rankPhases(segment []float64, cfg Config) ([]float64, []phaseCandidate, error) {
	phases := CandidatePhases(cfg.PhaseCount)
	candidates, err := async.Gather(len(phases), 0, func(k int) (phaseCandidate, error) {
		return evaluatePhase(segment, phases[k], cfg)
	})
	if err != nil {
		return nil, nil, err
	}
	return phases, candidates, nil
}

// bestPhase picks the highest score; ties go to the lowest index.
func bestPhase(candidates []phaseCandidate) int {
	best := 0
	for k := 1; k < len(candidates); k++ {
		if candidates[k].score > candidates[best].score {
			best = k
		}
	}
	return best
}

// searchPhase returns the baseband of the strongest candidate phase. The
// preamble symbol is always 1, so a baseband whose first symbol averages
// non-positive is locked pi away from the carrier and gets negated.
func searchPhase(segment []float64, cfg Config) ([]float64, PhaseEstimate, error) {
	phases, candidates, err := rankPhases(segment, cfg)
	if err != nil {
		return nil, PhaseEstimate{}, err
	}

	k := bestPhase(candidates)
	baseband := candidates[k].baseband
	estimate := PhaseEstimate{
		Index: k,
		Phase: phases[k],
		Score: candidates[k].score,
	}

	if mean(baseband[:min(cfg.SymbolLen, len(baseband))]) <= 0 {
		for i := range baseband {
			baseband[i] = -baseband[i]
		}
		estimate.Inverted = true
	}

	logger.Debug("phase locked",
		"candidate", estimate.Index,
		"phase", estimate.Phase,
		"score", estimate.Score,
		"inverted", estimate.Inverted,
	)
	return baseband, estimate, nil
}

// DemodulateBaseband recovers the baseband of a bounded segment with the
// default 16-point phase search. freq and rate must match the transmitter;
// lpfBandwidth is in rad/s. The preamble polarity is not resolved here,
// since the symbol length is unknown to this call.
func DemodulateBaseband(segment []float64, freq rf.Hz, rate, lpfBandwidth float64) ([]float64, error) {
	cfg := DefaultConfig()
	cfg.Freq = freq
	cfg.SampleRate = rate
	cfg.LPFBandwidth = lpfBandwidth
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(segment) == 0 {
		return nil, fmt.Errorf("%w: empty segment", ErrInvalidInput)
	}

	_, candidates, err := rankPhases(segment, cfg)
	if err != nil {
		return nil, err
	}
	return candidates[bestPhase(candidates)].baseband, nil
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s / float64(len(x))
}
