package series

import (
	"fmt"
	"strings"
)

// Effects selects the perturbations applied on every step. A nil field is
// absent; a present field is applied even when it holds zero.
type Effects struct {
	RandomSpikes    bool     `json:"random_spikes,omitempty"`
	SpikeChance     *float64 `json:"spike_chance,omitempty"`
	SpikeMultiplier *float64 `json:"spike_multiplier,omitempty"`

	NoiseAmplitude *float64 `json:"noise_amplitude,omitempty"`
	DriftRate      *float64 `json:"drift_rate,omitempty"`

	PeriodicityFrequency *float64 `json:"periodicity_frequency,omitempty"`
	PeriodicityAmplitude *float64 `json:"periodicity_amplitude,omitempty"`

	TrendSlope *float64 `json:"trend_slope,omitempty"`

	CyclicJumpRate *float64 `json:"cyclic_jump_rate,omitempty"`
	JumpAmplitude  *float64 `json:"jump_amplitude,omitempty"`
}

// Float returns a pointer to v, for filling Effects literals.
func Float(v float64) *float64 {
	return &v
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Configured lists the effects that can fire for this bundle, in application
// order. The cyclic jump check always runs but is only listed when a rate is
// present.
func (e Effects) Configured() []Effect {
	out := make([]Effect, 0, len(allEffects))
	if e.RandomSpikes {
		out = append(out, EffectSpike)
	}
	if e.NoiseAmplitude != nil {
		out = append(out, EffectNoise)
	}
	if e.DriftRate != nil {
		out = append(out, EffectDrift)
	}
	if e.PeriodicityFrequency != nil && e.PeriodicityAmplitude != nil {
		out = append(out, EffectPeriodicity)
	}
	if e.TrendSlope != nil {
		out = append(out, EffectTrend)
	}
	if e.CyclicJumpRate != nil {
		out = append(out, EffectJump)
	}
	return out
}

// Effect names one perturbation term of the recurrence.
type Effect uint8

const (
	EffectSpike Effect = iota
	EffectNoise
	EffectDrift
	EffectPeriodicity
	EffectTrend
	EffectJump
)

var allEffects = []Effect{EffectSpike, EffectNoise, EffectDrift, EffectPeriodicity, EffectTrend, EffectJump}

// AllEffects returns every effect in application order.
func AllEffects() []Effect {
	return append([]Effect(nil), allEffects...)
}

func (e Effect) String() string {
	switch e {
	case EffectSpike:
		return "spike"
	case EffectNoise:
		return "noise"
	case EffectDrift:
		return "drift"
	case EffectPeriodicity:
		return "periodicity"
	case EffectTrend:
		return "trend"
	case EffectJump:
		return "jump"
	default:
		return fmt.Sprintf("effect(%d)", uint8(e))
	}
}

// NaNPolicy decides what happens to a step whose value is not a number.
type NaNPolicy uint8

const (
	// NaNCorrected replaces a NaN step with the y-range midpoint.
	NaNCorrected NaNPolicy = iota
	// NaNLegacy emits NaN untouched and carries it forward, matching the
	// historical generator output.
	NaNLegacy
)

func (p NaNPolicy) String() string {
	switch p {
	case NaNCorrected:
		return "corrected"
	case NaNLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("nan_policy(%d)", uint8(p))
	}
}

// ParseNaNPolicy accepts "corrected" (or empty) and "legacy".
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "corrected":
		return NaNCorrected, nil
	case "legacy":
		return NaNLegacy, nil
	default:
		return NaNCorrected, fmt.Errorf("unsupported nan policy: %s (want corrected|legacy)", s)
	}
}

func (p NaNPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *NaNPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseNaNPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
