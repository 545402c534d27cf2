// Package series produces synthetic {x, y} series for exercising chart code.
//
// Each y value is the previous clamped value plus a set of optional additive
// perturbations, applied in a fixed order: spike, noise, drift, periodicity,
// trend, cyclic jump. The result is clamped into [MinY, MaxY] and carried
// forward. x values are independent uniform draws in [MinX, MaxX).
package series

import (
	"iter"
	"math"

	"golang.org/x/exp/constraints"

	"synthchart/internal/randx"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Request describes one generation call. Range ordering is not validated.
type Request struct {
	Count   int     `json:"count"`
	MinX    float64 `json:"min_x"`
	MaxX    float64 `json:"max_x"`
	MinY    float64 `json:"min_y"`
	MaxY    float64 `json:"max_y"`
	Effects Effects `json:"effects"`
}

// Midpoint is the value carried into the first step.
func Midpoint(req Request) float64 {
	return (req.MinY + req.MaxY) / 2
}

// Observer is notified as perturbations fire. Implementations must be cheap;
// they run inside the generation loop.
type Observer interface {
	EffectApplied(effect Effect)
	NaNReplaced()
}

type nopObserver struct{}

func (nopObserver) EffectApplied(Effect) {}
func (nopObserver) NaNReplaced()         {}

type Option func(*Generator)

func WithNaNPolicy(policy NaNPolicy) Option {
	return func(g *Generator) {
		g.policy = policy
	}
}

func WithObserver(observer Observer) Option {
	return func(g *Generator) {
		if observer != nil {
			g.observer = observer
		}
	}
}

// Generator holds no per-call state; it is safe for concurrent use when its
// source is.
type Generator struct {
	src      randx.Source
	policy   NaNPolicy
	observer Observer
}

func New(src randx.Source, opts ...Option) *Generator {
	if src == nil {
		src = randx.Global()
	}
	g := &Generator{
		src:      src,
		policy:   NaNCorrected,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Policy() NaNPolicy {
	return g.policy
}

// Generate returns exactly max(req.Count, 0) points.
func (g *Generator) Generate(req Request) []Point {
	points := make([]Point, 0, max(req.Count, 0))
	for p := range g.Points(req) {
		points = append(points, p)
	}
	return points
}

// Points yields the series lazily. Stopping the range stops generation.
func (g *Generator) Points(req Request) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		prev := Midpoint(req)
		for i := 0; i < req.Count; i++ {
			x := randx.Scalar(g.src, req.MinX, req.MaxX)
			y := clamp(g.step(prev, req.Effects), req.MinY, req.MaxY)
			if math.IsNaN(y) && g.policy == NaNCorrected {
				y = Midpoint(req)
				g.observer.NaNReplaced()
			}
			if !yield(Point{X: x, Y: y}) {
				return
			}
			prev = y
		}
	}
}

// Generate runs a one-off generator with the default NaN policy.
func Generate(src randx.Source, req Request) []Point {
	return New(src).Generate(req)
}

func (g *Generator) step(prev float64, fx Effects) float64 {
	value := prev

	if fx.RandomSpikes && g.src.Float64() < valueOrZero(fx.SpikeChance) {
		amplitude := g.src.Float64() * valueOrZero(fx.SpikeMultiplier)
		sign := -1.0
		if g.src.Float64() > 0.5 {
			sign = 1
		}
		value += amplitude * sign
		g.observer.EffectApplied(EffectSpike)
	}

	if fx.NoiseAmplitude != nil {
		value += (g.src.Float64() - 0.5) * *fx.NoiseAmplitude
		g.observer.EffectApplied(EffectNoise)
	}

	if fx.DriftRate != nil {
		value += *fx.DriftRate
		g.observer.EffectApplied(EffectDrift)
	}

	// The sine reads the carried value, not the partial sum above.
	if fx.PeriodicityFrequency != nil && fx.PeriodicityAmplitude != nil {
		freq, amp := *fx.PeriodicityFrequency, *fx.PeriodicityAmplitude
		value += math.Sin(prev*freq) * amp
		g.observer.EffectApplied(EffectPeriodicity)
	}

	if fx.TrendSlope != nil {
		value += *fx.TrendSlope
		g.observer.EffectApplied(EffectTrend)
	}

	if g.src.Float64() < valueOrZero(fx.CyclicJumpRate) {
		jump := valueOrZero(fx.JumpAmplitude)
		value += g.src.Float64()*jump*2 - jump
		g.observer.EffectApplied(EffectJump)
	}

	return value
}

// clamp is min(max(v, lo), hi). NaN propagates through both builtins, and an
// inverted range resolves to hi.
func clamp[T constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
