package series

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthchart/internal/randx"
)

type countingObserver struct {
	applied  map[Effect]int
	replaced int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{applied: make(map[Effect]int)}
}

func (o *countingObserver) EffectApplied(effect Effect) { o.applied[effect]++ }
func (o *countingObserver) NaNReplaced()                { o.replaced++ }

func TestGenerateNoEffectsScenario(t *testing.T) {
	points := Generate(randx.NewSource(1), Request{Count: 5, MinX: 0, MaxX: 10, MinY: 0, MaxY: 10})
	require.Len(t, points, 5)
	for _, p := range points {
		assert.Equal(t, 5.0, p.Y)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 10.0)
	}
}

func TestGenerateLength(t *testing.T) {
	gen := New(randx.NewSource(2))
	for _, count := range []int{0, 1, 17, 1000} {
		assert.Len(t, gen.Generate(Request{Count: count, MaxX: 1, MaxY: 1}), count)
	}
	assert.Empty(t, gen.Generate(Request{Count: -4, MaxX: 1, MaxY: 1}))
}

func TestGenerateInvertedRangeResolvesToMaxY(t *testing.T) {
	// An inverted y range: max(v, MinY) lifts to 10, then min(.., MaxY) caps
	// at 0, every step.
	points := Generate(randx.NewSource(3), Request{Count: 4, MinX: 0, MaxX: 1, MinY: 10, MaxY: 0})
	require.Len(t, points, 4)
	for _, p := range points {
		assert.Equal(t, 0.0, p.Y)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, clamp(-3.0, 1, 5))
	assert.Equal(t, 5.0, clamp(9.0, 1, 5))
	assert.Equal(t, 2.5, clamp(2.5, 1, 5))
	assert.Equal(t, 0.0, clamp(5.0, 10, 0))
	assert.True(t, math.IsNaN(clamp(math.NaN(), 1, 5)))
	assert.Equal(t, 5.0, clamp(math.Inf(1), 1, 5))
	assert.Equal(t, float32(1), clamp(float32(-1), 1, 5))
}

func TestGenerateRangeInvariant(t *testing.T) {
	req := Request{
		Count: 5000,
		MinX:  -50, MaxX: 50,
		MinY: -20, MaxY: 20,
		Effects: Effects{
			RandomSpikes:         true,
			SpikeChance:          Float(0.2),
			SpikeMultiplier:      Float(80),
			NoiseAmplitude:       Float(10),
			DriftRate:            Float(0.7),
			PeriodicityFrequency: Float(0.3),
			PeriodicityAmplitude: Float(12),
			TrendSlope:           Float(-0.4),
			CyclicJumpRate:       Float(0.1),
			JumpAmplitude:        Float(60),
		},
	}
	for _, p := range Generate(randx.NewSource(4), req) {
		require.GreaterOrEqual(t, p.X, req.MinX)
		require.LessOrEqual(t, p.X, req.MaxX)
		require.GreaterOrEqual(t, p.Y, req.MinY)
		require.LessOrEqual(t, p.Y, req.MaxY)
	}
}

func TestGenerateDriftOnlyMonotonicUntilClamped(t *testing.T) {
	points := Generate(randx.NewSource(5), Request{
		Count: 8, MinX: 0, MaxX: 1, MinY: 0, MaxY: 10,
		Effects: Effects{DriftRate: Float(1)},
	})
	want := []float64{6, 7, 8, 9, 10, 10, 10, 10}
	for i, p := range points {
		assert.Equal(t, want[i], p.Y, "point %d", i)
	}
}

func TestGenerateExplicitZeroDriftIsApplied(t *testing.T) {
	obs := newCountingObserver()
	points := New(randx.NewSource(6), WithObserver(obs)).Generate(Request{
		Count: 4, MaxX: 1, MaxY: 10,
		Effects: Effects{DriftRate: Float(0)},
	})
	for _, p := range points {
		assert.Equal(t, 5.0, p.Y)
	}
	assert.Equal(t, 4, obs.applied[EffectDrift])
}

func TestGenerateDriftAndTrendAdditive(t *testing.T) {
	points := Generate(randx.NewSource(7), Request{
		Count: 20, MinX: 0, MaxX: 1, MinY: 0, MaxY: 100,
		Effects: Effects{DriftRate: Float(0.5), TrendSlope: Float(0.25)},
	})
	prev := 50.0
	for i, p := range points {
		assert.InDelta(t, prev+0.75, p.Y, 1e-9, "point %d", i)
		prev = p.Y
	}
}

func TestGenerateJumpRateBoundaries(t *testing.T) {
	req := Request{
		Count: 2000, MinX: 0, MaxX: 1, MinY: -1e9, MaxY: 1e9,
		Effects: Effects{CyclicJumpRate: Float(0), JumpAmplitude: Float(5)},
	}

	never := newCountingObserver()
	for _, p := range New(randx.NewSource(8), WithObserver(never)).Generate(req) {
		require.Equal(t, 0.0, p.Y)
	}
	assert.Zero(t, never.applied[EffectJump])

	req.Effects.CyclicJumpRate = Float(1)
	always := newCountingObserver()
	points := New(randx.NewSource(8), WithObserver(always)).Generate(req)
	assert.Equal(t, req.Count, always.applied[EffectJump])
	prev := 0.0
	for _, p := range points {
		require.LessOrEqual(t, math.Abs(p.Y-prev), 5.0)
		prev = p.Y
	}
}

func TestGenerateMissingJumpRateStillDraws(t *testing.T) {
	seq := randx.NewSequence(0.5)
	Generate(seq, Request{Count: 3, MaxX: 1, MaxY: 1})
	// One x draw and one jump check per point.
	assert.Equal(t, 6, seq.Draws())
}

func TestGenerateNoiseBound(t *testing.T) {
	const amplitude = 3.0
	points := Generate(randx.NewSource(9), Request{
		Count: 5000, MinX: 0, MaxX: 1, MinY: -1e6, MaxY: 1e6,
		Effects: Effects{NoiseAmplitude: Float(amplitude)},
	})
	prev := 0.0
	for _, p := range points {
		require.LessOrEqual(t, math.Abs(p.Y-prev), amplitude/2)
		prev = p.Y
	}
}

func TestGenerateExactDrawSequence(t *testing.T) {
	seq := randx.NewSequence(
		0.3,  // x
		0.1,  // spike check, below chance
		0.5,  // spike amplitude
		0.9,  // spike sign, positive
		0.75, // noise
		0.2,  // jump check, below rate
		0.75, // jump amplitude
	)
	points := Generate(seq, Request{
		Count: 1, MinX: 0, MaxX: 10, MinY: 0, MaxY: 100,
		Effects: Effects{
			RandomSpikes:         true,
			SpikeChance:          Float(0.5),
			SpikeMultiplier:      Float(10),
			NoiseAmplitude:       Float(4),
			DriftRate:            Float(1),
			PeriodicityFrequency: Float(math.Pi / 100),
			PeriodicityAmplitude: Float(3),
			TrendSlope:           Float(2),
			CyclicJumpRate:       Float(0.5),
			JumpAmplitude:        Float(6),
		},
	})
	require.Len(t, points, 1)
	assert.InDelta(t, 3.0, points[0].X, 1e-12)
	// 50 + spike 5 + noise 1 + drift 1 + sin(pi/2)*3 + trend 2 + jump 3
	assert.InDelta(t, 65.0, points[0].Y, 1e-9)
	assert.Equal(t, 7, seq.Draws())
}

func TestGenerateSpikeSignNegativeAtHalf(t *testing.T) {
	seq := randx.NewSequence(0, 0, 1.0/4, 0.5, 0.99)
	points := Generate(seq, Request{
		Count: 1, MaxX: 1, MaxY: 100,
		Effects: Effects{RandomSpikes: true, SpikeChance: Float(1), SpikeMultiplier: Float(8)},
	})
	assert.InDelta(t, 48.0, points[0].Y, 1e-12)
}

func TestGenerateSpikesNeedFlag(t *testing.T) {
	obs := newCountingObserver()
	New(randx.NewSource(10), WithObserver(obs)).Generate(Request{
		Count: 500, MaxX: 1, MaxY: 100,
		Effects: Effects{SpikeChance: Float(1), SpikeMultiplier: Float(8)},
	})
	assert.Zero(t, obs.applied[EffectSpike])
}

func TestGeneratePeriodicityReadsCarriedValue(t *testing.T) {
	// Drift moves the partial sum, but the sine must still see the previous
	// clamped value.
	points := Generate(randx.NewSource(11), Request{
		Count: 2, MaxX: 1, MinY: -100, MaxY: 100,
		Effects: Effects{
			DriftRate:            Float(1),
			PeriodicityFrequency: Float(1),
			PeriodicityAmplitude: Float(2),
		},
	})
	first := 0 + 1 + math.Sin(0)*2
	second := first + 1 + math.Sin(first)*2
	assert.InDelta(t, first, points[0].Y, 1e-12)
	assert.InDelta(t, second, points[1].Y, 1e-12)
}

func TestGeneratePeriodicityNeedsBothFields(t *testing.T) {
	points := Generate(randx.NewSource(12), Request{
		Count: 3, MaxX: 1, MaxY: 10,
		Effects: Effects{PeriodicityFrequency: Float(2)},
	})
	for _, p := range points {
		assert.Equal(t, 5.0, p.Y)
	}
}

func TestGenerateNaNLegacyPropagates(t *testing.T) {
	req := Request{
		Count: 4, MinX: 0, MaxX: 10, MinY: 0, MaxY: 10,
		Effects: Effects{
			PeriodicityFrequency: Float(math.Inf(1)),
			PeriodicityAmplitude: Float(1),
		},
	}
	points := New(randx.NewSource(13), WithNaNPolicy(NaNLegacy)).Generate(req)
	require.Len(t, points, 4)
	for _, p := range points {
		// Documented exception to the range invariant.
		assert.True(t, math.IsNaN(p.Y))
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 10.0)
	}
}

func TestGenerateNaNCorrectedUsesMidpoint(t *testing.T) {
	req := Request{
		Count: 4, MinX: 0, MaxX: 10, MinY: 0, MaxY: 10,
		Effects: Effects{
			PeriodicityFrequency: Float(math.Inf(1)),
			PeriodicityAmplitude: Float(1),
		},
	}
	obs := newCountingObserver()
	gen := New(randx.NewSource(13), WithObserver(obs))
	require.Equal(t, NaNCorrected, gen.Policy())
	for _, p := range gen.Generate(req) {
		assert.Equal(t, 5.0, p.Y)
	}
	assert.Equal(t, 4, obs.replaced)
}

func TestGenerateInfiniteValuesAreClamped(t *testing.T) {
	points := Generate(randx.NewSource(14), Request{
		Count: 2, MaxX: 1, MinY: -1, MaxY: 1,
		Effects: Effects{DriftRate: Float(math.Inf(1))},
	})
	for _, p := range points {
		assert.Equal(t, 1.0, p.Y)
	}
}

func TestPointsStopsEarly(t *testing.T) {
	seq := randx.NewSequence(0.5)
	gen := New(seq)
	taken := 0
	for range gen.Points(Request{Count: 1000, MaxX: 1, MaxY: 1}) {
		taken++
		if taken == 3 {
			break
		}
	}
	assert.Equal(t, 3, taken)
	assert.Equal(t, 6, seq.Draws())
}

func TestGenerateConcurrentCallsWithGlobalSource(t *testing.T) {
	gen := New(nil)
	req := Request{
		Count: 200, MaxX: 1, MinY: -10, MaxY: 10,
		Effects: Effects{NoiseAmplitude: Float(1), CyclicJumpRate: Float(0.3), JumpAmplitude: Float(4)},
	}

	var wg sync.WaitGroup
	results := make([][]Point, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = gen.Generate(req)
		}(i)
	}
	wg.Wait()

	for _, points := range results {
		require.Len(t, points, req.Count)
		for _, p := range points {
			require.GreaterOrEqual(t, p.Y, req.MinY)
			require.LessOrEqual(t, p.Y, req.MaxY)
		}
	}
}
