package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarBounds(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 1000; i++ {
		v := Scalar(src, -3, 12)
		require.GreaterOrEqual(t, v, -3.0)
		require.Less(t, v, 12.0)
	}
}

func TestScalarFormula(t *testing.T) {
	assert.Equal(t, 25.0, Scalar(NewSequence(0.25), 0, 100))
	assert.Equal(t, 10.0, Scalar(NewSequence(0), 10, 20))
	assert.InDelta(t, 15.0, Scalar(NewSequence(0.5), 10, 20), 1e-12)
}

func TestScalarReversedRange(t *testing.T) {
	v := Scalar(NewSequence(0.25), 10, 0)
	assert.InDelta(t, 7.5, v, 1e-12)

	src := NewSource(3)
	for i := 0; i < 200; i++ {
		v := Scalar(src, 10, 0)
		require.LessOrEqual(t, v, 10.0)
		require.Greater(t, v, 0.0)
	}
}

func TestDefaultRange(t *testing.T) {
	assert.Equal(t, 50.0, Default(NewSequence(0.5)))
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a, b := NewSource(11), NewSource(11)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSequenceCycles(t *testing.T) {
	seq := NewSequence(0.1, 0.2)
	assert.Equal(t, 0.1, seq.Float64())
	assert.Equal(t, 0.2, seq.Float64())
	assert.Equal(t, 0.1, seq.Float64())
	assert.Equal(t, 3, seq.Draws())
	assert.Equal(t, 0.0, NewSequence().Float64())
}

func TestGlobalSourceInUnitInterval(t *testing.T) {
	src := Global()
	for i := 0; i < 100; i++ {
		v := src.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}
