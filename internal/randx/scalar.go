// Package randx provides the bounded uniform draws the series generator is
// built on.
package randx

import (
	"math/rand"
)

const (
	DefaultMin = 0.0
	DefaultMax = 100.0
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

// Scalar returns a value uniformly distributed in [min, max). When min > max
// the draw falls in the reversed range (max, min].
func Scalar(src Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// Default draws from [DefaultMin, DefaultMax).
func Default(src Source) float64 {
	return Scalar(src, DefaultMin, DefaultMax)
}

// NewSource returns a seeded source. It must not be shared between goroutines.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Global returns the process-wide source. Safe for concurrent use.
func Global() Source {
	return globalSource{}
}

// Sequence replays a fixed list of draws, cycling when exhausted. Intended
// for pinning exact draw sequences.
type Sequence struct {
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: append([]float64(nil), values...)}
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
