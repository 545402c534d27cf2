package synthchart

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"

	"synthchart/internal/series"
)

var ErrInvalidRequest = errors.New("invalid generation request")

// ValidateRequest checks the caller-side preconditions the generator itself
// does not enforce. Every problem found is reported.
func ValidateRequest(req series.Request) error {
	var result *multierror.Error
	if req.Count < 0 {
		result = multierror.Append(result, fmt.Errorf("count must be >= 0, got %d", req.Count))
	}
	for _, bound := range []struct {
		name  string
		value float64
	}{{"min x", req.MinX}, {"max x", req.MaxX}, {"min y", req.MinY}, {"max y", req.MaxY}} {
		if !finite(bound.value) {
			result = multierror.Append(result, fmt.Errorf("%s must be finite", bound.name))
		}
	}
	if req.MinX > req.MaxX {
		result = multierror.Append(result, fmt.Errorf("min x %g exceeds max x %g", req.MinX, req.MaxX))
	}
	if req.MinY > req.MaxY {
		result = multierror.Append(result, fmt.Errorf("min y %g exceeds max y %g", req.MinY, req.MaxY))
	}

	fx := req.Effects
	for _, param := range []struct {
		name  string
		value *float64
	}{
		{"spike chance", fx.SpikeChance},
		{"spike multiplier", fx.SpikeMultiplier},
		{"noise amplitude", fx.NoiseAmplitude},
		{"drift rate", fx.DriftRate},
		{"periodicity frequency", fx.PeriodicityFrequency},
		{"periodicity amplitude", fx.PeriodicityAmplitude},
		{"trend slope", fx.TrendSlope},
		{"cyclic jump rate", fx.CyclicJumpRate},
		{"jump amplitude", fx.JumpAmplitude},
	} {
		if param.value != nil && !finite(*param.value) {
			result = multierror.Append(result, fmt.Errorf("%s must be finite", param.name))
		}
	}
	if fx.SpikeChance != nil && !probability(*fx.SpikeChance) {
		result = multierror.Append(result, fmt.Errorf("spike chance must be within [0, 1], got %g", *fx.SpikeChance))
	}
	if fx.CyclicJumpRate != nil && !probability(*fx.CyclicJumpRate) {
		result = multierror.Append(result, fmt.Errorf("cyclic jump rate must be within [0, 1], got %g", *fx.CyclicJumpRate))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func probability(v float64) bool {
	return v >= 0 && v <= 1
}
