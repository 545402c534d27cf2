package synthchart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthchart/internal/series"
)

func TestValidateRequestAcceptsDefaults(t *testing.T) {
	require.NoError(t, ValidateRequest(series.Request{Count: 10, MaxX: 100, MaxY: 100}))
	require.NoError(t, ValidateRequest(series.Request{}))
}

func TestValidateRequestReportsEveryProblem(t *testing.T) {
	err := ValidateRequest(series.Request{
		Count: 1, MinX: math.Inf(-1), MaxX: 1, MinY: 3, MaxY: 2,
		Effects: series.Effects{
			CyclicJumpRate: series.Float(-0.1),
			NoiseAmplitude: series.Float(math.NaN()),
		},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	for _, want := range []string{
		"min x must be finite",
		"min y 3 exceeds max y 2",
		"noise amplitude must be finite",
		"cyclic jump rate must be within [0, 1]",
	} {
		assert.Contains(t, err.Error(), want)
	}
}
