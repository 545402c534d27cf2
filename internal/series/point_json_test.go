package series

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointJSONNaNBecomesNull(t *testing.T) {
	data, err := json.Marshal([]Point{{X: 1.5, Y: math.NaN()}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"x":1.5,"y":null}]`, string(data))

	var decoded []Point
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 1.5, decoded[0].X)
	assert.True(t, math.IsNaN(decoded[0].Y))
}
