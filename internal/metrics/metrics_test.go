package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthchart/internal/randx"
	"synthchart/internal/series"
)

func TestObserverCountsEffects(t *testing.T) {
	c := NewCollectors()
	gen := series.New(randx.NewSource(1), series.WithObserver(c.Observer()))
	gen.Generate(series.Request{
		Count: 10, MaxX: 1, MaxY: 100,
		Effects: series.Effects{DriftRate: series.Float(1), TrendSlope: series.Float(1)},
	})

	assert.Equal(t, 10.0, testutil.ToFloat64(c.EffectsApplied.WithLabelValues("drift")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.EffectsApplied.WithLabelValues("trend")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.EffectsApplied.WithLabelValues("noise")))
}

func TestObserverCountsNaNReplacement(t *testing.T) {
	c := NewCollectors()
	obs := c.Observer()
	obs.NaNReplaced()
	obs.NaNReplaced()
	assert.Equal(t, 2.0, testutil.ToFloat64(c.NaNReplaced))
}

func TestRegisterAndWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectors()
	require.NoError(t, c.Register(reg))
	require.Error(t, c.Register(reg), "double registration must fail")

	c.PointsGenerated.Add(5)
	c.ChartsRendered.WithLabelValues("line").Inc()

	path := filepath.Join(t.TempDir(), "synthchart.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "synthchart_points_generated_total 5")
	assert.Contains(t, string(data), `synthchart_charts_rendered_total{kind="line"} 1`)
}
