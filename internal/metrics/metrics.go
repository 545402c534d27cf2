// Package metrics exposes prometheus collectors for series generation and
// chart rendering.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"synthchart/internal/series"
)

// Collectors groups the counters one client instance reports into.
type Collectors struct {
	PointsGenerated prometheus.Counter
	EffectsApplied  *prometheus.CounterVec
	NaNReplaced     prometheus.Counter
	ChartsRendered  *prometheus.CounterVec
	RenderFailures  *prometheus.CounterVec
	RenderedBytes   prometheus.Counter
}

func NewCollectors() *Collectors {
	return &Collectors{
		PointsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synthchart_points_generated_total",
			Help: "Number of series points generated.",
		}),
		EffectsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthchart_effects_applied_total",
				Help: "Number of perturbation terms applied, by effect.",
			},
			[]string{"effect"},
		),
		NaNReplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synthchart_nan_replaced_total",
			Help: "Number of NaN steps replaced by the range midpoint.",
		}),
		ChartsRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthchart_charts_rendered_total",
				Help: "Number of charts rendered, by kind.",
			},
			[]string{"kind"},
		),
		RenderFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synthchart_render_failures_total",
				Help: "Number of failed chart renders, by kind.",
			},
			[]string{"kind"},
		),
		RenderedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synthchart_rendered_bytes_total",
			Help: "Total size of encoded chart images.",
		}),
	}
}

func (c *Collectors) all() []prometheus.Collector {
	return []prometheus.Collector{
		c.PointsGenerated,
		c.EffectsApplied,
		c.NaNReplaced,
		c.ChartsRendered,
		c.RenderFailures,
		c.RenderedBytes,
	}
}

// Register adds every collector to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, collector := range c.all() {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Observer adapts the collectors to series.Observer. Label lookups are cached
// since the observer runs once per applied effect.
func (c *Collectors) Observer() series.Observer {
	return &observer{c: c}
}

type observer struct {
	c *Collectors

	once    sync.Once
	effects map[series.Effect]prometheus.Counter
}

func (o *observer) EffectApplied(effect series.Effect) {
	o.once.Do(func() {
		o.effects = make(map[series.Effect]prometheus.Counter)
		for _, e := range series.AllEffects() {
			o.effects[e] = o.c.EffectsApplied.WithLabelValues(e.String())
		}
	})
	if counter, ok := o.effects[effect]; ok {
		counter.Inc()
	}
}

func (o *observer) NaNReplaced() {
	o.c.NaNReplaced.Inc()
}

// WriteTextfile dumps every metric in g in the node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
