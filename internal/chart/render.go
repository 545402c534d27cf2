// Package chart maps generated series onto chart configurations and
// rasterizes them to PNG.
//
// Cartesian and polar kinds are drawn with gonum/plot; pie and doughnut use
// go-chart, which has native share-based charts.
package chart

import (
	"context"
	"errors"
	"fmt"
	"math"

	"synthchart/internal/logging"
	"synthchart/internal/series"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrNoData is returned when a configuration has nothing to draw.
var ErrNoData = errors.New("chart: no data to render")

// Renderer turns a configuration into an encoded image.
type Renderer interface {
	Render(ctx context.Context, cfg Config, width, height int) ([]byte, error)
}

// PNGRenderer renders every Kind to PNG.
type PNGRenderer struct {
	logger *logging.Logger
}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{logger: logging.GetLogger("chart")}
}

func (r *PNGRenderer) Render(ctx context.Context, cfg Config, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !cfg.Kind.Valid() {
		return nil, fmt.Errorf("%w: %s, available kinds: %s", ErrUnsupportedKind, cfg.Kind, supportedList())
	}
	if cfg.Len() == 0 {
		return nil, fmt.Errorf("render %s chart: %w", cfg.Kind, ErrNoData)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var (
		img []byte
		err error
	)
	switch cfg.Kind {
	case KindPie, KindDoughnut:
		img, err = renderShare(cfg, width, height)
	default:
		img, err = renderPlot(cfg, width, height)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", cfg.Kind, err)
	}

	r.logger.Debug("chart rendered",
		"kind", cfg.Kind,
		"entries", cfg.Len(),
		"width", width,
		"height", height,
		"bytes", len(img),
	)
	return img, nil
}

// RenderPoints builds the configuration for points and renders it.
func RenderPoints(ctx context.Context, r Renderer, points []series.Point, kind Kind, width, height int) ([]byte, error) {
	cfg, err := BuildConfig(points, kind)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, cfg, width, height)
}

// finiteValues replaces NaN and infinities with zero so label indexes stay
// aligned.
func finiteValues(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = v
		}
	}
	return out
}

func finitePairs(points []series.Point) []series.Point {
	out := make([]series.Point, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		out = append(out, p)
	}
	return out
}
