package chart

import (
	"bytes"
	"errors"
	"image/color"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderShare draws pie and doughnut charts. Slices are sized by |value|.
func renderShare(cfg Config, width, height int) ([]byte, error) {
	ds := cfg.Dataset
	values := finiteValues(ds.Values)
	slices := make([]gochart.Value, 0, len(values))
	total := 0.0
	for i, v := range values {
		total += math.Abs(v)
		label := ""
		if i < len(cfg.Labels) {
			label = cfg.Labels[i]
		}
		slices = append(slices, gochart.Value{
			Label: label,
			Value: math.Abs(v),
			Style: gochart.Style{
				FillColor:   toDrawing(ds.background(i)),
				StrokeColor: toDrawing(ds.BorderColor),
				StrokeWidth: ds.BorderWidth,
			},
		})
	}

	if total == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	switch cfg.Kind {
	case KindPie:
		pie := gochart.PieChart{
			Title:  ds.Label,
			Width:  width,
			Height: height,
			Values: slices,
		}
		if err := pie.Render(gochart.PNG, &buf); err != nil {
			return nil, err
		}
	case KindDoughnut:
		donut := gochart.DonutChart{
			Title:  ds.Label,
			Width:  width,
			Height: height,
			Values: slices,
		}
		if err := donut.Render(gochart.PNG, &buf); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("kind is not drawn with go-chart")
	}
	return buf.Bytes(), nil
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
