package chart

import (
	"fmt"
	"image/color"

	"synthchart/internal/series"
)

const DatasetLabel = "Random Data"

var (
	backgroundPalette = []color.NRGBA{
		{R: 75, G: 192, B: 192, A: 51},
		{R: 255, G: 99, B: 132, A: 51},
		{R: 54, G: 162, B: 235, A: 51},
		{R: 255, G: 206, B: 86, A: 51},
	}
	borderColor = color.NRGBA{R: 75, G: 192, B: 192, A: 255}
)

type Dataset struct {
	Label string
	// Values is set for label-indexed kinds, Pairs for paired kinds.
	Values           []float64
	Pairs            []series.Point
	BackgroundColors []color.NRGBA
	BorderColor      color.NRGBA
	BorderWidth      float64
}

type Axis struct {
	Title string
}

// Config is everything a renderer needs to draw one chart.
type Config struct {
	Kind    Kind
	Labels  []string
	Dataset Dataset
	// XAxis and YAxis are only set for line and bar charts.
	XAxis *Axis
	YAxis *Axis
}

// Len is the number of plotted entries.
func (c Config) Len() int {
	if c.Kind.Paired() {
		return len(c.Dataset.Pairs)
	}
	return len(c.Dataset.Values)
}

func BuildConfig(points []series.Point, kind Kind) (Config, error) {
	if !kind.Valid() {
		return Config{}, fmt.Errorf("%w: %s, available kinds: %s", ErrUnsupportedKind, kind, supportedList())
	}

	labels := make([]string, len(points))
	for i := range points {
		labels[i] = fmt.Sprintf("Point %d", i+1)
	}

	ds := Dataset{
		Label:            DatasetLabel,
		BackgroundColors: append([]color.NRGBA(nil), backgroundPalette...),
		BorderColor:      borderColor,
		BorderWidth:      1,
	}
	if kind.Paired() {
		ds.Pairs = append([]series.Point(nil), points...)
	} else {
		ds.Values = make([]float64, len(points))
		for i, p := range points {
			ds.Values[i] = p.Y
		}
	}

	cfg := Config{Kind: kind, Labels: labels, Dataset: ds}
	if kind == KindLine || kind == KindBar {
		cfg.XAxis = &Axis{Title: "Data Points"}
		cfg.YAxis = &Axis{Title: "Value"}
	}
	return cfg, nil
}

func (d Dataset) background(i int) color.NRGBA {
	if len(d.BackgroundColors) == 0 {
		return backgroundPalette[i%len(backgroundPalette)]
	}
	return d.BackgroundColors[i%len(d.BackgroundColors)]
}
