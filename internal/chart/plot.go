package chart

import (
	"bytes"
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"synthchart/internal/series"
)

// pixelDPI makes one vg point map to one output pixel.
const pixelDPI = 72

func renderPlot(cfg Config, width, height int) ([]byte, error) {
	p := plot.New()
	p.Title.Text = cfg.Dataset.Label

	ds := cfg.Dataset
	border := draw.LineStyle{Color: ds.BorderColor, Width: vg.Points(ds.BorderWidth)}

	switch cfg.Kind {
	case KindLine:
		values := finiteValues(ds.Values)
		xys := make(plotter.XYs, len(values))
		for i, v := range values {
			xys[i] = plotter.XY{X: float64(i + 1), Y: v}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle = border
		points.GlyphStyle = draw.GlyphStyle{Color: ds.BorderColor, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
		p.Add(line, points)
	case KindBar:
		values := finiteValues(ds.Values)
		barWidth := vg.Length(width) / vg.Length(len(values)+1) * 0.6
		if barWidth < 1 {
			barWidth = 1
		}
		bars, err := plotter.NewBarChart(plotter.Values(values), barWidth)
		if err != nil {
			return nil, err
		}
		bars.Color = ds.background(0)
		bars.LineStyle = border
		p.Add(bars)
		if len(cfg.Labels) <= 50 {
			p.NominalX(cfg.Labels...)
		}
	case KindScatter, KindBubble:
		xys := toXYs(finitePairs(ds.Pairs))
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		if cfg.Kind == KindBubble {
			scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				return draw.GlyphStyle{Color: ds.background(i), Radius: vg.Points(8), Shape: draw.CircleGlyph{}}
			}
		} else {
			scatter.GlyphStyle = draw.GlyphStyle{Color: ds.BorderColor, Radius: vg.Points(3), Shape: draw.RingGlyph{}}
		}
		p.Add(scatter)
	case KindRadar, KindPolarArea:
		p.HideAxes()
		p.Add(&polarPlotter{
			kind:   cfg.Kind,
			values: finiteValues(ds.Values),
			fill:   ds.background,
			border: border,
		})
	default:
		return nil, errors.New("kind is not drawn with gonum/plot")
	}

	if cfg.XAxis != nil {
		p.X.Label.Text = cfg.XAxis.Title
	}
	if cfg.YAxis != nil {
		p.Y.Label.Text = cfg.YAxis.Title
	}

	canvas := vgimg.NewWith(vgimg.UseWH(vg.Length(width), vg.Length(height)), vgimg.UseDPI(pixelDPI))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toXYs(points []series.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

// polarPlotter draws radar and polar-area charts centred in the data area.
// Radii are proportional to |value| relative to the largest magnitude.
type polarPlotter struct {
	kind   Kind
	values []float64
	fill   func(i int) color.NRGBA
	border draw.LineStyle
}

const arcSegments = 24

func (pp *polarPlotter) Plot(c draw.Canvas, _ *plot.Plot) {
	n := len(pp.values)
	if n == 0 {
		return
	}

	center := c.Center()
	radius := 0.9 * min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2
	peak := 0.0
	for _, v := range pp.values {
		peak = max(peak, math.Abs(v))
	}
	if peak == 0 {
		peak = 1
	}

	grid := draw.LineStyle{Color: color.Gray{Y: 200}, Width: vg.Points(0.5)}
	for _, frac := range []float64{0.5, 1} {
		c.StrokeLines(grid, ring(center, radius*vg.Length(frac)))
	}

	step := 2 * math.Pi / float64(n)
	switch pp.kind {
	case KindRadar:
		outline := make([]vg.Point, 0, n+1)
		for i, v := range pp.values {
			theta := math.Pi/2 - float64(i)*step
			c.StrokeLine2(grid, center.X, center.Y, center.X+radius*vg.Length(math.Cos(theta)), center.Y+radius*vg.Length(math.Sin(theta)))
			outline = append(outline, polar(center, radius*vg.Length(math.Abs(v)/peak), theta))
		}
		c.FillPolygon(pp.fill(0), outline)
		c.StrokeLines(pp.border, append(outline, outline[0]))
	case KindPolarArea:
		for i, v := range pp.values {
			r := radius * vg.Length(math.Abs(v)/peak)
			start := math.Pi/2 - float64(i)*step
			wedge := []vg.Point{center}
			for s := 0; s <= arcSegments; s++ {
				wedge = append(wedge, polar(center, r, start-step*float64(s)/arcSegments))
			}
			c.FillPolygon(pp.fill(i), wedge)
			c.StrokeLines(pp.border, append(wedge, center))
		}
	}
}

func polar(center vg.Point, r vg.Length, theta float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(theta)),
		Y: center.Y + r*vg.Length(math.Sin(theta)),
	}
}

func ring(center vg.Point, r vg.Length) []vg.Point {
	pts := make([]vg.Point, 0, 4*arcSegments+1)
	for s := 0; s <= 4*arcSegments; s++ {
		pts = append(pts, polar(center, r, 2*math.Pi*float64(s)/(4*arcSegments)))
	}
	return pts
}
