package stats

import (
	"math"

	"synthchart/internal/model"
	"synthchart/internal/series"
)

// Summarize computes y statistics over the finite values of points.
func Summarize(points []series.Point) model.SeriesSummary {
	summary := model.SeriesSummary{}
	var sum, sumSq float64
	for _, p := range points {
		if math.IsNaN(p.Y) {
			summary.NaNCount++
			continue
		}
		if summary.Count == 0 {
			summary.MinY, summary.MaxY, summary.FirstY = p.Y, p.Y, p.Y
		}
		summary.Count++
		summary.MinY = math.Min(summary.MinY, p.Y)
		summary.MaxY = math.Max(summary.MaxY, p.Y)
		summary.LastY = p.Y
		sum += p.Y
		sumSq += p.Y * p.Y
	}
	if summary.Count == 0 {
		return summary
	}

	n := float64(summary.Count)
	summary.MeanY = sum / n
	variance := sumSq/n - summary.MeanY*summary.MeanY
	if variance > 0 {
		summary.StdY = math.Sqrt(variance)
	}
	return summary
}
