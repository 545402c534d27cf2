package stats

import "synthchart/internal/series"

// Downsample averages consecutive runs of points so that at most buckets
// points remain. Series already within the limit are returned as a copy.
func Downsample(points []series.Point, buckets int) []series.Point {
	if buckets <= 0 || len(points) <= buckets {
		return append([]series.Point(nil), points...)
	}

	out := make([]series.Point, 0, buckets)
	for b := 0; b < buckets; b++ {
		start := b * len(points) / buckets
		end := (b + 1) * len(points) / buckets
		var sx, sy float64
		for _, p := range points[start:end] {
			sx += p.X
			sy += p.Y
		}
		n := float64(end - start)
		out = append(out, series.Point{X: sx / n, Y: sy / n})
	}
	return out
}
