package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"synthchart/internal/series"
)

var seriesHeader = []string{"index", "x", "y"}

func WriteSeriesCSV(w io.Writer, points []series.Point) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(seriesHeader); err != nil {
		return err
	}
	for i, p := range points {
		if err := writer.Write([]string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadSeriesCSV(r io.Reader) ([]series.Point, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []series.Point{}, nil
		}
		return nil, err
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("series header must have at least 3 columns")
	}

	points := make([]series.Point, 0, 128)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("series row must have at least 3 columns")
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse x on row %s: %w", record[0], err)
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse y on row %s: %w", record[0], err)
		}
		points = append(points, series.Point{X: x, Y: y})
	}
	return points, nil
}
