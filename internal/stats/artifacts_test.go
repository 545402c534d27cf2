package stats

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthchart/internal/model"
	"synthchart/internal/series"
)

func TestSeriesCSVRoundTrip(t *testing.T) {
	points := []series.Point{{X: 1.25, Y: 3}, {X: 9, Y: math.NaN()}}

	var buf bytes.Buffer
	require.NoError(t, WriteSeriesCSV(&buf, points))
	assert.Contains(t, buf.String(), "index,x,y\n1,1.25,3\n")

	loaded, err := ReadSeriesCSV(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, points[0], loaded[0])
	assert.True(t, math.IsNaN(loaded[1].Y))
}

func TestReadSeriesCSVErrors(t *testing.T) {
	empty, err := ReadSeriesCSV(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ReadSeriesCSV(bytes.NewBufferString("index,x\n"))
	require.Error(t, err)

	_, err = ReadSeriesCSV(bytes.NewBufferString("index,x,y\n1,abc,2\n"))
	require.Error(t, err)
}

func TestWriteRunArtifacts(t *testing.T) {
	base := t.TempDir()
	seed := int64(9)
	run := model.Run{
		ID:           "run-1",
		CreatedAtUTC: "2026-01-02T03:04:05Z",
		Seed:         &seed,
		Kind:         "line",
		Request:      series.Request{Count: 2, MaxX: 10, MaxY: 10},
		Points:       []series.Point{{X: 1, Y: 5}, {X: 2, Y: 5}},
	}
	run.Summary = Summarize(run.Points)

	dir, err := WriteRunArtifacts(base, RunArtifacts{Run: run, Chart: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "run-1"), dir)

	for _, name := range []string{requestFile, summaryFile, pointsFile, chartFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	summary, ok, err := ReadRunSummary(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, run.Summary, summary)

	_, ok, err = ReadRunSummary(filepath.Join(base, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteRunArtifactsWithoutChart(t *testing.T) {
	dir, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{Run: model.Run{ID: "r"}})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, chartFile))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteRunArtifactsRequiresID(t *testing.T) {
	_, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{})
	require.Error(t, err)
}
