package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"synthchart/internal/model"
)

const (
	requestFile = "request.json"
	summaryFile = "summary.json"
	pointsFile  = "points.csv"
	chartFile   = "chart.png"
)

// RunArtifacts is the on-disk export of one run.
type RunArtifacts struct {
	Run   model.Run
	Chart []byte
}

type requestArtifact struct {
	RunID        string `json:"run_id"`
	CreatedAtUTC string `json:"created_at_utc"`
	NaNPolicy    string `json:"nan_policy"`
	Seed         *int64 `json:"seed,omitempty"`
	Kind         string `json:"kind,omitempty"`
	Request      any    `json:"request"`
}

// WriteRunArtifacts writes the run under baseDir/<run id> and returns that
// directory. chart.png is only written when a chart is attached.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	run := artifacts.Run
	if run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, requestFile), requestArtifact{
		RunID:        run.ID,
		CreatedAtUTC: run.CreatedAtUTC,
		NaNPolicy:    run.NaNPolicy.String(),
		Seed:         run.Seed,
		Kind:         run.Kind,
		Request:      run.Request,
	}); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, summaryFile), run.Summary); err != nil {
		return "", err
	}
	if err := writePointsCSV(filepath.Join(runDir, pointsFile), run); err != nil {
		return "", err
	}
	if len(artifacts.Chart) > 0 {
		if err := os.WriteFile(filepath.Join(runDir, chartFile), artifacts.Chart, 0o644); err != nil {
			return "", err
		}
	}
	return runDir, nil
}

// ReadRunSummary loads summary.json from an exported run directory.
func ReadRunSummary(runDir string) (model.SeriesSummary, bool, error) {
	data, err := os.ReadFile(filepath.Join(runDir, summaryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return model.SeriesSummary{}, false, nil
		}
		return model.SeriesSummary{}, false, err
	}
	var summary model.SeriesSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.SeriesSummary{}, false, err
	}
	return summary, true, nil
}

func writePointsCSV(path string, run model.Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteSeriesCSV(file, run.Points); err != nil {
		return err
	}
	return file.Sync()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
