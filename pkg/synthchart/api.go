// Package synthchart is the programmatic entry point for generating,
// rendering, persisting and exporting synthetic chart series.
package synthchart

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"synthchart/internal/chart"
	"synthchart/internal/logging"
	"synthchart/internal/metrics"
	"synthchart/internal/model"
	"synthchart/internal/randx"
	"synthchart/internal/series"
	"synthchart/internal/stats"
	"synthchart/internal/storage"
)

const (
	defaultExportsDir = "exports"
	defaultDBPath     = "synthchart.db"

	// createdAtLayout is fixed width so lexical order matches time order.
	createdAtLayout = "2006-01-02T15:04:05.000000000Z"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
	// Seed makes every call that does not carry its own seed reproducible.
	Seed      *int64
	NaNPolicy series.NaNPolicy
	Renderer  chart.Renderer
	// Registerer receives the client's collectors. A private registry is
	// used when nil.
	Registerer prometheus.Registerer
	Now        func() time.Time
}

type Client struct {
	store    storage.Store
	renderer chart.Renderer
	metrics  *metrics.Collectors
	gatherer prometheus.Gatherer
	logger   *logging.Logger

	seed       *int64
	policy     series.NaNPolicy
	exportsDir string
	now        func() time.Time

	initMu      sync.Mutex
	initialized bool
}

type GenerateRequest struct {
	Series series.Request
	Seed   *int64
	Save   bool
	// Kind is recorded with a saved run as its preferred chart kind.
	Kind string
}

type GenerateSummary struct {
	RunID   string
	Points  []series.Point
	Summary model.SeriesSummary
}

type RenderRequest struct {
	// RunID renders a stored run and Points renders a caller-supplied
	// series; otherwise Series is generated first.
	RunID  string
	Points []series.Point
	Series GenerateRequest
	Kind   string
	Width  int
	Height int
	// MaxPoints averages the series down before rendering (0 disables).
	MaxPoints int
}

type RenderSummary struct {
	RunID  string
	Kind   chart.Kind
	Points int
	Image  []byte
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Kind         string
	NaNPolicy    string
	Count        int
	Summary      model.SeriesSummary
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
	// Kind, when set, also writes chart.png. Defaults to the run's kind.
	Kind   string
	Width  int
	Height int
}

type ExportSummary struct {
	RunID     string
	Directory string
	// Summary is read back from the exported summary.json.
	Summary model.SeriesSummary
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = chart.NewPNGRenderer()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	collectors := metrics.NewCollectors()
	registerer := opts.Registerer
	var gatherer prometheus.Gatherer
	if registerer == nil {
		reg := prometheus.NewRegistry()
		registerer, gatherer = reg, reg
	} else if g, ok := registerer.(prometheus.Gatherer); ok {
		gatherer = g
	}
	if err := collectors.Register(registerer); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	return &Client{
		store:      store,
		renderer:   renderer,
		metrics:    collectors,
		gatherer:   gatherer,
		logger:     logging.GetLogger("synthchart"),
		seed:       opts.Seed,
		policy:     opts.NaNPolicy,
		exportsDir: exportsDir,
		now:        now,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Init opens the store. Every other method calls it on demand.
func (c *Client) Init(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Gatherer exposes the client's metrics, or nil when the registerer passed
// in Options cannot be gathered from.
func (c *Client) Gatherer() prometheus.Gatherer {
	return c.gatherer
}

// Kinds lists the supported chart kind names.
func (c *Client) Kinds() []string {
	kinds := chart.Kinds()
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.String())
	}
	return out
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateSummary, error) {
	if err := ValidateRequest(req.Series); err != nil {
		return GenerateSummary{}, err
	}
	if req.Kind != "" {
		if _, err := chart.ParseKind(req.Kind); err != nil {
			return GenerateSummary{}, err
		}
	}

	seed := req.Seed
	if seed == nil {
		seed = c.seed
	}
	var src randx.Source = randx.Global()
	if seed != nil {
		src = randx.NewSource(*seed)
	}

	gen := series.New(src, series.WithNaNPolicy(c.policy), series.WithObserver(c.metrics.Observer()))
	points := gen.Generate(req.Series)
	summary := stats.Summarize(points)
	c.metrics.PointsGenerated.Add(float64(len(points)))

	c.logger.Debug("series generated",
		"count", len(points),
		"effects", fmt.Sprint(req.Series.Effects.Configured()),
		"nan_policy", c.policy,
		"nan_count", summary.NaNCount,
	)

	out := GenerateSummary{Points: points, Summary: summary}
	if !req.Save {
		return out, nil
	}

	if err := c.Init(ctx); err != nil {
		return GenerateSummary{}, err
	}
	run := model.Run{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:           uuid.NewString(),
		CreatedAtUTC: c.now().UTC().Format(createdAtLayout),
		Request:      req.Series,
		NaNPolicy:    c.policy,
		Seed:         seed,
		Kind:         req.Kind,
		Points:       points,
		Summary:      summary,
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return GenerateSummary{}, fmt.Errorf("save run: %w", err)
	}
	c.logger.Info("run saved", "run_id", run.ID, "count", len(points))

	out.RunID = run.ID
	return out, nil
}

func (c *Client) Render(ctx context.Context, req RenderRequest) (RenderSummary, error) {
	kind, err := chart.ParseKind(req.Kind)
	if err != nil {
		return RenderSummary{}, err
	}

	var (
		runID  string
		points []series.Point
	)
	switch {
	case req.RunID != "" && req.Points != nil:
		return RenderSummary{}, errors.New("use either run id or points")
	case req.RunID != "":
		run, err := c.Run(ctx, req.RunID)
		if err != nil {
			return RenderSummary{}, err
		}
		runID, points = run.ID, run.Points
	case req.Points != nil:
		points = req.Points
	default:
		genReq := req.Series
		if genReq.Kind == "" {
			genReq.Kind = kind.String()
		}
		generated, err := c.Generate(ctx, genReq)
		if err != nil {
			return RenderSummary{}, err
		}
		runID, points = generated.RunID, generated.Points
	}

	if req.MaxPoints > 0 {
		points = stats.Downsample(points, req.MaxPoints)
	}
	img, err := c.renderPoints(ctx, points, kind, req.Width, req.Height)
	if err != nil {
		return RenderSummary{}, err
	}
	return RenderSummary{RunID: runID, Kind: kind, Points: len(points), Image: img}, nil
}

func (c *Client) renderPoints(ctx context.Context, points []series.Point, kind chart.Kind, width, height int) ([]byte, error) {
	img, err := chart.RenderPoints(ctx, c.renderer, points, kind, width, height)
	if err != nil {
		c.metrics.RenderFailures.WithLabelValues(kind.String()).Inc()
		c.logger.Warn("chart render failed", "kind", kind, "err", err)
		return nil, err
	}
	c.metrics.ChartsRendered.WithLabelValues(kind.String()).Inc()
	c.metrics.RenderedBytes.Add(float64(len(img)))
	return img, nil
}

func (c *Client) Run(ctx context.Context, runID string) (model.Run, error) {
	if err := c.Init(ctx); err != nil {
		return model.Run{}, err
	}
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.Run{}, err
	}
	if !ok {
		return model.Run{}, fmt.Errorf("%w: %s", storage.ErrRunNotFound, runID)
	}
	return run, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}

	runs, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunItem{
			RunID:        run.ID,
			CreatedAtUTC: run.CreatedAtUTC,
			Kind:         run.Kind,
			NaNPolicy:    run.NaNPolicy.String(),
			Count:        len(run.Points),
			Summary:      run.Summary,
		})
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, runID string) error {
	if _, err := c.Run(ctx, runID); err != nil {
		return err
	}
	return c.store.DeleteRun(ctx, runID)
}

func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	if req.RunID != "" && req.Latest {
		return ExportSummary{}, errors.New("use either run id or latest")
	}
	if req.RunID == "" && !req.Latest {
		return ExportSummary{}, errors.New("export requires run id or latest")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	runID := req.RunID
	if req.Latest {
		if err := c.Init(ctx); err != nil {
			return ExportSummary{}, err
		}
		runs, err := c.store.ListRuns(ctx, 1)
		if err != nil {
			return ExportSummary{}, err
		}
		if len(runs) == 0 {
			return ExportSummary{}, errors.New("no runs available to export")
		}
		runID = runs[0].ID
	}

	run, err := c.Run(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}

	artifacts := stats.RunArtifacts{Run: run}
	kindName := req.Kind
	if kindName == "" {
		kindName = run.Kind
	}
	if kindName != "" {
		kind, err := chart.ParseKind(kindName)
		if err != nil {
			return ExportSummary{}, err
		}
		if artifacts.Chart, err = c.renderPoints(ctx, run.Points, kind, req.Width, req.Height); err != nil {
			return ExportSummary{}, err
		}
	}

	dir, err := stats.WriteRunArtifacts(req.OutDir, artifacts)
	if err != nil {
		return ExportSummary{}, err
	}
	summary, ok, err := stats.ReadRunSummary(dir)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("read exported summary: %w", err)
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("export %s: summary.json missing", runID)
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(dir), Summary: summary}, nil
}
