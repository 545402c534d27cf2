package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"

	"synthchart/internal/series"
	"synthchart/internal/stats"
	synthapi "synthchart/pkg/synthchart"
)

const defaultChartName = "chart-%Y%m%d-%H%M%S.png"

func registerRender(a *app, parent *cobra.Command) {
	var (
		kind      string
		width     int
		height    int
		out       string
		runID     string
		maxPoints int
		save      bool
		force     bool
		fromCSV   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a generated or stored series as a PNG chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if out == "-" && !force && isTerminal(a.stdout) {
				return errors.New("refusing to write PNG to a terminal (use --out or --force)")
			}
			if out == "" {
				out = strftime.Format(defaultChartName, time.Now())
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.closeClient(client); err == nil {
					err = cerr
				}
			}()

			var points []series.Point
			if fromCSV != "" {
				if points, err = readPointsCSV(fromCSV); err != nil {
					return err
				}
			}

			summary, err := client.Render(cmd.Context(), synthapi.RenderRequest{
				RunID:     runID,
				Points:    points,
				Series:    a.generateRequest(save, kind),
				Kind:      kind,
				Width:     width,
				Height:    height,
				MaxPoints: maxPoints,
			})
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = a.stdout.Write(summary.Image)
				return err
			}
			if err := os.WriteFile(out, summary.Image, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			fmt.Fprintf(a.stdout, "wrote %s kind=%s points=%d size=%s", out, summary.Kind, summary.Points, humanize.Bytes(uint64(len(summary.Image))))
			if summary.RunID != "" {
				fmt.Fprintf(a.stdout, " run_id=%s", summary.RunID)
			}
			fmt.Fprintln(a.stdout)
			return nil
		},
	}
	cmd.Flags().AddFlagSet(seriesFlags())
	cmd.Flags().StringVar(&kind, "kind", "line", "chart kind")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels (default 800)")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels (default 600)")
	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout (default "+defaultChartName+")")
	cmd.Flags().StringVar(&runID, "run-id", "", "render a stored run instead of generating")
	cmd.Flags().IntVar(&maxPoints, "max-points", 0, "average the series down to this many points")
	cmd.Flags().BoolVar(&save, "save", false, "persist the generated run")
	cmd.Flags().StringVar(&fromCSV, "from-csv", "", "render an index,x,y CSV series (as written by generate --format csv)")
	cmd.Flags().BoolVar(&force, "force", false, "write PNG to stdout even when it is a terminal")
	parent.AddCommand(cmd)
}

func readPointsCSV(path string) ([]series.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	points, err := stats.ReadSeriesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read series %s: %w", path, err)
	}
	return points, nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
