package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	synthapi "synthchart/pkg/synthchart"
)

func registerRuns(a *app, parent *cobra.Command) {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.closeClient(client); err == nil {
					err = cerr
				}
			}()

			items, err := client.Runs(cmd.Context(), synthapi.RunsRequest{Limit: limit})
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(a.stdout)
			table.SetHeader([]string{"Run ID", "Created", "Kind", "Policy", "Points", "Min Y", "Max Y", "Mean Y", "NaN"})
			for _, item := range items {
				table.Append([]string{
					item.RunID,
					item.CreatedAtUTC,
					item.Kind,
					item.NaNPolicy,
					strconv.Itoa(item.Count),
					formatFloat(item.Summary.MinY),
					formatFloat(item.Summary.MaxY),
					formatFloat(item.Summary.MeanY),
					strconv.Itoa(item.Summary.NaNCount),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs")
	parent.AddCommand(cmd)
}

func registerShow(a *app, parent *cobra.Command) {
	var withPoints bool
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.closeClient(client); err == nil {
					err = cerr
				}
			}()

			run, err := client.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !withPoints {
				run.Points = nil
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		},
	}
	cmd.Flags().BoolVar(&withPoints, "points", false, "include the series points")
	parent.AddCommand(cmd)
}

func registerDelete(a *app, parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.closeClient(client); err == nil {
					err = cerr
				}
			}()

			if err := client.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "deleted run_id=%s\n", args[0])
			return nil
		},
	})
}

func registerExport(a *app, parent *cobra.Command) {
	var (
		runID  string
		latest bool
		outDir string
		kind   string
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a stored run's artifacts to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.closeClient(client); err == nil {
					err = cerr
				}
			}()

			out, err := client.Export(cmd.Context(), synthapi.ExportRequest{
				RunID:  runID,
				Latest: latest,
				OutDir: outDir,
				Kind:   kind,
				Width:  width,
				Height: height,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "exported run_id=%s dir=%s points=%d mean_y=%s nan=%d\n",
				out.RunID, out.Directory, out.Summary.Count, formatFloat(out.Summary.MeanY), out.Summary.NaNCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run-id", "", "run to export")
	cmd.Flags().BoolVar(&latest, "latest", false, "export the newest run")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default --exports_dir)")
	cmd.Flags().StringVar(&kind, "kind", "", "chart kind for chart.png (default the run's kind)")
	cmd.Flags().IntVar(&width, "width", 0, "chart width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "chart height in pixels")
	parent.AddCommand(cmd)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
