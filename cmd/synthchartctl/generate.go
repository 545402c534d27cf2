package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"synthchart/internal/stats"
)

func registerGenerate(a *app, parent *cobra.Command) {
	var (
		format string
		save   bool
		kind   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic series and print its points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unsupported output format %q (want json or csv)", format)
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

			out, err := client.Generate(cmd.Context(), a.generateRequest(save, kind))
			if err != nil {
				return err
			}
			if out.RunID != "" {
				fmt.Fprintf(a.stderr, "run_id=%s\n", out.RunID)
			}
			if format == "csv" {
				return stats.WriteSeriesCSV(a.stdout, out.Points)
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out.Points)
		},
	}
	cmd.Flags().AddFlagSet(seriesFlags())
	cmd.Flags().StringVar(&format, "format", "json", "output format: json|csv")
	cmd.Flags().BoolVar(&save, "save", false, "persist the generated run")
	cmd.Flags().StringVar(&kind, "kind", "", "preferred chart kind recorded with a saved run")
	parent.AddCommand(cmd)
}
