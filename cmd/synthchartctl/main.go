package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(viper.New(), stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app carries per-invocation state shared by every sub-command.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: v, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "synthchartctl",
		Short:         "Generate synthetic chart series and render them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := a.readConfigFile(); err != nil {
				return err
			}
			return a.initLogging()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().AddFlagSet(rootFlags())

	for _, register := range []func(*app, *cobra.Command){
		registerGenerate,
		registerRender,
		registerRuns,
		registerShow,
		registerDelete,
		registerExport,
		registerKinds,
	} {
		register(a, root)
	}
	return root
}

func registerKinds(a *app, parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "kinds",
		Short: "List supported chart kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()
			for _, kind := range client.Kinds() {
				fmt.Fprintln(a.stdout, kind)
			}
			return nil
		},
	})
}
