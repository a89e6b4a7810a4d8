package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/dhamidi/cvac/compiler"
	"github.com/dhamidi/cvac/cva/codebase"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Recompile .cva files whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cb := codebase.New(root, opts.compiler())
			if err := cb.ScanAll(ctx); err != nil {
				return err
			}
			r := opts.renderer()
			for _, path := range cb.Paths() {
				report(r, cb.GetFile(path))
			}

			w := codebase.NewWatcher(cb)
			w.OnChange = func(path string, unit *compiler.Unit) {
				report(r, unit)
			}
			w.OnRemove = func(path string) {
				fmt.Fprintf(os.Stdout, "%s: removed\n", path)
			}
			return w.Run(ctx)
		},
	}
}

// report prints the diagnostics of one unit, or a single ok line.
func report(r *diag.Renderer, unit *compiler.Unit) {
	ds := unit.Diagnostics()
	if len(ds) == 0 {
		fmt.Fprintf(os.Stdout, "%s: ok (%s)\n", unit.Path, unit.Duration)
		return
	}
	diag.Sort(ds)
	r.Write(os.Stdout, ds, map[string][]byte{unit.Path: unit.Source})
}
