package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/cvac/compiler"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var noWarnings bool

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Compile .cva files and report errors and warnings",
		Long: `Compile every .cva file below the given paths (default: the current
directory) and print their diagnostics. Exits with a failure status when any
file has an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}

			cfg := *opts.cfg
			if noWarnings {
				cfg.Warnings = false
			}

			paths, err := compiler.CollectSources(&cfg, roots)
			if err != nil {
				return err
			}

			units := compiler.New(&cfg).CompileFiles(cmd.Context(), paths)

			var ds []diag.Diagnostic
			sources := make(map[string][]byte)
			failed := 0
			for _, u := range units {
				ds = append(ds, u.Diagnostics()...)
				sources[u.Path] = u.Source
				if u.Err != nil {
					failed++
				}
			}
			diag.Sort(ds)
			if err := opts.renderer().Write(os.Stdout, ds, sources); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(units))
			}
			fmt.Fprintf(os.Stderr, "checked %d files\n", len(units))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWarnings, "no-warnings", false, "do not report unused variables")

	return cmd
}
