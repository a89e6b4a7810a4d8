package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/cvac/compiler"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/dhamidi/cvac/format"
	"github.com/spf13/cobra"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	var outputFormat string
	var noOptimize bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .cva file and dump the result",
		Long: `Parse a .cva file, run the optimizer and print the program.

Output formats:
  cva   formatted source
  ast   the full syntax tree as JSON
  json  an outline of classes, fields and method signatures
  line  one tab-separated record per declaration

Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(args)
			if err != nil {
				return err
			}

			cfg := *opts.cfg
			if noOptimize {
				cfg.Optimize = false
			}
			unit := compiler.New(&cfg).CompileSource(name, src)

			ds := unit.Diagnostics()
			diag.Sort(ds)
			if err := opts.renderer().Write(os.Stderr, ds, map[string][]byte{name: src}); err != nil {
				return err
			}
			if unit.Err != nil {
				return fmt.Errorf("parse %s failed", name)
			}

			enc, err := format.NewEncoder(outputFormat, os.Stdout, format.Options{Indent: cfg.Format.Indent})
			if err != nil {
				return err
			}
			if err := enc.Encode(unit.Program); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "ast", "output format ("+strings.Join(format.Names(), ", ")+")")
	cmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "skip dead local elimination")

	return cmd
}
