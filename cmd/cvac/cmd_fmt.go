package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/cvac/format"
	"github.com/spf13/cobra"
)

func newFmtCmd(opts *globalOptions) *cobra.Command {
	var fmtOverwrite bool
	var fmtList bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Pretty-print a .cva file",
		Long: `Pretty-print a .cva file to stdout. Comments are not preserved.

If no file is provided, reads Cva source from stdin.

Use -w to overwrite the file in place (requires a file argument), or -l to
only report whether the file would change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && len(args) == 0 {
				return fmt.Errorf("-w requires a file argument")
			}
			if len(args) == 1 && !opts.cfg.HasSourceExt(args[0]) {
				return fmt.Errorf("expected a file ending in one of %v, got %s", opts.cfg.Extensions, args[0])
			}

			name, source, err := readSource(args)
			if err != nil {
				return err
			}

			output, err := format.FormatSource(source, name, format.Options{Indent: opts.cfg.Format.Indent})
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			switch {
			case fmtList:
				if !bytes.Equal(source, output) {
					fmt.Println(name)
				}
				return nil
			case fmtOverwrite:
				return os.WriteFile(name, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVarP(&fmtList, "list", "l", false, "print the file name if formatting would change it")

	return cmd
}
