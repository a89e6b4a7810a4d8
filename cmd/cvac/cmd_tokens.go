package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dhamidi/cvac/cva/diag"
	"github.com/dhamidi/cvac/cva/parser"
	"github.com/spf13/cobra"
)

func newTokensCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a .cva file, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(args)
			if err != nil {
				return err
			}

			tokens, lexErr := parser.Tokenize(src, name)

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				literal := tok.Literal
				if tok.Kind == parser.TokenStringLiteral {
					literal = fmt.Sprintf("%q", literal)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", tok.Line, tok.Kind, literal)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if lexErr != nil {
				d := diag.FromError(name, lexErr)
				opts.renderer().Write(os.Stderr, []diag.Diagnostic{d}, map[string][]byte{name: src})
				return fmt.Errorf("tokenize %s failed", name)
			}
			return nil
		},
	}
}
