package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dhamidi/cvac/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the EBNF grammar of Cva",
	}

	cmd.AddCommand(newGrammarShowCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarMatchCmd())
	cmd.AddCommand(newGrammarParseCmd())

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := os.Stdout.Write(grammar.Source())
			return err
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file (default: the built-in grammar)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				printErrors(err)
				return err
			}
			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(err)
				return err
			}
			fmt.Printf("%d productions, start %s\n", len(g), startProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification")

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "match [file]",
		Short: "Tokenize a source file with the grammar's lexical productions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var grammarArgs []string
			if grammarFile != "" {
				grammarArgs = []string{grammarFile}
			}
			g, err := loadGrammar(grammarArgs)
			if err != nil {
				return err
			}

			name, src, err := readSource(args)
			if err != nil {
				return err
			}

			tokens, err := grammar.NewLexer(g, src, name).Tokenize()
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", tok.Position, tok.Kind, tok.Literal)
			}
			if flushErr := tw.Flush(); flushErr != nil {
				return flushErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar file (default: the built-in grammar)")

	return cmd
}

func newGrammarParseCmd() *cobra.Command {
	var (
		grammarFile     string
		startProduction string
		quiet           bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a source file with the grammar and print its concrete syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var grammarArgs []string
			if grammarFile != "" {
				grammarArgs = []string{grammarFile}
			}
			g, err := loadGrammar(grammarArgs)
			if err != nil {
				return err
			}

			name, src, err := readSource(args)
			if err != nil {
				return err
			}

			tree, err := grammar.ParseSource(g, src, name, startProduction)
			if err != nil {
				return err
			}
			if quiet {
				return nil
			}
			return grammar.Print(os.Stdout, tree)
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "EBNF grammar file (default: the built-in grammar)")
	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report whether the source parses")

	return cmd
}

func loadGrammar(args []string) (ebnf.Grammar, error) {
	if len(args) == 0 {
		return grammar.Load()
	}
	return grammar.LoadFile(args[0])
}

func printErrors(err error) {
	for _, e := range grammar.Errors(err) {
		fmt.Fprintln(os.Stderr, e)
	}
}
