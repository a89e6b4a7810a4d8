package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/dhamidi/cvac/cva/parser"
	"github.com/dhamidi/cvac/format"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".cvac_history"
	promptMain  = "cva> "
	promptCont  = "...  "
	replName    = "<repl>"
)

const replHelp = `Enter an expression, a statement or a whole program (starting with
class, package, call or void). Input continues on the next line while it is
incomplete.

  :help  show this text
  :quit  leave the REPL`

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func newReplCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse Cva interactively and print the syntax tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts)
		},
	}
}

func runRepl(opts *globalOptions) error {
	banner := "cvac " + version + " (:help for help)"
	if !opts.noColor {
		banner = bannerStyle.Render(banner)
	}
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	r := opts.renderer()
	comp := opts.compiler()
	enc := format.NewASTJSONEncoder(os.Stdout)
	indent := format.Options{Indent: opts.cfg.Format.Indent}

	for {
		src, node, ok, err := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return nil
			case ":help":
				fmt.Println(replHelp)
			default:
				fmt.Println("unknown command. Type :help for help.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err != nil {
			r.Write(os.Stdout, []diag.Diagnostic{diag.FromError(replName, err)}, map[string][]byte{replName: []byte(src)})
			continue
		}

		if _, isProgram := node.(*ast.Program); isProgram {
			unit := comp.CompileSource(replName, []byte(src))
			ds := unit.Diagnostics()
			diag.Sort(ds)
			r.Write(os.Stdout, ds, map[string][]byte{replName: []byte(src)})
			if unit.Program != nil {
				os.Stdout.Write(format.PrettyPrint(unit.Program, indent))
			}
			continue
		}

		text, err := enc.MarshalText(node)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(string(text))
	}
}

// readByParseProbe keeps prompting for lines until the collected input
// parses or fails for a reason other than ending too early. ok is false
// when the input stream ended.
func readByParseProbe(ln *liner.State, prompt, cont string) (src string, node ast.Node, ok bool, perr error) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", nil, false, nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", nil, true, nil
		}
		if err != nil {
			return "", nil, true, err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src = b.String()
		trimmed := strings.TrimSpace(src)
		if trimmed == "" || strings.HasPrefix(trimmed, ":") {
			return src, nil, true, nil
		}
		node, perr = parseInput(src)
		if perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, node, true, perr
	}
}
