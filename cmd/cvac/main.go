package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/cvac/compiler"
	"github.com/dhamidi/cvac/config"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// globalOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type globalOptions struct {
	verbose    int
	configPath string
	noColor    bool

	cfg *config.Config
}

func (g *globalOptions) load() error {
	var cfg *config.Config
	var err error
	if g.configPath != "" {
		cfg, err = config.Load(g.configPath)
	} else {
		dir, wdErr := os.Getwd()
		if wdErr != nil {
			return fmt.Errorf("get working directory: %w", wdErr)
		}
		cfg, err = config.Discover(dir)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	g.cfg = cfg

	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity+g.verbose, logFile)
	return nil
}

func (g *globalOptions) compiler() *compiler.Compiler {
	return compiler.New(g.cfg)
}

func (g *globalOptions) renderer() *diag.Renderer {
	return diag.NewRenderer(!g.noColor)
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "cvac",
		Short:   "Front end of the Cva language: lexer, parser and optimizer",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default: nearest cvac.toml, cvac.yaml or cvac.yml)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newTokensCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newFmtCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newReplCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
