// Package compiler drives the front end over source files: parse, optimize
// and collect diagnostics per compilation unit.
package compiler

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhamidi/cvac/config"
	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/dhamidi/cvac/cva/optimize"
	"github.com/dhamidi/cvac/cva/parser"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cvac.compiler")

// Unit is the result of compiling one source file. Program is nil when Err is
// set; units never share tree nodes.
type Unit struct {
	Path     string
	Source   []byte
	Program  *ast.Program
	Report   *optimize.Report
	Err      error
	Duration time.Duration
}

// Diagnostics returns the unit's error, if any, followed by its optimizer
// warnings.
func (u *Unit) Diagnostics() []diag.Diagnostic {
	var ds []diag.Diagnostic
	if u.Err != nil {
		ds = append(ds, diag.FromError(u.Path, u.Err))
	}
	if u.Report != nil {
		for _, w := range u.Report.Warnings {
			ds = append(ds, diag.FromWarning(u.Path, w))
		}
	}
	return ds
}

type Compiler struct {
	cfg       *config.Config
	optimizer *optimize.Optimizer
}

func New(cfg *config.Config) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Compiler{
		cfg:       cfg,
		optimizer: optimize.New(optimize.WithWarnings(cfg.Warnings)),
	}
}

func (c *Compiler) Config() *config.Config {
	return c.cfg
}

// CompileSource parses src and, when enabled, runs dead-local elimination.
func (c *Compiler) CompileSource(path string, src []byte) *Unit {
	start := time.Now()
	unit := &Unit{Path: path, Source: src}
	defer func() {
		unit.Duration = time.Since(start)
	}()

	prog, err := parser.ParseProgram(src, parser.WithFile(path))
	if err != nil {
		unit.Err = err
		log.Debugf("%s: %v", path, err)
		return unit
	}
	unit.Program = prog

	if c.cfg.Optimize {
		unit.Report = c.optimizer.Program(prog)
	}
	return unit
}

func (c *Compiler) CompileFile(path string) *Unit {
	src, err := os.ReadFile(path)
	if err != nil {
		return &Unit{Path: path, Err: fmt.Errorf("read source: %w", err)}
	}
	return c.CompileSource(path, src)
}

// CompileFiles compiles paths concurrently on at most cfg.Workers goroutines
// and returns the units in the order of paths. Files not started before ctx
// is done get ctx.Err() as their error.
func (c *Compiler) CompileFiles(ctx context.Context, paths []string) []*Unit {
	units := make([]*Unit, len(paths))
	workers := c.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				units[i] = c.CompileFile(paths[i])
			}
		}()
	}

	next := 0
feed:
	for ; next < len(paths); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		units[i] = &Unit{Path: paths[i], Err: ctx.Err()}
	}

	failed := 0
	for _, u := range units {
		if u.Err != nil {
			failed++
		}
	}
	log.Infof("compiled %d files, %d failed", len(paths), failed)
	return units
}

// CollectSources expands roots into the sorted list of source files below
// them. A root that is a file is taken as is; hidden directories are skipped.
func CollectSources(cfg *config.Config, roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.HasSourceExt(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(paths)
	return paths, nil
}
