// Package optimize implements dead-local elimination over a parsed program.
//
// For every method the pass collects the names referenced by the body and the
// return expression. Locals that are never referenced are removed from the
// method; formals that are never referenced are only reported, since the
// method signature must not change.
package optimize

import (
	"fmt"
	"sort"

	"github.com/dhamidi/cvac/cva/ast"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cvac.optimize")

type WarningKind int

const (
	UnusedArgument WarningKind = iota
	UnusedLocal
)

func (k WarningKind) String() string {
	if k == UnusedLocal {
		return "unused-local"
	}
	return "unused-argument"
}

type Warning struct {
	Kind   WarningKind
	Class  string
	Method string
	Name   string
	Line   int
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message())
}

func (w Warning) Message() string {
	if w.Kind == UnusedLocal {
		return fmt.Sprintf("the local variable %q of method %q is never used and was removed", w.Name, w.Method)
	}
	return fmt.Sprintf("the argument %q of method %q is never used", w.Name, w.Method)
}

type MethodResult struct {
	// Changed is set when at least one local was removed.
	Changed  bool
	Warnings []Warning
}

type Report struct {
	Optimized bool
	Warnings  []Warning
}

type Option func(*Optimizer)

// WithWarnings toggles reporting. Unused locals are removed either way.
func WithWarnings(enabled bool) Option {
	return func(o *Optimizer) {
		o.warnings = enabled
	}
}

type Optimizer struct {
	warnings bool
}

func New(opts ...Option) *Optimizer {
	o := &Optimizer{warnings: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type classMethod struct {
	class  string
	method *ast.Method
	entry  bool
}

// Program runs the pass over a free-standing entry method and every class
// method, in source order. The command-line formal of a free-standing entry
// method is never reported.
func (o *Optimizer) Program(prog *ast.Program) *Report {
	var methods []classMethod
	if prog.Entry != nil && prog.Entry.Main != nil {
		methods = append(methods, classMethod{prog.Entry.Class, prog.Entry.Main, true})
	}
	for _, c := range prog.Classes {
		for _, m := range c.Methods {
			methods = append(methods, classMethod{c.Name, m, false})
		}
	}
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].method.Line < methods[j].method.Line
	})

	report := &Report{}
	for _, cm := range methods {
		result := o.method(cm.class, cm.method, !cm.entry)
		report.Optimized = report.Optimized || result.Changed
		report.Warnings = append(report.Warnings, result.Warnings...)
	}
	return report
}

// Method removes the unused locals of m and reports unused formals and
// removed locals in declaration order. Running it twice removes nothing the
// second time.
func (o *Optimizer) Method(class string, m *ast.Method) MethodResult {
	return o.method(class, m, true)
}

func (o *Optimizer) method(class string, m *ast.Method, reportFormals bool) MethodResult {
	u := newUsage(m)
	for _, s := range m.Body {
		s.Accept(u)
	}
	if m.Return != nil {
		m.Return.Accept(u)
	}

	var result MethodResult
	for _, formal := range m.Formals {
		if reportFormals && u.args[formal.Name] {
			result.Warnings = append(result.Warnings, Warning{
				Kind:   UnusedArgument,
				Class:  class,
				Method: m.Name,
				Name:   formal.Name,
				Line:   formal.Line,
			})
		}
	}

	for _, local := range append([]*ast.Declaration(nil), m.Locals...) {
		if !u.locals[local.Name] {
			continue
		}
		m.RemoveLocal(local.Name)
		result.Changed = true
		result.Warnings = append(result.Warnings, Warning{
			Kind:   UnusedLocal,
			Class:  class,
			Method: m.Name,
			Name:   local.Name,
			Line:   local.Line,
		})
		log.Debugf("removed local %s.%s.%s", class, m.Name, local.Name)
	}

	if !o.warnings {
		result.Warnings = nil
	}
	for _, w := range result.Warnings {
		log.Warning(w.String())
	}
	return result
}
