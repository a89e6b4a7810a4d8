// Package diag converts compiler errors and optimizer warnings into
// diagnostics with a source location, and renders them for terminals.
package diag

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dhamidi/cvac/cva/optimize"
	"github.com/dhamidi/cvac/cva/parser"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

type Diagnostic struct {
	Severity Severity
	File     string
	// Line is 1-based; 0 means the diagnostic is not tied to a line.
	Line    int
	Code    string
	Message string
}

func (d Diagnostic) String() string {
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
}

// FromError builds an error diagnostic. Lexical and syntax errors keep their
// line; anything else is reported against the whole file.
func FromError(file string, err error) Diagnostic {
	d := Diagnostic{Severity: SeverityError, File: file}

	var lexErr *parser.LexError
	var syntaxErr *parser.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		d.Line = lexErr.Line
		d.Code = "lex"
		d.Message = lexErr.Detail()
	case errors.As(err, &syntaxErr):
		d.Line = syntaxErr.Line
		d.Code = "syntax"
		if errors.Is(err, parser.ErrNoEntryPoint) {
			d.Code = "entry"
		}
		d.Message = syntaxErr.Detail()
	default:
		d.Message = err.Error()
	}
	return d
}

func FromWarning(file string, w optimize.Warning) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		File:     file,
		Line:     w.Line,
		Code:     w.Kind.String(),
		Message:  w.Message(),
	}
}

// Sort orders diagnostics by file and line, errors before warnings on the
// same line.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].File != ds[j].File {
			return ds[i].File < ds[j].File
		}
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		return ds[i].Severity < ds[j].Severity
	})
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
