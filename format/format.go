package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/cvac/cva/ast"
)

type Encoder interface {
	Encode(prog *ast.Program) error
}

var encoders = map[string]func(w io.Writer, opts Options) Encoder{
	"cva":  func(w io.Writer, opts Options) Encoder { return NewPrettyPrinter(w, opts) },
	"ast":  func(w io.Writer, _ Options) Encoder { return NewASTJSONEncoder(w) },
	"json": func(w io.Writer, _ Options) Encoder { return NewJSONEncoder(w) },
	"line": func(w io.Writer, _ Options) Encoder { return NewLineEncoder(w) },
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer, opts Options) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, Names())
	}
	return newEncoder(w, opts), nil
}

// Names lists the registered encoder names.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
