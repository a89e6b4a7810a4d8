package codebase

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/cvac/compiler"
	"github.com/dhamidi/cvac/cva/ast"
	"github.com/dhamidi/cvac/cva/diag"
	"github.com/dhamidi/cvac/format"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "cvac"

var lspLog = commonlog.GetLogger("cvac.lsp")

type LSPServer struct {
	codebase *Codebase
	compiler *compiler.Compiler
	format   format.Options
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string, comp *compiler.Compiler) *LSPServer {
	if comp == nil {
		comp = compiler.New(nil)
	}
	ls := &LSPServer{
		compiler: comp,
		format:   format.Options{Indent: comp.Config().Format.Indent},
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentCompletion:     ls.textDocumentCompletion,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentFormatting:     ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.compiler)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", " "},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		lspLog.Warningf("scan %s: %s", ls.codebase.RootDir(), err)
		return nil
	}
	for _, path := range ls.codebase.Paths() {
		ls.publish(ctx, path)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if _, err := ls.codebase.ScanFile(path); err != nil {
		lspLog.Warningf("rescan %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, path)
	return nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, path string) {
	unit := ls.codebase.GetFile(path)
	if unit == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: toProtocolDiagnostics(ls.codebase.Diagnostics(path), unit.Source),
	})
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	unit := ls.codebase.GetFile(path)
	if unit == nil {
		return nil, nil
	}

	prefix := linePrefix(unit.Source, int(params.Position.Line)+1, int(params.Position.Character))
	completions := ls.codebase.Completions(prefix)
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail
		insertText := c.InsertText
		insertFormat := protocol.InsertTextFormatSnippet

		items = append(items, protocol.CompletionItem{
			Label:            c.Label,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insertText,
			InsertTextFormat: &insertFormat,
		})
	}
	return items, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	unit := ls.codebase.GetFile(path)
	if unit == nil || unit.Program == nil {
		return nil, nil
	}
	return documentSymbols(unit.Program), nil
}

func (ls *LSPServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	unit := ls.codebase.GetFile(path)
	if unit == nil {
		return nil, nil
	}
	edit, ok := formatEdit(unit.Source, filepath.Base(path), ls.format)
	if !ok {
		return nil, nil
	}
	return []protocol.TextEdit{edit}, nil
}

// formatEdit replaces the whole document with its formatted text. It
// reports false when the source does not parse or is already formatted.
func formatEdit(src []byte, name string, opts format.Options) (protocol.TextEdit, bool) {
	formatted, err := format.FormatSource(src, name, opts)
	if err != nil || bytes.Equal(formatted, src) {
		return protocol.TextEdit{}, false
	}
	lines := strings.Split(string(src), "\n")
	last := lines[len(lines)-1]
	return protocol.TextEdit{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End: protocol.Position{
				Line:      protocol.UInteger(len(lines) - 1),
				Character: protocol.UInteger(len(last)),
			},
		},
		NewText: string(formatted),
	}, true
}

// toProtocolDiagnostics converts diagnostics for one file. Each diagnostic
// spans its whole line; file-level diagnostics are placed on the first line.
func toProtocolDiagnostics(ds []diag.Diagnostic, src []byte) []protocol.Diagnostic {
	lines := strings.Split(string(src), "\n")
	source := lsName
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		line := d.Line - 1
		if line < 0 {
			line = 0
		}
		width := 0
		if line < len(lines) {
			width = len(strings.TrimRight(lines[line], "\r"))
		}

		severity := protocol.DiagnosticSeverityError
		var tags []protocol.DiagnosticTag
		if d.Severity == diag.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
			tags = []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary}
		}

		pd := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(line), Character: 0},
				End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(width)},
			},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
			Tags:     tags,
		}
		if d.Code != "" {
			pd.Code = &protocol.IntegerOrString{Value: d.Code}
		}
		out = append(out, pd)
	}
	return out
}

// documentSymbols outlines a program: classes with their fields and
// methods, and a free-standing main.
func documentSymbols(prog *ast.Program) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	if prog.Entry != nil && prog.Entry.Main != nil {
		symbols = append(symbols, methodSymbol(prog.Entry.Main))
	}
	for _, c := range prog.Classes {
		sym := protocol.DocumentSymbol{
			Name:           c.Name,
			Kind:           protocol.SymbolKindClass,
			Range:          lineRange(c.Line),
			SelectionRange: lineRange(c.Line),
		}
		if c.Super != "" {
			detail := "extends " + c.Super
			sym.Detail = &detail
		}
		for _, f := range c.Fields {
			detail := f.Type.String()
			sym.Children = append(sym.Children, protocol.DocumentSymbol{
				Name:           f.Name,
				Detail:         &detail,
				Kind:           protocol.SymbolKindField,
				Range:          lineRange(f.Line),
				SelectionRange: lineRange(f.Line),
			})
		}
		for _, m := range c.Methods {
			sym.Children = append(sym.Children, methodSymbol(m))
		}
		symbols = append(symbols, sym)
	}
	return symbols
}

func methodSymbol(m *ast.Method) protocol.DocumentSymbol {
	detail := formatMethodSignature(m)
	return protocol.DocumentSymbol{
		Name:           m.Name,
		Detail:         &detail,
		Kind:           protocol.SymbolKindMethod,
		Range:          lineRange(m.Line),
		SelectionRange: lineRange(m.Line),
	}
}

func lineRange(line int) protocol.Range {
	l := protocol.UInteger(0)
	if line > 0 {
		l = protocol.UInteger(line - 1)
	}
	return protocol.Range{
		Start: protocol.Position{Line: l, Character: 0},
		End:   protocol.Position{Line: l, Character: 0},
	}
}

// linePrefix returns the text of the 1-based line up to col.
func linePrefix(content []byte, line, col int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	text := lines[line-1]
	if col > len(text) {
		col = len(text)
	}
	if col < 0 {
		col = 0
	}
	return text[:col]
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindMethod:
		return protocol.CompletionItemKindMethod
	case CompletionKindClass:
		return protocol.CompletionItemKindClass
	default:
		return protocol.CompletionItemKindText
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
