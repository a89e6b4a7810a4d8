package diag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorCode    = lipgloss.Color("#06B6D4") // Cyan
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	LocationStyle = lipgloss.NewStyle().
			Bold(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(ColorCode)

	GutterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Renderer formats diagnostics for a terminal. Without color the output is
// identical to Diagnostic.String plus the optional source excerpt.
type Renderer struct {
	color bool
}

func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) Render(d Diagnostic) string {
	if !r.color {
		return d.String()
	}

	var b strings.Builder
	loc := d.File
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	if loc != "" {
		b.WriteString(r.style(LocationStyle, loc))
		b.WriteString(": ")
	}
	sev := ErrorStyle
	if d.Severity == SeverityWarning {
		sev = WarningStyle
	}
	b.WriteString(r.style(sev, d.Severity.String()))
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Code != "" {
		b.WriteString(" ")
		b.WriteString(r.style(CodeStyle, "["+d.Code+"]"))
	}
	return b.String()
}

// Excerpt returns the source line a diagnostic points at, prefixed with its
// line number, or "" when the line does not exist.
func (r *Renderer) Excerpt(d Diagnostic, src []byte) string {
	if d.Line <= 0 {
		return ""
	}
	lines := bytes.Split(src, []byte("\n"))
	if d.Line > len(lines) {
		return ""
	}
	text := strings.TrimRight(string(lines[d.Line-1]), "\r")
	gutter := fmt.Sprintf("%5d | ", d.Line)
	return r.style(GutterStyle, gutter) + text
}

// Write renders every diagnostic on its own line. When sources is non-nil,
// the offending source line is printed below each diagnostic.
func (r *Renderer) Write(w io.Writer, ds []Diagnostic, sources map[string][]byte) error {
	for _, d := range ds {
		if _, err := fmt.Fprintln(w, r.Render(d)); err != nil {
			return err
		}
		src, ok := sources[d.File]
		if !ok {
			continue
		}
		if excerpt := r.Excerpt(d, src); excerpt != "" {
			if _, err := fmt.Fprintln(w, excerpt); err != nil {
				return err
			}
		}
	}
	return nil
}
