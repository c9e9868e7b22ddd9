package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/xplain-go/internal/domain"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	bannerStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(0, 2)
)

// Renderer writes user-facing output to stdout. Markdown explanations go
// through glamour when the terminal supports it; everything degrades to
// plain text when colors are off or output is piped.
type Renderer struct {
	out      io.Writer
	color    bool
	markdown *glamour.TermRenderer
}

// NewRenderer builds a renderer for the process stdout.
func NewRenderer() *Renderer {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return NewRendererWithOutput(os.Stdout, color)
}

// NewRendererWithOutput builds a renderer on an explicit writer (tests).
func NewRendererWithOutput(out io.Writer, color bool) *Renderer {
	r := &Renderer{out: out, color: color}
	if color {
		r.markdown, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
	}
	return r
}

// DisableColor switches to plain output (--no-color).
func (r *Renderer) DisableColor() {
	r.color = false
	r.markdown = nil
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) Info(format string, args ...any) {
	fmt.Fprintln(r.out, r.style(infoStyle, fmt.Sprintf(format, args...)))
}

func (r *Renderer) Success(format string, args ...any) {
	fmt.Fprintln(r.out, r.style(successStyle, fmt.Sprintf(format, args...)))
}

func (r *Renderer) Warning(format string, args ...any) {
	fmt.Fprintln(r.out, r.style(warningStyle, fmt.Sprintf(format, args...)))
}

func (r *Renderer) Error(format string, args ...any) {
	fmt.Fprintln(r.out, r.style(errorStyle, fmt.Sprintf(format, args...)))
}

func (r *Renderer) Dim(format string, args ...any) {
	fmt.Fprintln(r.out, r.style(dimStyle, fmt.Sprintf(format, args...)))
}

func (r *Renderer) Plain(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Command echoes the command being explained.
func (r *Renderer) Command(command string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.style(commandStyle, "$ "+command))
}

// Banner prints the startup banner for chat and check.
func (r *Renderer) Banner() {
	text := "xplain — AI-powered code & command explainer"
	if r.color {
		fmt.Fprintln(r.out, bannerStyle.Render(text))
		return
	}
	fmt.Fprintln(r.out, text)
}

// Explanation renders a markdown explanation under a titled header.
func (r *Renderer) Explanation(title, subtitle, content string) {
	fmt.Fprintln(r.out)
	header := title
	if subtitle != "" {
		header = title + "  " + subtitle
	}
	fmt.Fprintln(r.out, r.style(titleStyle, header))
	fmt.Fprintln(r.out, r.style(dimStyle, strings.Repeat("─", lipgloss.Width(header))))

	if r.markdown != nil {
		if rendered, err := r.markdown.Render(content); err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
	}
	fmt.Fprintln(r.out, content)
}

// LanguageTag formats a language code with its display name.
func LanguageTag(code string) string {
	return fmt.Sprintf("[%s] %s", code, domain.LanguageName(code))
}
