// Package printer writes user-facing status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/gim/internal/core/styles"
)

type ctxKey struct{}

// Printer writes styled messages to a writer.
type Printer struct {
	out io.Writer
}

// New creates a Printer writing to out, or to stderr when out is nil.
func New(out io.Writer) *Printer {
	if out == nil {
		out = os.Stderr
	}
	return &Printer{out: out}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) line(style lipgloss.Style, icon, msg string) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", style.Render(icon), msg)
}

// Success prints a success line with an optional muted detail.
func (p *Printer) Success(title, detail string) {
	if detail == "" {
		p.line(styles.SuccessStyle, styles.IconCheck, title)
		return
	}
	p.line(styles.SuccessStyle, styles.IconCheck, title+" "+styles.MutedStyle.Render(detail))
}

// Successf prints a formatted success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle, styles.IconCheck, fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.InfoStyle, styles.IconInfo, fmt.Sprintf(format, args...))
}

// Warnf prints a formatted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarnStyle, styles.IconWarn, fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle, styles.IconCross, fmt.Sprintf(format, args...))
}

// Printf prints an unstyled formatted line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a bold section header.
func (p *Printer) Header(title string) {
	_, _ = fmt.Fprintln(p.out, styles.HeaderStyle.Render(title))
}
