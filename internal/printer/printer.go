// Package printer writes human facing status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/oops/internal/core/styles"
)

type ctxKey struct{}

// Printer writes styled status lines. Output goes to stderr by default so
// stdout stays reserved for machine readable results.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(prefix, format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, prefix+fmt.Sprintf(format, args...))
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render("✔")+" ", format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.MutedStyle.Render("•")+" ", format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarningStyle.Render("!")+" ", format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render("✘")+" ", format, args...)
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w, styles.HeaderStyle.Render(title))
}

// CheckItem writes an indented passing item with an optional muted detail.
func (p *Printer) CheckItem(label, detail string) {
	p.item(styles.SuccessStyle.Render("✔"), label, detail)
}

// WarnItem writes an indented warning item.
func (p *Printer) WarnItem(label, detail string) {
	p.item(styles.WarningStyle.Render("●"), label, detail)
}

// FailItem writes an indented failing item.
func (p *Printer) FailItem(label, detail string) {
	p.item(styles.ErrorStyle.Render("✘"), label, detail)
}

func (p *Printer) item(icon, label, detail string) {
	if detail != "" {
		detail = " " + styles.MutedStyle.Render(detail)
	}
	_, _ = fmt.Fprintf(p.w, "  %s %s%s\n", icon, label, detail)
}
