// Package styles provides shared lipgloss styles for CLI output and the
// correction selector.
package styles

import (
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	MutedStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	DividerStyle lipgloss.Style

	// Selector styles.
	CorrectionStyle lipgloss.Style
	CounterStyle    lipgloss.Style
	KeyHintStyle    lipgloss.Style
	RuleNameStyle   lipgloss.Style

	// JSON output styles.
	JSONKeyStyle     lipgloss.Style
	JSONStringStyle  lipgloss.Style
	JSONNumberStyle  lipgloss.Style
	JSONLiteralStyle lipgloss.Style
	JSONNullStyle    lipgloss.Style
	JSONPunctStyle   lipgloss.Style
)

var colorsDisabled bool

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Surface)

	CorrectionStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	CounterStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	KeyHintStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	RuleNameStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	JSONKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	JSONStringStyle = lipgloss.NewStyle().Foreground(p.Success)
	JSONNumberStyle = lipgloss.NewStyle().Foreground(p.Warning)
	JSONLiteralStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	JSONNullStyle = lipgloss.NewStyle().Foreground(p.Error)
	JSONPunctStyle = lipgloss.NewStyle().Foreground(p.Muted)
}

// Disable strips colors and text attributes from everything rendered by
// lipgloss, for the no_colors setting.
func Disable() {
	colorsDisabled = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	if colorsDisabled {
		return glamourstyles.NoTTYStyleConfig
	}

	cfg := glamourstyles.DarkStyleConfig

	fg := colorPtr(CurrentPalette.Foreground)
	primary := colorPtr(CurrentPalette.Primary)
	secondary := colorPtr(CurrentPalette.Secondary)
	muted := colorPtr(CurrentPalette.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Table.Color = fg

	return cfg
}

// RenderMarkdown renders md for the terminal, wrapped at width columns.
func RenderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
