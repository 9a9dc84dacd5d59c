// Package styles provides the shared lipgloss styles for CLI output.
package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette as hex colors.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// TokyoNight is the default palette.
var TokyoNight = Palette{
	Primary:    lipgloss.Color("#7aa2f7"),
	Secondary:  lipgloss.Color("#7dcfff"),
	Foreground: lipgloss.Color("#c0caf5"),
	Muted:      lipgloss.Color("#565f89"),
	Surface:    lipgloss.Color("#3b4261"),
	Success:    lipgloss.Color("#9ece6a"),
	Warning:    lipgloss.Color("#e0af68"),
	Error:      lipgloss.Color("#f7768e"),
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	HeaderStyle  lipgloss.Style
	MutedStyle   lipgloss.Style
	DividerStyle lipgloss.Style

	SuccessStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	WarnStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style

	TitleStyle lipgloss.Style
	HintStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Primary)
	WarnStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	HintStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		PaddingLeft(2)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(TokyoNight)
}

func hex(c lipgloss.Color) *string {
	s := string(c)
	if s == "" {
		return nil
	}
	return &s
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	p := CurrentPalette

	fg := hex(p.Foreground)
	primary := hex(p.Primary)
	secondary := hex(p.Secondary)
	muted := hex(p.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = hex(p.Surface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
