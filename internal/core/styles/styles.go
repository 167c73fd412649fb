// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary: lipgloss.Color("#7aa2f7"),
		Muted:   lipgloss.Color("#565f89"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#e0af68"),
		Error:   lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary: lipgloss.Color("#83a598"),
		Muted:   lipgloss.Color("#665c54"),
		Success: lipgloss.Color("#b8bb26"),
		Warning: lipgloss.Color("#fabd2f"),
		Error:   lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// Style exports.
var (
	CurrentBranchStyle lipgloss.Style
	HashStyle          lipgloss.Style
	MutedStyle         lipgloss.Style
	AdditionsStyle     lipgloss.Style
	DeletionsStyle     lipgloss.Style
	TitleStyle         lipgloss.Style
	SuccessStyle       lipgloss.Style
	WarningStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentBranchStyle = lipgloss.NewStyle().Foreground(p.Success).Bold(true)
	HashStyle = lipgloss.NewStyle().Foreground(p.Warning)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	AdditionsStyle = lipgloss.NewStyle().Foreground(p.Success)
	DeletionsStyle = lipgloss.NewStyle().Foreground(p.Error)
	TitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
}

func init() {
	SetTheme(themes[DefaultTheme])
}

// Enabled reports whether w is a terminal and should receive styled output.
func Enabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Render applies s to text when enabled, otherwise returns text unchanged.
func Render(enabled bool, s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}
