package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Body     lipgloss.Color
	Trail    lipgloss.Color
	Velocity lipgloss.Color
	Force    lipgloss.Color
	Preview  lipgloss.Color
}

// Available themes
var (
	ThemeDeepSpace = Theme{
		Name:     "deepspace",
		Primary:  lipgloss.Color("#00ffff"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4a5a7a"),
		Body:     lipgloss.Color("#ffffff"),
		Trail:    lipgloss.Color("#3a4a6a"),
		Velocity: lipgloss.Color("#00ff66"),
		Force:    lipgloss.Color("#ff3344"),
		Preview:  lipgloss.Color("#ffd700"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Body:     lipgloss.Color("#88ff88"),
		Trail:    lipgloss.Color("#006600"),
		Velocity: lipgloss.Color("#ccffcc"),
		Force:    lipgloss.Color("#ffff00"),
		Preview:  lipgloss.Color("#ffffff"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Accent:   lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Body:     lipgloss.Color("#feca57"),
		Trail:    lipgloss.Color("#5a3b5c"),
		Velocity: lipgloss.Color("#5fd068"),
		Force:    lipgloss.Color("#ff4757"),
		Preview:  lipgloss.Color("#ff9ff3"),
	}

	// Default theme
	CurrentTheme = ThemeDeepSpace

	Themes = []Theme{
		ThemeDeepSpace,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeDeepSpace, false
}

// SetTheme switches CurrentTheme. An unknown name leaves it unchanged.
func SetTheme(name string) error {
	t, ok := GetTheme(name)
	if !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", name, ThemeNames())
	}
	CurrentTheme = t
	return nil
}

// NextTheme cycles CurrentTheme.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

// ThemeNames lists the themes in cycling order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
