package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Asteroid lipgloss.Color
	Planet   lipgloss.Color
	Star     lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Warning  lipgloss.Color
}

var (
	ThemeDeepSpace = Theme{
		Name:     "deep",
		Asteroid: lipgloss.Color("#a0a8b8"),
		Planet:   lipgloss.Color("#5fb4ff"),
		Star:     lipgloss.Color("#ffd75f"),
		Accent:   lipgloss.Color("#ff5fd7"),
		Text:     lipgloss.Color("#e8e8f0"),
		Muted:    lipgloss.Color("#444466"),
		Warning:  lipgloss.Color("#ffaa00"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Asteroid: lipgloss.Color("#00cc00"), // Green phosphor
		Planet:   lipgloss.Color("#88ff88"),
		Star:     lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Warning:  lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Asteroid: lipgloss.Color("#cccccc"),
		Planet:   lipgloss.Color("#ffffff"),
		Star:     lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Warning:  lipgloss.Color("#ffaa00"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Asteroid: lipgloss.Color("#feca57"),
		Planet:   lipgloss.Color("#ff6b6b"), // Coral
		Star:     lipgloss.Color("#fff5f5"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Warning:  lipgloss.Color("#ffc048"),
	}

	CurrentTheme = ThemeDeepSpace

	Themes = []Theme{
		ThemeDeepSpace,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDeepSpace
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
