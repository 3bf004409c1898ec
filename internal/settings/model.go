package settings

import "time"

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// AppSettings is the single application settings row.
type AppSettings struct {
	ID               int64
	OpenRouterAPIKey string
	Theme            Theme
	UpdatedAt        time.Time
}

// Defaults returns the settings a fresh installation starts with.
func Defaults() AppSettings {
	return AppSettings{Theme: ThemeSystem}
}
