package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default engine settings applied to new layouts
	DefaultSize             float64 `json:"default_size"`
	DefaultEpsilon          float64 `json:"default_epsilon"`
	DefaultMinTrackFraction float64 `json:"default_min_track_fraction"`
	StrictInvariants        bool    `json:"strict_invariants"`

	// Export preferences
	PageSize string   `json:"page_size"` // "A4" or "Letter"
	Palette  []string `json:"palette"`   // "#RRGGBB" entries cycled per face

	// Application preferences
	RecentLayouts []string `json:"recent_layouts"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultEngineSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultEngineSettings()
	return AppConfig{
		DefaultSize:             defaults.Size,
		DefaultEpsilon:          defaults.Epsilon,
		DefaultMinTrackFraction: defaults.MinTrackFraction,
		StrictInvariants:        defaults.StrictInvariants,
		PageSize:                "A4",
		Palette:                 append([]string(nil), DefaultPalette...),
		RecentLayouts:           []string{},
		Theme:                   "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into an EngineSettings struct.
// This is used when creating a new layout so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *EngineSettings) {
	s.Size = c.DefaultSize
	s.Epsilon = c.DefaultEpsilon
	s.MinTrackFraction = c.DefaultMinTrackFraction
	s.StrictInvariants = c.StrictInvariants
}

// AddRecent moves path to the front of the recent layouts list, keeping at most max entries.
func (c *AppConfig) AddRecent(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			out = append(out, p)
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	c.RecentLayouts = out
}
