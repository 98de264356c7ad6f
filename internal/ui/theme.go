package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SplitGridTheme wraps the default Fyne theme with compact sizing overrides
// so the side panel leaves most of the window to the layout canvas.
type SplitGridTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewSplitGridTheme creates a theme for the "light", "dark" or "system"
// preference stored in AppConfig. Unknown names follow the system.
func NewSplitGridTheme(name string) *SplitGridTheme {
	t := &SplitGridTheme{base: theme.DefaultTheme()}
	t.SetPreference(name)
	return t
}

// SetPreference switches between light, dark and system variants.
func (t *SplitGridTheme) SetPreference(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme, pinning the variant unless the
// system preference is in effect.
func (t *SplitGridTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *SplitGridTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *SplitGridTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *SplitGridTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
