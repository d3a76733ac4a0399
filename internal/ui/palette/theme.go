// Package palette holds the stopwatch colors and the Fyne theme built on them.
package palette

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	Red       = color.NRGBA{R: 0xd5, G: 0x5f, B: 0x5e, A: 0xff}
	Blue      = color.NRGBA{R: 0x15, G: 0x24, B: 0x37, A: 0xff}
	Yellowish = color.NRGBA{R: 0xf9, G: 0xea, B: 0xcf, A: 0xff}
	White     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Hex values of the palette for non-Fyne front-ends.
const (
	RedHex       = "#d55f5e"
	BlueHex      = "#152437"
	YellowishHex = "#f9eacf"
)

// Theme paints buttons and menus red, highlights them blue and uses the
// yellowish tone as background. Everything else comes from the light
// default theme.
type Theme struct{}

var _ fyne.Theme = Theme{}

// Color implements fyne.Theme.
func (Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return Yellowish
	case theme.ColorNameButton, theme.ColorNameInputBackground:
		return Red
	case theme.ColorNamePrimary, theme.ColorNameHover, theme.ColorNameFocus, theme.ColorNamePressed:
		return Blue
	case theme.ColorNameForeground:
		return Blue
	case theme.ColorNameForegroundOnPrimary:
		return White
	}
	return theme.DefaultTheme().Color(name, theme.VariantLight)
}

// Font implements fyne.Theme.
func (Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon implements fyne.Theme.
func (Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size implements fyne.Theme.
func (Theme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
