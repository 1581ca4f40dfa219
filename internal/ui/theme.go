package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    6,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       12,
	theme.SizeNameText:            13,
	theme.SizeNameHeadingText:     16,
	theme.SizeNameSubHeadingText:  13,
	theme.SizeNameCaptionText:     10,
	theme.SizeNameInputRadius:     3,
	theme.SizeNameSelectionRadius: 2,
}

var statusColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameSuccess: color.RGBA{R: 46, G: 160, B: 67, A: 255},
	theme.ColorNameError:   color.RGBA{R: 183, G: 28, B: 28, A: 255},
	theme.ColorNameWarning: color.RGBA{R: 255, G: 193, B: 7, A: 255},
	theme.ColorNamePrimary: color.RGBA{R: 204, G: 0, B: 0, A: 255},
}

// compactTheme tightens paddings and text sizes of the default theme so the
// form and the task list fit a single window
type compactTheme struct {
	fyne.Theme
}

// NewCompactTheme creates the application theme
func NewCompactTheme() fyne.Theme {
	return &compactTheme{Theme: theme.DefaultTheme()}
}

func (t *compactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := statusColors[name]; ok {
		return c
	}
	return t.Theme.Color(name, variant)
}

func (t *compactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return t.Theme.Size(name)
}
