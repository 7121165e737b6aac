package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const helpText = `Keyboard Shortcuts:

C - Open Color Picker
S - Detect & Label Shapes
Z - Undo
Y - Redo
P - Toggle Raw Ink / Recognized Shapes
E - Export PDF and Report
H - Show Help Dialog

Shapes are sent over OSC as soon as a stroke ends.`

var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 180, A: 255},
	color.NRGBA{B: 255, A: 255},
	color.NRGBA{R: 255, G: 200, A: 255},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toolbarActions are the commands shared by the toolbar and the keyboard.
type toolbarActions struct {
	pickColor  func()
	setColor   func(color.Color)
	detect     func()
	undo       func()
	redo       func()
	toggleMode func()
	export     func()
	help       func()
}

func newToolbar(a toolbarActions) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), a.undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), a.redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.SearchIcon(), a.detect),
		widget.NewToolbarAction(theme.VisibilityIcon(), a.toggleMode),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.export),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.HelpIcon(), a.help),
	)

	swatches := container.NewHBox()
	for _, c := range palette {
		swatches.Add(newColorSwatch(c, a.setColor))
	}
	picker := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), a.pickColor)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		picker,
		layout.NewSpacer(),
	)
}
