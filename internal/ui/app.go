package ui

import (
	"image/color"

	"InkSynth/internal/config"
	"InkSynth/internal/state"
	"InkSynth/internal/studio"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// RunApp opens the studio window and blocks until it is closed. subtitle,
// when set, is shown in the status bar at startup.
func RunApp(st *studio.Studio, cfg config.Config, subtitle string) {
	myApp := app.New()
	myWindow := myApp.NewWindow("InkSynth")
	myWindow.Resize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)+80))

	status := widget.NewLabel("Ready")
	if subtitle != "" {
		status.SetText(subtitle)
	}
	st.OnStatus = status.SetText

	board := NewBoardWidget(st)
	results := newResultsView(st)
	st.OnShape = func(_ state.ShapeRecord) {
		results.Update()
	}

	resultsTab := container.NewTabItem("Results", results.image)
	tabs := container.NewAppTabs(
		container.NewTabItem("Drawing", board),
		resultsTab,
	)
	tabs.OnSelected = func(ti *container.TabItem) {
		if ti == resultsTab {
			results.Update()
		}
	}

	changed := func() {
		board.Redraw()
		results.Update()
	}
	actions := toolbarActions{
		setColor: st.SetColor,
		pickColor: func() {
			picker := dialog.NewColorPicker("Color Picker", "Pick the ink color", func(c color.Color) {
				st.SetColor(c)
			}, myWindow)
			picker.Advanced = true
			picker.Show()
		},
		detect: func() {
			st.Detect()
			board.Redraw()
		},
		undo: func() {
			if st.Undo() {
				changed()
			}
		},
		redo: func() {
			if st.Redo() {
				changed()
			}
		},
		toggleMode: func() {
			st.ToggleMode()
			board.Redraw()
		},
		export: func() {
			if _, err := st.Export(cfg.Export.Dir); err != nil {
				dialog.ShowError(err, myWindow)
			}
		},
		help: func() {
			dialog.ShowInformation("Help & Shortcuts", helpText, myWindow)
		},
	}

	myWindow.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyC:
			actions.pickColor()
		case fyne.KeyS:
			actions.detect()
		case fyne.KeyZ:
			actions.undo()
		case fyne.KeyY:
			actions.redo()
		case fyne.KeyP:
			actions.toggleMode()
		case fyne.KeyE:
			actions.export()
		case fyne.KeyH:
			actions.help()
		}
	})

	content := container.NewBorder(newToolbar(actions), status, nil, nil, tabs)
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
