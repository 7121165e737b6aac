package ui

import (
	"InkSynth/internal/studio"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// resultsView shows every recognized shape redrawn as a clean outline.
type resultsView struct {
	studio *studio.Studio
	image  *canvas.Image
}

func newResultsView(st *studio.Studio) *resultsView {
	v := &resultsView{studio: st}
	v.image = canvas.NewImageFromImage(st.RenderResults(1, 1))
	v.image.FillMode = canvas.ImageFillContain
	v.image.SetMinSize(fyne.NewSize(300, 300))
	return v
}

// Update redraws the results at the size of the drawing board.
func (v *resultsView) Update() {
	w, h := v.studio.Canvas().Size()
	v.image.Image = v.studio.RenderResults(w, h)
	v.image.Refresh()
}
