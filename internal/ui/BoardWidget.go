package ui

import (
	"image/color"

	"InkSynth/internal/pen"
	"InkSynth/internal/state"
	"InkSynth/internal/studio"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows the studio canvas and turns mouse input into pointer
// events. Fyne reports no stylus pressure, so samples are tagged as mouse
// input.
type BoardWidget struct {
	widget.BaseWidget
	studio  *studio.Studio
	image   *canvas.Image
	last    fyne.Position
	drawing bool

	// OnChange runs after the canvas content changed.
	OnChange func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(st *studio.Studio) *BoardWidget {
	b := &BoardWidget{studio: st}
	b.image = canvas.NewImageFromImage(st.Frame())
	b.image.FillMode = canvas.ImageFillStretch
	b.image.ScaleMode = canvas.ImageScaleFastest
	b.ExtendBaseWidget(b)
	return b
}

// Redraw pushes the current frame to the screen.
func (b *BoardWidget) Redraw() {
	b.image.Image = b.studio.Frame()
	b.image.Refresh()
}

func (b *BoardWidget) send(phase pen.Phase, pos fyne.Position) {
	b.studio.HandlePointer(pen.Event{
		Phase:  phase,
		Pos:    state.Point{X: float64(pos.X), Y: float64(pos.Y)},
		Source: state.SourceMouse,
	})
	b.Redraw()
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.drawing = true
	b.last = e.Position
	b.send(pen.Down, e.Position)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.drawing {
		return
	}
	b.last = e.Position
	b.send(pen.Move, e.Position)
}

func (b *BoardWidget) DragEnd() {
	b.finish()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.last = e.Position
	b.finish()
}

func (b *BoardWidget) finish() {
	if !b.drawing {
		return
	}
	b.drawing = false
	b.send(pen.Up, b.last)
	if b.OnChange != nil {
		b.OnChange()
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.image}
}

// Layout keeps the bitmap the same size as the widget so that one pixel
// maps to one unit of pointer position.
func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.image.Resize(size)
	if size.Width >= 1 && size.Height >= 1 {
		r.board.studio.Resize(int(size.Width), int(size.Height))
		r.board.image.Image = r.board.studio.Frame()
	}
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.image.Refresh()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut() {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (r *boardWidgetRenderer) Destroy() {}
