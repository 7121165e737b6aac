package state

import (
	"image"
	"log"

	"InkSynth/internal/canvas"
)

// PenScale converts a pressure in [0,1] to an ink width in pixels.
const PenScale = 10.0

// ShapeLineWidth is the outline width of recognized shapes.
const ShapeLineWidth = 2.0

// DefaultMaxHistory bounds the undo stack when no depth is configured.
// Every step holds a full copy of the committed layer, 4 bytes per pixel
// (about 2.8 MB at 1000x700).
const DefaultMaxHistory = 20

type RenderMode int

const (
	RenderInk RenderMode = iota
	RenderShapes
)

func (m RenderMode) String() string {
	if m == RenderShapes {
		return "shapes"
	}
	return "ink"
}

// Entry is one committed stroke and, if recognized, its shape.
type Entry struct {
	Stroke Stroke
	Shape  *ShapeRecord
}

type snapshot struct {
	img  *image.RGBA
	mode RenderMode
}

type redoItem struct {
	snap  snapshot
	entry Entry
}

// Scene owns the drawing history: committed strokes with their recognized
// shapes, the committed canvas layer and its undo/redo snapshots.
//
// A Scene is not safe for concurrent use; the studio drives it from the UI
// thread only.
type Scene struct {
	canvas     *canvas.Canvas
	entries    []Entry
	undo       []snapshot
	redo       []redoItem
	mode       RenderMode
	maxHistory int
}

// NewScene returns an empty scene drawing into c. maxHistory limits the
// number of undo steps; values below one select DefaultMaxHistory.
func NewScene(c *canvas.Canvas, maxHistory int) *Scene {
	if maxHistory < 1 {
		maxHistory = DefaultMaxHistory
	}
	return &Scene{
		canvas:     c,
		maxHistory: maxHistory,
	}
}

func (s *Scene) Canvas() *canvas.Canvas {
	return s.canvas
}

func (s *Scene) Mode() RenderMode {
	return s.mode
}

func (s *Scene) UndoDepth() int {
	return len(s.undo)
}

func (s *Scene) RedoDepth() int {
	return len(s.redo)
}

// Entries returns a copy of the committed entries, oldest first.
func (s *Scene) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Strokes returns the raw strokes, oldest first.
func (s *Scene) Strokes() []Stroke {
	out := make([]Stroke, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Stroke)
	}
	return out
}

// Shapes returns the recognized shapes, oldest first.
func (s *Scene) Shapes() []ShapeRecord {
	out := make([]ShapeRecord, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Shape != nil {
			out = append(out, *e.Shape)
		}
	}
	return out
}

// Commit records a finished stroke and its shape, which may be nil. The
// canvas is saved for undo before anything is drawn, and the redo history
// is discarded.
func (s *Scene) Commit(stroke Stroke, shape *ShapeRecord) {
	s.pushUndo(s.current())
	s.redo = nil

	e := Entry{Stroke: stroke, Shape: shape}
	s.entries = append(s.entries, e)
	s.drawEntry(e)

	if shape != nil {
		log.Printf("[SCENE] Committed stroke %s as %s", stroke.ID, shape.Category)
	} else {
		log.Printf("[SCENE] Committed stroke %s (no shape)", stroke.ID)
	}
}

// Undo restores the canvas saved before the latest commit and removes that
// commit. It reports false if there is nothing to undo.
func (s *Scene) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	snap := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	var e Entry
	if n := len(s.entries); n > 0 {
		e = s.entries[n-1]
		s.entries = s.entries[:n-1]
	}
	s.redo = append(s.redo, redoItem{snap: s.current(), entry: e})
	s.restore(snap)
	return true
}

// Redo reapplies the most recently undone commit. It reports false if
// there is nothing to redo.
func (s *Scene) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	item := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	s.pushUndo(s.current())
	s.entries = append(s.entries, item.entry)
	s.restore(item.snap)
	return true
}

// ToggleMode switches between drawing raw ink and recognized shapes.
func (s *Scene) ToggleMode() RenderMode {
	if s.mode == RenderInk {
		s.SetMode(RenderShapes)
	} else {
		s.SetMode(RenderInk)
	}
	return s.mode
}

// SetMode selects the render mode and redraws the committed layer.
func (s *Scene) SetMode(m RenderMode) {
	s.mode = m
	s.Redraw()
	log.Printf("[SCENE] Render mode: %s", m)
}

// Redraw repaints the committed layer from the entry list.
func (s *Scene) Redraw() {
	s.canvas.Clear(canvas.Committed)
	for _, e := range s.entries {
		s.drawEntry(e)
	}
}

func (s *Scene) current() snapshot {
	return snapshot{img: s.canvas.Snapshot(), mode: s.mode}
}

// restore brings back a snapshot. Snapshots taken in the other render mode
// no longer match what is on screen, so the layer is redrawn instead.
func (s *Scene) restore(snap snapshot) {
	if snap.mode == s.mode {
		s.canvas.Restore(snap.img)
		return
	}
	s.Redraw()
}

func (s *Scene) pushUndo(snap snapshot) {
	s.undo = append(s.undo, snap)
	if over := len(s.undo) - s.maxHistory; over > 0 {
		s.undo = append(s.undo[:0], s.undo[over:]...)
	}
}

func (s *Scene) drawEntry(e Entry) {
	if s.mode == RenderShapes {
		if e.Shape != nil {
			DrawShape(s.canvas, canvas.Committed, e.Shape)
		}
		return
	}
	DrawStroke(s.canvas, canvas.Committed, &e.Stroke)
}

// DrawStroke inks a stroke with a width following its pressure samples.
func DrawStroke(c *canvas.Canvas, l canvas.Layer, st *Stroke) {
	widths := make([]float64, len(st.Pressures))
	for i, p := range st.Pressures {
		widths[i] = p * PenScale
	}
	c.Polyline(l, st.Points, widths, DefaultPressure*PenScale, st.Color.RGBA())
}

// DrawShape outlines a recognized contour and labels it with its category.
func DrawShape(c *canvas.Canvas, l canvas.Layer, r *ShapeRecord) {
	if len(r.Contour) == 0 {
		return
	}
	col := r.Color.RGBA()
	c.Outline(l, canvas.ContourPath(r.Contour, r.Closed()), ShapeLineWidth, col)
	top := r.Contour[0]
	c.Label(l, Point{X: top.X, Y: top.Y - 10}, r.Category.String(), col)
}
