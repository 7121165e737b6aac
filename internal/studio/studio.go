// Package studio wires pointer input through recognition to the scene,
// the OSC emitter and the live feed.
package studio

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"InkSynth/internal/canvas"
	"InkSynth/internal/config"
	"InkSynth/internal/export"
	"InkSynth/internal/net"
	"InkSynth/internal/pen"
	"InkSynth/internal/shape"
	"InkSynth/internal/state"
)

var (
	hintColor   = color.RGBA{G: 255, A: 255}
	detectColor = color.RGBA{R: 255, A: 255}
)

// Publisher receives scene events for remote viewers. *net.Feed
// satisfies it.
type Publisher interface {
	Publish(kind string, rec *state.ShapeRecord) error
}

// Studio is the drawing session. All methods must be called from the
// same goroutine, normally the UI thread.
type Studio struct {
	canvas  *canvas.Canvas
	scene   *state.Scene
	tracker *pen.Tracker
	emitter *net.Emitter
	feed    Publisher
	hint    bool

	// OnShape is called after a recognized shape has been committed.
	OnShape func(rec state.ShapeRecord)
	// OnStatus receives one-line messages for the status bar.
	OnStatus func(text string)
}

func New(cfg config.Config, emitter *net.Emitter) *Studio {
	c := canvas.New(cfg.Canvas.Width, cfg.Canvas.Height)
	return &Studio{
		canvas:  c,
		scene:   state.NewScene(c, cfg.Canvas.MaxHistory),
		tracker: pen.NewTracker(state.Black),
		emitter: emitter,
		hint:    cfg.HintEnabled(),
	}
}

// SetFeed routes scene events to p. A nil p disables publishing.
func (s *Studio) SetFeed(p Publisher) {
	s.feed = p
}

func (s *Studio) Scene() *state.Scene {
	return s.scene
}

func (s *Studio) Canvas() *canvas.Canvas {
	return s.canvas
}

// HandlePointer feeds one pointer sample through the pipeline.
func (s *Studio) HandlePointer(ev pen.Event) {
	if ev.Phase == pen.Down {
		s.clearTransient()
	}
	out := s.tracker.Feed(ev)

	if seg := out.Segment; seg != nil {
		s.canvas.Segment(canvas.Wet, seg.From, seg.To, seg.Pressure*state.PenScale, s.color().RGBA())
		if s.hint {
			s.drawHint()
		}
		s.status(fmt.Sprintf("%s - Pos: (%.0f, %.0f), Pressure: %.3f, %s",
			sourceLabel(ev.Source), ev.Pos.X, ev.Pos.Y, seg.Pressure, s.color()))
	}
	if out.Stroke != nil {
		s.finish(out.Stroke)
	}
}

func (s *Studio) finish(st *state.Stroke) {
	rec, ok := shape.Recognize(st)
	var recPtr *state.ShapeRecord
	if ok {
		recPtr = &rec
	}
	s.scene.Commit(*st, recPtr)
	s.clearTransient()

	if !ok {
		s.status("Stroke too short to recognize")
		return
	}
	s.status("Detected: " + rec.String())
	if s.OnShape != nil {
		s.OnShape(rec)
	}
	s.publish(net.TypeShape, recPtr)
	if s.emitter != nil {
		w, h := s.canvas.Size()
		// Send failures are logged by the emitter and never stop drawing.
		_ = s.emitter.Emit(recPtr, w, h)
	}
}

func (s *Studio) drawHint() {
	s.canvas.Clear(canvas.Hint)
	contour, _, ok := shape.Classify(s.tracker.Current())
	if !ok {
		return
	}
	s.canvas.Outline(canvas.Hint, canvas.ContourPath(contour, true), state.ShapeLineWidth, hintColor)
}

func (s *Studio) clearTransient() {
	s.canvas.Clear(canvas.Wet)
	s.canvas.Clear(canvas.Hint)
}

// SetColor changes the ink, including that of a stroke in progress.
func (s *Studio) SetColor(c color.Color) {
	rgb := state.RGBFromColor(c)
	s.tracker.SetColor(rgb)
	s.status("Color selected: " + rgb.String())
}

func (s *Studio) color() state.RGB {
	return s.tracker.Color()
}

// Detect labels the stroke in progress, if any, and switches the canvas to
// recognized shapes.
func (s *Studio) Detect() {
	if contour, cat, ok := shape.Classify(s.tracker.Current()); ok {
		s.canvas.Clear(canvas.Hint)
		s.canvas.Outline(canvas.Hint, canvas.ContourPath(contour, cat != state.Line), state.ShapeLineWidth, detectColor)
		top := contour[0]
		s.canvas.Label(canvas.Hint, state.Point{X: top.X, Y: top.Y - 10}, cat.String(), detectColor)
	}
	if s.scene.Mode() != state.RenderShapes {
		s.scene.SetMode(state.RenderShapes)
	}
	s.status(fmt.Sprintf("Showing %d recognized shapes", len(s.scene.Shapes())))
}

func (s *Studio) Undo() bool {
	if s.tracker.Active() {
		return false
	}
	if !s.scene.Undo() {
		s.status("Nothing to undo")
		return false
	}
	s.publish(net.TypeUndo, nil)
	s.status("Undo")
	return true
}

func (s *Studio) Redo() bool {
	if s.tracker.Active() {
		return false
	}
	if !s.scene.Redo() {
		s.status("Nothing to redo")
		return false
	}
	var last *state.ShapeRecord
	if entries := s.scene.Entries(); len(entries) > 0 {
		last = entries[len(entries)-1].Shape
	}
	s.publish(net.TypeRedo, last)
	s.status("Redo")
	return true
}

func (s *Studio) ToggleMode() state.RenderMode {
	m := s.scene.ToggleMode()
	s.status("Render mode: " + m.String())
	return m
}

// Resize changes the canvas size, keeping what has been drawn.
func (s *Studio) Resize(width, height int) {
	if w, h := s.canvas.Size(); w == width && h == height {
		return
	}
	s.canvas.Resize(width, height)
}

// Frame returns the composited canvas for display.
func (s *Studio) Frame() *image.RGBA {
	return s.canvas.Frame()
}

// RenderResults draws every recognized shape as a clean outline on a blank
// page of the given size. Circles are drawn round.
func (s *Studio) RenderResults(width, height int) *image.RGBA {
	c := canvas.New(width, height)
	for _, rec := range s.scene.Shapes() {
		col := rec.Color.RGBA()
		if rec.Category == state.Circle {
			center, r := shape.EnclosingCircle(rec.Contour)
			c.Circle(canvas.Committed, center, r, state.ShapeLineWidth, col)
			continue
		}
		c.Outline(canvas.Committed, canvas.ContourPath(rec.Contour, rec.Closed()), state.ShapeLineWidth, col)
	}
	return c.Layer(canvas.Committed)
}

// Export writes the scene as a PDF and a text report into dir and returns
// the paths written.
func (s *Studio) Export(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	base := filepath.Join(dir, "inksynth-"+time.Now().Format("20060102-150405"))
	entries := s.scene.Entries()
	w, h := s.canvas.Size()

	pdfPath := base + ".pdf"
	if err := writeFile(pdfPath, func(f *os.File) error {
		return export.PDF(f, entries, s.scene.Mode(), w, h)
	}); err != nil {
		s.status("Export failed: " + err.Error())
		return nil, err
	}
	txtPath := base + ".txt"
	if err := writeFile(txtPath, func(f *os.File) error {
		return export.Report(f, entries)
	}); err != nil {
		s.status("Export failed: " + err.Error())
		return []string{pdfPath}, err
	}

	log.Printf("[STUDIO] Exported %d strokes to %s", len(entries), base)
	s.status("Exported to " + pdfPath)
	return []string{pdfPath, txtPath}, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func (s *Studio) publish(kind string, rec *state.ShapeRecord) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(kind, rec); err != nil {
		log.Printf("[STUDIO] Feed publish failed: %v", err)
	}
}

func (s *Studio) status(text string) {
	if s.OnStatus != nil {
		s.OnStatus(text)
	}
}

func sourceLabel(src state.Source) string {
	if src == state.SourceMouse {
		return "Mouse"
	}
	return "Tablet"
}
