package state

import (
	"fmt"
	"testing"

	"InkSynth/internal/canvas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hline(y float64) Stroke {
	return Stroke{
		ID:        fmt.Sprintf("h%.0f", y),
		Points:    []Point{{X: 10, Y: y}, {X: 90, Y: y}},
		Pressures: []float64{0.6, 0.6},
		Color:     RGB{R: 200},
	}
}

func lineShape(st Stroke) *ShapeRecord {
	return &ShapeRecord{
		ID:       "shape-" + st.ID,
		StrokeID: st.ID,
		Category: Line,
		Contour:  st.Points,
		Color:    st.Color,
	}
}

func newTestScene(maxHistory int) *Scene {
	return NewScene(canvas.New(100, 100), maxHistory)
}

func TestCommitInksAndRecords(t *testing.T) {
	s := newTestScene(0)
	blank := s.Canvas().Snapshot()

	st := hline(50)
	s.Commit(st, lineShape(st))

	require.Len(t, s.Entries(), 1)
	assert.Equal(t, []Stroke{st}, s.Strokes())
	require.Len(t, s.Shapes(), 1)
	assert.Equal(t, Line, s.Shapes()[0].Category)
	assert.Equal(t, 1, s.UndoDepth())
	assert.NotEqual(t, blank.Pix, s.Canvas().Layer(canvas.Committed).Pix)
}

func TestCommitWithoutShapeKeepsLockstep(t *testing.T) {
	s := newTestScene(0)
	a, b := hline(20), hline(40)
	s.Commit(a, lineShape(a))
	s.Commit(b, nil)

	assert.Len(t, s.Strokes(), 2)
	assert.Len(t, s.Shapes(), 1)

	require.True(t, s.Undo())
	assert.Equal(t, []Stroke{a}, s.Strokes())
	assert.Len(t, s.Shapes(), 1)

	require.True(t, s.Undo())
	assert.Empty(t, s.Strokes())
	assert.Empty(t, s.Shapes())
}

func TestUndoRestoresPreviousCanvas(t *testing.T) {
	s := newTestScene(0)
	blank := s.Canvas().Snapshot()

	s.Commit(hline(30), nil)
	afterFirst := s.Canvas().Snapshot()
	s.Commit(hline(60), nil)

	require.True(t, s.Undo())
	assert.Equal(t, afterFirst.Pix, s.Canvas().Layer(canvas.Committed).Pix)
	require.True(t, s.Undo())
	assert.Equal(t, blank.Pix, s.Canvas().Layer(canvas.Committed).Pix)

	assert.False(t, s.Undo())
	assert.Equal(t, 2, s.RedoDepth())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := newTestScene(0)
			for i := range 5 {
				st := hline(float64(10 + 15*i))
				s.Commit(st, lineShape(st))
			}
			wantPix := s.Canvas().Snapshot().Pix
			wantEntries := s.Entries()

			for range n {
				require.True(t, s.Undo())
			}
			for range n {
				require.True(t, s.Redo())
			}
			assert.Equal(t, wantEntries, s.Entries())
			assert.Equal(t, wantPix, s.Canvas().Layer(canvas.Committed).Pix)
			assert.False(t, s.Redo())
		})
	}
}

func TestCommitClearsRedo(t *testing.T) {
	s := newTestScene(0)
	s.Commit(hline(20), nil)
	s.Commit(hline(40), nil)
	require.True(t, s.Undo())
	require.Equal(t, 1, s.RedoDepth())

	s.Commit(hline(80), nil)
	assert.Zero(t, s.RedoDepth())
	assert.False(t, s.Redo())
	assert.Equal(t, []string{"h20", "h80"}, strokeIDs(s))
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	s := newTestScene(0)
	before := s.Canvas().Snapshot()
	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
	assert.Equal(t, before.Pix, s.Canvas().Layer(canvas.Committed).Pix)
}

func TestHistoryDepthIsBounded(t *testing.T) {
	s := newTestScene(2)
	for i := range 4 {
		s.Commit(hline(float64(10+20*i)), nil)
	}
	assert.Equal(t, 2, s.UndoDepth())

	assert.True(t, s.Undo())
	assert.True(t, s.Undo())
	assert.False(t, s.Undo())
	assert.Equal(t, []string{"h10", "h30"}, strokeIDs(s))

	assert.True(t, s.Redo())
	assert.True(t, s.Redo())
	assert.Equal(t, []string{"h10", "h30", "h50", "h70"}, strokeIDs(s))
}

func TestDefaultHistoryDepth(t *testing.T) {
	s := newTestScene(0)
	for i := range DefaultMaxHistory + 5 {
		s.Commit(hline(float64(i%90+5)), nil)
	}
	assert.Equal(t, 20, DefaultMaxHistory)
	assert.Equal(t, DefaultMaxHistory, s.UndoDepth())
}

func TestToggleModeRedraws(t *testing.T) {
	s := newTestScene(0)
	st := hline(50)
	s.Commit(st, lineShape(st))
	ink := s.Canvas().Snapshot()

	assert.Equal(t, RenderShapes, s.ToggleMode())
	shapes := s.Canvas().Snapshot()
	assert.NotEqual(t, ink.Pix, shapes.Pix)

	assert.Equal(t, RenderInk, s.ToggleMode())
	assert.Equal(t, ink.Pix, s.Canvas().Layer(canvas.Committed).Pix)
}

func TestUndoAcrossModeChange(t *testing.T) {
	s := newTestScene(0)
	a, b := hline(30), hline(60)
	s.Commit(a, lineShape(a))
	s.Commit(b, lineShape(b))

	s.ToggleMode()
	require.True(t, s.Undo())

	// the ink snapshot is not pasted back over shapes; the layer is redrawn
	want := NewScene(canvas.New(100, 100), 0)
	want.SetMode(RenderShapes)
	want.Commit(a, lineShape(a))
	assert.Equal(t, want.Canvas().Layer(canvas.Committed).Pix, s.Canvas().Layer(canvas.Committed).Pix)
}

func strokeIDs(s *Scene) []string {
	var ids []string
	for _, st := range s.Strokes() {
		ids = append(ids, st.ID)
	}
	return ids
}
