package canvas

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var red = color.RGBA{R: 255, A: 255}

func TestNewIsWhite(t *testing.T) {
	c := New(20, 10)
	w, h := c.Size()
	require.Equal(t, 20, w)
	require.Equal(t, 10, h)

	img := c.Layer(Committed)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(19, 9))
	assert.Equal(t, color.RGBA{}, c.Layer(Wet).RGBAAt(5, 5))
}

func TestNewClampsSize(t *testing.T) {
	c := New(0, -3)
	w, h := c.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestSegmentInksAlongTheLine(t *testing.T) {
	c := New(100, 100)
	c.Segment(Committed, vec.Vec2{X: 10, Y: 50}, vec.Vec2{X: 90, Y: 50}, 6, red)

	img := c.Layer(Committed)
	assert.Equal(t, red, img.RGBAAt(50, 50))
	assert.Equal(t, red, img.RGBAAt(12, 50))
	// round cap reaches past the end point
	assert.Equal(t, red, img.RGBAAt(91, 50))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(50, 60))
}

func TestZeroLengthSegmentIsDot(t *testing.T) {
	c := New(40, 40)
	c.Segment(Wet, vec.Vec2{X: 20, Y: 20}, vec.Vec2{X: 20, Y: 20}, 8, red)
	assert.Equal(t, red, c.Layer(Wet).RGBAAt(20, 20))
	assert.Equal(t, color.RGBA{}, c.Layer(Wet).RGBAAt(30, 30))
}

func TestSnapshotRestore(t *testing.T) {
	c := New(50, 50)
	before := c.Snapshot()

	c.Segment(Committed, vec.Vec2{X: 0, Y: 25}, vec.Vec2{X: 50, Y: 25}, 4, red)
	require.NotEqual(t, before.Pix, c.Layer(Committed).Pix)

	c.Restore(before)
	assert.Equal(t, before.Pix, c.Layer(Committed).Pix)

	// the snapshot is a copy, not an alias
	c.Segment(Committed, vec.Vec2{X: 0, Y: 25}, vec.Vec2{X: 50, Y: 25}, 4, red)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, before.RGBAAt(25, 25))
}

func TestRestoreDifferentSize(t *testing.T) {
	small := New(10, 10)
	small.Dot(Committed, vec.Vec2{X: 5, Y: 5}, 4, red)
	snap := small.Snapshot()

	c := New(30, 30)
	c.Restore(snap)
	assert.Equal(t, red, c.Layer(Committed).RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.Layer(Committed).RGBAAt(20, 20))
}

func TestResizeKeepsContent(t *testing.T) {
	c := New(40, 40)
	c.Dot(Committed, vec.Vec2{X: 10, Y: 10}, 6, red)

	c.Resize(80, 60)
	w, h := c.Size()
	require.Equal(t, 80, w)
	require.Equal(t, 60, h)
	assert.Equal(t, red, c.Layer(Committed).RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.Layer(Committed).RGBAAt(70, 50))

	c.Resize(20, 20)
	assert.Equal(t, red, c.Layer(Committed).RGBAAt(10, 10))
}

func TestFrameComposites(t *testing.T) {
	c := New(40, 40)
	c.Dot(Wet, vec.Vec2{X: 10, Y: 10}, 6, red)
	green := color.RGBA{G: 255, A: 255}
	c.Dot(Hint, vec.Vec2{X: 30, Y: 30}, 6, green)

	frame := c.Frame()
	assert.Equal(t, red, frame.RGBAAt(10, 10))
	assert.Equal(t, green, frame.RGBAAt(30, 30))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, frame.RGBAAt(20, 20))

	// the committed layer itself is untouched
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.Layer(Committed).RGBAAt(10, 10))

	c.Clear(Wet)
	assert.Equal(t, color.RGBA{}, c.Layer(Wet).RGBAAt(10, 10))
}

func TestContourPath(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	open := ContourPath(pts, false)
	assert.Equal(t, []path.Command{path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo}, open.Cmds)

	closed := ContourPath(pts, true)
	assert.Equal(t, path.CmdClose, closed.Cmds[len(closed.Cmds)-1])
	assert.Len(t, closed.Coords, 3)

	// two points never close, they would just retrace the line
	line := ContourPath(pts[:2], true)
	assert.NotContains(t, line.Cmds, path.CmdClose)
}

func TestOutlineClosesPath(t *testing.T) {
	c := New(100, 100)
	square := []vec.Vec2{{X: 20, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 80}, {X: 20, Y: 80}}
	c.Outline(Committed, ContourPath(square, true), 2, red)

	img := c.Layer(Committed)
	assert.Equal(t, red, img.RGBAAt(50, 20))
	assert.Equal(t, red, img.RGBAAt(20, 50)) // closing edge
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(50, 50))
}

func TestCircle(t *testing.T) {
	c := New(100, 100)
	c.Circle(Committed, vec.Vec2{X: 50, Y: 50}, 30, 3, red)

	img := c.Layer(Committed)
	assert.Equal(t, red, img.RGBAAt(80, 50))
	assert.Equal(t, red, img.RGBAAt(50, 20))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(50, 50))
}

func TestLabelDrawsSomething(t *testing.T) {
	c := New(100, 30)
	c.Label(Hint, vec.Vec2{X: 5, Y: 20}, "Circle", red)

	assert.Positive(t, countOpaque(c.Layer(Hint).Pix))
}

func countOpaque(pix []uint8) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			n++
		}
	}
	return n
}
