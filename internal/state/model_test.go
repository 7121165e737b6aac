package state

import (
	"encoding/json"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPressure(t *testing.T) {
	assert.Equal(t, 0.0, ClampPressure(-1))
	assert.Equal(t, 0.25, ClampPressure(0.25))
	assert.Equal(t, 1.0, ClampPressure(3))
	assert.Equal(t, 0.0, ClampPressure(math.NaN()))
}

func TestAveragePressure(t *testing.T) {
	s := Stroke{Pressures: []float64{0.2, 0.4, 0.9}}
	assert.InDelta(t, 0.5, s.AveragePressure(), 1e-12)

	assert.Equal(t, DefaultPressure, (&Stroke{}).AveragePressure())
}

func TestStrokeLength(t *testing.T) {
	s := Stroke{Points: []Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}}}
	assert.InDelta(t, 11, s.Length(), 1e-12)
	assert.Zero(t, (&Stroke{Points: []Point{{X: 1, Y: 1}}}).Length())
}

func TestRGB(t *testing.T) {
	c := RGBFromColor(color.NRGBA{R: 255, G: 128, B: 0, A: 255})
	assert.Equal(t, RGB{R: 255, G: 128}, c)

	r, g, b := RGB{R: 255, G: 51}.Normalized()
	assert.Equal(t, 1.0, r)
	assert.InDelta(t, 0.2, g, 1e-12)
	assert.Equal(t, 0.0, b)

	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, RGB{1, 2, 3}.RGBA())
}

func TestCategoryText(t *testing.T) {
	rec := ShapeRecord{Category: Rectangle}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"Rectangle"`)

	var back ShapeRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Rectangle, back.Category)

	var c Category
	assert.Error(t, c.UnmarshalText([]byte("Blob")))
	assert.Equal(t, "Category(42)", Category(42).String())
}

func TestIDs(t *testing.T) {
	assert.NotEmpty(t, SiteID())
	assert.NotEqual(t, NewID(), NewID())
	a := NextSeq()
	assert.Equal(t, a+1, NextSeq())
}
