package state

import (
	"fmt"
	"image/color"
	"math"

	"seehuhn.de/go/geom/vec"
)

// DefaultPressure is used when a stroke carries no pressure samples and
// as the synthetic pressure of mouse input.
const DefaultPressure = 0.5

// Point is a canvas position in pixels, y pointing down.
type Point = vec.Vec2

type Source int

const (
	SourcePen Source = iota
	SourceMouse
)

func (s Source) String() string {
	if s == SourceMouse {
		return "mouse"
	}
	return "pen"
}

// RGB is an 8-bit ink color.
type RGB struct {
	R, G, B uint8
}

var Black = RGB{}

// RGBFromColor converts any color.Color, dropping alpha.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := color.NRGBAModel.Convert(c).RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Normalized returns the channels scaled to [0,1].
func (c RGB) Normalized() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// Stroke is the path of pointer samples between a press and the following
// release. Pressures runs parallel to Points.
type Stroke struct {
	ID        string    `json:"id"`
	Points    []Point   `json:"points"`
	Pressures []float64 `json:"pressures"`
	Color     RGB       `json:"color"`
	Source    Source    `json:"source"`
}

// ClampPressure limits a pressure reading to [0,1].
func ClampPressure(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// AveragePressure returns the mean of the pressure samples, or
// DefaultPressure if there are none.
func (s *Stroke) AveragePressure() float64 {
	if len(s.Pressures) == 0 {
		return DefaultPressure
	}
	sum := 0.0
	for _, p := range s.Pressures {
		sum += p
	}
	return sum / float64(len(s.Pressures))
}

// Length is the sum of the distances between consecutive points.
func (s *Stroke) Length() float64 {
	total := 0.0
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i].Sub(s.Points[i-1]).Length()
	}
	return total
}

// Category is the recognized kind of a stroke outline.
type Category int

const (
	Line Category = iota + 1
	Triangle
	Rectangle
	Polygon
	Circle
)

var categoryNames = map[Category]string{
	Line:      "Line",
	Triangle:  "Triangle",
	Rectangle: "Rectangle",
	Polygon:   "Polygon",
	Circle:    "Circle",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) {
	if _, ok := categoryNames[c]; !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for cat, name := range categoryNames {
		if name == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", text)
}

// ShapeRecord describes the recognized geometry of one completed stroke.
// Records are immutable once built.
type ShapeRecord struct {
	ID           string   `json:"id"`
	Seq          uint64   `json:"seq"`
	StrokeID     string   `json:"stroke_id"`
	Category     Category `json:"category"`
	Contour      []Point  `json:"contour"`
	Color        RGB      `json:"color"`
	Centroid     Point    `json:"centroid"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Pressure     float64  `json:"pressure"`
	StrokeLength float64  `json:"stroke_length"`
}

// Closed reports whether the contour outline joins its last vertex back
// to the first.
func (r *ShapeRecord) Closed() bool {
	return r.Category != Line
}

func (r *ShapeRecord) String() string {
	return fmt.Sprintf("%s (%s) at %.0f,%.0f size %.0fx%.0f pressure %.2f",
		r.Category, r.Color, r.Centroid.X, r.Centroid.Y, r.Width, r.Height, r.Pressure)
}
