// Package export writes a scene out as a PDF page or a plain-text report.
package export

import (
	"fmt"
	"io"
	"math"

	"InkSynth/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW  = 297.0
	pageH  = 210.0
	margin = 10.0
)

// PDF draws the entries on a landscape A4 page, scaled to fit a canvas of
// canvasW x canvasH pixels. In RenderShapes mode only recognized outlines
// are drawn, otherwise the raw strokes.
func PDF(w io.Writer, entries []state.Entry, mode state.RenderMode, canvasW, canvasH int) error {
	if canvasW < 1 || canvasH < 1 {
		return fmt.Errorf("invalid canvas size %dx%d", canvasW, canvasH)
	}
	scale := math.Min((pageW-2*margin)/float64(canvasW), (pageH-2*margin)/float64(canvasH))
	at := func(p state.Point) (float64, float64) {
		return margin + p.X*scale, margin + p.Y*scale
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("InkSynth scene", true)
	p.SetCreator("InkSynth", true)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	p.SetFont("Helvetica", "", 7)

	p.SetDrawColor(200, 200, 200)
	p.SetLineWidth(0.2)
	p.Rect(margin, margin, float64(canvasW)*scale, float64(canvasH)*scale, "D")

	for _, e := range entries {
		if mode == state.RenderShapes {
			if e.Shape != nil {
				drawShape(p, e.Shape, scale, at)
			}
			continue
		}
		drawStroke(p, &e.Stroke, scale, at)
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func drawStroke(p *gofpdf.Fpdf, st *state.Stroke, scale float64, at func(state.Point) (float64, float64)) {
	p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	for i := 1; i < len(st.Points); i++ {
		pressure := state.DefaultPressure
		if i < len(st.Pressures) {
			pressure = st.Pressures[i]
		}
		p.SetLineWidth(math.Max(pressure*state.PenScale*scale, 0.1))
		x1, y1 := at(st.Points[i-1])
		x2, y2 := at(st.Points[i])
		p.Line(x1, y1, x2, y2)
	}
}

func drawShape(p *gofpdf.Fpdf, r *state.ShapeRecord, scale float64, at func(state.Point) (float64, float64)) {
	if len(r.Contour) == 0 {
		return
	}
	p.SetDrawColor(int(r.Color.R), int(r.Color.G), int(r.Color.B))
	p.SetTextColor(int(r.Color.R), int(r.Color.G), int(r.Color.B))
	p.SetLineWidth(state.ShapeLineWidth * scale)

	if r.Closed() {
		pts := make([]gofpdf.PointType, len(r.Contour))
		for i, c := range r.Contour {
			pts[i].X, pts[i].Y = at(c)
		}
		p.Polygon(pts, "D")
	} else {
		for i := 1; i < len(r.Contour); i++ {
			x1, y1 := at(r.Contour[i-1])
			x2, y2 := at(r.Contour[i])
			p.Line(x1, y1, x2, y2)
		}
	}
	x, y := at(r.Contour[0])
	p.Text(x, y-2, r.Category.String())
}
