package export

import (
	"bufio"
	"fmt"
	"io"

	"InkSynth/internal/state"
)

// Report writes a plain-text listing of the strokes and recognized shapes.
func Report(w io.Writer, entries []state.Entry) error {
	bw := bufio.NewWriter(w)

	shapes := 0
	for _, e := range entries {
		if e.Shape != nil {
			shapes++
		}
	}

	fmt.Fprintf(bw, "InkSynth Export\n")
	fmt.Fprintf(bw, "===============\n\n")
	fmt.Fprintf(bw, "Total strokes: %d\n", len(entries))
	fmt.Fprintf(bw, "Recognized shapes: %d\n\n", shapes)

	for i, e := range entries {
		st := e.Stroke
		fmt.Fprintf(bw, "Stroke %d:\n", i+1)
		fmt.Fprintf(bw, "  Points: %d\n", len(st.Points))
		fmt.Fprintf(bw, "  Source: %s\n", st.Source)
		fmt.Fprintf(bw, "  Color: %s\n", st.Color)
		fmt.Fprintf(bw, "  Pressure: %.2f\n", st.AveragePressure())
		fmt.Fprintf(bw, "  Length: %.2f\n", st.Length())
		if e.Shape != nil {
			fmt.Fprintf(bw, "  Shape: %s\n", e.Shape)
		} else {
			fmt.Fprintf(bw, "  Shape: none\n")
		}
		fmt.Fprintf(bw, "\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
