// Package pen turns raw pointer events into strokes.
package pen

import (
	"InkSynth/internal/state"
)

type Phase int

const (
	Down Phase = iota
	Move
	Up
)

func (p Phase) String() string {
	switch p {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Event is one pointer sample delivered by the host.
type Event struct {
	Phase    Phase
	Pos      state.Point
	Pressure float64
	Source   state.Source
}

// Segment is a piece of wet ink produced by a move.
type Segment struct {
	From, To state.Point
	Pressure float64
}

// Output is what the tracker produced for one event. At most one of
// Segment and Stroke is set.
type Output struct {
	Segment *Segment
	Stroke  *state.Stroke
}

// Tracker accumulates the samples of one press-move-release gesture.
// The zero value is an idle tracker drawing in black.
type Tracker struct {
	active bool
	stroke state.Stroke
	color  state.RGB
}

func NewTracker(color state.RGB) *Tracker {
	return &Tracker{color: color}
}

// SetColor changes the ink. A stroke in progress takes the color active
// when it is released.
func (t *Tracker) SetColor(c state.RGB) {
	t.color = c
}

func (t *Tracker) Color() state.RGB {
	return t.color
}

func (t *Tracker) Active() bool {
	return t.active
}

// Current returns the points of the stroke in progress.
func (t *Tracker) Current() []state.Point {
	if !t.active {
		return nil
	}
	return t.stroke.Points
}

// Feed advances the state machine by one event.
func (t *Tracker) Feed(ev Event) Output {
	pressure := samplePressure(ev)
	switch ev.Phase {
	case Down:
		t.active = true
		t.stroke = state.Stroke{
			ID:        state.NewID(),
			Points:    []state.Point{ev.Pos},
			Pressures: []float64{pressure},
			Color:     t.color,
			Source:    ev.Source,
		}
	case Move:
		if !t.active {
			return Output{}
		}
		last := t.stroke.Points[len(t.stroke.Points)-1]
		t.stroke.Points = append(t.stroke.Points, ev.Pos)
		t.stroke.Pressures = append(t.stroke.Pressures, pressure)
		return Output{Segment: &Segment{From: last, To: ev.Pos, Pressure: pressure}}
	case Up:
		if !t.active {
			return Output{}
		}
		t.active = false
		done := t.stroke
		// ink active at release wins
		done.Color = t.color
		t.stroke = state.Stroke{}
		return Output{Stroke: &done}
	}
	return Output{}
}

// Cancel drops the stroke in progress.
func (t *Tracker) Cancel() {
	t.active = false
	t.stroke = state.Stroke{}
}

func samplePressure(ev Event) float64 {
	if ev.Source == state.SourceMouse {
		return state.DefaultPressure
	}
	return state.ClampPressure(ev.Pressure)
}
