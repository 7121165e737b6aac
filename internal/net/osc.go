package net

import (
	"fmt"
	"log"

	"InkSynth/internal/state"

	"github.com/hypebeast/go-osc/osc"
)

const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 57120
	DefaultAddress = "/shape"
)

// Sender delivers an OSC packet. *osc.Client satisfies it.
type Sender interface {
	Send(packet osc.Packet) error
}

// Emitter turns shape records into OSC messages for the synthesis engine.
type Emitter struct {
	sender  Sender
	address string
	target  string
}

// NewEmitter sends over UDP to host:port.
func NewEmitter(host string, port int, address string) *Emitter {
	e := NewEmitterWithSender(osc.NewClient(host, port), address)
	e.target = fmt.Sprintf("%s:%d", host, port)
	return e
}

func NewEmitterWithSender(s Sender, address string) *Emitter {
	if address == "" {
		address = DefaultAddress
	}
	return &Emitter{sender: s, address: address, target: "custom sender"}
}

func (e *Emitter) Address() string {
	return e.address
}

// Message builds the argument list for rec on a canvas of the given size:
// category, x and y normalized to [0,1] with y pointing up, width, height,
// the color channels in [0,1], pressure and stroke length.
func (e *Emitter) Message(rec *state.ShapeRecord, canvasW, canvasH int) *osc.Message {
	var x, y float64
	if canvasW > 0 {
		x = rec.Centroid.X / float64(canvasW)
	}
	if canvasH > 0 {
		y = 1 - rec.Centroid.Y/float64(canvasH)
	}
	r, g, b := rec.Color.Normalized()

	msg := osc.NewMessage(e.address)
	msg.Append(rec.Category.String())
	for _, v := range []float64{x, y, rec.Width, rec.Height, r, g, b, rec.Pressure, rec.StrokeLength} {
		msg.Append(float32(v))
	}
	return msg
}

// Emit sends rec. Errors are logged and returned; callers are free to
// ignore them since a missing listener must never stop drawing.
func (e *Emitter) Emit(rec *state.ShapeRecord, canvasW, canvasH int) error {
	msg := e.Message(rec, canvasW, canvasH)
	if err := e.sender.Send(msg); err != nil {
		log.Printf("[OSC] Failed to send %s to %s: %v", rec.Category, e.target, err)
		return fmt.Errorf("send %s: %w", e.address, err)
	}
	log.Printf("[OSC] Sent %s, pos: (%.2f, %.2f), length: %.2f",
		rec.Category, msg.Arguments[1], msg.Arguments[2], rec.StrokeLength)
	return nil
}
