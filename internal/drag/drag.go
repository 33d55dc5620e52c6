// Package drag implements the pointer driven pan engine for the canvas: it owns
// the canvas offset, estimates velocity while the pointer is held, and keeps
// the canvas coasting with friction after release.
//
// Velocity is measured in canvas units per nominal frame (Params.FrameInterval),
// not per wall-clock second, so the strength of a fling does not depend on how
// often the terminal reports motion.
package drag

import (
	"math"
	"time"

	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

// State is the engine's gesture state.
type State int

const (
	// Idle means no gesture and no momentum.
	Idle State = iota
	// Dragging means the pointer is held down and moving the canvas.
	Dragging
	// Coasting means the pointer was released and momentum is decaying.
	Coasting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Coasting:
		return "coasting"
	default:
		return "idle"
	}
}

// Params holds the tunable constants of the engine.
type Params struct {
	// Friction multiplies the velocity on every coasting step.
	Friction float64
	// MinVelocity stops coasting once both velocity components fall below it.
	MinVelocity float64
	// MomentumThreshold is the per-axis speed a release must exceed to coast.
	MomentumThreshold float64
	// ClickThreshold is the straight-line distance below which a gesture is a click.
	ClickThreshold float64
	// FrameInterval is the nominal frame used to normalize velocity and to
	// schedule coasting steps.
	FrameInterval time.Duration
	// ReleaseWindow discards the velocity of a release that happens longer
	// than this after the last motion sample. Zero disables the check.
	ReleaseWindow time.Duration
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Friction:          0.95,
		MinVelocity:       0.1,
		MomentumThreshold: 1,
		ClickThreshold:    10,
		FrameInterval:     16 * time.Millisecond,
	}
}

// withDefaults replaces unusable values with the stock tuning.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Friction <= 0 || p.Friction >= 1 {
		p.Friction = d.Friction
	}
	if p.MinVelocity <= 0 {
		p.MinVelocity = d.MinVelocity
	}
	if p.MomentumThreshold <= 0 {
		p.MomentumThreshold = d.MomentumThreshold
	}
	if p.ClickThreshold <= 0 {
		p.ClickThreshold = d.ClickThreshold
	}
	if p.FrameInterval <= 0 {
		p.FrameInterval = d.FrameInterval
	}
	if p.ReleaseWindow < 0 {
		p.ReleaseWindow = 0
	}
	return p
}

// Engine tracks one gesture at a time. It is not safe for concurrent use;
// it is meant to be driven from a single event loop.
type Engine struct {
	params Params
	state  State

	offset   geom.Vec2
	velocity geom.Vec2

	// gesture
	startPointer geom.Vec2
	startOffset  geom.Vec2
	lastPointer  geom.Vec2
	lastOffset   geom.Vec2
	lastSample   time.Time
	distance     float64

	generation uint64
}

// New creates an idle engine at the origin.
func New(p Params) *Engine {
	return &Engine{params: p.withDefaults()}
}

// Params returns the effective parameters.
func (e *Engine) Params() Params { return e.params }

// SetParams replaces the parameters; the current gesture is kept.
func (e *Engine) SetParams(p Params) { e.params = p.withDefaults() }

// State returns the current gesture state.
func (e *Engine) State() State { return e.state }

// Offset returns the current canvas offset.
func (e *Engine) Offset() geom.Vec2 { return e.offset }

// Velocity returns the current velocity estimate in units per frame.
func (e *Engine) Velocity() geom.Vec2 { return e.velocity }

// Distance returns the straight-line distance of the last gesture.
func (e *Engine) Distance() float64 { return e.distance }

// Generation identifies the current coasting run. Scheduled steps should
// carry it and be dropped when it no longer matches.
func (e *Engine) Generation() uint64 { return e.generation }

// IsClick reports whether the most recent gesture moved less than the click
// threshold from where it started.
func (e *Engine) IsClick() bool {
	return e.distance < e.params.ClickThreshold
}

// PointerDown starts a gesture at p. Any coasting is cancelled.
func (e *Engine) PointerDown(p geom.Vec2, now time.Time) {
	e.cancelCoast()
	e.state = Dragging
	e.startPointer = p
	e.lastPointer = p
	e.startOffset = e.offset
	e.lastOffset = e.offset
	e.lastSample = now
	e.distance = 0
	e.velocity = geom.Vec2{}
}

// PointerMove feeds a motion sample. It is a no-op outside of a gesture.
func (e *Engine) PointerMove(p geom.Vec2, now time.Time) {
	if e.state != Dragging {
		return
	}
	e.sample(p, now)
}

// PointerUp ends the gesture at p and reports whether coasting started.
// A release without a matching press is ignored.
func (e *Engine) PointerUp(p geom.Vec2, now time.Time) bool {
	if e.state != Dragging {
		return false
	}
	if p != e.lastPointer {
		e.sample(p, now)
	}
	if e.params.ReleaseWindow > 0 && now.Sub(e.lastSample) > e.params.ReleaseWindow {
		e.velocity = geom.Vec2{}
	}

	if math.Abs(e.velocity.X) > e.params.MomentumThreshold || math.Abs(e.velocity.Y) > e.params.MomentumThreshold {
		e.state = Coasting
		e.generation++
		return true
	}
	e.state = Idle
	e.velocity = geom.Vec2{}
	return false
}

// Step advances coasting by one frame: the offset moves by the current
// velocity, then the velocity decays by the friction factor. It returns false
// once the engine is idle.
func (e *Engine) Step() bool {
	if e.state != Coasting {
		return false
	}
	e.offset = e.offset.Add(e.velocity)
	e.velocity = e.velocity.Scale(e.params.Friction)
	if math.Abs(e.velocity.X) < e.params.MinVelocity && math.Abs(e.velocity.Y) < e.params.MinVelocity {
		e.state = Idle
		e.velocity = geom.Vec2{}
		return false
	}
	return true
}

// Nudge starts coasting with velocity v without a pointer gesture, as used by
// keyboard panning. It is ignored while dragging. Velocities below the
// momentum threshold on both axes are ignored.
func (e *Engine) Nudge(v geom.Vec2) bool {
	if e.state == Dragging {
		return false
	}
	if math.Abs(v.X) <= e.params.MomentumThreshold && math.Abs(v.Y) <= e.params.MomentumThreshold {
		return false
	}
	if e.state != Coasting {
		e.generation++
	}
	e.state = Coasting
	e.velocity = v
	return true
}

// Reset returns the engine to an idle state at the origin.
func (e *Engine) Reset() {
	e.cancelCoast()
	e.state = Idle
	e.offset = geom.Vec2{}
	e.velocity = geom.Vec2{}
	e.distance = 0
}

func (e *Engine) cancelCoast() {
	if e.state == Coasting {
		e.generation++
	}
}

// sample applies a pointer position: the offset follows the pointer from
// where the gesture started, and velocity is the change since the previous
// sample normalized to one frame.
func (e *Engine) sample(p geom.Vec2, now time.Time) {
	delta := p.Sub(e.startPointer)
	next := e.startOffset.Add(delta)

	elapsed := now.Sub(e.lastSample)
	if elapsed <= 0 {
		elapsed = e.params.FrameInterval
	}
	frames := float64(elapsed) / float64(e.params.FrameInterval)
	e.velocity = next.Sub(e.lastOffset).Scale(1 / frames)

	e.offset = next
	e.lastOffset = next
	e.lastPointer = p
	e.lastSample = now
	e.distance = delta.Len()
}
