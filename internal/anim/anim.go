// Package anim drives the marker points that travel along each curve.
package anim

import "math"

// Animator holds the shared animation parameter t in [0, 1). It never
// touches curve geometry; renderers read marker parameters from Params.
type Animator struct {
	t       float64
	speed   float64
	markers int
	paused  bool
}

// New returns an animator with the given marker count and speed in curve
// lengths per second per marker slot.
func New(markers int, speed float64) *Animator {
	return &Animator{markers: max(0, markers), speed: speed}
}

// Advance moves t by elapsed*speed*markers and wraps it back into [0, 1).
// Negative speeds run backwards and wrap the same way.
func (a *Animator) Advance(elapsed float64) {
	if a.paused || a.markers == 0 {
		return
	}
	a.t = wrap(a.t + elapsed*a.speed*float64(a.markers))
}

func wrap(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	t -= math.Floor(t)
	if t >= 1 {
		t = 0
	}
	return t
}

// Params returns one parameter per marker: (t + i) / markers.
func (a *Animator) Params() []float64 {
	if a.markers == 0 {
		return nil
	}
	out := make([]float64, a.markers)
	for i := range out {
		out[i] = (a.t + float64(i)) / float64(a.markers)
	}
	return out
}

func (a *Animator) T() float64     { return a.t }
func (a *Animator) Speed() float64 { return a.speed }
func (a *Animator) Markers() int   { return a.markers }
func (a *Animator) Paused() bool   { return a.paused }
func (a *Animator) TogglePause()   { a.paused = !a.paused }

func (a *Animator) SetSpeed(s float64) {
	a.speed = s
}

func (a *Animator) SetMarkers(n int) {
	a.markers = max(0, n)
}
