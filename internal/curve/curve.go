// Package curve evaluates Bezier curves over an owned control point sequence
// and caches a sampled polyline for drawing.
package curve

import (
	"fmt"

	"beziertui/internal/geom"
	"beziertui/internal/seq"
)

// DefaultResolution is the polyline sample count of a new curve.
const DefaultResolution = 100

// Kind tags the concrete curve variant. Free is the only kind; a new kind
// gets a constant here and a case in AddPoint and DeletePoint.
type Kind int

const (
	// KindFree accepts points at any position in its order.
	KindFree Kind = iota
)

func (k Kind) String() string {
	if k == KindFree {
		return "free"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Curve owns an ordered control point sequence. The order of the points is
// the direction of travel for t in [0, 1].
//
// A Curve is not safe for concurrent use. The cached polyline is replaced
// wholesale by Rebuild and never edited in place, so a slice returned by
// Polyline stays consistent after later edits.
type Curve struct {
	kind          Kind
	algorithm     Algorithm
	lengthScale   float64
	resolution    int
	binomialLimit int

	points   *seq.Seq[geom.Point]
	polyline []geom.Point
	gen      uint64

	scratch []geom.Point
}

type Option func(*Curve)

func WithAlgorithm(a Algorithm) Option {
	return func(c *Curve) { c.algorithm = a }
}

func WithResolution(n int) Option {
	return func(c *Curve) { c.resolution = max(0, n) }
}

func WithLengthScale(s float64) Option {
	return func(c *Curve) { c.lengthScale = s }
}

// WithBinomialLimit sets the largest control point degree evaluated with
// exact integer binomials under Bernstein.
func WithBinomialLimit(n int) Option {
	return func(c *Curve) { c.binomialLimit = n }
}

// New returns an empty free-form curve.
func New(opts ...Option) *Curve {
	c := &Curve{
		kind:          KindFree,
		algorithm:     DeCasteljau,
		lengthScale:   1.0,
		resolution:    DefaultResolution,
		binomialLimit: DefaultBinomialLimit,
		points:        seq.New[geom.Point](),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewFree returns a free-form curve whose point 0 is seed.
func NewFree(seed geom.Point, opts ...Option) *Curve {
	c := New(opts...)
	c.points.Append(seed)
	c.Rebuild()
	return c
}

// FromPoints returns a free-form curve over a copy of points.
func FromPoints(points []geom.Point, opts ...Option) *Curve {
	c := New(opts...)
	c.points = seq.New(points...)
	c.Rebuild()
	return c
}

func (c *Curve) Kind() Kind { return c.kind }

func (c *Curve) Algorithm() Algorithm { return c.algorithm }

// SetAlgorithm takes effect on the next evaluation. The cached polyline is
// left alone until Rebuild.
func (c *Curve) SetAlgorithm(a Algorithm) { c.algorithm = a }

func (c *Curve) LengthScale() float64 { return c.lengthScale }

// SetLengthScale rescales the parameter: Evaluate(t) uses t*s.
func (c *Curve) SetLengthScale(s float64) { c.lengthScale = s }

func (c *Curve) Resolution() int { return c.resolution }

// SetResolution sets the polyline sample count and rebuilds it.
// Negative counts are treated as zero.
func (c *Curve) SetResolution(n int) {
	c.resolution = max(0, n)
	c.Rebuild()
}

func (c *Curve) Len() int { return c.points.Len() }

// Points returns a copy of the control points.
func (c *Curve) Points() []geom.Point { return c.points.Items() }

func (c *Curve) Point(i int) (geom.Point, error) { return c.points.At(i) }

// Polyline returns the cached polyline. Callers must not modify it.
func (c *Curve) Polyline() []geom.Point { return c.polyline }

// Generation counts polyline rebuilds.
func (c *Curve) Generation() uint64 { return c.gen }

// InsertPointAt inserts p at index i in [0, Len]. It does not rebuild.
func (c *Curve) InsertPointAt(p geom.Point, i int) error {
	return c.points.Insert(i, p)
}

// RemovePointAt removes the point at i. It does not rebuild. Removing from
// an empty curve is a no-op.
func (c *Curve) RemovePointAt(i int) error {
	return c.points.RemoveAt(i)
}

// MovePoint translates the point at i by delta. It does not rebuild.
func (c *Curve) MovePoint(i int, delta geom.Point) error {
	p, err := c.points.At(i)
	if err != nil {
		return err
	}
	return c.points.Set(i, p.Add(delta))
}

// AddPoint inserts p at position id and rebuilds the polyline.
func (c *Curve) AddPoint(p geom.Point, id int) error {
	switch c.kind {
	case KindFree:
		if err := c.InsertPointAt(p, id); err != nil {
			return err
		}
	default:
		return fmt.Errorf("curve: add point: unsupported kind %v", c.kind)
	}
	c.Rebuild()
	return nil
}

// DeletePoint removes the point at index and rebuilds the polyline.
func (c *Curve) DeletePoint(index int) error {
	switch c.kind {
	case KindFree:
		if err := c.RemovePointAt(index); err != nil {
			return err
		}
	default:
		return fmt.Errorf("curve: delete point: unsupported kind %v", c.kind)
	}
	c.Rebuild()
	return nil
}

// Evaluate returns the position at t under the selected algorithm.
// A curve without points evaluates to (0, 0); a single point is returned for
// every t.
func (c *Curve) Evaluate(t float64) geom.Point {
	return c.eval(c.points.Items(), t, nil)
}

// Trace is Evaluate that also reports the construction geometry to tr: the
// intermediate interpolation rounds for De Casteljau, or the cumulative
// partial sums for Bernstein.
func (c *Curve) Trace(t float64, tr Tracer) geom.Point {
	return c.eval(c.points.Items(), t, tr)
}

func (c *Curve) eval(pts []geom.Point, t float64, tr Tracer) geom.Point {
	t *= c.lengthScale
	switch c.algorithm {
	case Bernstein:
		return bernstein(pts, t, c.binomialLimit, tr)
	default:
		if cap(c.scratch) < len(pts) {
			c.scratch = make([]geom.Point, len(pts))
		}
		return deCasteljau(pts, t, c.scratch, tr)
	}
}

// Rebuild regenerates the polyline from the current points, algorithm,
// length scale and resolution. Sample i is taken at t = i/(resolution-1).
func (c *Curve) Rebuild() {
	pts := c.points.Items()
	var line []geom.Point
	if c.resolution > 0 && len(pts) > 0 {
		line = make([]geom.Point, c.resolution)
		for i := range line {
			t := 0.0
			if c.resolution > 1 {
				t = float64(i) / float64(c.resolution-1)
			}
			line[i] = c.eval(pts, t, nil)
		}
	}
	c.polyline = line
	c.gen++
}
