package geom

import (
	"fmt"
	"math"
)

// Point is a 2D position or displacement in canvas units.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Lerp interpolates linearly from p (t=0) to o (t=1). Both endpoints are
// reproduced exactly.
func (p Point) Lerp(o Point, t float64) Point {
	return p.Scale(1 - t).Add(o.Scale(t))
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Sqrt(p.DistanceSquared(o))
}

func (p Point) DistanceSquared(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Expand grows the box to include pt.
func (b *BBox) Expand(pt Point) {
	if pt.X < b.MinX {
		b.MinX = pt.X
	}
	if pt.Y < b.MinY {
		b.MinY = pt.Y
	}
	if pt.X > b.MaxX {
		b.MaxX = pt.X
	}
	if pt.Y > b.MaxY {
		b.MaxY = pt.Y
	}
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Valid reports whether the box has a positive area.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Bounds returns the bounding box of points. ok is false for an empty set.
func Bounds(points []Point) (bbox BBox, ok bool) {
	if len(points) == 0 {
		return BBox{}, false
	}
	bbox = BBox{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		bbox.Expand(p)
	}
	return bbox, true
}
