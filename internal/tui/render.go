package tui

import (
	"math"
	"strings"

	"beziertui/internal/geom"
	"beziertui/internal/scene"
)

// viewport maps canvas units to braille dots: dot = (unit - origin) / unitsPerDot.
type viewport struct {
	origin      geom.Point
	unitsPerDot float64
}

// dotLimit bounds dot coordinates so far away points still convert to int.
const dotLimit = 1 << 30

func (v viewport) toDot(p geom.Point) (int, int) {
	x, y := v.toDotF(p)
	return clampDot(x), clampDot(y)
}

func (v viewport) toDotF(p geom.Point) (float64, float64) {
	return (p.X - v.origin.X) / v.unitsPerDot, (p.Y - v.origin.Y) / v.unitsPerDot
}

func clampDot(f float64) int {
	if math.IsNaN(f) {
		return -dotLimit
	}
	return int(math.Floor(math.Max(-dotLimit, math.Min(dotLimit, f))))
}

// cellCenter returns the canvas position under the middle of cell (cx, cy).
func (v viewport) cellCenter(cx, cy int) geom.Point {
	return geom.Pt(
		v.origin.X+float64(cx*2+1)*v.unitsPerDot,
		v.origin.Y+float64(cy*4+2)*v.unitsPerDot,
	)
}

func (v viewport) dots(units float64) int {
	return int(math.Round(units / v.unitsPerDot))
}

// canvas is a scene.Renderer drawing into one braille buffer per layer.
type canvas struct {
	vp     viewport
	w, h   int
	layer  scene.Layer
	layers [scene.LayerCount]*brailleBuf
}

func newCanvas(w, h int, vp viewport) *canvas {
	c := &canvas{vp: vp, w: w, h: h}
	for i := range c.layers {
		c.layers[i] = newBrailleBuf(w, h)
	}
	return c
}

func (c *canvas) SetLayer(l scene.Layer) {
	if l < 0 || l >= scene.LayerCount {
		l = scene.LayerCurve
	}
	c.layer = l
}

func (c *canvas) buf() *brailleBuf { return c.layers[c.layer] }

func (c *canvas) DrawPolyline(points []geom.Point) {
	if len(points) == 1 {
		x, y := c.vp.toDot(points[0])
		c.buf().setPixel(x, y)
		return
	}
	for i := 0; i+1 < len(points); i++ {
		c.DrawSegment(points[i], points[i+1])
	}
}

// DrawSegment clips the segment to the buffer before walking it, so the cost
// is bounded by the canvas size whatever the endpoints are.
func (c *canvas) DrawSegment(a, b geom.Point) {
	x0, y0 := c.vp.toDotF(a)
	x1, y1 := c.vp.toDotF(b)
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, -1, -1, float64(c.w*2), float64(c.h*4))
	if !ok {
		return
	}
	c.buf().drawLineMicro(clampDot(x0), clampDot(y0), clampDot(x1), clampDot(y1))
}

// clipSegment is Liang-Barsky clipping of (x0,y0)-(x1,y1) to the rectangle
// [xmin,xmax] x [ymin,ymax]. ok is false when nothing is left or an
// endpoint is not finite. Endpoints inside the rectangle are returned as is.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	ax, ay, bx, by := x0, y0, x1, y1
	if t0 > 0 {
		ax, ay = x0+t0*dx, y0+t0*dy
	}
	if t1 < 1 {
		bx, by = x0+t1*dx, y0+t1*dy
	}
	return ax, ay, bx, by, true
}

func (c *canvas) DrawFilledCircle(center geom.Point, radius float64) {
	x, y := c.vp.toDot(center)
	c.buf().fillCircleMicro(x, y, c.vp.dots(radius))
}

func (c *canvas) DrawStrokedCircle(center geom.Point, radius float64) {
	x, y := c.vp.toDot(center)
	c.buf().drawCircleMicro(x, y, c.vp.dots(radius))
}

// top returns the highest layer with a dot in cell (x, y), or -1.
func (c *canvas) top(x, y int) scene.Layer {
	for l := scene.LayerCount - 1; l >= 0; l-- {
		if c.layers[l].m[y][x] != 0 {
			return l
		}
	}
	return -1
}

// lines composites the layers: a cell shows the union of all layer dots in
// the color of its highest layer.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		var run []rune
		runLayer := scene.Layer(-1)
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runLayer < 0 {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(layerStyles[runLayer].Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			var mask uint8
			for _, b := range c.layers {
				mask |= b.m[y][x]
			}
			l := c.top(x, y)
			if l != runLayer {
				flush()
				runLayer = l
			}
			run = append(run, brailleRune(mask))
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

func (c *canvas) String() string {
	return strings.Join(c.lines(), "\n")
}
