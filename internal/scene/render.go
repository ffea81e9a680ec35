package scene

import "beziertui/internal/geom"

// Renderer is the drawing surface a scene is rendered onto. Coordinates are
// canvas units. It also satisfies curve.Tracer.
type Renderer interface {
	// SetLayer selects the layer subsequent calls draw on.
	SetLayer(l Layer)
	DrawPolyline(points []geom.Point)
	DrawSegment(a, b geom.Point)
	DrawFilledCircle(center geom.Point, radius float64)
	DrawStrokedCircle(center geom.Point, radius float64)
}

// Layer orders drawing: a renderer composites higher layers on top of lower
// ones regardless of call order.
type Layer int

const (
	LayerCurve Layer = iota
	LayerConstruction
	LayerConnections
	LayerMarkers
	LayerHandles
	LayerSelection
	LayerHover

	LayerCount
)

func (l Layer) String() string {
	switch l {
	case LayerCurve:
		return "curve"
	case LayerConstruction:
		return "construction"
	case LayerConnections:
		return "connections"
	case LayerMarkers:
		return "markers"
	case LayerHandles:
		return "handles"
	case LayerSelection:
		return "selection"
	case LayerHover:
		return "hover"
	}
	return "unknown"
}

// Visual radii in canvas units.
const (
	HandleFillRadius   = 9
	HandleStrokeRadius = 8
	SelectionRadius    = 13
	MarkerRadius       = 5
)
