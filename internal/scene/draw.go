package scene

import "beziertui/internal/geom"

// Draw renders the editable scene: selection rings, the segments joining
// consecutive control points, the control point handles and each curve's
// cached polyline. Layers put selection and handles above the curve strokes.
func (m *Manager) Draw(r Renderer) {
	r.SetLayer(LayerSelection)
	for _, ref := range m.selection {
		p, err := m.PointAt(ref)
		if err != nil {
			continue
		}
		r.DrawStrokedCircle(p, SelectionRadius)
	}

	r.SetLayer(LayerConnections)
	for _, e := range m.curves {
		pts := e.Curve.Points()
		for i := 0; i+1 < len(pts); i++ {
			r.DrawSegment(pts[i], pts[i+1])
		}
	}

	r.SetLayer(LayerHandles)
	for _, e := range m.curves {
		for _, p := range e.Curve.Points() {
			r.DrawFilledCircle(p, HandleFillRadius)
			r.DrawStrokedCircle(p, HandleStrokeRadius)
		}
	}

	r.SetLayer(LayerCurve)
	for _, e := range m.curves {
		if line := e.Curve.Polyline(); len(line) > 0 {
			r.DrawPolyline(line)
		}
	}
}

// DrawMarkers draws one marker per parameter in ts on every non-empty curve.
// With construction set, the first marker of each curve also draws how its
// position was computed.
func (m *Manager) DrawMarkers(r Renderer, ts []float64, construction bool) {
	for _, e := range m.curves {
		if e.Curve.Len() == 0 {
			continue
		}
		for i, t := range ts {
			var p geom.Point
			if construction && i == 0 {
				r.SetLayer(LayerConstruction)
				p = e.Curve.Trace(t, r)
			} else {
				p = e.Curve.Evaluate(t)
			}
			r.SetLayer(LayerMarkers)
			r.DrawStrokedCircle(p, MarkerRadius)
		}
	}
}

// DrawHover rings the point a press at pos would hit, if any.
func (m *Manager) DrawHover(r Renderer, pos geom.Point) (Ref, bool) {
	ref, ok := m.HitTest(pos)
	if !ok {
		return Ref{}, false
	}
	p, err := m.PointAt(ref)
	if err != nil {
		return Ref{}, false
	}
	r.SetLayer(LayerHover)
	r.DrawStrokedCircle(p, SelectionRadius)
	return ref, true
}
