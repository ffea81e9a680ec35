package curve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"beziertui/internal/geom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats with a relative tolerance of 1e-9.
var approx = cmpopts.EquateApprox(1e-9, 1e-9)

type recorder struct {
	polylines [][]geom.Point
	segments  [][2]geom.Point
}

func (r *recorder) DrawPolyline(points []geom.Point) {
	r.polylines = append(r.polylines, points)
}

func (r *recorder) DrawSegment(a, b geom.Point) {
	r.segments = append(r.segments, [2]geom.Point{a, b})
}
