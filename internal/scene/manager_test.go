package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beziertui/internal/curve"
	"beziertui/internal/geom"
	"beziertui/internal/seq"
)

func left(x, y float64) Press {
	return Press{Pos: geom.Pt(x, y), Button: ButtonLeft}
}

func shiftLeft(x, y float64) Press {
	return Press{Pos: geom.Pt(x, y), Button: ButtonLeft, PreserveSelection: true}
}

func right(x, y float64) Press {
	return Press{Pos: geom.Pt(x, y), Button: ButtonRight}
}

func click(m *Manager, p Press) {
	m.Press(p)
	m.Release()
}

func onlyCurve(t *testing.T, m *Manager) Entry {
	t.Helper()
	cs := m.Curves()
	require.Len(t, cs, 1)
	return cs[0]
}

func TestClickScenario(t *testing.T) {
	m := NewManager(DefaultOptions())
	assert.Empty(t, m.Curves())

	click(m, left(10, 10))
	e := onlyCurve(t, m)
	assert.Equal(t, []geom.Point{geom.Pt(10, 10)}, e.Curve.Points())
	assert.Equal(t, []Ref{{Curve: e.ID, Index: 0}}, m.Selection())

	click(m, left(50, 50))
	e = onlyCurve(t, m)
	assert.Equal(t, []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}, e.Curve.Points())
	assert.Equal(t, []Ref{{Curve: e.ID, Index: 1}}, m.Selection())

	click(m, right(12, 9))
	e = onlyCurve(t, m)
	assert.Equal(t, []geom.Point{geom.Pt(50, 50)}, e.Curve.Points())
	// the selected point moved from index 1 to 0 and is still valid
	assert.Equal(t, []Ref{{Curve: e.ID, Index: 0}}, m.Selection())
}

func TestHitboxRadius(t *testing.T) {
	m := NewManager(DefaultOptions())
	_, err := m.AddCurve([]geom.Point{geom.Pt(100, 100)})
	require.NoError(t, err)

	ref, ok := m.HitTest(geom.Pt(114.9, 100))
	assert.True(t, ok)
	assert.Equal(t, 0, ref.Index)

	_, ok = m.HitTest(geom.Pt(115.1, 100))
	assert.False(t, ok)

	_, ok = m.HitTest(geom.Pt(100, 115))
	assert.False(t, ok, "radius is exclusive")
}

func TestHitTestNearestAcrossCurves(t *testing.T) {
	m := NewManager(DefaultOptions())
	a, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)})
	require.NoError(t, err)
	b, err := m.AddCurve([]geom.Point{geom.Pt(6, 0)})
	require.NoError(t, err)

	ref, ok := m.HitTest(geom.Pt(7, 0))
	require.True(t, ok)
	assert.Equal(t, Ref{Curve: b, Index: 0}, ref)

	ref, ok = m.HitTest(geom.Pt(9, 0))
	require.True(t, ok)
	assert.Equal(t, Ref{Curve: a, Index: 1}, ref)

	// a:0 and c:0 sit on the same spot
	c, err := m.AddCurve([]geom.Point{geom.Pt(0, 0)})
	require.NoError(t, err)
	ref, ok = m.HitTest(geom.Pt(1, 1))
	require.True(t, ok)
	assert.Equal(t, Ref{Curve: a, Index: 0}, ref, "first scanned wins a tie")
	assert.NotEqual(t, c, ref.Curve)
}

func TestToggleSelection(t *testing.T) {
	m := NewManager(DefaultOptions())
	id, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0)})
	require.NoError(t, err)
	p0 := Ref{Curve: id, Index: 0}
	p1 := Ref{Curve: id, Index: 1}
	p2 := Ref{Curve: id, Index: 2}

	click(m, left(0, 0))
	assert.Equal(t, []Ref{p0}, m.Selection())

	click(m, left(100, 0))
	assert.Equal(t, []Ref{p1}, m.Selection(), "plain click replaces the selection")

	click(m, shiftLeft(200, 0))
	assert.Equal(t, []Ref{p1, p2}, m.Selection())

	click(m, shiftLeft(100, 0))
	assert.Equal(t, []Ref{p2}, m.Selection(), "toggling a selected point removes it")

	click(m, left(200, 0))
	assert.Equal(t, []Ref{p2}, m.Selection(), "plain click on the only selected point keeps it")

	click(m, right(500, 500))
	assert.Empty(t, m.Selection())
	assert.Len(t, onlyCurve(t, m).Curve.Points(), 3)
}

func TestInsertAfterAnchor(t *testing.T) {
	m := NewManager(DefaultOptions())
	id, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0)})
	require.NoError(t, err)

	click(m, left(0, 0))
	click(m, left(50, 80))
	c, _ := m.Curve(id)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(50, 80), geom.Pt(100, 0), geom.Pt(200, 0)}, c.Points())
	assert.Equal(t, []Ref{{Curve: id, Index: 1}}, m.Selection())
}

func TestInsertPreservingSelectionShiftsRefs(t *testing.T) {
	m := NewManager(DefaultOptions())
	id, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0)})
	require.NoError(t, err)

	click(m, left(200, 0))
	click(m, shiftLeft(0, 0))
	// anchor is point 0; point 2 is also selected
	click(m, shiftLeft(50, 80))

	c, _ := m.Curve(id)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(50, 80), geom.Pt(100, 0), geom.Pt(200, 0)}, c.Points())
	assert.Equal(t, []Ref{{id, 3}, {id, 0}, {id, 1}}, m.Selection())
	for _, r := range m.Selection() {
		_, err := m.PointAt(r)
		assert.NoError(t, err)
	}
}

func TestRemovePurgesSelection(t *testing.T) {
	m := NewManager(DefaultOptions())
	a, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0)})
	require.NoError(t, err)
	b, err := m.AddCurve([]geom.Point{geom.Pt(0, 300), geom.Pt(100, 300)})
	require.NoError(t, err)

	require.NoError(t, m.Select(Ref{a, 0}, false))
	require.NoError(t, m.Select(Ref{a, 1}, true))
	require.NoError(t, m.Select(Ref{a, 2}, true))
	require.NoError(t, m.Select(Ref{b, 1}, true))

	require.NoError(t, m.RemovePoint(Ref{a, 1}))
	assert.Equal(t, []Ref{{a, 0}, {a, 1}, {b, 1}}, m.Selection())
	p, err := m.PointAt(Ref{a, 1})
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(200, 0), p)

	err = m.RemovePoint(Ref{a, 5})
	assert.ErrorIs(t, err, seq.ErrIndexOutOfRange)
	assert.ErrorIs(t, m.RemovePoint(Ref{99, 0}), ErrUnknownCurve)
}

func TestRemoveLastPointOfCurve(t *testing.T) {
	m := NewManager(DefaultOptions())
	click(m, left(10, 10))
	click(m, right(10, 10))
	e := onlyCurve(t, m)
	assert.Equal(t, 0, e.Curve.Len())
	assert.Empty(t, e.Curve.Polyline())
	assert.Empty(t, m.Selection())

	// with nothing selected the next click starts a new curve
	click(m, left(40, 40))
	assert.Len(t, m.Curves(), 2)
}

func TestDeleteSelected(t *testing.T) {
	m := NewManager(DefaultOptions())
	a, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0), geom.Pt(300, 0)})
	require.NoError(t, err)
	b, err := m.AddCurve([]geom.Point{geom.Pt(0, 300), geom.Pt(100, 300)})
	require.NoError(t, err)

	require.NoError(t, m.Select(Ref{a, 3}, false))
	require.NoError(t, m.Select(Ref{a, 1}, true))
	require.NoError(t, m.Select(Ref{b, 0}, true))

	assert.Equal(t, 3, m.DeleteSelected())
	ca, _ := m.Curve(a)
	cb, _ := m.Curve(b)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(200, 0)}, ca.Points())
	assert.Equal(t, []geom.Point{geom.Pt(100, 300)}, cb.Points())
	assert.Empty(t, m.Selection())
	assert.Equal(t, 0, m.DeleteSelected())
}

func TestDeadzone(t *testing.T) {
	m := NewManager(DefaultOptions())
	click(m, left(10, 10))
	e := onlyCurve(t, m)

	m.Press(left(10, 10))
	assert.Equal(t, Holding, m.State())
	m.Move(geom.Pt(15, 10))
	assert.Equal(t, Holding, m.State())
	assert.Equal(t, []geom.Point{geom.Pt(10, 10)}, e.Curve.Points())

	m.Move(geom.Pt(18, 10))
	assert.Equal(t, Dragging, m.State())
	assert.Equal(t, []geom.Point{geom.Pt(18, 10)}, e.Curve.Points())

	m.Move(geom.Pt(20, 15))
	assert.Equal(t, []geom.Point{geom.Pt(20, 15)}, e.Curve.Points())

	m.Release()
	assert.Equal(t, Idle, m.State())
	assert.Len(t, m.Selection(), 1, "release keeps the selection")

	m.Move(geom.Pt(90, 90))
	assert.Equal(t, []geom.Point{geom.Pt(20, 15)}, e.Curve.Points(), "moves while idle do nothing")
}

func TestDragAcrossCurves(t *testing.T) {
	m := NewManager(DefaultOptions())
	a, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100)})
	require.NoError(t, err)
	b, err := m.AddCurve([]geom.Point{geom.Pt(300, 0), geom.Pt(300, 100)})
	require.NoError(t, err)
	ca, _ := m.Curve(a)
	cb, _ := m.Curve(b)

	click(m, left(100, 0))
	m.Press(shiftLeft(300, 100))
	require.Equal(t, []Ref{{a, 1}, {b, 1}}, m.Selection())

	genA, genB := ca.Generation(), cb.Generation()
	m.Move(geom.Pt(310, 105))
	assert.Equal(t, genA+1, ca.Generation())
	assert.Equal(t, genB+1, cb.Generation())
	m.Move(geom.Pt(320, 90))
	assert.Equal(t, genA+2, ca.Generation())
	assert.Equal(t, genB+2, cb.Generation())
	m.Release()

	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(120, -10), geom.Pt(100, 100)}, ca.Points())
	assert.Equal(t, []geom.Point{geom.Pt(300, 0), geom.Pt(320, 90)}, cb.Points())
	line := ca.Polyline()
	assert.Equal(t, geom.Pt(100, 100), line[len(line)-1])
}

func TestDragRebuildsSharedCurveOnce(t *testing.T) {
	m := NewManager(DefaultOptions())
	id, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(200, 0)})
	require.NoError(t, err)
	c, _ := m.Curve(id)

	click(m, left(0, 0))
	m.Press(shiftLeft(200, 0))
	gen := c.Generation()
	m.Move(geom.Pt(200, 50))
	assert.Equal(t, gen+1, c.Generation())
	assert.Equal(t, []geom.Point{geom.Pt(0, 50), geom.Pt(100, 0), geom.Pt(200, 50)}, c.Points())
}

func TestSceneSettings(t *testing.T) {
	m := NewManager(DefaultOptions())
	id, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(100, 100)})
	require.NoError(t, err)
	c, _ := m.Curve(id)

	m.SetResolution(3)
	assert.Len(t, c.Polyline(), 3)
	assert.Equal(t, geom.Pt(25, 75), c.Polyline()[1])

	gen := c.Generation()
	m.SetAlgorithm(curve.Bernstein)
	assert.Equal(t, curve.Bernstein, c.Algorithm())
	assert.Equal(t, gen+1, c.Generation())

	m.SetLengthScale(0.5)
	assert.Equal(t, 0.5, c.LengthScale())
	assert.Equal(t, c.Evaluate(1), c.Polyline()[2])

	m.Reset()
	click(m, left(5, 5))
	e := onlyCurve(t, m)
	assert.NotEqual(t, id, e.ID, "ids are not reused")
	assert.Equal(t, curve.Bernstein, e.Curve.Algorithm())
	assert.Equal(t, 3, e.Curve.Resolution())
	assert.Equal(t, 0.5, e.Curve.LengthScale())
}

func TestAddCurve(t *testing.T) {
	m := NewManager(DefaultOptions())
	_, err := m.AddCurve(nil)
	assert.ErrorIs(t, err, ErrEmptyCurve)

	id, err := m.AddCurve([]geom.Point{geom.Pt(0, 0), geom.Pt(40, 40)})
	require.NoError(t, err)
	anchor, ok := m.Anchor()
	require.True(t, ok)
	assert.Equal(t, Ref{id, 1}, anchor)

	click(m, left(80, 0))
	c, _ := m.Curve(id)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(40, 40), geom.Pt(80, 0)}, c.Points())
}

func TestSelectRejectsStaleRef(t *testing.T) {
	m := NewManager(DefaultOptions())
	id, err := m.AddCurve([]geom.Point{geom.Pt(0, 0)})
	require.NoError(t, err)
	assert.ErrorIs(t, m.Select(Ref{id, 1}, false), seq.ErrIndexOutOfRange)
	assert.ErrorIs(t, m.Select(Ref{id + 1, 0}, false), ErrUnknownCurve)
	assert.Equal(t, []Ref{{id, 0}}, m.Selection())
}

func TestBounds(t *testing.T) {
	m := NewManager(DefaultOptions())
	_, ok := m.Bounds()
	assert.False(t, ok)
	_, err := m.AddCurve([]geom.Point{geom.Pt(-10, 5), geom.Pt(30, 60)})
	require.NoError(t, err)
	bb, ok := m.Bounds()
	require.True(t, ok)
	assert.Equal(t, geom.BBox{MinX: -10, MinY: 5, MaxX: 30, MaxY: 60}, bb)
}

func TestSetInteraction(t *testing.T) {
	m := NewManager(DefaultOptions())
	_, err := m.AddCurve([]geom.Point{geom.Pt(0, 0)})
	require.NoError(t, err)
	m.SetInteraction(3, 1)
	_, ok := m.HitTest(geom.Pt(4, 0))
	assert.False(t, ok)

	click(m, left(0, 0))
	m.Press(left(0, 0))
	m.Move(geom.Pt(1, 0))
	assert.Equal(t, Dragging, m.State())
}
