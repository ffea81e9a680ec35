package curve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beziertui/internal/geom"
	"beziertui/internal/seq"
)

func threePoint() *Curve {
	return FromPoints([]geom.Point{geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(100, 100)})
}

func TestNewFree(t *testing.T) {
	c := NewFree(geom.Pt(10, 10))
	assert.Equal(t, KindFree, c.Kind())
	assert.Equal(t, DeCasteljau, c.Algorithm())
	assert.Equal(t, 1.0, c.LengthScale())
	assert.Equal(t, DefaultResolution, c.Resolution())
	assert.Equal(t, []geom.Point{geom.Pt(10, 10)}, c.Points())
	require.Len(t, c.Polyline(), DefaultResolution)
	for _, p := range c.Polyline() {
		assert.Equal(t, geom.Pt(10, 10), p)
	}
	assert.Equal(t, uint64(1), c.Generation())
}

func TestEvaluate(t *testing.T) {
	c := threePoint()
	assert.Equal(t, geom.Pt(25, 75), c.Evaluate(0.5))

	c.SetAlgorithm(Bernstein)
	diff(t, geom.Pt(25, 75), c.Evaluate(0.5), approx)
	assert.Equal(t, geom.Pt(0, 0), c.Evaluate(0))
	assert.Equal(t, geom.Pt(100, 100), c.Evaluate(1))
}

func TestEvaluateEmpty(t *testing.T) {
	for _, a := range []Algorithm{DeCasteljau, Bernstein} {
		c := New(WithAlgorithm(a), WithLengthScale(3))
		assert.Equal(t, geom.Point{}, c.Evaluate(0.7))
		c.Rebuild()
		assert.Empty(t, c.Polyline())
	}
}

func TestLengthScale(t *testing.T) {
	c := threePoint()
	half := c.Evaluate(0.5)
	c.SetLengthScale(0.5)
	assert.Equal(t, half, c.Evaluate(1))
	assert.Equal(t, geom.Pt(0, 0), c.Evaluate(0))
}

func TestSetAlgorithmDoesNotRebuild(t *testing.T) {
	c := threePoint()
	gen := c.Generation()
	line := c.Polyline()
	c.SetAlgorithm(Bernstein)
	c.SetLengthScale(2)
	assert.Equal(t, gen, c.Generation())
	assert.Equal(t, line, c.Polyline())

	c.Rebuild()
	assert.Equal(t, gen+1, c.Generation())
}

func TestSetResolution(t *testing.T) {
	c := threePoint()
	c.SetResolution(5)
	line := c.Polyline()
	require.Len(t, line, 5)
	assert.Equal(t, geom.Pt(0, 0), line[0])
	assert.Equal(t, geom.Pt(25, 75), line[2])
	assert.Equal(t, geom.Pt(100, 100), line[4])

	c.SetResolution(1)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0)}, c.Polyline())

	c.SetResolution(0)
	assert.Empty(t, c.Polyline())

	c.SetResolution(-4)
	assert.Equal(t, 0, c.Resolution())
	assert.Empty(t, c.Polyline())
}

func TestRebuildReplacesPolyline(t *testing.T) {
	c := threePoint()
	c.SetResolution(3)
	before := c.Polyline()
	snapshot := append([]geom.Point(nil), before...)
	require.NoError(t, c.MovePoint(1, geom.Pt(50, 0)))
	c.Rebuild()
	assert.Equal(t, snapshot, before)
	assert.NotEqual(t, before, c.Polyline())
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	orig := threePoint().Points()
	for i := 0; i <= len(orig); i++ {
		c := threePoint()
		require.NoError(t, c.InsertPointAt(geom.Pt(-7, 3), i))
		assert.Equal(t, len(orig)+1, c.Len())
		require.NoError(t, c.RemovePointAt(i))
		assert.Equal(t, orig, c.Points())
	}
}

func TestIndexErrors(t *testing.T) {
	c := threePoint()
	err := c.InsertPointAt(geom.Pt(1, 1), 4)
	assert.ErrorIs(t, err, seq.ErrIndexOutOfRange)
	var ie *seq.IndexError
	assert.True(t, errors.As(err, &ie))

	assert.ErrorIs(t, c.RemovePointAt(3), seq.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.MovePoint(-1, geom.Pt(1, 1)), seq.ErrIndexOutOfRange)
	_, err = c.Point(9)
	assert.ErrorIs(t, err, seq.ErrIndexOutOfRange)

	gen := c.Generation()
	assert.ErrorIs(t, c.AddPoint(geom.Pt(1, 1), 10), seq.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.DeletePoint(10), seq.ErrIndexOutOfRange)
	assert.Equal(t, gen, c.Generation())
}

func TestRemoveFromEmpty(t *testing.T) {
	c := New()
	assert.NoError(t, c.RemovePointAt(0))
	assert.NoError(t, c.DeletePoint(0))
	assert.Equal(t, 0, c.Len())
}

func TestAddDeletePointRebuilds(t *testing.T) {
	c := NewFree(geom.Pt(10, 10), WithResolution(4))
	require.NoError(t, c.AddPoint(geom.Pt(50, 50), 1))
	assert.Equal(t, []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}, c.Points())
	assert.Equal(t, uint64(2), c.Generation())
	assert.Equal(t, geom.Pt(50, 50), c.Polyline()[3])

	require.NoError(t, c.AddPoint(geom.Pt(0, 0), 0))
	assert.Equal(t, geom.Pt(0, 0), c.Polyline()[0])

	require.NoError(t, c.DeletePoint(0))
	assert.Equal(t, []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}, c.Points())
	assert.Equal(t, uint64(4), c.Generation())
}

func TestMovePoint(t *testing.T) {
	c := threePoint()
	require.NoError(t, c.MovePoint(2, geom.Pt(-100, 0)))
	p, err := c.Point(2)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(0, 100), p)
}

func TestTrace(t *testing.T) {
	c := threePoint()
	var rec recorder
	assert.Equal(t, c.Evaluate(0.25), c.Trace(0.25, &rec))
	require.Len(t, rec.polylines, 1)

	c.SetAlgorithm(Bernstein)
	rec = recorder{}
	assert.Equal(t, c.Evaluate(0.25), c.Trace(0.25, &rec))
	assert.Len(t, rec.segments, 3)
}

func TestAlgorithmText(t *testing.T) {
	for _, a := range []Algorithm{DeCasteljau, Bernstein} {
		b, err := a.MarshalText()
		require.NoError(t, err)
		var got Algorithm
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, a, got)
	}
	a, err := ParseAlgorithm("De-Casteljau")
	require.NoError(t, err)
	assert.Equal(t, DeCasteljau, a)

	_, err = ParseAlgorithm("matrix")
	assert.Error(t, err)
	_, err = Algorithm(9).MarshalText()
	assert.Error(t, err)

	assert.Equal(t, Bernstein, DeCasteljau.Next())
	assert.Equal(t, DeCasteljau, Bernstein.Next())
}
