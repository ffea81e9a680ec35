// Package scene owns every curve in the editor, the point selection and the
// pointer interaction state, and turns pointer events into curve edits.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"beziertui/internal/curve"
	"beziertui/internal/geom"
	"beziertui/internal/logging"
	"beziertui/internal/seq"
)

var (
	ErrUnknownCurve = errors.New("unknown curve")
	ErrEmptyCurve   = errors.New("curve needs at least one point")
)

// CurveID identifies a curve for the lifetime of a Manager. IDs are never
// reused, not even after Reset.
type CurveID uint64

// Ref names one control point: its curve and its position in that curve.
type Ref struct {
	Curve CurveID
	Index int
}

func (r Ref) String() string {
	return fmt.Sprintf("%d:%d", r.Curve, r.Index)
}

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

// Press is a pointer press. PreserveSelection keeps the current selection
// when a left click toggles a point (conventionally Shift held).
type Press struct {
	Pos               geom.Point
	Button            Button
	PreserveSelection bool
}

// State is the pointer interaction state.
type State int

const (
	Idle State = iota
	Holding
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Holding:
		return "holding"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Options struct {
	// HitboxRadius is the distance below which a press hits a point.
	HitboxRadius float64
	// DragDeadzone is the displacement from the press at which holding
	// turns into dragging.
	DragDeadzone float64

	Resolution    int
	Algorithm     curve.Algorithm
	LengthScale   float64
	BinomialLimit int
}

func DefaultOptions() Options {
	return Options{
		HitboxRadius:  15,
		DragDeadzone:  8,
		Resolution:    curve.DefaultResolution,
		Algorithm:     curve.DeCasteljau,
		LengthScale:   1,
		BinomialLimit: curve.DefaultBinomialLimit,
	}
}

// Entry pairs a curve with its ID.
type Entry struct {
	ID    CurveID
	Curve *curve.Curve
}

// Manager is the single authority over curves, selection and drag state.
// It is not safe for concurrent use; all events must arrive on one goroutine.
type Manager struct {
	opts   Options
	curves []Entry
	nextID CurveID

	// selection is ordered by insertion; the last element is the anchor
	// new points are inserted after.
	selection []Ref

	state     State
	lastClick geom.Point
	lastHold  geom.Point
}

func NewManager(opts Options) *Manager {
	return &Manager{opts: opts, nextID: 1}
}

func (m *Manager) Options() Options { return m.opts }

func (m *Manager) State() State { return m.state }

func (m *Manager) curveOptions() []curve.Option {
	return []curve.Option{
		curve.WithAlgorithm(m.opts.Algorithm),
		curve.WithResolution(m.opts.Resolution),
		curve.WithLengthScale(m.opts.LengthScale),
		curve.WithBinomialLimit(m.opts.BinomialLimit),
	}
}

// Curves returns the curves in creation order, which is also hit test order.
func (m *Manager) Curves() []Entry {
	return slices.Clone(m.curves)
}

func (m *Manager) Curve(id CurveID) (*curve.Curve, bool) {
	for _, e := range m.curves {
		if e.ID == id {
			return e.Curve, true
		}
	}
	return nil, false
}

// PointAt resolves ref to a position.
func (m *Manager) PointAt(ref Ref) (geom.Point, error) {
	c, ok := m.Curve(ref.Curve)
	if !ok {
		return geom.Point{}, fmt.Errorf("scene: point %v: %w", ref, ErrUnknownCurve)
	}
	p, err := c.Point(ref.Index)
	if err != nil {
		return geom.Point{}, fmt.Errorf("scene: point %v: %w", ref, err)
	}
	return p, nil
}

func (m *Manager) validate(ref Ref) error {
	_, err := m.PointAt(ref)
	return err
}

// Bounds returns the bounding box of every control point and polyline sample.
func (m *Manager) Bounds() (geom.BBox, bool) {
	var all []geom.Point
	for _, e := range m.curves {
		all = append(all, e.Curve.Points()...)
		all = append(all, e.Curve.Polyline()...)
	}
	return geom.Bounds(all)
}

func (m *Manager) addCurve(c *curve.Curve) CurveID {
	id := m.nextID
	m.nextID++
	m.curves = append(m.curves, Entry{ID: id, Curve: c})
	return id
}

// AddCurve adds a curve over points and anchors the selection on its last
// point, so following clicks extend it.
func (m *Manager) AddCurve(points []geom.Point) (CurveID, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("scene: add curve: %w", ErrEmptyCurve)
	}
	id := m.addCurve(curve.FromPoints(points, m.curveOptions()...))
	m.selection = []Ref{{Curve: id, Index: len(points) - 1}}
	logging.Logger().Debug("curve added", "curve", id, "points", len(points))
	return id, nil
}

// Reset drops every curve and the selection.
func (m *Manager) Reset() {
	m.curves = nil
	m.selection = nil
	m.state = Idle
	logging.Logger().Debug("scene reset")
}

// SetAlgorithm switches every curve, and curves created later, to a and
// rebuilds their polylines.
func (m *Manager) SetAlgorithm(a curve.Algorithm) {
	m.opts.Algorithm = a
	for _, e := range m.curves {
		e.Curve.SetAlgorithm(a)
		e.Curve.Rebuild()
	}
}

func (m *Manager) SetResolution(n int) {
	m.opts.Resolution = max(0, n)
	for _, e := range m.curves {
		e.Curve.SetResolution(m.opts.Resolution)
	}
}

func (m *Manager) SetLengthScale(s float64) {
	m.opts.LengthScale = s
	for _, e := range m.curves {
		e.Curve.SetLengthScale(s)
		e.Curve.Rebuild()
	}
}

// SetInteraction changes the hitbox radius and drag deadzone. A drag in
// progress keeps going.
func (m *Manager) SetInteraction(hitbox, deadzone float64) {
	m.opts.HitboxRadius = hitbox
	m.opts.DragDeadzone = deadzone
}

// HitTest returns the point nearest to pos among those strictly closer than
// the hitbox radius. On exact ties the first scanned point wins.
func (m *Manager) HitTest(pos geom.Point) (Ref, bool) {
	var (
		best  Ref
		bestD float64
		found bool
	)
	for _, e := range m.curves {
		for i, p := range e.Curve.Points() {
			d := p.Distance(pos)
			if d < m.opts.HitboxRadius && (!found || d < bestD) {
				best = Ref{Curve: e.ID, Index: i}
				bestD = d
				found = true
			}
		}
	}
	return best, found
}

// Selection returns the selected points in selection order.
func (m *Manager) Selection() []Ref {
	return slices.Clone(m.selection)
}

// Anchor returns the most recently selected point.
func (m *Manager) Anchor() (Ref, bool) {
	if len(m.selection) == 0 {
		return Ref{}, false
	}
	return m.selection[len(m.selection)-1], true
}

func (m *Manager) IsSelected(ref Ref) bool {
	return slices.Contains(m.selection, ref)
}

// Select toggles ref. Unless preserve is set the selection is cleared first.
func (m *Manager) Select(ref Ref, preserve bool) error {
	if err := m.validate(ref); err != nil {
		return err
	}
	if !preserve {
		m.selection = nil
	}
	if i := slices.Index(m.selection, ref); i >= 0 {
		m.selection = slices.Delete(m.selection, i, i+1)
		return nil
	}
	m.selection = append(m.selection, ref)
	return nil
}

func (m *Manager) ClearSelection() {
	m.selection = nil
}

// AddPoint inserts a point at pos. With an empty selection it starts a new
// curve; otherwise the point goes right after the anchor in the anchor's
// curve. The new point is then selected.
func (m *Manager) AddPoint(pos geom.Point, preserve bool) (Ref, error) {
	anchor, ok := m.Anchor()
	if !ok {
		id := m.addCurve(curve.NewFree(pos, m.curveOptions()...))
		ref := Ref{Curve: id, Index: 0}
		m.selection = []Ref{ref}
		logging.Logger().Debug("curve started", "curve", id, "pos", pos.String())
		return ref, nil
	}
	c, ok := m.Curve(anchor.Curve)
	if !ok {
		return Ref{}, fmt.Errorf("scene: add point after %v: %w", anchor, ErrUnknownCurve)
	}
	at := anchor.Index + 1
	if err := c.AddPoint(pos, at); err != nil {
		return Ref{}, fmt.Errorf("scene: add point after %v: %w", anchor, err)
	}
	for i, r := range m.selection {
		if r.Curve == anchor.Curve && r.Index >= at {
			m.selection[i].Index++
		}
	}
	ref := Ref{Curve: anchor.Curve, Index: at}
	if err := m.Select(ref, preserve); err != nil {
		return Ref{}, err
	}
	logging.Logger().Debug("point inserted", "ref", ref.String(), "pos", pos.String())
	return ref, nil
}

// RemovePoint deletes the point at ref and re-indexes the selection before
// returning: references to the point are dropped and later points of the
// same curve move down by one.
func (m *Manager) RemovePoint(ref Ref) error {
	c, ok := m.Curve(ref.Curve)
	if !ok {
		return fmt.Errorf("scene: remove point %v: %w", ref, ErrUnknownCurve)
	}
	if ref.Index < 0 || ref.Index >= c.Len() {
		return fmt.Errorf("scene: remove point %v: %w", ref,
			&seq.IndexError{Op: "remove", Index: ref.Index, Len: c.Len()})
	}
	if err := c.DeletePoint(ref.Index); err != nil {
		return fmt.Errorf("scene: remove point %v: %w", ref, err)
	}
	m.purge(ref)
	logging.Logger().Debug("point removed", "ref", ref.String(), "remaining", c.Len())
	return nil
}

func (m *Manager) purge(removed Ref) {
	kept := make([]Ref, 0, len(m.selection))
	for _, r := range m.selection {
		if r == removed {
			continue
		}
		if r.Curve == removed.Curve && r.Index > removed.Index {
			r.Index--
		}
		kept = append(kept, r)
	}
	m.selection = kept
}

// DeleteSelected removes every selected point and clears the selection.
// It returns the number of points removed.
func (m *Manager) DeleteSelected() int {
	byCurve := map[CurveID][]int{}
	for _, r := range m.selection {
		byCurve[r.Curve] = append(byCurve[r.Curve], r.Index)
	}
	n := 0
	for _, e := range m.curves {
		idx := byCurve[e.ID]
		if len(idx) == 0 {
			continue
		}
		slices.Sort(idx)
		for i := len(idx) - 1; i >= 0; i-- {
			if err := e.Curve.RemovePointAt(idx[i]); err != nil {
				logging.Logger().Warn("delete selected", "curve", e.ID, "index", idx[i], "err", err)
				continue
			}
			n++
		}
		e.Curve.Rebuild()
	}
	m.selection = nil
	logging.Logger().Debug("selection deleted", "points", n)
	return n
}

// Press handles a pointer press: it starts holding, then routes the click.
//
//	left,  hit:    toggle the point in the selection
//	left,  no hit: add a point
//	right, hit:    delete the point
//	right, no hit: clear the selection
func (m *Manager) Press(p Press) {
	m.lastClick = p.Pos
	m.lastHold = p.Pos
	m.state = Holding

	ref, hit := m.HitTest(p.Pos)
	switch p.Button {
	case ButtonLeft:
		if hit {
			if err := m.Select(ref, p.PreserveSelection); err != nil {
				logging.Logger().Warn("select", "ref", ref.String(), "err", err)
			}
			return
		}
		if _, err := m.AddPoint(p.Pos, p.PreserveSelection); err != nil {
			logging.Logger().Warn("add point", "pos", p.Pos.String(), "err", err)
		}
	case ButtonRight:
		if hit {
			if err := m.RemovePoint(ref); err != nil {
				logging.Logger().Warn("remove point", "ref", ref.String(), "err", err)
			}
			return
		}
		m.ClearSelection()
	}
}

// Move handles pointer motion. While holding, a displacement of at least the
// deadzone from the press starts a drag; while dragging every selected point
// follows the pointer and each touched curve is rebuilt once.
func (m *Manager) Move(pos geom.Point) {
	switch m.state {
	case Idle:
		return
	case Holding:
		if m.lastClick.Distance(pos) < m.opts.DragDeadzone {
			return
		}
		m.state = Dragging
		logging.Logger().Debug("drag started", "points", len(m.selection))
	}
	m.translateSelection(pos.Sub(m.lastHold))
	m.lastHold = pos
}

func (m *Manager) translateSelection(delta geom.Point) {
	var touched []*curve.Curve
	for _, r := range m.selection {
		c, ok := m.Curve(r.Curve)
		if !ok {
			continue
		}
		if err := c.MovePoint(r.Index, delta); err != nil {
			logging.Logger().Warn("drag point", "ref", r.String(), "err", err)
			continue
		}
		if !slices.Contains(touched, c) {
			touched = append(touched, c)
		}
	}
	for _, c := range touched {
		c.Rebuild()
	}
}

// Release ends holding or dragging. The selection is kept.
func (m *Manager) Release() {
	if m.state == Dragging {
		logging.Logger().Debug("drag ended", "pos", m.lastHold.String())
	}
	m.state = Idle
}
