package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"beziertui/internal/scene"
)

type curveItem struct {
	title, desc string
	id          scene.CurveID
	points      int
}

func (c curveItem) Title() string       { return c.title }
func (c curveItem) Description() string { return c.desc }
func (c curveItem) FilterValue() string { return c.title }

func curveItems(s *scene.Manager) []list.Item {
	entries := s.Curves()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		pts := e.Curve.Points()
		desc := "empty"
		if n := len(pts); n > 0 {
			desc = fmt.Sprintf("%d pts  %s → %s", n, pts[0], pts[n-1])
		}
		items = append(items, curveItem{
			title:  fmt.Sprintf("curve %d", e.ID),
			desc:   desc,
			id:     e.ID,
			points: len(pts),
		})
	}
	return items
}

// refreshCurves rebuilds the sidebar list from the scene.
func (m *Model) refreshCurves() {
	idx := m.l.Index()
	m.l.SetItems(curveItems(m.scene))
	if n := len(m.l.Items()); n > 0 {
		m.l.Select(min(idx, n-1))
	}
}

// anchorSelectedCurve makes the last point of the highlighted curve the only
// selected point, so the next click extends that curve.
func (m *Model) anchorSelectedCurve() {
	it, ok := m.l.SelectedItem().(curveItem)
	if !ok {
		return
	}
	if it.points == 0 {
		m.setStatus(it.title + " is empty")
		return
	}
	ref := scene.Ref{Curve: it.id, Index: it.points - 1}
	if err := m.scene.Select(ref, false); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("anchored on " + it.title)
}
