package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"beziertui/internal/scene"
)

var pointColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "curve", Width: 6},
	{Title: "idx", Width: 4},
	{Title: "x", Width: 10},
	{Title: "y", Width: 10},
	{Title: "sel", Width: 4},
}

// pointRows lists every control point of the scene, one row each.
func (m *Model) pointRows() []table.Row {
	var rows []table.Row
	for _, e := range m.scene.Curves() {
		for i, p := range e.Curve.Points() {
			sel := ""
			if m.scene.IsSelected(scene.Ref{Curve: e.ID, Index: i}) {
				sel = "*"
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", len(rows)+1),
				fmt.Sprintf("%d", e.ID),
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%.2f", p.X),
				fmt.Sprintf("%.2f", p.Y),
				sel,
			})
		}
	}
	return rows
}

// refreshTable rebuilds the control point table from the scene.
func (m *Model) refreshTable() {
	rows := m.pointRows()
	cursor := m.tbl.Cursor()
	m.tbl.SetRows(rows)
	if len(rows) > 0 {
		m.tbl.SetCursor(min(max(cursor, 0), len(rows)-1))
	}
}
