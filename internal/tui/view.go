package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"beziertui/internal/scene"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Header
	header := titleStyle.Render(" beziertui ─ terminal bezier editor ")
	header = lipgloss.JoinHorizontal(lipgloss.Top, header, dimStyle.Render(m.settingsLine()))
	header = lipgloss.NewStyle().Width(lay.contentW).MaxHeight(headerHeight).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var canvasView string
	switch {
	case m.showTable:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		boxW := min(lay.canvasW, colW+4)
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(lay.canvasH-2, 20))
		tableBox := boxStyle.Width(boxW).Render(m.tbl.View())
		canvasView = lipgloss.Place(lay.canvasW, lay.canvasH, lipgloss.Center, lipgloss.Center, tableBox)
	case m.pasteMode:
		m.ta.SetWidth(lay.canvasW)
		m.ta.SetHeight(min(lay.canvasH, 12))
		canvasView = lipgloss.NewStyle().Width(lay.canvasW).Height(lay.canvasH).Render(m.ta.View())
	default:
		canvasView = m.renderCanvas(lay.canvasW, lay.canvasH)
	}

	// Body row
	body := canvasView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvasView)
	}

	// Footer / help
	st := dimStyle
	if m.statusErr {
		st = errStyle
	}
	status := st.Render(" " + m.status + " ")
	coords := ""
	if m.hovering {
		coords = fmt.Sprintf("x=%.0f y=%.0f", m.hoverPos.X, m.hoverPos.Y)
		if m.hoverHit {
			coords += "  point " + m.hoverRef.String()
		}
		coords = dimStyle.Render("  " + coords + "  ")
	}
	spacerW := max(0, lay.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	line1 := lipgloss.JoinHorizontal(lipgloss.Bottom, status, strings.Repeat(" ", spacerW), coords)
	footer := lipgloss.JoinVertical(lipgloss.Left, line1, m.renderHelp())
	footer = lipgloss.NewStyle().Width(lay.contentW).MaxHeight(footerHeight).Render(footer)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

func (m Model) settingsLine() string {
	o := m.scene.Options()
	parts := []string{
		o.Algorithm.String(),
		fmt.Sprintf("res %d", o.Resolution),
		fmt.Sprintf("scale %.1f", o.LengthScale),
		fmt.Sprintf("markers %d", m.anim.Markers()),
		fmt.Sprintf("speed %.1f", m.anim.Speed()),
	}
	if m.anim.Paused() {
		parts = append(parts, "paused")
	}
	if m.sticky {
		parts = append(parts, "sticky")
	}
	if st := m.scene.State(); st != scene.Idle {
		parts = append(parts, st.String())
	}
	return "  " + strings.Join(parts, " · ")
}

// renderCanvas draws the scene onto a w x h cell braille canvas.
func (m Model) renderCanvas(w, h int) string {
	cv := newCanvas(w, h, m.viewport())
	m.drawScene(cv)
	if m.hovering && m.scene.State() == scene.Idle {
		m.scene.DrawHover(cv, m.hoverPos)
	}
	return cv.String()
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click add/select",
		"right-click delete",
		"a algo",
		"[] res",
		"() scale",
		"m/M markers",
		"<> speed",
		"space pause",
		"v construct",
		"s sticky",
		"x delete",
		"c clear",
		"Tab curves",
		"t points",
		"p paste",
		"e export",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
