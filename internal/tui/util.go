package tui

import "beziertui/internal/geom"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	// canvas origin and size in cells
	canvasX, canvasY int
	canvasW, canvasH int
}

func (m Model) layout() layout {
	var lay layout
	lay.contentH = max(4, m.height-headerHeight-footerHeight)
	lay.contentW = max(10, m.width)
	side := 0
	if m.showSidebar {
		side = sidebarWidth + 1
	}
	lay.canvasX = side
	lay.canvasY = headerHeight
	lay.canvasW = max(10, lay.contentW-side)
	lay.canvasH = lay.contentH
	return lay
}

// canvasPos maps a terminal cell to canvas units and reports whether the
// cell lies on the canvas.
func (m Model) canvasPos(lay layout, x, y int) (geom.Point, bool) {
	cx, cy := x-lay.canvasX, y-lay.canvasY
	inside := cx >= 0 && cx < lay.canvasW && cy >= 0 && cy < lay.canvasH
	return m.viewport().cellCenter(cx, cy), inside
}

func (m Model) viewport() viewport {
	return viewport{origin: m.origin, unitsPerDot: m.unitsPerDot}
}
