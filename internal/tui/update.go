package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"beziertui/internal/config"
	"beziertui/internal/export"
	"beziertui/internal/geom"
	"beziertui/internal/logging"
	"beziertui/internal/scene"
)

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// sync refreshes the panels that mirror the scene.
func (m *Model) sync() {
	if m.showSidebar {
		m.refreshCurves()
	}
	if m.showTable {
		m.refreshTable()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
	case tickMsg:
		now := time.Time(msg)
		elapsed := 1 / float64(max(1, m.cfg.Animation.TickRate))
		if !m.lastTick.IsZero() {
			elapsed = now.Sub(m.lastTick).Seconds()
		}
		m.lastTick = now
		m.anim.Advance(elapsed)
		return m, m.tick()
	case tea.KeyMsg:
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		if m.showTable {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case ConfigMsg:
		m.applyConfig(msg)
	}
	// Pass remaining messages to the list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ConfigMsg delivers a reloaded configuration.
type ConfigMsg struct {
	Config config.Config
	Err    error
}

// applyConfig takes over the curve, editor and animation settings of a
// reloaded config. Runtime toggles and the zoom level are kept.
func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Err != nil {
		m.setError(msg.Err)
		return
	}
	cfg := msg.Config
	m.cfg = cfg
	m.scene.SetAlgorithm(cfg.Curve.Algorithm)
	m.scene.SetResolution(cfg.Curve.Resolution)
	m.scene.SetLengthScale(cfg.Curve.LengthScale)
	m.scene.SetInteraction(cfg.Editor.HitboxRadius, cfg.Editor.DragDeadzone)
	m.anim.SetMarkers(cfg.Animation.Markers)
	m.anim.SetSpeed(cfg.Animation.Speed)
	m.setStatus("config reloaded")
	m.sync()
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.setStatus("paste cancelled")
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.setStatus("paste: empty")
			return m, nil
		}
		pts, _, err := geom.ParseControlPoints(text)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		id, err := m.scene.AddCurve(pts)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("added curve %d with %d points", id, len(pts)))
		m.pasteMode = false
		m.ta.Blur()
		m.sync()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey runs global commands. It reports false for keys it leaves to
// the focused panel.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := m.scene
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "a":
		s.SetAlgorithm(s.Options().Algorithm.Next())
		m.setStatus("algorithm: " + s.Options().Algorithm.String())
	case "]":
		s.SetResolution(s.Options().Resolution + 10)
		m.setStatus(fmt.Sprintf("resolution: %d", s.Options().Resolution))
	case "[":
		s.SetResolution(max(1, s.Options().Resolution-10))
		m.setStatus(fmt.Sprintf("resolution: %d", s.Options().Resolution))
	case ")":
		s.SetLengthScale(roundTenth(s.Options().LengthScale + 0.1))
		m.setStatus(fmt.Sprintf("length scale: %.1f", s.Options().LengthScale))
	case "(":
		s.SetLengthScale(max(0.1, roundTenth(s.Options().LengthScale-0.1)))
		m.setStatus(fmt.Sprintf("length scale: %.1f", s.Options().LengthScale))
	case "m":
		m.anim.SetMarkers(m.anim.Markers() + 1)
		m.setStatus(fmt.Sprintf("markers: %d", m.anim.Markers()))
	case "M":
		m.anim.SetMarkers(m.anim.Markers() - 1)
		m.setStatus(fmt.Sprintf("markers: %d", m.anim.Markers()))
	case ">", ".":
		m.anim.SetSpeed(roundTenth(m.anim.Speed() + 0.1))
		m.setStatus(fmt.Sprintf("speed: %.1f", m.anim.Speed()))
	case "<", ",":
		m.anim.SetSpeed(roundTenth(m.anim.Speed() - 0.1))
		m.setStatus(fmt.Sprintf("speed: %.1f", m.anim.Speed()))
	case " ", "space":
		m.anim.TogglePause()
		m.setStatus(fmt.Sprintf("paused: %v", m.anim.Paused()))
	case "v":
		m.construction = !m.construction
		m.setStatus(fmt.Sprintf("construction lines: %v", m.construction))
	case "s":
		m.sticky = !m.sticky
		m.setStatus(fmt.Sprintf("sticky select: %v", m.sticky))
	case "x", "delete":
		n := s.DeleteSelected()
		m.setStatus(fmt.Sprintf("deleted %d points", n))
		m.sync()
	case "c":
		s.Reset()
		m.setStatus("scene cleared")
		m.sync()
	case "+", "=":
		if m.unitsPerDot > 0.25 {
			m.unitsPerDot /= 1.25
		}
		m.setStatus(fmt.Sprintf("zoom: %.2fx", m.cfg.Editor.UnitsPerDot/m.unitsPerDot))
	case "-", "_":
		if m.unitsPerDot < 16 {
			m.unitsPerDot *= 1.25
		}
		m.setStatus(fmt.Sprintf("zoom: %.2fx", m.cfg.Editor.UnitsPerDot/m.unitsPerDot))
	case "left":
		m.origin.X -= 8 * m.unitsPerDot
	case "right":
		m.origin.X += 8 * m.unitsPerDot
	case "up":
		if m.showTable || m.showSidebar {
			return nil, false
		}
		m.origin.Y -= 8 * m.unitsPerDot
	case "down":
		if m.showTable || m.showSidebar {
			return nil, false
		}
		m.origin.Y += 8 * m.unitsPerDot
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshCurves()
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case "enter":
		if m.showSidebar {
			m.anchorSelectedCurve()
		}
	case "t":
		m.showTable = !m.showTable
		if m.showTable {
			m.refreshTable()
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.setStatus("paste mode")
		return m.ta.Focus(), true
	case "e":
		m.exportFrame()
	case "h":
		m.helpVisible = !m.helpVisible
	default:
		return nil, false
	}
	return nil, true
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func mouseButton(b tea.MouseButton) scene.Button {
	switch b {
	case tea.MouseButtonLeft:
		return scene.ButtonLeft
	case tea.MouseButtonRight:
		return scene.ButtonRight
	}
	return scene.ButtonNone
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	lay := m.layout()
	pos, inside := m.canvasPos(lay, msg.X, msg.Y)
	m.hovering = inside && !m.pasteMode && !m.showTable
	m.hoverPos = pos
	m.hoverRef, m.hoverHit = m.scene.HitTest(pos)

	switch msg.Action {
	case tea.MouseActionPress:
		b := mouseButton(msg.Button)
		if !m.hovering || b == scene.ButtonNone {
			return
		}
		m.scene.Press(scene.Press{
			Pos:               pos,
			Button:            b,
			PreserveSelection: msg.Shift || m.sticky,
		})
		m.sync()
	case tea.MouseActionMotion:
		if m.scene.State() == scene.Idle {
			return
		}
		m.scene.Move(pos)
		if m.scene.State() == scene.Dragging && m.showTable {
			m.refreshTable()
		}
	case tea.MouseActionRelease:
		dragged := m.scene.State() == scene.Dragging
		m.scene.Release()
		if dragged {
			m.sync()
		}
	}
}

// exportFrame writes the visible canvas area to the configured PNG path.
func (m *Model) exportFrame() {
	lay := m.layout()
	vp := m.viewport()
	unitsW := float64(lay.canvasW*2) * vp.unitsPerDot
	unitsH := float64(lay.canvasH*4) * vp.unitsPerDot
	scale := m.cfg.Export.Scale
	w := int(math.Ceil(unitsW * scale))
	h := int(math.Ceil(unitsH * scale))
	err := export.PNGAt(m.cfg.Export.Path, w, h, scale, vp.origin, m.drawScene)
	if err != nil {
		logging.Logger().Warn("export failed", "path", m.cfg.Export.Path, "err", err)
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("exported %dx%d frame to %s", w, h, m.cfg.Export.Path))
}

// drawScene renders the curves, handles, selection and markers onto r.
func (m *Model) drawScene(r scene.Renderer) {
	m.scene.Draw(r)
	m.scene.DrawMarkers(r, m.anim.Params(), m.construction)
}
