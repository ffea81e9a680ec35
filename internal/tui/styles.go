package tui

import (
	"github.com/charmbracelet/lipgloss"

	"beziertui/internal/scene"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	errorFg   = lipgloss.Color("#F87171")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle   = lipgloss.NewStyle().Foreground(errorFg)
)

// layerStyles colors the canvas; a cell takes the color of its top layer.
var layerStyles = [scene.LayerCount]lipgloss.Style{
	scene.LayerCurve:        lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
	scene.LayerConstruction: lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")),
	scene.LayerConnections:  lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	scene.LayerMarkers:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
	scene.LayerHandles:      lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6")),
	scene.LayerSelection:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")),
	scene.LayerHover:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
}
