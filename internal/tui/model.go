package tui

import (
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"beziertui/internal/anim"
	"beziertui/internal/config"
	"beziertui/internal/geom"
	"beziertui/internal/scene"
)

type Model struct {
	width  int
	height int

	cfg   config.Config
	scene *scene.Manager
	anim  *anim.Animator

	showSidebar bool
	helpVisible bool

	// viewport
	unitsPerDot float64
	origin      geom.Point

	status    string
	statusErr bool

	// curves sidebar
	l list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// control point table
	showTable bool
	tbl       table.Model

	// editing modes
	sticky       bool
	construction bool

	// hover state
	hovering bool
	hoverPos geom.Point
	hoverRef scene.Ref
	hoverHit bool

	lastTick time.Time
}

func New(cfg config.Config) Model {
	m := Model{
		cfg:          cfg,
		scene:        scene.NewManager(cfg.SceneOptions()),
		anim:         anim.New(cfg.Animation.Markers, cfg.Animation.Speed),
		helpVisible:  true,
		unitsPerDot:  cfg.Editor.UnitsPerDot,
		status:       "beziertui ready",
		sticky:       cfg.Editor.StickySelect,
		construction: cfg.Animation.Construction,
	}
	if m.unitsPerDot <= 0 {
		m.unitsPerDot = 1
	}
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Curves"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste control points: MULTIPOINT, LINESTRING or x y, x y ... Enter adds the curve; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// control point table setup
	m.tbl = table.New(table.WithColumns(pointColumns), table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

// Scene exposes the edited scene.
func (m Model) Scene() *scene.Manager { return m.scene }

type tickMsg time.Time

func (m Model) tick() tea.Cmd {
	rate := max(1, m.cfg.Animation.TickRate)
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return m.tick() }
