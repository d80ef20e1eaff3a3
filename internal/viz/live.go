package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/metrics"
	"github.com/san-kum/cosmosim/internal/sim"
)

const (
	defaultCols     = 48
	defaultRows     = 24
	statsWidth      = 45
	historyCapacity = 600

	// top-left terminal cell of the canvas, from canvasStyle's padding
	canvasOffsetX = 2
	canvasOffsetY = 1

	particleStep = 500
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a Simulator at a fixed frame rate and draws its snapshots.
// The simulator is only touched from Update.
type Model struct {
	sim  *sim.Simulator
	cfg  config.StepConfig
	dt   float32
	name string

	snap   dynamo.Snapshot
	canvas *Canvas
	scale  float32
	t      float64

	energyHistory  []float64
	contactHistory []float64

	paramKeys []string
	selected  int
	showHelp  bool
}

// NewModel wraps s. cfg is the configuration the model edits and passes into
// every step.
func NewModel(s *sim.Simulator, cfg config.StepConfig, dt float32, name string) Model {
	m := Model{
		sim:            s,
		cfg:            cfg,
		dt:             dt,
		name:           name,
		energyHistory:  make([]float64, 0, historyCapacity),
		contactHistory: make([]float64, 0, historyCapacity),
		paramKeys:      config.ParamNames(),
	}
	m.resize(defaultCols, defaultRows)
	s.Snapshot(&m.snap)
	return m
}

// Config returns the configuration as last edited.
func (m Model) Config() config.StepConfig { return m.cfg }

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.fitWindow(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.cfg
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "space":
		c.System.Paused = !c.System.Paused
	case "p":
		c.Spawn.Kind = config.KindPlanet.String()
	case "a":
		c.Spawn.Kind = config.KindAsteroid.String()
	case "o":
		c.Spawn.AutoOrbit = !c.Spawn.AutoOrbit
	case "c":
		c.Physics.Collisions = !c.Physics.Collisions
	case "g":
		c.Gravity.Enabled = !c.Gravity.Enabled
	case "s":
		c.Star.Enabled = !c.Star.Enabled
	case "m":
		c.Attractor.Enabled = !c.Attractor.Enabled
	case "u":
		c.Mutual.Enabled = !c.Mutual.Enabled
	case "+", "=":
		c.System.ParticleCount += particleStep
	case "-", "_":
		c.System.ParticleCount = max(0, c.System.ParticleCount-particleStep)
	case "tab":
		m.selected = (m.selected + 1) % len(m.paramKeys)
	case "shift+tab":
		m.selected = (m.selected + len(m.paramKeys) - 1) % len(m.paramKeys)
	case "up", "k":
		m.adjustParam(1)
	case "down", "j":
		m.adjustParam(-1)
	case "r":
		m.reset()
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse queues a spawn on left click and steers the attractor on
// motion. Events outside the canvas are ignored.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	x, y, ok := m.toDomain(msg.X, msg.Y)
	if !ok {
		return
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.sim.Spawn(m.cfg.SpawnAt(x, y))
	case msg.Action == tea.MouseActionMotion:
		m.cfg.Attractor.X = x
		m.cfg.Attractor.Y = y
	}
}

// adjustParam nudges the selected parameter by 10% in direction dir.
// Toggles flip; integers move by at least one.
func (m *Model) adjustParam(dir int) {
	key := m.paramKeys[m.selected]
	val := m.cfg.Params()[key]

	var next float64
	switch {
	case m.cfg.IsToggle(key):
		next = 1 - val
	case m.cfg.IsInteger(key):
		delta := math.Max(1, math.Round(math.Abs(val)*0.1))
		next = math.Max(0, val+float64(dir)*delta)
	case val == 0:
		next = 0.1 * float64(dir)
	default:
		next = val * (1 + 0.1*float64(dir))
	}
	_ = m.cfg.SetParam(key, next)
}

func (m *Model) step() {
	m.sim.Step(m.cfg, m.dt)
	if !m.cfg.System.Paused {
		m.t += float64(m.dt)
	}
	m.sim.Snapshot(&m.snap)

	m.energyHistory = appendCapped(m.energyHistory, metrics.TotalKinetic(&m.snap))
	m.contactHistory = appendCapped(m.contactHistory, float64(m.sim.Stats().Contacts))
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() {
	m.sim.Reset(m.cfg)
	m.sim.Snapshot(&m.snap)
	m.t = 0
	m.energyHistory = m.energyHistory[:0]
	m.contactHistory = m.contactHistory[:0]
}

// fitWindow sizes the canvas to the largest square that fits beside the
// stats panel.
func (m *Model) fitWindow(w, h int) {
	cols := w - statsWidth - 2*canvasOffsetX - 4
	rows := h - 2*canvasOffsetY
	m.resize(cols, rows)
}

func (m *Model) resize(cols, rows int) {
	side := min(cols*2, rows*4)
	side -= side % 4
	side = max(side, 16)
	m.canvas = NewCanvas(side/2, side/4)
	m.scale = float32(side) / config.DomainSize
}

// toCanvas maps a domain point to canvas dots.
func (m *Model) toCanvas(x, y float32) (int, int) {
	return int(x * m.scale), int(y * m.scale)
}

// toDomain maps a terminal cell to the domain point at the cell's center.
func (m *Model) toDomain(col, row int) (float32, float32, bool) {
	col -= canvasOffsetX
	row -= canvasOffsetY
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return 0, 0, false
	}
	x := (float32(col)*2 + 1) / m.scale
	y := (float32(row)*4 + 2) / m.scale
	return x, y, true
}

func (m *Model) draw() {
	c := m.canvas
	c.Clear()

	for i := range m.snap.PosX {
		x, y := m.toCanvas(m.snap.PosX[i], m.snap.PosY[i])
		c.Set(x, y, LayerAsteroid)
	}

	if m.cfg.Attractor.Enabled {
		x, y := m.toCanvas(m.cfg.Attractor.X, m.cfg.Attractor.Y)
		c.DrawLine(x-2, y, x+2, y, LayerAttractor)
		c.DrawLine(x, y-2, x, y+2, LayerAttractor)
	}

	for _, p := range m.snap.Planets {
		x, y := m.toCanvas(p.X, p.Y)
		c.FillCircle(x, y, int(p.Radius*m.scale), LayerPlanet)
	}

	if m.cfg.Star.Enabled {
		x, y := m.toCanvas(m.cfg.Star.X, m.cfg.Star.Y)
		c.FillCircle(x, y, 2, LayerStar)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(CurrentTheme))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	if m.cfg.System.Paused {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Contacts") + SparklineChart(m.contactHistory, 30) + "\n\n")

	stats := m.sim.Stats()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Asteroids", fmt.Sprintf("%d / %d", m.snap.Len(), m.sim.TargetCount()))
	row("Planets", fmt.Sprintf("%d", len(m.snap.Planets)))
	row("Step", stats.StepTime.Round(time.Microsecond).String())
	spawn := m.cfg.Spawn.Kind
	if m.cfg.Spawn.AutoOrbit {
		spawn += " (orbit)"
	}
	row("Spawn", spawn)

	s.WriteString("\n" + Separator(statsWidth-4) + "\n")
	params := m.cfg.Params()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-16s %10.3f", k, params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Width(0).Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help\nTab/↑↓:Tune  +/-:Particles  T:Theme"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  Click    - Spawn at pointer         ║
║  P / A    - Spawn planet / asteroid  ║
║  O        - Toggle auto-orbit        ║
║  C G S    - Collisions/gravity/star  ║
║  M / U    - Attractor / mutual       ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  + / -    - More / fewer asteroids   ║
║  R        - Reseed                   ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
