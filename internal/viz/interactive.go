package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/sim"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

var presetInfo = map[string]string{
	"belt":  "asteroid belt and three planets",
	"dense": "crowded belt, many contacts",
	"box":   "no star, falling under gravity",
	"calm":  "soft damped collisions",
	"swarm": "pointer attractor and clumping",
}

// launchParams are the values editable before a run starts.
var launchParams = []string{"particles", "star_mass", "damping", "restitution", "collision_radius", "substeps"}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// SimFactory builds the simulator for a chosen configuration.
type SimFactory func(cfg config.StepConfig) *sim.Simulator

// Launcher picks a preset, lets a few parameters be edited, then hands over
// to a live Model.
type Launcher struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           config.StepConfig
	paramCursor   int
	editing       bool
	editBuf       string
	newSim        SimFactory
	dt            float32
	live          Model

	// last window size seen before the live model exists
	width, height int
}

func NewLauncher(newSim SimFactory, dt float32) Launcher {
	return Launcher{
		state:   stateMenu,
		presets: config.ListPresets(),
		newSim:  newSim,
		dt:      dt,
	}
}

func (m Launcher) Init() tea.Cmd { return nil }

func (m Launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m Launcher) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg, _ = config.GetPreset(m.selected)
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m Launcher) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := launchParams[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				_ = m.cfg.SetParam(name, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(launchParams)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.cfg.Params()[name], 'f', -1, 64)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m Launcher) start() (tea.Model, tea.Cmd) {
	m.live = NewModel(m.newSim(m.cfg), m.cfg, m.dt, m.selected)
	if m.width > 0 && m.height > 0 {
		m.live.fitWindow(m.width, m.height)
	}
	m.state = stateSim
	return m, m.live.Init()
}

func (m Launcher) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	}
	return m.live.View()
}

func header(title, sub string) string {
	return "\n\n    " + titleStyle.Render(title) + "\n    " + subStyle.Render(sub) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n"
}

func hints(pairs ...string) string {
	var b strings.Builder
	b.WriteString("\n    ")
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String() + "\n"
}

func (m Launcher) viewMenu() string {
	var b strings.Builder
	b.WriteString(header("COSMOSIM", "planet and asteroid sandbox"))
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", name)), idleStyle.Render(desc)))
		}
	}
	b.WriteString(hints("j/k", "navigate", "enter", "select", "q", "quit"))
	return b.String()
}

func (m Launcher) viewConfig() string {
	var b strings.Builder
	b.WriteString(header(strings.ToUpper(m.selected), presetInfo[m.selected]))
	params := m.cfg.Params()
	for i, name := range launchParams {
		valStr := fmt.Sprintf("%10.3f", params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-16s", name)), descStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-16s", name)), idleStyle.Render(valStr)))
		}
	}
	b.WriteString(hints("j/k", "select", "enter", "edit", "s", "start", "esc", "back"))
	return b.String()
}

// RunLive runs a tea program with mouse motion reporting enabled.
func RunLive(model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
