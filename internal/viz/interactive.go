package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/integrators"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const sandbox = "sandbox"

var presetInfo = map[string]string{
	sandbox:     "empty space, drag to create",
	"collision": "two overlapping bodies",
	"binary":    "equal-mass pair",
	"orbit":     "star with planets",
	"ring":      "ring around a heavy core",
	"nebula":    "noise-seeded cloud",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var paramNames = []string{"g", "epsilon", "scale", "dt", "integrator"}

type menu struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	live          Model
}

func NewInteractiveApp() *menu {
	return &menu{
		state:   stateMenu,
		presets: append([]string{sandbox}, config.ListPresets()...),
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(key)
		case stateConfig:
			return m.configKey(key)
		}
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (menu, tea.Cmd) {
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
		m.cfg = sceneFor(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func sceneFor(name string) *config.Config {
	if cfg := config.GetPreset(name); cfg != nil {
		return cfg
	}
	cfg := config.DefaultConfig()
	cfg.Name = sandbox
	return cfg
}

func (m menu) configKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	if m.editing {
		switch msg.Type {
		case tea.KeyEnter:
			if err := m.setParam(paramNames[m.paramCursor], m.editBuf); err != nil {
				m.err = err.Error()
			}
			m.editing, m.editBuf = false, ""
		case tea.KeyEsc:
			m.editing, m.editBuf = false, ""
		case tea.KeyBackspace:
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		case tea.KeyRunes:
			m.editBuf += string(msg.Runes)
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "enter":
		m.editing, m.editBuf, m.err = true, "", ""
	case "s":
		return m.start()
	}
	return m, nil
}

func (m *menu) setParam(name, raw string) error {
	raw = strings.TrimSpace(raw)
	if name == "integrator" {
		if _, err := integrators.Get(raw); err != nil {
			return err
		}
		m.cfg.Integrator = raw
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s: not a number: %q", name, raw)
	}
	switch name {
	case "g":
		m.cfg.Physics.G = v
	case "epsilon":
		m.cfg.Physics.Epsilon = v
	case "scale":
		m.cfg.Physics.Scale = v
	case "dt":
		m.cfg.Physics.Dt = v
	}
	return nil
}

func (m menu) paramValue(name string) string {
	switch name {
	case "g":
		return fmt.Sprintf("%8.3f", m.cfg.Physics.G)
	case "epsilon":
		return fmt.Sprintf("%8.3f", m.cfg.Physics.Epsilon)
	case "scale":
		return fmt.Sprintf("%8.3f", m.cfg.Physics.Scale)
	case "dt":
		return fmt.Sprintf("%8.3f", m.cfg.Physics.Dt)
	case "integrator":
		name := m.cfg.Integrator
		if name == "" {
			name = integrators.Default
		}
		return fmt.Sprintf("%8s", name)
	}
	return ""
}

// start validates the edited scene and hands over to the live view.
func (m menu) start() (menu, tea.Cmd) {
	bodies, err := m.cfg.InitialBodies()
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	s, err := experiment.Build(m.cfg)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.live = NewModel(s, m.selected, bodies)
	m.state = stateSim
	return m, m.live.Init()
}

func (m menu) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func (m menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("GRAVSIM") + "\n    " + subStyle.Render("n-body gravity with merging") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", name)), idleStyle.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.selected)) + "\n    " + subStyle.Render(presetInfo[m.selected]) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range paramNames {
		val := m.paramValue(name)
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-10s", name)), descStyle.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", name)), idleStyle.Render(val)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + errorStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

// RunInteractive opens the preset menu.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
