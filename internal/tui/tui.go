// Package tui provides a Bubble Tea terminal menu for the tocadiscos catalog.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/tocadiscos/internal/app"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

// State represents the current UI state.
type State int

const (
	StateMenu State = iota
	StatePrompt
	StateConfirm
	StateBusy
	StateResult
)

// prompt collects one or more text values before running an action.
type prompt struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	submit func(values []string) tea.Cmd
}

// confirmation asks a yes/no question before running accept.
type confirmation struct {
	question string
	accept   func() tea.Cmd
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	app    *app.App
	ctx    context.Context
	cancel context.CancelFunc

	state   State
	menu    menuID
	cursor  int
	prompt  *prompt
	confirm *confirmation
	result  resultMsg
	spinner spinner.Model

	width  int
	height int
}

// NewModel creates a new TUI model over a wired application.
func NewModel(a *app.App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		app:     a,
		ctx:     ctx,
		cancel:  cancel,
		state:   StateMenu,
		menu:    menuMain,
		spinner: sp,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// resultMsg carries the outcome of an action.
	resultMsg struct {
		Title string
		Body  string
		Err   error

		// Next is the menu to show once the result is dismissed.
		Next menuID
	}

	// confirmMsg asks for confirmation after a precheck succeeded.
	confirmMsg struct {
		Question string
		Accept   func() tea.Cmd
	}

	// gotoMsg switches menus without showing a result.
	gotoMsg struct {
		Menu menuID
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		m.result = msg
		m.state = StateResult
		return m, nil

	case confirmMsg:
		m.confirm = &confirmation{question: msg.Question, accept: msg.Accept}
		m.state = StateConfirm
		return m, nil

	case gotoMsg:
		m.openMenu(msg.Menu)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StatePrompt:
			return m.updatePrompt(msg)
		case StateConfirm:
			return m.updateConfirm(msg)
		case StateResult:
			switch msg.String() {
			case "enter", "esc", "q", " ":
				m.openMenu(m.result.Next)
			}
		}
		return m, nil
	}

	if m.state == StatePrompt && m.prompt != nil {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()

	switch key := msg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		return m.selectItem(m.cursor)
	case "esc", "0":
		if m.menu == menuMain {
			m.cancel()
			return m, tea.Quit
		}
		m.openMenu(menuMain)
	case "q":
		m.cancel()
		return m, tea.Quit
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(items) {
				return m.selectItem(i)
			}
		}
	}
	return m, nil
}

func (m Model) selectItem(i int) (tea.Model, tea.Cmd) {
	items := m.items()
	if i < 0 || i >= len(items) {
		return m, nil
	}
	m.cursor = i
	return items[i].run(m)
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prompt
	switch msg.String() {
	case "esc":
		m.prompt = nil
		m.state = StateMenu
		return m, nil
	case "tab", "down":
		m.focusInput((p.focus + 1) % len(p.inputs))
		return m, nil
	case "shift+tab", "up":
		m.focusInput((p.focus + len(p.inputs) - 1) % len(p.inputs))
		return m, nil
	case "enter":
		if p.focus < len(p.inputs)-1 {
			m.focusInput(p.focus + 1)
			return m, nil
		}
		values := make([]string, len(p.inputs))
		for i, in := range p.inputs {
			values[i] = strings.TrimSpace(in.Value())
		}
		m.prompt = nil
		m.state = StateBusy
		return m, tea.Batch(p.submit(values), m.spinner.Tick)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p := *m.prompt
	p.inputs = append([]textinput.Model(nil), p.inputs...)
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	m.prompt = &p
	return m, cmd
}

func (m *Model) focusInput(i int) {
	p := *m.prompt
	p.inputs = append([]textinput.Model(nil), p.inputs...)
	p.inputs[p.focus].Blur()
	p.focus = i
	p.inputs[p.focus].Focus()
	m.prompt = &p
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		accept := m.confirm.accept
		m.confirm = nil
		m.state = StateBusy
		return m, tea.Batch(accept(), m.spinner.Tick)
	case "n", "N", "esc":
		m.confirm = nil
		m.result = resultMsg{Title: "Cancelled", Body: "Nothing was changed.", Next: m.menu}
		m.state = StateResult
	}
	return m, nil
}

func (m *Model) openMenu(id menuID) {
	m.menu = id
	m.cursor = 0
	m.prompt = nil
	m.confirm = nil
	m.state = StateMenu
}

// ask starts a prompt. A field label ending in "*" is read as a secret.
func (m Model) ask(title string, labels []string, submit func(values []string) tea.Cmd) (tea.Model, tea.Cmd) {
	p := &prompt{title: title, submit: submit}
	for i, label := range labels {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 40
		if strings.HasSuffix(label, "*") {
			label = strings.TrimSuffix(label, "*")
			ti.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			ti.Focus()
		}
		p.labels = append(p.labels, label)
		p.inputs = append(p.inputs, ti)
	}
	m.prompt = p
	m.state = StatePrompt
	return m, textinput.Blink
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ Tocadiscos Records"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.statusLine()))
	b.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		b.WriteString(m.viewMenu())
	case StatePrompt:
		b.WriteString(m.viewPrompt())
	case StateConfirm:
		b.WriteString(warningStyle.Render(m.confirm.question))
		b.WriteString("\n")
	case StateBusy:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Working..."))
		b.WriteString("\n")
	case StateResult:
		b.WriteString(m.viewResult())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{"guest"}
	if user := m.app.Session.User(); user != "" {
		parts[0] = user
		if m.app.Session.IsAuthorized() {
			parts[0] += " (admin)"
		}
	}
	if m.app.Player.IsPlaying() {
		parts = append(parts, "playing")
	}
	return strings.Join(parts, " • ")
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.menuTitle()))
	b.WriteString("\n\n")
	for i, item := range m.items() {
		line := fmt.Sprintf("%d - %s", i+1, item.label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	back := "0 - Back"
	if m.menu == menuMain {
		back = "0 - Quit"
	}
	b.WriteString(dimStyle.Render("  " + back))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(m.prompt.title))
	b.WriteString("\n\n")
	for i, in := range m.prompt.inputs {
		b.WriteString(m.prompt.labels[i])
		b.WriteString(":\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder

	if m.result.Err != nil {
		b.WriteString(errorStyle.Render("✗ " + m.result.Title))
		b.WriteString("\n\n")
		b.WriteString("  " + m.result.Err.Error())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(successStyle.Render("✓ " + m.result.Title))
	b.WriteString("\n")
	if m.result.Body != "" {
		b.WriteString(boxStyle.Render(strings.TrimRight(m.result.Body, "\n")))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateMenu:
		return "↑/↓: move • enter/1-9: select • 0/esc: back • q: quit"
	case StatePrompt:
		return "enter: next/submit • tab: switch field • esc: cancel"
	case StateConfirm:
		return "y: confirm • n: cancel"
	case StateResult:
		return "enter: continue"
	}
	return ""
}

// Run starts the TUI application.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
