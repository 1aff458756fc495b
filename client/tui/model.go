// Package tui is the terminal front end: pick a calculator from a list, fill
// in its fields, and read the result in a scrolling pane.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"multicalc.com/server/icalc"
	"multicalc.com/server/render"
	"multicalc.com/server/shared"
)

// Evaluator runs one request. calculator.Remote and calculator.Local
// satisfy it.
type Evaluator interface {
	Evaluate(args shared.EvaluateArgs) (shared.EvaluateReply, error)
}

type state int

const (
	stateModes state = iota
	stateForm
)

type modeItem struct{ info render.ModeInfo }

func (i modeItem) Title() string       { return i.info.Heading }
func (i modeItem) Description() string { return i.info.Intro }
func (i modeItem) FilterValue() string { return i.info.Title }

// resultMsg carries a finished evaluation back into Update.
type resultMsg struct {
	reply shared.EvaluateReply
	err   error
}

// Model is the bubbletea model of the calculator.
type Model struct {
	eval   Evaluator
	state  state
	width  int
	height int

	modes   list.Model
	current render.ModeInfo
	inputs  []textinput.Model
	focus   int

	output  viewport.Model
	busy    bool
	display *render.Display
	err     error
}

// New builds the model over the given modes.
func New(eval Evaluator, modes []render.ModeInfo) Model {
	items := make([]list.Item, len(modes))
	for i, info := range modes {
		items[i] = modeItem{info: info}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Choose the app mode:"

	return Model{
		eval:   eval,
		modes:  l,
		output: viewport.New(80, 12),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.modes.SetSize(msg.Width-2, msg.Height-2)
		m.output.Width = msg.Width - 4
		m.output.Height = max(msg.Height-8-2*len(m.inputs), 5)
		return m, nil

	case resultMsg:
		m.busy = false
		m.err = msg.err
		m.display = nil
		if msg.err == nil {
			m.display = &msg.reply.Display
		}
		m.output.SetContent(m.renderOutput())
		m.output.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateModes:
		return m.updateModes(msg)
	case stateForm:
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateModes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.modes.FilterState() != list.Filtering {
		switch km.String() {
		case "enter":
			if item, ok := m.modes.SelectedItem().(modeItem); ok {
				return m.openForm(item.info)
			}
		case "q":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.modes, cmd = m.modes.Update(msg)
	return m, cmd
}

// openForm switches to the form of info with every field at its default.
func (m Model) openForm(info render.ModeInfo) (tea.Model, tea.Cmd) {
	m.state = stateForm
	m.current = info
	m.display, m.err = nil, nil
	m.output.SetContent("")
	m.inputs = make([]textinput.Model, len(info.Fields))
	for i, f := range info.Fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 512
		ti.Width = 48
		ti.SetValue(f.Default)
		if f.Kind == icalc.FieldSelect {
			ti.Placeholder = strings.Join(f.Options, " | ")
		}
		m.inputs[i] = ti
	}
	m.focus = 0
	return m, m.setFocus(0)
}

func (m *Model) setFocus(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.state = stateModes
			return m, nil
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "enter", "ctrl+s":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// Args collects the current form into evaluation arguments.
func (m Model) Args() shared.EvaluateArgs {
	args := shared.EvaluateArgs{Mode: m.current.Slug, Params: map[string]string{}}
	for i, f := range m.current.Fields {
		v := m.inputs[i].Value()
		if f.Name == icalc.ParamExpression {
			args.Expression = v
			continue
		}
		args.Params[f.Name] = v
	}
	return args
}

func (m Model) submit() tea.Cmd {
	eval, args := m.eval, m.Args()
	return func() tea.Msg {
		reply, err := eval.Evaluate(args)
		return resultMsg{reply: reply, err: err}
	}
}

func (m Model) renderOutput() string {
	if m.err != nil {
		return errorStyle.Render(render.WarningPrefix + m.err.Error())
	}
	d := m.display
	if d == nil {
		return ""
	}
	if d.Failed() {
		return errorStyle.Render(d.Error)
	}
	var b strings.Builder
	for _, l := range d.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if d.LaTeX != "" {
		b.WriteString(latexStyle.Render(d.LaTeX))
		b.WriteByte('\n')
	}
	if d.Plot != nil {
		w := max(m.output.Width-2, 20)
		b.WriteString(render.ASCIIPlot(d.Plot, w, max(m.output.Height-4, 8)))
	}
	return b.String()
}

func (m Model) View() string {
	if m.state == stateModes {
		return m.modes.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.current.Heading))
	b.WriteString("\n")
	b.WriteString(introStyle.Render(m.current.Intro))
	b.WriteString("\n\n")
	for i, f := range m.current.Fields {
		style := labelStyle
		if i == m.focus {
			style = focusedLabel
		}
		b.WriteString(style.Render(f.Label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	status := fmt.Sprintf("enter: %s • tab: next field • pgup/pgdown: scroll • esc: modes • ctrl+c: quit", m.current.Action)
	if m.busy {
		status = "Calculating..."
	}
	b.WriteString(helpStyle.Render(status))
	b.WriteString("\n")
	if m.display != nil || m.err != nil {
		b.WriteString(resultBox.Render(m.output.View()))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}
