package termui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user leaves a prompt with ctrl+c or esc.
var ErrAborted = errors.New("termui: prompt aborted")

// Field is one prompt input.
type Field struct {
	Label  string
	Value  string
	Secret bool
}

// FormModel asks for a list of fields; enter moves to the next field and submits on the last.
type FormModel struct {
	title   string
	labels  []string
	inputs  []textinput.Model
	focus   int
	done    bool
	aborted bool
}

// NewFormModel creates a form. Fields with a Value are prefilled.
func NewFormModel(title string, fields []Field) FormModel {
	m := FormModel{title: title}
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.Width = 40
		in.SetValue(f.Value)
		if f.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		if i == 0 {
			in.Focus()
		}
		m.labels = append(m.labels, f.Label)
		m.inputs = append(m.inputs, in)
	}
	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter, tea.KeyTab, tea.KeyDown:
			if key.Type == tea.KeyEnter && m.focus == len(m.inputs)-1 {
				m.done = true
				return m, tea.Quit
			}
			cmd := m.move(1)
			return m, cmd
		case tea.KeyShiftTab, tea.KeyUp:
			cmd := m.move(-1)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) move(delta int) tea.Cmd {
	next := m.focus + delta
	if next < 0 || next >= len(m.inputs) {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = next
	return m.inputs[m.focus].Focus()
}

func (m FormModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		label := mutedStyle.Render(m.labels[i] + ":")
		if i == m.focus {
			label = userStyle.Render(m.labels[i] + ":")
		}
		b.WriteString(label + " " + in.View() + "\n")
	}
	return b.String()
}

// Values returns the field values in order.
func (m FormModel) Values() []string {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = in.Value()
	}
	return values
}

// Prompt asks for fields interactively and returns their values.
func Prompt(ctx context.Context, title string, fields []Field, opts ...tea.ProgramOption) ([]string, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewFormModel(title, fields), opts...).Run()
	if err != nil {
		return nil, err
	}
	m := final.(FormModel)
	if m.aborted {
		return nil, ErrAborted
	}
	return m.Values(), nil
}

// NeedsPrompt reports whether any value is empty.
func NeedsPrompt(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return true
		}
	}
	return false
}
