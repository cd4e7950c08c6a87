package termui

import (
	"context"
	"strings"

	"github.com/brazucaphish/console/pkg/chat"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// replyMsg carries the panel state once a message has been answered.
type replyMsg struct {
	state chat.State
	err   error
}

// ChatModel is the Bubble Tea model of the chat panel.
type ChatModel struct {
	ctx        context.Context
	panel      *chat.Panel
	translator *i18n.Translator
	lang       i18n.Language

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	state   chat.State
	pending string
}

// NewChatModel creates the chat UI around panel.
func NewChatModel(ctx context.Context, panel *chat.Panel, translator *i18n.Translator, lang i18n.Language) ChatModel {
	input := textinput.New()
	input.Placeholder = translator.T(lang, "chat.placeholder")
	input.CharLimit = 1000
	input.Width = 60
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return ChatModel{
		ctx:        ctx,
		panel:      panel,
		translator: translator,
		lang:       lang,
		input:      input,
		viewport:   viewport.New(80, 20),
		spinner:    s,
		state:      panel.State(),
	}
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = msg.Height - 7
		m.input.Width = msg.Width - 6
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case replyMsg:
		m.state = msg.state
		m.pending = ""
		m.refresh()
		cmd := m.input.Focus()
		return m, cmd

	case spinner.TickMsg:
		if m.pending == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.pending != "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the typed message unless it is blank or a reply is pending.
func (m ChatModel) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if m.pending != "" || strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.pending = strings.TrimSpace(text)
	m.input.Reset()
	m.input.Blur()
	m.refresh()

	ctx, panel, lang := m.ctx, m.panel, m.lang
	send := func() tea.Msg {
		state, err := panel.Submit(ctx, lang, text)
		return replyMsg{state: state, err: err}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

func (m *ChatModel) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m ChatModel) renderLog() string {
	wrap := lipgloss.NewStyle().Width(max(m.viewport.Width-2, 20))
	var b strings.Builder
	write := func(style lipgloss.Style, who, text string) {
		b.WriteString(wrap.Render(style.Render(who+":") + " " + text))
		b.WriteString("\n")
	}
	for _, msg := range m.state.Log {
		if msg.Sender == chat.User {
			write(userStyle, m.translator.T(m.lang, "chat.you"), msg.Text)
		} else {
			write(botStyle, m.translator.T(m.lang, "chat.bot"), msg.Text)
		}
	}
	if m.pending != "" {
		write(userStyle, m.translator.T(m.lang, "chat.you"), m.pending)
	}
	return b.String()
}

func (m ChatModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.translator.T(m.lang, "chat.heading")))
	b.WriteString("\n")
	b.WriteString(chatWindowStyle.Render(m.viewport.View()))
	b.WriteString("\n")

	if m.state.Error != "" && m.pending == "" {
		b.WriteString(errorStyle.Render(m.state.Error))
		b.WriteString("\n")
	}

	if m.pending != "" {
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render(m.translator.T(m.lang, "chat.thinking")))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.translator.T(m.lang, "chat.quit_hint")))
	return b.String()
}

// State returns the last panel state the model rendered.
func (m ChatModel) State() chat.State {
	return m.state
}

// RunChat runs the chat UI until the user quits.
func RunChat(ctx context.Context, panel *chat.Panel, translator *i18n.Translator, lang i18n.Language, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewChatModel(ctx, panel, translator, lang), opts...).Run()
	return err
}
