package termui

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/apiclient/apitest"
	"github.com/brazucaphish/console/pkg/chart"
	"github.com/brazucaphish/console/pkg/chat"
	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/shared/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestPrinter_Overview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, i18n.NewTranslator(), i18n.English)

	p.Overview(dashboard.Overview{
		Cards: dashboard.Cards{TotalCampaigns: "2", TotalClicks: "40", UniqueVictims: "10", SuccessRate: "25%"},
		Rows: []dashboard.Row{
			{ID: "7", Name: "Q3 payroll", CreatedAt: "9/1/2024", Clicks: 30},
			{ID: "8", Name: "IT reset", CreatedAt: "9/2/2024", Clicks: 10},
		},
	})

	out := buf.String()
	for _, want := range []string{"Campaigns", "Success rate", "25%", "Q3 payroll", "9/1/2024", "30", "IT reset"} {
		assert.Contains(t, out, want)
	}
}

func TestPrinter_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, i18n.NewTranslator(), i18n.Portuguese).Overview(dashboard.Overview{
		Cards: dashboard.Cards{SuccessRate: "0%"},
		Rows:  []dashboard.Row{{Name: "Nenhuma campanha", Empty: true}},
	})
	assert.Contains(t, buf.String(), "Nenhuma campanha")
	assert.Contains(t, buf.String(), "Taxa de sucesso")
}

func TestPrinter_LinksAndDetail(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, i18n.NewTranslator(), i18n.English)

	p.Links(&dashboard.Links{
		CampaignID: "12",
		ExpiresAt:  "2024-10-01",
		Lines:      []string{"a@x.com › https://t.example/l/h1"},
	})
	assert.Contains(t, buf.String(), "Campaign 12")
	assert.Contains(t, buf.String(), "a@x.com › https://t.example/l/h1")
	assert.Contains(t, buf.String(), "Links expire at 2024-10-01")

	buf.Reset()
	series := chart.Series{Label: chart.ClicksLabel, Labels: []string{"2024-09-01", "2024-09-02"}, Values: []float64{1, 3}}
	require.NoError(t, p.Detail(&dashboard.Detail{
		Name:    "Q3 payroll",
		Summary: []string{"Total clicks: 4"},
		Chart:   chart.NewASCII(series),
	}))
	assert.Contains(t, buf.String(), "Q3 payroll")
	assert.Contains(t, buf.String(), "Total clicks: 4")
	assert.Contains(t, buf.String(), "2024-09-01 … 2024-09-02")
}

func TestCopyLinks(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	require.NoError(t, CopyLinks(&dashboard.Links{CopyAll: "https://a\nhttps://b"}))
	assert.Equal(t, "https://a\nhttps://b", copied)

	writeClipboard = func(string) error { return ErrClipboardUnavailable }
	assert.ErrorIs(t, CopyLinks(&dashboard.Links{}), ErrClipboardUnavailable)
}

func newChatModel(t *testing.T) (ChatModel, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Logger: logging.NewTestLogger()})
	require.NoError(t, err)
	panel := chat.NewPanel(client, i18n.NewTranslator(), logging.NewTestLogger())
	return NewChatModel(context.Background(), panel, i18n.NewTranslator(), i18n.English), srv
}

// runUntilReply executes cmd, expanding batches, and returns the chat reply it produces.
func runUntilReply(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case replyMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if reply, ok := c().(replyMsg); ok {
				return reply
			}
		}
	}
	t.Fatal("command produced no reply")
	return replyMsg{}
}

func TestChatModel_BlankInputSendsNothing(t *testing.T) {
	m, srv := newChatModel(t)
	m.input.SetValue("   ")

	next, cmd := m.Update(enter)
	assert.Nil(t, cmd)
	assert.Empty(t, next.(ChatModel).pending)
	assert.Empty(t, srv.Requests())
}

func TestChatModel_SendAndReceive(t *testing.T) {
	m, srv := newChatModel(t)
	srv.Respond("POST /api/chatbot", apitest.Response{Body: map[string]string{"reply": "Check the sender domain."}})

	m.input.SetValue("Is this legit?")
	next, cmd := m.Update(enter)
	m = next.(ChatModel)
	assert.Equal(t, "Is this legit?", m.pending)
	assert.Empty(t, m.input.Value(), "the input is cleared")
	assert.False(t, m.input.Focused(), "the input is disabled while waiting")
	assert.Contains(t, m.View(), "Thinking...")

	m.input.SetValue("again")
	_, second := m.Update(enter)
	assert.Nil(t, second, "a second message waits for the reply")

	next, _ = m.Update(runUntilReply(t, cmd))
	m = next.(ChatModel)
	assert.Empty(t, m.pending)
	assert.True(t, m.input.Focused())
	assert.Equal(t, []chat.Message{
		{Sender: chat.User, Text: "Is this legit?"},
		{Sender: chat.Bot, Text: "Check the sender domain."},
	}, m.State().Log)
	assert.Contains(t, m.View(), "Check the sender domain.")
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/api/chatbot"))
}

func TestChatModel_ShowsError(t *testing.T) {
	m, srv := newChatModel(t)
	srv.Respond("POST /api/chatbot", apitest.Response{Status: http.StatusServiceUnavailable, Body: map[string]string{"error": "Model offline"}})

	m.input.SetValue("hello")
	_, cmd := m.Update(enter)
	reply := runUntilReply(t, cmd)
	require.Error(t, reply.err)

	next, _ := m.Update(reply)
	m = next.(ChatModel)
	assert.Equal(t, "Model offline", m.State().Error)
	assert.Contains(t, m.View(), "Model offline")
	assert.Len(t, m.State().Log, 1)
}

func TestChatModel_Quit(t *testing.T) {
	m, _ := newChatModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFormModel(t *testing.T) {
	m := NewFormModel("Sign in", []Field{
		{Label: "Email", Value: "ana@example.com"},
		{Label: "Password", Secret: true},
	})
	assert.True(t, m.inputs[0].Focused())

	next, _ := m.Update(enter)
	m = next.(FormModel)
	assert.Equal(t, 1, m.focus)
	assert.False(t, m.done)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	m.inputs[1].SetValue("s3cret")
	assert.NotContains(t, m.View(), "s3cret")

	next, cmd := m.Update(enter)
	m = next.(FormModel)
	assert.True(t, m.done)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, []string{"ana@example.com", "s3cret"}, m.Values())
}

func TestFormModel_Abort(t *testing.T) {
	m := NewFormModel("Sign in", []Field{{Label: "Email"}})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(FormModel).aborted)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNeedsPrompt(t *testing.T) {
	assert.False(t, NeedsPrompt("a", "b"))
	assert.True(t, NeedsPrompt("a", ""))
	assert.False(t, NeedsPrompt())
}
