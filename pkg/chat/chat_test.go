package chat

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/apiclient/apitest"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/shared/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanel(t *testing.T) (*Panel, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Logger: logging.NewTestLogger()})
	require.NoError(t, err)
	return NewPanel(client, i18n.NewTranslator(), logging.NewTestLogger()), srv
}

func TestSubmit_BlankInputSendsNothing(t *testing.T) {
	panel, srv := newPanel(t)

	for _, input := range []string{"", "   ", "\n\t"} {
		state, err := panel.Submit(context.Background(), i18n.English, input)
		assert.ErrorIs(t, err, ErrEmptyMessage)
		assert.Empty(t, state.Log)
	}
	assert.Empty(t, srv.Requests())
}

func TestSubmit_AppendsUserAndBot(t *testing.T) {
	panel, srv := newPanel(t)
	srv.Respond("POST /api/chatbot", apitest.Response{Body: map[string]string{"reply": "Never share your password."}})

	state, err := panel.Submit(context.Background(), i18n.English, "  Is this email legit?  ")
	require.NoError(t, err)

	assert.Equal(t, []Message{
		{Sender: User, Text: "Is this email legit?"},
		{Sender: Bot, Text: "Never share your password."},
	}, state.Log)
	assert.Empty(t, state.Error)
	assert.False(t, state.Disabled)

	req, _ := srv.Last("/api/chatbot")
	assert.JSONEq(t, `{"message":"Is this email legit?"}`, string(req.Body))
}

func TestSubmit_FailureShowsErrorAndKeepsOnlyUserBubble(t *testing.T) {
	panel, srv := newPanel(t)
	srv.Respond("POST /api/chatbot", apitest.Response{Status: http.StatusTooManyRequests, Body: map[string]string{"error": "Slow down."}})

	state, err := panel.Submit(context.Background(), i18n.English, "hi")
	require.Error(t, err)
	assert.Equal(t, "Slow down.", state.Error)
	assert.Equal(t, []Message{{Sender: User, Text: "hi"}}, state.Log)
	assert.False(t, state.Disabled)

	srv.Respond("POST /api/chatbot", apitest.Response{Status: http.StatusInternalServerError, Raw: "oops"})
	state, _ = panel.Submit(context.Background(), i18n.Portuguese, "oi")
	assert.Equal(t, "Ocorreu um erro desconhecido.", state.Error)

	srv.Respond("POST /api/chatbot", apitest.Response{Body: map[string]string{"reply": "ok"}})
	state, err = panel.Submit(context.Background(), i18n.English, "again")
	require.NoError(t, err)
	assert.Empty(t, state.Error, "a successful reply hides the error")
	assert.Len(t, state.Log, 4)
}

func TestSubmit_DisabledWhilePending(t *testing.T) {
	panel, srv := newPanel(t)
	release := make(chan struct{})
	srv.Respond("POST /api/chatbot", apitest.Response{Wait: release, Body: map[string]string{"reply": "done"}})

	done := make(chan State, 1)
	go func() {
		state, _ := panel.Submit(context.Background(), i18n.English, "first")
		done <- state
	}()

	require.Eventually(t, func() bool { return panel.State().Disabled }, time.Second, 5*time.Millisecond)

	_, err := panel.Submit(context.Background(), i18n.English, "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	state := <-done
	assert.False(t, state.Disabled)
	assert.False(t, panel.State().Disabled)
	assert.Len(t, state.Log, 2)
}

func TestSubmit_ReenablesAfterCancel(t *testing.T) {
	panel, srv := newPanel(t)
	release := make(chan struct{})
	defer close(release)
	srv.Respond("POST /api/chatbot", apitest.Response{Wait: release})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	state, err := panel.Submit(ctx, i18n.English, "hello?")
	require.Error(t, err)
	assert.Equal(t, "An unknown error occurred.", state.Error)
	assert.False(t, panel.State().Disabled)
}
