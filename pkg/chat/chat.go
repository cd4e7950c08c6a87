// Package chat implements the assistant panel: a log of user and bot messages with one
// backend call per message.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/shared/logging"
)

var (
	// ErrEmptyMessage is returned for blank input. Nothing is sent or logged.
	ErrEmptyMessage = errors.New("chat: empty message")

	// ErrBusy is returned when a message is submitted while the previous one is still
	// being answered (the input is disabled).
	ErrBusy = errors.New("chat: waiting for the previous reply")
)

// Sender identifies who wrote a message.
type Sender string

const (
	User Sender = "user"
	Bot  Sender = "bot"
)

// Message is one bubble in the log.
type Message struct {
	Sender Sender
	Text   string
}

// API is the part of the backend client the panel uses.
type API interface {
	Chat(ctx context.Context, message string) (*apiclient.ChatResponse, error)
}

// State is a snapshot of the panel for rendering.
type State struct {
	Log []Message
	// Error is the visible error text; empty hides the error area.
	Error string
	// Disabled is true while a message is being answered.
	Disabled bool
}

// Panel is the chat panel of one user. It is safe for concurrent use.
type Panel struct {
	api        API
	translator *i18n.Translator
	logger     logging.Logger

	mu       sync.Mutex
	log      []Message
	errText  string
	disabled bool
}

// NewPanel creates an empty panel.
func NewPanel(api API, translator *i18n.Translator, logger logging.Logger) *Panel {
	return &Panel{
		api:        api,
		translator: translator,
		logger:     logger.WithModule("chat"),
	}
}

// Submit sends input to the assistant. The user bubble is appended before the call; on
// success the reply is appended and the error hidden, on failure only the error is shown.
// The input is enabled again whatever happens.
func (p *Panel) Submit(ctx context.Context, lang i18n.Language, input string) (State, error) {
	message := strings.TrimSpace(input)
	if message == "" {
		return p.State(), ErrEmptyMessage
	}

	p.mu.Lock()
	if p.disabled {
		p.mu.Unlock()
		return p.State(), ErrBusy
	}
	p.log = append(p.log, Message{Sender: User, Text: message})
	p.disabled = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.disabled = false
		p.mu.Unlock()
	}()

	resp, err := p.api.Chat(ctx, message)

	p.mu.Lock()
	if err != nil {
		p.errText = apiclient.ErrorOr(err, p.translator.T(lang, "chat.error.unknown"))
		p.logger.Warn("Chat request failed", "error", err)
	} else {
		p.log = append(p.log, Message{Sender: Bot, Text: resp.Reply})
		p.errText = ""
	}
	p.mu.Unlock()

	return p.stateAfterSubmit(), err
}

// stateAfterSubmit is the state the caller sees once the input is enabled again.
func (p *Panel) stateAfterSubmit() State {
	s := p.State()
	s.Disabled = false
	return s
}

// State returns a copy of the current panel state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Log:      append([]Message(nil), p.log...),
		Error:    p.errText,
		Disabled: p.disabled,
	}
}
