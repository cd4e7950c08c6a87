package mailer

import (
	"context"
	"sync"
)

// MockSender records messages instead of sending them.
type MockSender struct {
	SendHTMLFunc func(to, subject, htmlBody, textBody string) error

	mu    sync.Mutex
	calls []SendHTMLCall
}

// SendHTMLCall represents a call to SendHTML
type SendHTMLCall struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendHTML records the call and optionally executes a custom function
func (m *MockSender) SendHTML(_ context.Context, to, subject, htmlBody, textBody string) error {
	m.mu.Lock()
	m.calls = append(m.calls, SendHTMLCall{To: to, Subject: subject, HTMLBody: htmlBody, TextBody: textBody})
	m.mu.Unlock()

	if m.SendHTMLFunc != nil {
		return m.SendHTMLFunc(to, subject, htmlBody, textBody)
	}
	return nil
}

// Calls returns the recorded calls.
func (m *MockSender) Calls() []SendHTMLCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendHTMLCall(nil), m.calls...)
}
