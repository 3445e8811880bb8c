package mocks

import (
	"context"
	"sync"
)

// SentMail records a single delivery made through MockMailSender.
type SentMail struct {
	To      string
	Subject string
	Text    string
}

// MockMailSender implements notify.MailSender for testing
type MockMailSender struct {
	// SendFn allows test cases to mock the Send behavior
	SendFn func(ctx context.Context, toEmail, subject, text string) error

	// SendErr is returned by the default Send implementation
	SendErr error

	mu   sync.Mutex
	sent []SentMail
}

// Send implements the notify.MailSender interface
func (m *MockMailSender) Send(ctx context.Context, toEmail, subject, text string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, toEmail, subject, text)
	}

	if m.SendErr != nil {
		return m.SendErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: toEmail, Subject: subject, Text: text})
	return nil
}

// Sent returns a copy of every delivery recorded so far. Safe to call while
// dispatcher workers are still running.
func (m *MockMailSender) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}
