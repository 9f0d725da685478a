package services

import "sync"

// SentMail records one Enqueue call on the mock mailer
type SentMail struct {
	Subject   string
	Body      string
	Recipient string
}

// MockMailer is an in-memory Mailer for testing that records every message
type MockMailer struct {
	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailer creates an empty mock mailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Enqueue records the message
func (m *MockMailer) Enqueue(subject, body, recipient string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentMail{Subject: subject, Body: body, Recipient: recipient})
}

// Sent returns a copy of all recorded messages
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}
