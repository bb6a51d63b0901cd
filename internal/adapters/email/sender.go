package email

import (
	"context"
	"log/slog"
	"time"
)

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To      []string // Recipient addresses
	From    string   // Sender address, e.g. "Planner <reminders@example.com>"; empty uses the sender default
	Subject string
	HTML    string
	Text    string // Plain-text alternative
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}

// NewSender returns a Resend-backed sender when apiKey is set, otherwise a NoopSender.
// PRE: from is a valid sender address when apiKey is set
// POST: Returns a ready-to-use Sender
func NewSender(apiKey, from string) Sender {
	if apiKey == "" {
		slog.Info("email_sender_selected", "provider", "noop")
		return NewNoopSender()
	}
	slog.Info("email_sender_selected", "provider", "resend", "from", from)
	return NewResendSender(apiKey, from)
}
