// Package report renders simulation reports and delivers them by email.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/fiscalite/taxsim/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outgoing email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Sender delivers messages and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// SendError wraps a delivery failure. Permanent failures are not worth retrying.
type SendError struct {
	Permanent bool
	Err       error
}

func (e *SendError) Error() string {
	kind := "temporary"
	if e.Permanent {
		kind = "permanent"
	}
	return fmt.Sprintf("%s email failure: %v", kind, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// ResendSender sends messages through the Resend API.
type ResendSender struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendSender creates a sender for the given API key and sender identity.
func NewResendSender(apiKey, fromName, fromEmail string) *ResendSender {
	return &ResendSender{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	for _, a := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	resp, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", &SendError{Permanent: isPermanentError(err), Err: err}
	}
	return resp.Id, nil
}

// isPermanentError recognizes authorization and validation failures
// (401, 403, 422); rate limits and 5xx are temporary.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// LogSender only logs messages. It stands in when no API key is configured.
type LogSender struct {
	Logger zerolog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) (string, error) {
	s.Logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("attachments", len(msg.Attachments)).
		Msg("email delivery disabled, message not sent")
	return "", nil
}

// NewSender returns a Resend sender, or a LogSender when cfg has no API key.
func NewSender(cfg config.EmailConfig, logger zerolog.Logger) Sender {
	if cfg.ResendAPIKey == "" {
		return LogSender{Logger: logger}
	}
	return NewResendSender(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
}

var (
	_ Sender = (*ResendSender)(nil)
	_ Sender = LogSender{}
	_ Sender = (*MockSender)(nil)
)
