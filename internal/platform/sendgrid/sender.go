// Package sendgrid sends account notification mail through the SendGrid v3
// Mail Send REST API.
package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/itomysh95/task-manager-project/internal/config"
)

const mailSendEndpoint = "https://api.sendgrid.com/v3/mail/send"

// Sender delivers plain-text account mail. A Sender constructed without an
// API key only logs what it would have sent, which keeps local development
// and tests free of network traffic.
type Sender struct {
	apiKey      string
	fromAddress string
	fromName    string
	endpoint    string
	client      *http.Client
	logger      *slog.Logger
}

// NewSender creates a Sender from the email configuration.
func NewSender(cfg config.EmailConfig, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{
		apiKey:      cfg.SendGridAPIKey,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		endpoint:    mailSendEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger.With("component", "sendgrid_sender"),
	}
}

// Send delivers a plain-text message to the recipient.
func (s *Sender) Send(ctx context.Context, toEmail, subject, text string) error {
	if s.apiKey == "" {
		s.logger.Info("mail delivery disabled, skipping send",
			"to", toEmail,
			"subject", subject)
		return nil
	}

	payload := sgMailPayload{
		Personalizations: []sgPersonalization{{
			To: []sgAddress{{Email: toEmail}},
		}},
		From:    sgAddress{Email: s.fromAddress, Name: s.fromName},
		Subject: subject,
		Content: []sgContent{{Type: "text/plain", Value: text}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SendGrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create SendGrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("SendGrid request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SendGrid returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// SendGrid v3 Mail Send API payload types.
type sgMailPayload struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
