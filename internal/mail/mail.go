// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mail delivers contact-form submissions to the studio inbox.
// The Resend API is used when a key is configured; SMTP otherwise.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned by New when neither delivery path is set up.
var ErrNotConfigured = errors.New("mail: no Resend key or SMTP host configured")

// Email is one outgoing message.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers an Email and returns a provider message id when known.
type Sender interface {
	Send(ctx context.Context, e Email) (string, error)
}

// Config selects and configures a Sender.
type Config struct {
	ResendAPIKey string
	ResendURL    string // optional API base override
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

// New returns a Resend sender when an API key is set, else an SMTP sender
// when a host is set.
func New(cfg Config) (Sender, error) {
	switch {
	case cfg.ResendAPIKey != "":
		return NewResend(cfg.ResendAPIKey, cfg.ResendURL)
	case cfg.SMTPHost != "":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), nil
	}
	return nil, ErrNotConfigured
}

// ResendSender sends through the Resend HTTP API.
type ResendSender struct {
	client *resend.Client
}

// NewResend creates a Resend sender. baseURL may be empty.
func NewResend(apiKey, baseURL string) (*ResendSender, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("mail: parse resend url: %w", err)
		}
		client.BaseURL = u
	}
	return &ResendSender{client: client}, nil
}

func (s *ResendSender) Send(ctx context.Context, e Email) (string, error) {
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    e.From,
		To:      e.To,
		ReplyTo: e.ReplyTo,
		Subject: e.Subject,
		Html:    e.HTML,
		Text:    e.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return resp.Id, nil
}

// SMTPSender sends through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTP creates an SMTP sender.
func NewSMTP(host string, port int, user, password string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password)}
}

// Send dials per message; gomail has no context support, so ctx is only
// checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, e Email) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.dialer.DialAndSend(buildMessage(e)); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return "", nil
}

func buildMessage(e Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", e.From)
	m.SetHeader("To", e.To...)
	if e.ReplyTo != "" {
		m.SetHeader("Reply-To", e.ReplyTo)
	}
	m.SetHeader("Subject", e.Subject)
	if e.Text != "" {
		m.SetBody("text/plain", e.Text)
		m.AddAlternative("text/html", e.HTML)
	} else {
		m.SetBody("text/html", e.HTML)
	}
	return m
}
