package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailChannel sends via unauthenticated SMTP (Mailpit-compatible).
type EmailChannel struct {
	addr string
	from string
}

func NewEmailChannel(host, port, from string) *EmailChannel {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@vetsched.local"
	}
	addr := ""
	if host != "" && port != "" {
		addr = fmt.Sprintf("%s:%s", host, port)
	}
	return &EmailChannel{addr: addr, from: from}
}

func (c *EmailChannel) CreateMessage(recipient, subject, body string) Message {
	return Message{Recipient: recipient, Subject: subject, Body: body}
}

func (c *EmailChannel) CreateSender() Sender {
	return &smtpSender{addr: c.addr, from: c.from}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Available() bool { return c.addr != "" }

func (c *EmailChannel) CostPerMessage() int64 { return 0 }

type smtpSender struct {
	addr string
	from string
}

func (s *smtpSender) Send(_ context.Context, msg Message) error {
	body := buildMIME(s.from, msg.Recipient, msg.Subject, msg.Body)
	return smtp.SendMail(s.addr, nil, s.from, []string{msg.Recipient}, []byte(body))
}

func buildMIME(from, to, subject, body string) string {
	// Minimal RFC 5322 message; enough for Mailpit and most SMTP relays.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
