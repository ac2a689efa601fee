package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SMSChannel posts messages to an SMS provider webhook.
type SMSChannel struct {
	url       string
	token     string
	costCents int64
	client    *http.Client
}

func NewSMSChannel(url, token string, costCents int64) *SMSChannel {
	return &SMSChannel{
		url:       strings.TrimSpace(url),
		token:     strings.TrimSpace(token),
		costCents: costCents,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *SMSChannel) CreateMessage(recipient, subject, body string) Message {
	// SMS has no subject line; fold it into the body.
	text := body
	if subject != "" {
		text = subject + ": " + body
	}
	return Message{Recipient: recipient, Body: text}
}

func (c *SMSChannel) CreateSender() Sender { return &webhookSender{channel: c} }

func (c *SMSChannel) Name() string { return "sms" }

func (c *SMSChannel) Available() bool { return c.url != "" }

func (c *SMSChannel) CostPerMessage() int64 { return c.costCents }

type webhookSender struct {
	channel *SMSChannel
}

func (s *webhookSender) Send(ctx context.Context, msg Message) error {
	if s.channel.url == "" {
		return errors.New("sms webhook url not configured")
	}
	raw, err := json.Marshal(map[string]string{
		"to":   msg.Recipient,
		"body": msg.Body,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.channel.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.channel.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.channel.token)
	}
	resp, err := s.channel.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms webhook returned %d", resp.StatusCode)
	}
	return nil
}
