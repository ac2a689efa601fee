package notify

import "context"

// NoopChannel accepts every message and discards it. Default for local
// development where no SMTP or SMS provider is running.
type NoopChannel struct{}

func NewNoopChannel() *NoopChannel { return &NoopChannel{} }

func (c *NoopChannel) CreateMessage(recipient, subject, body string) Message {
	return Message{Recipient: recipient, Subject: subject, Body: body}
}

func (c *NoopChannel) CreateSender() Sender { return noopSender{} }

func (c *NoopChannel) Name() string { return "noop" }

func (c *NoopChannel) Available() bool { return true }

func (c *NoopChannel) CostPerMessage() int64 { return 0 }

type noopSender struct{}

func (noopSender) Send(context.Context, Message) error { return nil }
