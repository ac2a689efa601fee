// Package notify provides the notification channel abstraction and the
// dispatcher observer that turns lifecycle events into outbound messages.
package notify

import "context"

type Message struct {
	Recipient string
	Subject   string
	Body      string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Channel is the factory abstraction over one delivery medium.
type Channel interface {
	CreateMessage(recipient, subject, body string) Message
	CreateSender() Sender
	Name() string
	Available() bool
	// CostPerMessage is the marginal send cost in cents.
	CostPerMessage() int64
}
