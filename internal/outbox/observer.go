package outbox

import (
	"context"

	"github.com/mfigueredo/vetsched/internal/event"
)

// Topic names by lifecycle event type.
const (
	TopicCreated      = "appointment.created.v1"
	TopicStateChanged = "appointment.state_changed.v1"
	TopicCancelled    = "appointment.cancelled.v1"
)

func topicFor(t event.Type) string {
	switch t {
	case event.TypeCreated:
		return TopicCreated
	case event.TypeCancelled:
		return TopicCancelled
	default:
		return TopicStateChanged
	}
}

// Observer writes each lifecycle event to the outbox table so the publisher
// can expose it across the process boundary.
type Observer struct {
	repo *Repository
}

func NewObserver(repo *Repository) *Observer {
	return &Observer{repo: repo}
}

func (o *Observer) OnEvent(ctx context.Context, evt event.Lifecycle) error {
	payload, err := evt.WireJSON()
	if err != nil {
		return err
	}

	tx, err := o.repo.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := o.repo.Insert(ctx, tx, Event{
		AggregateType: "appointment",
		AggregateID:   evt.AppointmentID,
		EventType:     topicFor(evt.Type),
		Payload:       payload,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
