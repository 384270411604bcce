// Package events defines the lifecycle events the storefront emits and the
// publisher they are handed to.
package events

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Name doubles as the routing key of an event.
type Name string

const (
	SessionEstablished Name = "session.established"
	SessionCleared     Name = "session.cleared"
	ShopCreated        Name = "shop.created"
	ProductCreated     Name = "product.created"
	OrderStatusChanged Name = "order.status_changed"
)

// Event is the JSON body published for every lifecycle change.
type Event struct {
	Name       Name                   `json:"name"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// Publisher delivers events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Emit publishes an event and only logs a failure: events never fail the
// operation that produced them.
func Emit(ctx context.Context, p Publisher, name Name, payload map[string]interface{}) {
	if p == nil {
		return
	}
	event := Event{Name: name, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("event", string(name)).Msg("failed to publish event")
	}
}
