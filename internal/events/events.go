// Package events publishes itinerary lifecycle events to a Kafka topic.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/domain"
)

// Event types.
const (
	TypeItineraryCreated = "itinerary.created"
	TypeItineraryDeleted = "itinerary.deleted"
)

// Event is the JSON message value. Entry is only set for created events.
type Event struct {
	Type        string                 `json:"type"`
	ItineraryID uuid.UUID              `json:"itinerary_id"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Entry       *domain.ItineraryEntry `json:"entry,omitempty"`
}

// messageWriter is satisfied by *kafka.Writer.
// This allows for easy mocking in unit tests.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes itinerary events keyed by itinerary id, so every event
// for one entry lands on the same partition in order.
type Publisher struct {
	w   messageWriter
	now func() time.Time
}

// NewPublisher returns a Publisher writing to cfg.Topic on cfg.Brokers.
func NewPublisher(cfg config.Events) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newPublisher(w)
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{w: w, now: time.Now}
}

// ItineraryCreated publishes an itinerary.created event carrying the entry.
func (p *Publisher) ItineraryCreated(ctx context.Context, e domain.ItineraryEntry) error {
	return p.publish(ctx, Event{Type: TypeItineraryCreated, ItineraryID: e.ID, Entry: &e})
}

// ItineraryDeleted publishes an itinerary.deleted event.
func (p *Publisher) ItineraryDeleted(ctx context.Context, id uuid.UUID) error {
	return p.publish(ctx, Event{Type: TypeItineraryDeleted, ItineraryID: id})
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	ev.OccurredAt = p.now().UTC()
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events.Publisher: marshal %s: %w", ev.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.ItineraryID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.Publisher: write %s: %w", ev.Type, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}
