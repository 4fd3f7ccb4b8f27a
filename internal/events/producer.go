package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"majlis-rsvp/internal/models"
)

// Event types published on the RSVP stream. Downstream consumers (e.g. a
// WhatsApp confirmation bot) subscribe to react to submissions and draws.
const (
	TypeGuestCreated = "guest.created"
	TypeWinnerDrawn  = "draw.winner"
	TypeDrawReset    = "draw.reset"
)

type Envelope struct {
	Type       string        `json:"type"`
	OccurredAt time.Time     `json:"occurredAt"`
	Guest      *models.Guest `json:"guest,omitempty"`
}

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer}
}

func (p *Producer) PublishGuestCreated(guest models.Guest) error {
	return p.publish(TypeGuestCreated, strconv.FormatInt(guest.ID, 10), &guest)
}

func (p *Producer) PublishWinnerDrawn(guest models.Guest) error {
	return p.publish(TypeWinnerDrawn, strconv.FormatInt(guest.ID, 10), &guest)
}

func (p *Producer) PublishDrawReset() error {
	return p.publish(TypeDrawReset, "draw", nil)
}

func (p *Producer) publish(eventType, key string, guest *models.Guest) error {
	envelope := Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Guest:      guest,
	}
	msgBytes, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(fmt.Sprintf("%s:%s", eventType, key)),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
