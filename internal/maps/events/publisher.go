package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"map-editor/internal/maps/models"
)

// ============================================================
// map.created publisher
// ============================================================

// Publisher сообщает о новых картах.
type Publisher interface {
	MapCreated(ctx context.Context, m *models.Map) error
	Close() error
}

// MapCreatedEvent задаёт тело сообщения; сам документ не передаётся.
type MapCreatedEvent struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	BeaconIDs []string  `json:"beaconIds"`
	CreatedAt time.Time `json:"createdAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafka создаёт издателя поверх kafka.Writer. Ключом сообщения служит адрес,
// чтобы версии одной карты попадали в одну партицию.
func NewKafka(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: w, topic: topic}, nil
}

func (p *KafkaPublisher) MapCreated(ctx context.Context, m *models.Map) error {
	value, err := json.Marshal(MapCreatedEvent{
		ID:        m.ID,
		Address:   m.Address,
		BeaconIDs: m.BeaconIDs,
		CreatedAt: m.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.Address),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte("map.created")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop используется, когда брокер не настроен.
type Noop struct{}

func (Noop) MapCreated(_ context.Context, m *models.Map) error {
	log.Printf("[EVENTS] map.created %s (publishing disabled)", m.ID)
	return nil
}

func (Noop) Close() error { return nil }
