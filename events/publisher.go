// Package events publishes order lifecycle events to Kafka and/or a JSONL file.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"fashionfusion-storefront/config"
	"fashionfusion-storefront/models"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the message published for order lifecycle changes
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	ItemCount  int       `json:"itemCount"`
	PromoCode  string    `json:"promoCode,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewOrderEvent builds an event of eventType describing order
func NewOrderEvent(eventType string, order models.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Total:      order.Total.StringFixed(2),
		ItemCount:  order.ItemCount(),
		PromoCode:  order.PromoCode,
		OccurredAt: at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
	Close() error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev OrderEvent) error { return nil }
func (NopPublisher) Close() error                                    { return nil }

// MultiPublisher fans out events to multiple underlying publishers.
type MultiPublisher struct {
	publishers []Publisher
}

func NewMultiPublisher(ps ...Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: ps}
}

func (m *MultiPublisher) Publish(ctx context.Context, ev OrderEvent) error {
	for _, p := range m.publishers {
		if err := p.Publish(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiPublisher) Close() error {
	var firstErr error
	for _, p := range m.publishers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FilePublisher appends events as JSON lines
type FilePublisher struct {
	mu   sync.Mutex
	path string
}

func NewFilePublisher(path string) (*FilePublisher, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &FilePublisher{path: path}, nil
}

func (w *FilePublisher) Publish(ctx context.Context, ev OrderEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	if err := enc.Encode(&ev); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func (w *FilePublisher) Close() error { return nil }

// KafkaPublisher publishes events to a Kafka topic keyed by order id.
type KafkaPublisher struct {
	writer kafkaMessageWriter
}

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaPublisher creates a Kafka publisher.
// bootstrap can be a comma-separated list of host:port.
func NewKafkaPublisher(bootstrap string, topic string) *KafkaPublisher {
	var brokers []string
	for _, a := range strings.Split(bootstrap, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			brokers = append(brokers, a)
		}
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}}
}

// NewKafkaPublisherWith is only for tests to inject a fake writer.
func NewKafkaPublisherWith(w kafkaMessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (k *KafkaPublisher) Publish(ctx context.Context, ev OrderEvent) error {
	b, err := json.Marshal(&ev)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	})
}

func (k *KafkaPublisher) Close() error { return k.writer.Close() }

// FromConfig builds the publisher chain for the configured sinks.
// With no sink configured events are dropped.
func FromConfig(cfg config.EventsConfig) (Publisher, error) {
	var publishers []Publisher
	if cfg.File != "" {
		fp, err := NewFilePublisher(cfg.File)
		if err != nil {
			return nil, err
		}
		log.Printf("✓ Order events appended to %s", cfg.File)
		publishers = append(publishers, fp)
	}
	if cfg.KafkaBrokers != "" {
		log.Printf("✓ Order events published to kafka topic %s (%s)", cfg.KafkaTopic, cfg.KafkaBrokers)
		publishers = append(publishers, NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic))
	}

	switch len(publishers) {
	case 0:
		log.Printf("⚠️  No order event sink configured, events are dropped")
		return NopPublisher{}, nil
	case 1:
		return publishers[0], nil
	default:
		return NewMultiPublisher(publishers...), nil
	}
}
