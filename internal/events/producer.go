package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecotrack-backend/internal/models"

	"github.com/segmentio/kafka-go"
)

// BinAlertEvent is published when a bin crosses into the full state.
// Consumers (collection scheduling, dashboards) live outside this service.
type BinAlertEvent struct {
	BinID      string           `json:"bin_id"`
	Location   string           `json:"location"`
	WasteType  models.WasteType `json:"waste_type"`
	Status     models.BinStatus `json:"status"`
	Percentage float64          `json:"percentage"`
	OccurredAt string           `json:"occurred_at"`
}

// Producer wraps a Kafka producer for bin alert events
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a new alert producer
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // Partition by key (bin ID)
			RequiredAcks: kafka.RequireOne,
			Async:        false, // Synchronous for reliability
		},
	}
}

// PublishBinAlert sends a bin-full event, keyed by bin ID so per-bin
// ordering is preserved.
func (p *Producer) PublishBinAlert(ctx context.Context, event BinAlertEvent) error {
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.BinID),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
