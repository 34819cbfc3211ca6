// Package kafka publishes events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"smartsite/pkg/events"
	"smartsite/pkg/logger"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrNoBrokers is returned when the publisher is created without brokers.
var ErrNoBrokers = errors.New("kafka brokers are not configured")

// Options configures the publisher.
type Options struct {
	Brokers []string
	Topic   string
	// BatchTimeout caps how long messages wait for a batch to fill; zero means 50ms.
	BatchTimeout time.Duration
}

// Publisher writes events asynchronously; write failures are logged.
type Publisher struct {
	writer *kafka.Writer
}

var _ events.Publisher = (*Publisher)(nil)

func New(ctx context.Context, opts Options) (*Publisher, error) {
	if len(opts.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if opts.Topic == "" {
		return nil, errors.New("kafka topic is not configured")
	}

	batchTimeout := opts.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 50 * time.Millisecond
	}

	log := logger.Get(ctx)
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(opts.Brokers...),
		Topic:                  opts.Topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           batchTimeout,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("could not deliver events", zap.Int("count", len(messages)), zap.Error(err))
			}
		},
	}

	return &Publisher{writer: writer}, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("could not close kafka writer: %w", err)
	}

	return nil
}

// encode keys messages by record id so events of one record share a partition.
func encode(event events.Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("could not marshal event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.ID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}
