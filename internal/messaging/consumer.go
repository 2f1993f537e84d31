package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var consumerTracer = otel.Tracer("messaging/consumer")

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader  messageReader
	topic   string
	groupID string
}

type ConsumerOption func(*kafka.ReaderConfig)

func WithStartOffset(offset int64) ConsumerOption {
	return func(cfg *kafka.ReaderConfig) {
		cfg.StartOffset = offset
	}
}

// InstanceGroupID derives a consumer group owned by this process alone, so
// every running instance receives every message on the topic. It falls back
// to a random suffix when the hostname is unavailable.
func InstanceGroupID(base string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return base + "-" + uuid.NewString()
	}

	return fmt.Sprintf("%s-%s-%d", base, host, os.Getpid())
}

func NewConsumer(brokers []string, topic, groupID string, opts ...ConsumerOption) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Consumer{reader: kafka.NewReader(cfg), topic: topic, groupID: groupID}
}

// Consume hands every message to handler and commits it once handled. It
// returns when ctx ends or a handler fails.
func (c *Consumer) Consume(ctx context.Context, handler func(ctx context.Context, payload []byte) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.processMessage(ctx, msg, handler); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message, handler func(ctx context.Context, payload []byte) error) error {
	parentCtx := otel.GetTextMapPropagator().Extract(ctx, NewMessageCarrier(&msg))

	spanCtx, span := consumerTracer.Start(parentCtx, "process "+c.topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("process"),
			semconv.MessagingOperationTypeDeliver,
			semconv.MessagingDestinationName(c.topic),
			semconv.MessagingKafkaConsumerGroup(c.groupID),
			semconv.MessagingKafkaMessageOffset(int(msg.Offset)),
			semconv.MessagingDestinationPartitionID(strconv.Itoa(msg.Partition)),
			semconv.MessagingKafkaMessageKey(string(msg.Key)),
		),
	)
	defer span.End()

	if err := handler(spanCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// OrderPlacedHandler decodes order events for fn. Undecodable payloads are
// reported to onBad and skipped so one bad message cannot stall the group.
func OrderPlacedHandler(fn func(ctx context.Context, event models.OrderPlacedEvent) error, onBad func(payload []byte, err error)) func(ctx context.Context, payload []byte) error {
	return func(ctx context.Context, payload []byte) error {
		var event models.OrderPlacedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			if onBad != nil {
				onBad(payload, fmt.Errorf("failed to decode order event: %w", err))
			}
			return nil
		}

		return fn(ctx, event)
	}
}
