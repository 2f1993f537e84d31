// Package messaging carries order events over Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var producerTracer = otel.Tracer("messaging/producer")

// ErrBrokerUnavailable is returned while the breaker is open.
var ErrBrokerUnavailable = errors.New("messaging: broker unavailable")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BreakerSettings tunes the breaker in front of the broker.
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

var defaultBreaker = BreakerSettings{MaxFailures: 5, OpenTimeout: 30 * time.Second}

type Producer struct {
	writer  messageWriter
	topic   string
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
	}

	return newProducer(writer, topic, logger, defaultBreaker)
}

func newProducer(w messageWriter, topic string, logger *slog.Logger, bs BreakerSettings) *Producer {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Producer{writer: w, topic: topic, logger: logger}

	p.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "kafka:" + topic,
		Timeout: bs.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return p
}

// Publish writes event as JSON under key.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{Key: []byte(key), Value: data}

	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, NewMessageCarrier(&msg))

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrBrokerUnavailable, err)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.EventsPublished.WithLabelValues("failed").Inc()

		return err
	}

	metrics.EventsPublished.WithLabelValues("ok").Inc()

	return nil
}

// PublishOrderPlaced announces a written order, keyed by its owner so one
// user's events stay ordered.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order models.Order) error {
	event := models.OrderPlacedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}

	return p.Publish(ctx, order.UserID.String(), event)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
