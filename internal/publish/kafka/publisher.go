// Package kafka publishes shortage reports to a Kafka topic, one record per
// division keyed by division name so a compacted topic keeps the latest state.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"donormatch/internal/engine"
	"donormatch/internal/geo"
	"donormatch/internal/publish"
	"donormatch/pkg/platform/circuit"
	"donormatch/pkg/platform/sentinel"
)

const (
	// DefaultTopic receives shortage messages when none is configured.
	DefaultTopic = "donormatch.shortages"

	headerSchema  = "schema"
	schemaVersion = "shortage.v1"
)

// Producer is the slice of *kgo.Client the publisher uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher sends shortage messages through a circuit breaker. While the
// circuit is open reports are dropped rather than queued: the next refresh
// carries the full state again.
type Publisher struct {
	producer  Producer
	topic     string
	divisions []string
	breaker   *circuit.Breaker
	logger    *slog.Logger
	metrics   *Metrics
}

type Option func(*Publisher)

func WithTopic(topic string) Option {
	return func(p *Publisher) {
		if topic != "" {
			p.topic = topic
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.breaker = b
	}
}

// WithIndex sets the divisions that always get a message.
func WithIndex(ix *geo.Index) Option {
	return func(p *Publisher) {
		p.divisions = ix.Divisions()
	}
}

func New(producer Producer, opts ...Option) *Publisher {
	p := &Publisher{
		producer:  producer,
		topic:     DefaultTopic,
		divisions: geo.Default().Divisions(),
		breaker:   circuit.New("kafka-publisher", circuit.WithFailureThreshold(3), circuit.WithCooldown(time.Minute)),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewClient connects a franz-go client producing to topic by default.
func NewClient(brokers []string, topic string) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no seed brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return client, nil
}

// Publish sends one record per division. It fails with sentinel.ErrUnavailable
// while the circuit is open.
func (p *Publisher) Publish(ctx context.Context, report *engine.Report) error {
	if !p.breaker.Allow() {
		p.metrics.incDropped()
		p.logger.WarnContext(ctx, "shortage report dropped, publisher circuit open",
			"breaker", p.breaker.Name(),
			"as_of", report.AsOf.Format(time.RFC3339),
		)
		return fmt.Errorf("publish shortage report: %w", sentinel.ErrUnavailable)
	}

	records, err := Records(p.topic, report, p.divisions)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := p.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		p.metrics.incFailure()
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.metrics.setCircuitOpen(true)
			p.logger.ErrorContext(ctx, "publisher circuit opened", "breaker", p.breaker.Name(), "error", err)
		}
		return fmt.Errorf("produce shortage records: %w", err)
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.metrics.setCircuitOpen(false)
		p.logger.InfoContext(ctx, "publisher circuit closed", "breaker", p.breaker.Name())
	}
	p.metrics.addPublished(len(records))

	p.logger.DebugContext(ctx, "shortage report published",
		"topic", p.topic,
		"record_count", len(records),
		"shortage_count", len(report.Shortages),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Records encodes a report as Kafka records keyed by division.
func Records(topic string, report *engine.Report, divisions []string) ([]*kgo.Record, error) {
	msgs := publish.Messages(report, divisions)
	out := make([]*kgo.Record, 0, len(msgs))
	for _, m := range msgs {
		value, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("encode shortage message for %s: %w", m.Division, err)
		}
		out = append(out, &kgo.Record{
			Topic:     topic,
			Key:       []byte(m.Division),
			Value:     value,
			Timestamp: report.AsOf,
			Headers: []kgo.RecordHeader{
				{Key: headerSchema, Value: []byte(schemaVersion)},
			},
		})
	}
	return out, nil
}
