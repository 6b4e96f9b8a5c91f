// Package kafkabus wraps segmentio/kafka-go readers and writers for the
// smoker topic and knows how to create it at startup.
package kafkabus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Bus struct {
	brokers []string
	log     *slog.Logger
}

func New(brokers []string, log *slog.Logger) *Bus {
	return &Bus{brokers: brokers, log: log.With(slog.String("component", "kafka-bus"))}
}

// Reader returns a consumer-group reader on topic. Offsets are managed by
// the broker for the group; redelivery semantics stay outside the core.
func (b *Bus) Reader(topic, group string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  b.brokers,
		GroupID:  group,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
}

// Writer returns a synchronous writer on topic.
func (b *Bus) Writer(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(b.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 5 * time.Millisecond,
	}
}

// EnsureTopic creates topic on the cluster controller if it does not exist
// yet, so the producer can start against a fresh broker.
func (b *Bus) EnsureTopic(ctx context.Context, topic string, partitions, replication int) error {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	conn, err := kafka.DialContext(dialCtx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("dial broker %s: %w", b.brokers[0], err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			b.log.Warn("broker_close", "err", cerr)
		}
	}()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("fetch controller metadata: %w", err)
	}
	ctrlAddr := fmt.Sprintf("%s:%d", controller.Host, controller.Port)
	ctrlCtx, ctrlCancel := context.WithTimeout(ctx, 10*time.Second)
	defer ctrlCancel()
	admin, err := kafka.DialContext(ctrlCtx, "tcp", ctrlAddr)
	if err != nil {
		return fmt.Errorf("dial controller %s: %w", ctrlAddr, err)
	}
	defer func() {
		if cerr := admin.Close(); cerr != nil {
			b.log.Warn("controller_close", "err", cerr)
		}
	}()
	if err := admin.SetDeadline(time.Now().Add(10 * time.Second)); err != nil {
		b.log.Warn("controller_deadline", "err", err)
	}

	err = admin.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: replication,
	})
	if err != nil {
		if parts, perr := admin.ReadPartitions(topic); perr == nil && len(parts) > 0 {
			b.log.Info("topic_exists", "topic", topic, "partitions", len(parts))
			return nil
		}
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	b.log.Info("topic_created", "topic", topic, "partitions", partitions, "replication", replication)
	return nil
}

// Source adapts a reader to the consumer loop's message source.
type Source struct {
	r *kafka.Reader
}

func (b *Bus) Source(topic, group string) *Source {
	return &Source{r: b.Reader(topic, group)}
}

// Next blocks until a message arrives or ctx is done.
func (s *Source) Next(ctx context.Context) ([]byte, error) {
	msg, err := s.r.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}
	return msg.Value, nil
}

func (s *Source) Close() error { return s.r.Close() }

// Publisher adapts a writer to the producer loop's publisher.
type Publisher struct {
	w *kafka.Writer
}

func (b *Bus) Publisher(topic string) *Publisher {
	return &Publisher{w: b.Writer(topic)}
}

func (p *Publisher) Publish(ctx context.Context, key, value []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{Key: key, Value: value, Time: time.Now()})
}

func (p *Publisher) Close() error { return p.w.Close() }
