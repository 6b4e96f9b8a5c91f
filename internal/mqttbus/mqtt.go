// Package mqttbus is the MQTT rendition of the transport: handy for
// thermometers that speak MQTT directly instead of going through Kafka.
// Selected with SMOKER_TRANSPORT=mqtt.
package mqttbus

import (
	"context"
	"fmt"
	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

func connect(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().AddBroker(brokerURL).SetClientID(clientID)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", brokerURL, token.Error())
	}
	return c, nil
}

// Publisher publishes reading payloads to a single MQTT topic at QoS 1.
type Publisher struct {
	client mqtt.Client
	topic  string
	log    *slog.Logger
}

func NewPublisher(brokerURL, clientID, topic string, log *slog.Logger) (*Publisher, error) {
	c, err := connect(brokerURL, clientID)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: c, topic: topic, log: log.With(slog.String("component", "mqtt-publisher"))}, nil
}

// Publish sends value to the topic. The key is ignored; MQTT has no
// per-message partitioning key.
func (p *Publisher) Publish(ctx context.Context, _, value []byte) error {
	token := p.client.Publish(p.topic, 1, false, value)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return token.Error()
}

func (p *Publisher) Close() error {
	p.client.Disconnect(250)
	return nil
}

// Subscriber buffers incoming payloads from one topic and hands them out
// one at a time, matching the sequential contract of the analysis core.
type Subscriber struct {
	client mqtt.Client
	topic  string
	log    *slog.Logger
	msgs   chan []byte
}

func NewSubscriber(brokerURL, clientID, topic string, log *slog.Logger) (*Subscriber, error) {
	c, err := connect(brokerURL, clientID)
	if err != nil {
		return nil, err
	}
	s := &Subscriber{
		client: c,
		topic:  topic,
		log:    log.With(slog.String("component", "mqtt-subscriber")),
		msgs:   make(chan []byte, 256),
	}
	token := c.Subscribe(topic, 1, func(_ mqtt.Client, m mqtt.Message) {
		select {
		case s.msgs <- m.Payload():
		default:
			s.log.Warn("mqtt_buffer_full_dropping", "topic", topic)
		}
	})
	if token.Wait() && token.Error() != nil {
		c.Disconnect(250)
		return nil, fmt.Errorf("mqtt subscribe %s: %w", topic, token.Error())
	}
	s.log.Info("mqtt_subscribed", "topic", topic)
	return s, nil
}

// Next blocks until a payload arrives or ctx is done.
func (s *Subscriber) Next(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-s.msgs:
		return payload, nil
	}
}

func (s *Subscriber) Close() error {
	s.client.Unsubscribe(s.topic)
	s.client.Disconnect(250)
	return nil
}
