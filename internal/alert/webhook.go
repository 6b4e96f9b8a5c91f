package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
)

type webhookPayload struct {
	Event       string  `json:"event"` // stall | significant_change
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperatureF"`
	DeltaF      float64 `json:"deltaF,omitempty"`
	FromF       float64 `json:"fromF,omitempty"`
	ToF         float64 `json:"toF,omitempty"`
}

// WebhookSink posts derived events as JSON to an HTTP endpoint. Delivery
// failures are logged and dropped; the stream must keep flowing.
type WebhookSink struct {
	url    string
	client *http.Client
	log    *slog.Logger
}

// WebhookOption configures the sink.
type WebhookOption func(*WebhookSink)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(s *WebhookSink) {
		if client != nil {
			s.client = client
		}
	}
}

func NewWebhookSink(url string, log *slog.Logger, opts ...WebhookOption) (*WebhookSink, error) {
	if url == "" {
		return nil, errors.New("webhook sink: empty url")
	}
	s := &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With(slog.String("component", "alert-webhook")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *WebhookSink) StallDetected(ctx context.Context, o stream.Outcome) {
	temp := 0.0
	if o.Reading.TemperatureF != nil {
		temp = *o.Reading.TemperatureF
	}
	s.post(ctx, webhookPayload{Event: "stall", Timestamp: o.Reading.Timestamp, Temperature: temp})
}

func (s *WebhookSink) SignificantChange(ctx context.Context, o stream.Outcome) {
	if o.Change == nil {
		return
	}
	temp := 0.0
	if o.Reading.TemperatureF != nil {
		temp = *o.Reading.TemperatureF
	}
	s.post(ctx, webhookPayload{
		Event:       "significant_change",
		Timestamp:   o.Reading.Timestamp,
		Temperature: temp,
		DeltaF:      o.Change.DeltaF,
		FromF:       o.Change.FromF,
		ToF:         o.Change.ToF,
	})
}

func (s *WebhookSink) post(ctx context.Context, payload webhookPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("webhook_marshal", "err", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		s.log.Error("webhook_request", "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("webhook_send_failed", "err", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		s.log.Warn("webhook_rejected", "status", resp.StatusCode, "event", payload.Event)
		return
	}
}
