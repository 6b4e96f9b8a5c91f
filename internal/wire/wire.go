// Package wire converts between broker payloads and core readings. It is
// deliberately tolerant on the inbound side: temperatures may arrive as
// JSON numbers or numeric strings, timestamps are passed through opaque,
// and missing fields survive decoding so the core can report them as
// invalid readings instead of this layer guessing defaults.
package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
)

// Message is the JSON envelope the producer publishes per CSV row.
type Message struct {
	ID             string  `json:"id"`
	Timestamp      string  `json:"timestamp"`
	Temperature    float64 `json:"temperature"`
	HistoricalFact string  `json:"historical_fact,omitempty"`
}

// Encode marshals a producer message.
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// rawReading accepts loose field types from the wire.
type rawReading struct {
	Timestamp   any `json:"timestamp"`
	Temperature any `json:"temperature"`
	Fact        any `json:"historical_fact"`
}

// Envelope is a fully decoded broker payload: the core reading plus the
// flavor fields the analysis ignores.
type Envelope struct {
	Reading stream.Reading
	Fact    string
}

// DecodeEnvelope parses a broker payload. Only payloads that are not JSON
// objects at all are an error here; missing or null fields decode to an
// absent temperature / empty timestamp and are left for the processor to
// classify.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var raw rawReading
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Envelope{}, fmt.Errorf("decode reading: %w", err)
	}
	e := Envelope{Reading: stream.Reading{Timestamp: toTimestamp(raw.Timestamp)}}
	if s, ok := raw.Fact.(string); ok {
		e.Fact = strings.TrimSpace(s)
	}
	if v, ok := toFloat(raw.Temperature); ok {
		e.Reading.TemperatureF = &v
	}
	return e, nil
}

// DecodeReading parses a broker payload into just the core Reading.
func DecodeReading(payload []byte) (stream.Reading, error) {
	e, err := DecodeEnvelope(payload)
	if err != nil {
		return stream.Reading{}, err
	}
	return e.Reading, nil
}

func toTimestamp(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// unix seconds or millis from less careful producers; keep the
		// original digits rather than reformatting
		return strconv.FormatInt(int64(t), 10)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// toFloat handles the types json.Unmarshal into any can actually produce
// for a numeric-ish field: float64, json.Number and string.
func toFloat(a any) (float64, bool) {
	switch t := a.(type) {
	case float64:
		return t, true
	case json.Number:
		v, err := t.Float64()
		return v, err == nil
	case string:
		if v, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return v, true
		}
		return 0, false
	default:
		return 0, false
	}
}
