package nats

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"intellilab-gc-be/pkg/events"
)

const (
	StreamName    = "LAB_EVENTS"
	SubjectPrefix = "lab."
)

// Subject maps an event type to its subject, e.g. SAMPLE_STATUS_CHANGED -> lab.sample_status_changed.
func Subject(eventType string) string {
	return SubjectPrefix + strings.ToLower(eventType)
}

type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func encode(e events.Event) ([]byte, error) {
	data, err := json.Marshal(envelope{Type: e.EventType(), OccurredAt: e.Timestamp().UTC(), Data: e.Payload()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event %s: %w", e.EventType(), err)
	}
	return data, nil
}

func decode(raw []byte) (events.BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return events.BaseEvent{}, err
	}
	return events.New(env.Type, env.Data, env.OccurredAt), nil
}
