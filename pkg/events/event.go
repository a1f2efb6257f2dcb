package events

import (
	"slices"
	"time"
)

// Event is a lab domain event as it travels over the bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

const (
	SampleStatusChanged  = "SAMPLE_STATUS_CHANGED"
	CalibrationCompleted = "CALIBRATION_COMPLETED"
	OCRAnalyzed          = "OCR_ANALYZED"
	InsightsRegenerated  = "INSIGHTS_REGENERATED"
)

var Types = []string{SampleStatusChanged, CalibrationCompleted, OCRAnalyzed, InsightsRegenerated}

func Known(eventType string) bool {
	return slices.Contains(Types, eventType)
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

// New stamps the event in UTC; a nil payload becomes an empty one.
func New(eventType string, data map[string]interface{}, at time.Time) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at.UTC()}
}

func (e BaseEvent) EventType() string               { return e.Type }
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }
func (e BaseEvent) Timestamp() time.Time            { return e.OccurredAt }
