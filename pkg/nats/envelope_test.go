package nats

import (
	"testing"
	"time"

	"intellilab-gc-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "lab.sample_status_changed", Subject(events.SampleStatusChanged))
	assert.Equal(t, "lab.ocr_analyzed", Subject(events.OCRAnalyzed))
}

func TestEnvelopeCarriesTypeAndTime(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, err := encode(events.BaseEvent{
		Type:       events.CalibrationCompleted,
		Data:       map[string]interface{}{"lod": 0.12},
		OccurredAt: at,
	})
	require.NoError(t, err)

	got, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, events.CalibrationCompleted, got.EventType())
	assert.True(t, at.Equal(got.Timestamp()))
	assert.Equal(t, 0.12, got.Payload()["lod"])

	_, err = decode([]byte("{"))
	assert.Error(t, err)
}
