package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewNormalizes(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	e := New(OCRAnalyzed, nil, at)

	assert.Equal(t, OCRAnalyzed, e.EventType())
	assert.NotNil(t, e.Payload())
	assert.Equal(t, time.UTC, e.Timestamp().Location())
	assert.True(t, e.Timestamp().Equal(at))
}

func TestKnown(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, Known(typ), typ)
	}
	assert.False(t, Known("NOTE_CREATED"))
	assert.False(t, Known(""))
}
