package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OCR_MAX_UPLOAD_BYTES", "")
	t.Setenv("INSIGHT_DEBOUNCE", "")
	t.Setenv("DB_SLOW_QUERY", "")
	t.Setenv("OTEL_SAMPLE_RATIO", "")

	cfg := Load()

	assert.Equal(t, int64(10*1024*1024), cfg.OCR.MaxUploadBytes)
	assert.Equal(t, 100*time.Millisecond, cfg.Insight.Debounce)
	assert.Equal(t, 250.0, cfg.Insight.InjectorTemperature)
	assert.Equal(t, 70.0, cfg.Insight.InjectorHealth)
	assert.Equal(t, "@every 30s", cfg.Dashboard.RefreshSchedule)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowQuery)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("INSIGHT_DEBOUNCE", "250ms")
	t.Setenv("INSIGHT_INJECTOR_TEMPERATURE", "275.5")
	t.Setenv("BLOB_S3_PATH_STYLE", "true")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, 250*time.Millisecond, cfg.Insight.Debounce)
	assert.Equal(t, 275.5, cfg.Insight.InjectorTemperature)
	assert.True(t, cfg.Blob.S3PathStyle)
	assert.Equal(t, 587, cfg.SMTP.Port)
}
