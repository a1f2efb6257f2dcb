package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"intellilab-gc-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSystemLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	lines := `{"level":"INFO","timestamp":"2026-01-01T10:00:00Z","message":"sample created","module":"SAMPLE"}
{"level":"ERROR","timestamp":"2026-01-01T10:01:00Z","message":"engine down","module":"OCR","details":{"status":502}}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))

	f := newFakeFactory()
	log := logger.NewIsolatedLogger(path)
	svc := NewAdminService(NewAuditService(f, log), log)
	ctx := context.Background()

	logs, err := svc.GetSystemLogs(ctx, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "OCR", logs[0].Module)

	errorsOnly, err := svc.GetSystemLogs(ctx, 0, 10, "error")
	require.NoError(t, err)
	assert.Len(t, errorsOnly, 1)

	detail, err := svc.GetLogDetail(ctx, logs[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "engine down", detail.Message)
	assert.Equal(t, float64(502), detail.Details["status"])

	_, err = svc.GetLogDetail(ctx, "missing")
	assertAppCode(t, err, 404)
}
