package service

import (
	"context"
	"testing"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/pkg/calibration"
	"intellilab-gc-be/pkg/plot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noisyCurve = []dto.CalibrationPointRequest{
	{Concentration: 1, Area: 10.4},
	{Concentration: 2, Area: 19.7},
	{Concentration: 5, Area: 50.9},
	{Concentration: 10, Area: 99.2},
	{Concentration: 20, Area: 200.6},
}

func newTestCalibrationService() (ICalibrationService, *fakeFactory, *recordingEvents) {
	f := newFakeFactory()
	events := &recordingEvents{}
	return NewCalibrationService(f, NewAuditService(f, logger.NewNopLogger()), events, nil), f, events
}

func TestDetectionLimitPersistsResult(t *testing.T) {
	svc, f, events := newTestCalibrationService()
	ctx := serverutils.WithActor(context.Background(), "analyst")

	res, err := svc.DetectionLimit(ctx, &dto.DetectionLimitRequest{Analyte: "benzene", Method: "10sigma", Points: noisyCurve})
	require.NoError(t, err)

	assert.Equal(t, "10sigma", res.Method)
	assert.Greater(t, res.Slope, 0.0)
	assert.Greater(t, res.Loq, res.Lod)
	assert.Equal(t, res.Loq, res.DetectionLimit)
	assert.True(t, res.Validation.IsValid)
	assert.Equal(t, 5, res.PointCount)

	require.Len(t, f.uow.calibrations.items, 1)
	assert.Equal(t, "analyst", f.uow.calibrations.items[0].CreatedBy)
	assert.Equal(t, []uuid.UUID{res.Id}, events.calibrations)
	assert.Contains(t, f.uow.audits.actions(), "calibration:calculate")

	shown, err := svc.Show(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, res.DetectionLimit, shown.DetectionLimit)
	assert.NotNil(t, shown.Warnings)

	png, err := svc.Plot(ctx, res.Id, plot.FormatPNG)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestDetectionLimitDefaultsToThreeSigma(t *testing.T) {
	svc, _, _ := newTestCalibrationService()

	res, err := svc.DetectionLimit(context.Background(), &dto.DetectionLimitRequest{Points: noisyCurve})
	require.NoError(t, err)
	assert.Equal(t, "3sigma", res.Method)
	assert.Equal(t, res.Lod, res.DetectionLimit)
}

func TestDetectionLimitRejectsInvalidData(t *testing.T) {
	svc, f, events := newTestCalibrationService()
	ctx := context.Background()

	_, err := svc.DetectionLimit(ctx, &dto.DetectionLimitRequest{Points: noisyCurve[:2]})
	assertAppCode(t, err, 422)
	appErr, _ := serverutils.AsAppError(err)
	validation, ok := appErr.Details.(calibration.Validation)
	require.True(t, ok)
	assert.False(t, validation.IsValid)

	falling := []dto.CalibrationPointRequest{{Concentration: 1, Area: 100}, {Concentration: 2, Area: 60}, {Concentration: 4, Area: 20}}
	_, err = svc.DetectionLimit(ctx, &dto.DetectionLimitRequest{Points: falling})
	assertAppCode(t, err, 422)

	_, err = svc.DetectionLimit(ctx, &dto.DetectionLimitRequest{Method: "5sigma", Points: noisyCurve})
	assertAppCode(t, err, 400)

	assert.Empty(t, f.uow.calibrations.items)
	assert.Empty(t, events.calibrations)
}

func TestCalibrationShowMissing(t *testing.T) {
	svc, _, _ := newTestCalibrationService()
	_, err := svc.Show(context.Background(), uuid.New())
	assertAppCode(t, err, 404)
}
