package service

import (
	"context"
	"testing"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/pkg/costcalc"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostCalculatePersistsAndFeedsInsights(t *testing.T) {
	f := newFakeFactory()
	feed := &recordingFeed{}
	svc := NewCostService(f, NewAuditService(f, logger.NewNopLogger()), feed)
	methodID := uuid.New()

	res, err := svc.Calculate(context.Background(), &dto.CalculateCostRequest{
		Label:    "VOC batch",
		MethodId: &methodID,
		Input: costcalc.Input{
			SampleCount:           10,
			AnalysisTimeMin:       20,
			LaborRatePerHour:      60,
			LaborMinutesPerSample: 5,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "analysis", res.Category)
	assert.Equal(t, 50.0, res.Breakdown.Labor)
	assert.Equal(t, res.Breakdown.Total, f.uow.costs.items[0].Total)

	require.Len(t, feed.costs, 1)
	assert.Equal(t, methodID.String(), feed.costs[0].MethodID)
	assert.Equal(t, res.Breakdown.PerSample, feed.costs[0].CostPerSample)
	assert.Equal(t, []string{"cost:calculate"}, f.uow.audits.actions())
}

func TestCostCalculateRejectsNegativeInput(t *testing.T) {
	f := newFakeFactory()
	feed := &recordingFeed{}
	svc := NewCostService(f, NewAuditService(f, logger.NewNopLogger()), feed)

	_, err := svc.Calculate(context.Background(), &dto.CalculateCostRequest{Input: costcalc.Input{SampleCount: 1, GasPricePerL: -2}})
	assertAppCode(t, err, 422)
	appErr, _ := serverutils.AsAppError(err)
	assert.Contains(t, appErr.Details, "gas_price_per_l")

	assert.Empty(t, f.uow.costs.items)
	assert.Empty(t, feed.costs)
}

func TestCostDeleteMissing(t *testing.T) {
	f := newFakeFactory()
	svc := NewCostService(f, NewAuditService(f, logger.NewNopLogger()), &recordingFeed{})
	assertAppCode(t, svc.Delete(context.Background(), uuid.New()), 404)
}
