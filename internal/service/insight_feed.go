package service

import (
	"context"
	"encoding/json"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"
)

const (
	InsightKindMethod      = "method"
	InsightKindMaintenance = "maintenance"
	InsightKindCost        = "cost"
	InsightKindInstrument  = "instrument"
)

// IInsightFeed hands new lab data to the correlation engine through the
// insight topic. Feeding is best effort: failures are logged.
type IInsightFeed interface {
	FeedMethod(ctx context.Context, data dto.AddMethodDataRequest)
	FeedMaintenance(ctx context.Context, data dto.AddMaintenanceDataRequest)
	FeedCost(ctx context.Context, data dto.AddCostDataRequest)
	// FeedRemoval retracts a deleted entity so its correlations disappear.
	FeedRemoval(ctx context.Context, kind, id string)
}

type insightFeed struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewInsightFeed(publisher IPublisherService, log logger.ILogger) IInsightFeed {
	return &insightFeed{publisher: publisher, logger: log}
}

func (f *insightFeed) FeedMethod(ctx context.Context, data dto.AddMethodDataRequest) {
	f.publish(ctx, dto.InsightInputMessage{Kind: InsightKindMethod, Method: &data})
}

func (f *insightFeed) FeedMaintenance(ctx context.Context, data dto.AddMaintenanceDataRequest) {
	f.publish(ctx, dto.InsightInputMessage{Kind: InsightKindMaintenance, Maintenance: &data})
}

func (f *insightFeed) FeedCost(ctx context.Context, data dto.AddCostDataRequest) {
	f.publish(ctx, dto.InsightInputMessage{Kind: InsightKindCost, Cost: &data})
}

func (f *insightFeed) FeedRemoval(ctx context.Context, kind, id string) {
	f.publish(ctx, dto.InsightInputMessage{Kind: kind, RemovedID: id})
}

func (f *insightFeed) publish(ctx context.Context, msg dto.InsightInputMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		f.logger.Error("INSIGHT", "Failed to encode insight input", map[string]interface{}{"kind": msg.Kind, "error": err.Error()})
		return
	}
	if err := f.publisher.Publish(ctx, payload); err != nil {
		f.logger.Error("INSIGHT", "Failed to publish insight input", map[string]interface{}{"kind": msg.Kind, "error": err.Error()})
	}
}
