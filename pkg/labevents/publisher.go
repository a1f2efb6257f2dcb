// Package labevents publishes typed lab domain events. Publishing is
// best-effort: failures are logged and never returned to the caller.
package labevents

import (
	"context"
	"time"

	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/pkg/events"

	"github.com/google/uuid"
)

type Publisher interface {
	PublishSampleStatusChanged(ctx context.Context, sampleID uuid.UUID, sampleName, from, to, actor string)
	PublishCalibrationCompleted(ctx context.Context, resultID uuid.UUID, method string, lod, loq, rSquared float64)
	PublishInsightsRegenerated(ctx context.Context, total, high, medium int)
	PublishOCRAnalyzed(ctx context.Context, hash string, peakCount int, cached bool)
}

// Bus is satisfied by *nats.Publisher.
type Bus interface {
	Publish(ctx context.Context, event events.Event) error
}

type BusPublisher struct {
	bus    Bus
	logger logger.ILogger
	now    func() time.Time
}

var _ Publisher = (*BusPublisher)(nil)

// NewBusPublisher accepts a nil bus; every publish is then a no-op.
func NewBusPublisher(bus Bus, log logger.ILogger) *BusPublisher {
	return &BusPublisher{bus: bus, logger: log, now: time.Now}
}

func (p *BusPublisher) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if p == nil || p.bus == nil {
		return
	}
	evt := events.New(eventType, data, p.now())
	if err := p.bus.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *BusPublisher) PublishSampleStatusChanged(ctx context.Context, sampleID uuid.UUID, sampleName, from, to, actor string) {
	p.emit(ctx, events.SampleStatusChanged, map[string]interface{}{
		"sample_id":   sampleID.String(),
		"sample_name": sampleName,
		"from":        from,
		"to":          to,
		"actor":       actor,
		"entity_type": "sample",
		"entity_id":   sampleID.String(),
	})
}

func (p *BusPublisher) PublishCalibrationCompleted(ctx context.Context, resultID uuid.UUID, method string, lod, loq, rSquared float64) {
	p.emit(ctx, events.CalibrationCompleted, map[string]interface{}{
		"result_id":   resultID.String(),
		"method":      method,
		"lod":         lod,
		"loq":         loq,
		"r_squared":   rSquared,
		"entity_type": "calibration",
		"entity_id":   resultID.String(),
	})
}

func (p *BusPublisher) PublishInsightsRegenerated(ctx context.Context, total, high, medium int) {
	p.emit(ctx, events.InsightsRegenerated, map[string]interface{}{
		"total":  total,
		"high":   high,
		"medium": medium,
	})
}

func (p *BusPublisher) PublishOCRAnalyzed(ctx context.Context, hash string, peakCount int, cached bool) {
	p.emit(ctx, events.OCRAnalyzed, map[string]interface{}{
		"hash":        hash,
		"peak_count":  peakCount,
		"cached":      cached,
		"entity_type": "ocr_analysis",
		"entity_id":   hash,
	})
}
