package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/mailer"
	"intellilab-gc-be/internal/pkg/metrics"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/pkg/insight"
	"intellilab-gc-be/pkg/labevents"

	"github.com/google/uuid"
)

// Broadcaster pushes a typed message to every live-feed client.
type Broadcaster interface {
	Broadcast(messageType string, data interface{})
}

const (
	MessageInsights = "insights"
	MessageKPIs     = "kpis"
)

type IInsightService interface {
	Snapshot() insight.Snapshot
	HighPriorityCount() int
	// Submit* assign an id when missing and hand the data to the insight topic.
	SubmitMethod(ctx context.Context, req dto.AddMethodDataRequest) string
	SubmitMaintenance(ctx context.Context, req dto.AddMaintenanceDataRequest) string
	SubmitCost(ctx context.Context, req dto.AddCostDataRequest) string
	// Ingest applies one message from the insight topic to the aggregator:
	// an upsert, or a removal when RemovedID is set.
	Ingest(msg dto.InsightInputMessage) error
	// Warm loads persisted methods, maintenance and costs and regenerates once.
	Warm(ctx context.Context) error
	Close()
}

type insightService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *insight.Aggregator
	feed       IInsightFeed
	events     labevents.Publisher
	metrics    *metrics.Metrics
	mailer     mailer.IEmailService
	alertTo    string
	hub        Broadcaster
	logger     logger.ILogger

	warming   atomic.Bool
	alertedMu sync.Mutex
	alerted   map[string]struct{}
}

func NewInsightService(
	uowFactory unitofwork.RepositoryFactory,
	aggregator *insight.Aggregator,
	feed IInsightFeed,
	events labevents.Publisher,
	m *metrics.Metrics,
	mail mailer.IEmailService,
	alertTo string,
	hub Broadcaster,
	log logger.ILogger,
) IInsightService {
	s := &insightService{
		uowFactory: uowFactory,
		aggregator: aggregator,
		feed:       feed,
		events:     events,
		metrics:    m,
		mailer:     mail,
		alertTo:    alertTo,
		hub:        hub,
		logger:     log,
		alerted:    make(map[string]struct{}),
	}
	aggregator.OnRegenerate(s.onRegenerate)
	return s
}

func (s *insightService) Snapshot() insight.Snapshot {
	return s.aggregator.Snapshot()
}

func (s *insightService) HighPriorityCount() int {
	return s.aggregator.CountByPriority(insight.PriorityHigh)
}

func (s *insightService) onRegenerate(cs []insight.Correlation) {
	high, medium := 0, 0
	var fresh []insight.Correlation

	s.alertedMu.Lock()
	for _, c := range cs {
		switch c.Priority {
		case insight.PriorityHigh:
			high++
			if _, seen := s.alerted[c.ID]; !seen {
				s.alerted[c.ID] = struct{}{}
				fresh = append(fresh, c)
			}
		case insight.PriorityMedium:
			medium++
		}
	}
	s.alertedMu.Unlock()

	s.metrics.ObserveInsights(high, medium)
	s.events.PublishInsightsRegenerated(context.Background(), len(cs), high, medium)
	if s.hub != nil {
		s.hub.Broadcast(MessageInsights, s.aggregator.Snapshot())
	}

	if len(fresh) == 0 || s.warming.Load() || s.mailer == nil {
		return
	}
	if err := s.mailer.SendInsightAlert(s.alertTo, fresh); err != nil {
		s.logger.Error("INSIGHT", "Failed to send insight alert", map[string]interface{}{
			"count": len(fresh),
			"error": err.Error(),
		})
	}
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func (s *insightService) SubmitMethod(ctx context.Context, req dto.AddMethodDataRequest) string {
	req.ID = idOrNew(req.ID)
	s.feed.FeedMethod(ctx, req)
	return req.ID
}

func (s *insightService) SubmitMaintenance(ctx context.Context, req dto.AddMaintenanceDataRequest) string {
	req.ID = idOrNew(req.ID)
	s.feed.FeedMaintenance(ctx, req)
	return req.ID
}

func (s *insightService) SubmitCost(ctx context.Context, req dto.AddCostDataRequest) string {
	req.ID = idOrNew(req.ID)
	s.feed.FeedCost(ctx, req)
	return req.ID
}

func (s *insightService) remove(kind, id string) error {
	switch kind {
	case InsightKindMethod:
		s.aggregator.RemoveMethod(id)
	case InsightKindMaintenance:
		s.aggregator.RemoveMaintenance(id)
	case InsightKindCost:
		s.aggregator.RemoveCost(id)
	case InsightKindInstrument:
		s.aggregator.RemoveInstrument(id)
	default:
		return fmt.Errorf("insight input: cannot remove kind %q", kind)
	}
	return nil
}

func (s *insightService) Ingest(msg dto.InsightInputMessage) error {
	if msg.RemovedID != "" {
		return s.remove(msg.Kind, msg.RemovedID)
	}
	switch {
	case msg.Kind == InsightKindMethod && msg.Method != nil:
		m := msg.Method
		s.aggregator.AddMethod(insight.MethodData{
			ID:                idOrNew(m.ID),
			Name:              m.Name,
			ColumnTemperature: m.ColumnTemperature,
			AnalysisTime:      m.AnalysisTime,
			CarrierFlow:       m.CarrierFlow,
		})
	case msg.Kind == InsightKindMaintenance && msg.Maintenance != nil:
		r := msg.Maintenance
		s.aggregator.AddMaintenance(insight.MaintenanceData{
			ID:           idOrNew(r.ID),
			InstrumentID: r.InstrumentID,
			Component:    r.Component,
			HealthScore:  r.HealthScore,
		})
	case msg.Kind == InsightKindCost && msg.Cost != nil:
		c := msg.Cost
		s.aggregator.AddCost(insight.CostData{
			ID:            idOrNew(c.ID),
			Category:      c.Category,
			Amount:        c.Amount,
			CostPerSample: c.CostPerSample,
			MethodID:      c.MethodID,
		})
	default:
		return fmt.Errorf("insight input: unsupported kind %q", msg.Kind)
	}
	return nil
}

func (s *insightService) Warm(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	methods, err := uow.MethodRepository().FindAll(ctx)
	if err != nil {
		return err
	}
	records, err := uow.MaintenanceRepository().FindAll(ctx, specification.OfActiveInstrument{}, specification.OrderBy{Field: "performed_at", Desc: true})
	if err != nil {
		return err
	}
	costs, err := uow.CostRepository().FindAll(ctx)
	if err != nil {
		return err
	}

	methodData := make([]insight.MethodData, 0, len(methods))
	for _, m := range methods {
		methodData = append(methodData, insight.MethodData{
			ID:                m.Id.String(),
			Name:              m.Name,
			ColumnTemperature: m.ColumnTemperature,
			AnalysisTime:      m.AnalysisTimeMin,
			CarrierFlow:       m.Params.Carrier.FlowMLMin,
		})
	}

	maintenanceData := make([]insight.MaintenanceData, 0, len(records))
	costData := make([]insight.CostData, 0, len(costs)+len(records))
	for _, r := range records {
		maintenanceData = append(maintenanceData, insight.MaintenanceData{
			ID:           r.Id.String(),
			InstrumentID: r.InstrumentId.String(),
			Component:    r.Component,
			HealthScore:  r.HealthScore,
		})
		if r.Cost > 0 {
			costData = append(costData, insight.CostData{ID: r.Id.String(), Category: "maintenance", Amount: r.Cost})
		}
	}
	for _, c := range costs {
		data := insight.CostData{
			ID:            c.Id.String(),
			Category:      c.Category,
			Amount:        c.Total,
			CostPerSample: c.PerSample,
		}
		if c.MethodId != nil {
			data.MethodID = c.MethodId.String()
		}
		costData = append(costData, data)
	}

	s.warming.Store(true)
	defer s.warming.Store(false)
	result := s.aggregator.Load(methodData, maintenanceData, costData)

	s.logger.Info("INSIGHT", "Correlation engine warmed", map[string]interface{}{
		"methods":      len(methodData),
		"maintenance":  len(maintenanceData),
		"costs":        len(costData),
		"correlations": len(result),
	})
	return nil
}

func (s *insightService) Close() {
	s.aggregator.Close()
}
