package service

import (
	"context"
	"errors"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/metrics"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/pkg/events"

	"github.com/robfig/cron/v3"
)

const (
	KPISnapshotKey    = "intellilab:kpis"
	KPIRefreshDurable = "dashboard-kpi-refresh"
	recentLimit       = 5
	refreshTimeout    = 30 * time.Second
)

// SnapshotCache is the in-process snapshot layer.
type SnapshotCache interface {
	Save(key string, snapshot *dto.KPISnapshot)
	Get(key string) (*dto.KPISnapshot, bool)
}

// SharedSnapshotStore is the cross-instance snapshot layer (Redis).
type SharedSnapshotStore interface {
	Save(ctx context.Context, key string, snapshot *dto.KPISnapshot) error
	Get(ctx context.Context, key string) (*dto.KPISnapshot, error)
}

type IDashboardService interface {
	// KPIs serves memory, then the shared store, then a fresh refresh.
	KPIs(ctx context.Context) (*dto.KPISnapshot, error)
	// Refresh recomputes through the same guard as the schedule. While a
	// refresh is running it returns a conflict instead of a snapshot.
	Refresh(ctx context.Context) (*dto.KPISnapshot, error)
	HandleEvent(ctx context.Context, event events.Event) error
	Start(schedule string) error
	Stop()
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
	insights   IInsightService
	memory     SnapshotCache
	shared     SharedSnapshotStore
	hub        Broadcaster
	metrics    *metrics.Metrics
	logger     logger.ILogger

	job       cron.Job
	scheduler *cron.Cron

	// running holds a token while a refresh computes.
	running chan struct{}
}

func NewDashboardService(
	uowFactory unitofwork.RepositoryFactory,
	insights IInsightService,
	memory SnapshotCache,
	shared SharedSnapshotStore,
	hub Broadcaster,
	m *metrics.Metrics,
	log logger.ILogger,
) IDashboardService {
	s := &dashboardService{
		uowFactory: uowFactory,
		insights:   insights,
		memory:     memory,
		shared:     shared,
		hub:        hub,
		metrics:    m,
		logger:     log,
		running:    make(chan struct{}, 1),
	}
	s.job = cron.NewChain(cron.SkipIfStillRunning(cronLogger{log: log})).Then(cron.FuncJob(s.scheduledRefresh))
	return s
}

// cronLogger routes cron's logr-style calls into the ILogger.
type cronLogger struct {
	log logger.ILogger
}

func kv(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			out[k] = keysAndValues[i+1]
		}
	}
	return out
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("DASHBOARD", msg, kv(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	details := kv(keysAndValues)
	details["error"] = err.Error()
	l.log.Error("DASHBOARD", msg, details)
}

var errRefreshRunning = serverutils.NewConflict("KPI refresh already in progress")

func (s *dashboardService) refresh() (*dto.KPISnapshot, error) {
	select {
	case s.running <- struct{}{}:
		defer func() { <-s.running }()
	default:
		return nil, errRefreshRunning
	}
	return s.runRefresh()
}

func (s *dashboardService) scheduledRefresh() {
	if _, err := s.refresh(); errors.Is(err, errRefreshRunning) {
		s.logger.Debug("DASHBOARD", "Scheduled KPI refresh skipped, one is already running", nil)
	}
}

func (s *dashboardService) runRefresh() (*dto.KPISnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	snapshot, err := s.compute(ctx)
	s.metrics.ObserveDashboardRefresh(time.Since(start))
	if err != nil {
		s.logger.Error("DASHBOARD", "KPI refresh failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.memory.Save(KPISnapshotKey, snapshot)
	if s.shared != nil {
		if err := s.shared.Save(ctx, KPISnapshotKey, snapshot); err != nil {
			s.logger.Warn("DASHBOARD", "Failed to share KPI snapshot", map[string]interface{}{"error": err.Error()})
		}
	}
	if s.hub != nil {
		s.hub.Broadcast(MessageKPIs, snapshot)
	}
	return snapshot, nil
}

func (s *dashboardService) compute(ctx context.Context) (*dto.KPISnapshot, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	snapshot := &dto.KPISnapshot{GeneratedAt: time.Now()}
	var err error

	if snapshot.Instruments, err = uow.InstrumentRepository().Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.Methods, err = uow.MethodRepository().Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.Compounds, err = uow.CompoundRepository().Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.SamplesByStatus, err = uow.SampleRepository().CountByStatus(ctx); err != nil {
		return nil, err
	}
	if snapshot.SamplesByPriority, err = uow.SampleRepository().CountByPriority(ctx); err != nil {
		return nil, err
	}
	if snapshot.PendingSamples, err = uow.SampleRepository().Count(ctx, specification.StatusNot{Status: dto.SampleStatusComplete}); err != nil {
		return nil, err
	}

	latest, err := uow.MaintenanceRepository().FindAll(ctx, specification.LatestMaintenancePerInstrument{})
	if err != nil {
		return nil, err
	}
	if len(latest) > 0 {
		sum := 0.0
		for _, r := range latest {
			sum += r.HealthScore
		}
		snapshot.AvgInstrumentHealth = sum / float64(len(latest))
	}

	if s.insights != nil {
		snapshot.HighPriorityInsights = s.insights.HighPriorityCount()
	}

	samples, err := uow.SampleRepository().FindAll(ctx,
		specification.OrderBy{Field: "received_at", Desc: true},
		specification.Pagination{Limit: recentLimit},
	)
	if err != nil {
		return nil, err
	}
	snapshot.RecentSamples = make([]dto.RecentSample, 0, len(samples))
	for _, sm := range samples {
		snapshot.RecentSamples = append(snapshot.RecentSamples, dto.RecentSample{
			Id:         sm.Id,
			SampleCode: sm.SampleCode,
			Name:       sm.Name,
			Status:     sm.Status,
			ReceivedAt: sm.ReceivedAt,
		})
	}

	calibrations, err := uow.CalibrationRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: recentLimit},
	)
	if err != nil {
		return nil, err
	}
	snapshot.RecentCalibrations = make([]dto.RecentCalibration, 0, len(calibrations))
	for _, c := range calibrations {
		snapshot.RecentCalibrations = append(snapshot.RecentCalibrations, dto.RecentCalibration{
			Id:             c.Id,
			Analyte:        c.Analyte,
			Method:         c.Method,
			DetectionLimit: c.DetectionLimit,
			RSquared:       c.RSquared,
			CreatedAt:      c.CreatedAt,
		})
	}

	return snapshot, nil
}

func (s *dashboardService) KPIs(ctx context.Context) (*dto.KPISnapshot, error) {
	if snapshot, ok := s.memory.Get(KPISnapshotKey); ok {
		return snapshot, nil
	}
	if s.shared != nil {
		snapshot, err := s.shared.Get(ctx, KPISnapshotKey)
		if err != nil {
			s.logger.Warn("DASHBOARD", "Shared KPI snapshot unavailable", map[string]interface{}{"error": err.Error()})
		} else if snapshot != nil {
			s.memory.Save(KPISnapshotKey, snapshot)
			return snapshot, nil
		}
	}
	return s.Refresh(ctx)
}

func (s *dashboardService) Refresh(_ context.Context) (*dto.KPISnapshot, error) {
	return s.refresh()
}

// HandleEvent refreshes the KPIs when a sample changes status.
func (s *dashboardService) HandleEvent(ctx context.Context, event events.Event) error {
	s.logger.Debug("DASHBOARD", "Refreshing KPIs after event", map[string]interface{}{"type": event.EventType()})
	_, err := s.Refresh(ctx)
	return err
}

func (s *dashboardService) Start(schedule string) error {
	s.scheduler = cron.New(cron.WithChain(cron.Recover(cronLogger{log: s.logger})))
	if _, err := s.scheduler.AddJob(schedule, s.job); err != nil {
		return err
	}
	s.scheduler.Start()
	s.logger.Info("DASHBOARD", "KPI refresher started", map[string]interface{}{"schedule": schedule})
	return nil
}

func (s *dashboardService) Stop() {
	if s.scheduler == nil {
		return
	}
	<-s.scheduler.Stop().Done()
}
