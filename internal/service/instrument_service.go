package service

import (
	"context"
	"strings"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultInstrumentStatus = "operational"
	defaultMaintenanceLevel = "routine"
)

type IInstrumentService interface {
	GetAll(ctx context.Context, query dto.ListQuery) (*dto.PageResponse[dto.InstrumentResponse], error)
	Create(ctx context.Context, req *dto.CreateInstrumentRequest) (*dto.InstrumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.InstrumentResponse, error)
	Update(ctx context.Context, req *dto.UpdateInstrumentRequest) (*dto.InstrumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetMaintenance(ctx context.Context, instrumentId uuid.UUID) ([]dto.MaintenanceResponse, error)
	AddMaintenance(ctx context.Context, req *dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error)
}

type instrumentService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	feed       IInsightFeed
}

func NewInstrumentService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, feed IInsightFeed) IInstrumentService {
	return &instrumentService{uowFactory: uowFactory, audit: audit, feed: feed}
}

func toInstrumentResponse(i *entity.Instrument) dto.InstrumentResponse {
	return dto.InstrumentResponse{
		Id:               i.Id,
		Name:             i.Name,
		Model:            i.Model,
		SerialNumber:     i.SerialNumber,
		Location:         i.Location,
		Status:           i.Status,
		MaintenanceLevel: i.MaintenanceLevel,
		InstalledAt:      i.InstalledAt,
		LastCalibratedAt: i.LastCalibratedAt,
		Notes:            i.Notes,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func (s *instrumentService) GetAll(ctx context.Context, query dto.ListQuery) (*dto.PageResponse[dto.InstrumentResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	search := specification.Search{Query: query.Search, Fields: []string{"name", "model", "serial_number", "location"}}

	total, err := uow.InstrumentRepository().Count(ctx, search)
	if err != nil {
		return nil, err
	}
	instruments, err := uow.InstrumentRepository().FindAll(ctx,
		search,
		specification.OrderBy{Field: "name"},
		specification.Page(query.Page, query.Limit),
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.InstrumentResponse, 0, len(instruments))
	for _, i := range instruments {
		items = append(items, toInstrumentResponse(i))
	}
	return &dto.PageResponse[dto.InstrumentResponse]{Items: items, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

func (s *instrumentService) ensureSerialFree(ctx context.Context, uow unitofwork.UnitOfWork, serial string, self uuid.UUID) error {
	specs := []specification.Specification{specification.BySerialNumber{SerialNumber: serial}}
	if self != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: self})
	}
	n, err := uow.InstrumentRepository().Count(ctx, specs...)
	if err != nil {
		return err
	}
	if n > 0 {
		return serverutils.NewConflict("Serial number " + serial + " is already registered")
	}
	return nil
}

func (s *instrumentService) Create(ctx context.Context, req *dto.CreateInstrumentRequest) (*dto.InstrumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	serial := strings.TrimSpace(req.SerialNumber)

	if err := s.ensureSerialFree(ctx, uow, serial, uuid.Nil); err != nil {
		return nil, err
	}

	instrument := entity.Instrument{
		Id:               uuid.New(),
		Name:             req.Name,
		Model:            req.Model,
		SerialNumber:     serial,
		Location:         req.Location,
		Status:           orDefault(req.Status, defaultInstrumentStatus),
		MaintenanceLevel: orDefault(req.MaintenanceLevel, defaultMaintenanceLevel),
		InstalledAt:      req.InstalledAt,
		LastCalibratedAt: req.LastCalibratedAt,
		Notes:            req.Notes,
		CreatedAt:        time.Now(),
	}
	if err := uow.InstrumentRepository().Create(ctx, &instrument); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "instrument", instrument.Id.String(), AuditCreate, map[string]interface{}{"serial_number": serial})
	res := toInstrumentResponse(&instrument)
	return &res, nil
}

func (s *instrumentService) Show(ctx context.Context, id uuid.UUID) (*dto.InstrumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	instrument, err := uow.InstrumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if instrument == nil {
		return nil, serverutils.NewNotFound("Instrument")
	}
	res := toInstrumentResponse(instrument)
	return &res, nil
}

func (s *instrumentService) Update(ctx context.Context, req *dto.UpdateInstrumentRequest) (*dto.InstrumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	instrument, err := uow.InstrumentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if instrument == nil {
		return nil, serverutils.NewNotFound("Instrument")
	}

	serial := strings.TrimSpace(req.SerialNumber)
	if serial != instrument.SerialNumber {
		if err := s.ensureSerialFree(ctx, uow, serial, instrument.Id); err != nil {
			return nil, err
		}
	}

	instrument.Name = req.Name
	instrument.Model = req.Model
	instrument.SerialNumber = serial
	instrument.Location = req.Location
	instrument.Status = orDefault(req.Status, instrument.Status)
	instrument.MaintenanceLevel = orDefault(req.MaintenanceLevel, instrument.MaintenanceLevel)
	instrument.InstalledAt = req.InstalledAt
	instrument.LastCalibratedAt = req.LastCalibratedAt
	instrument.Notes = req.Notes
	instrument.UpdatedAt = nowPtr()

	if err := uow.InstrumentRepository().Update(ctx, instrument); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "instrument", instrument.Id.String(), AuditUpdate, nil)
	res := toInstrumentResponse(instrument)
	return &res, nil
}

func (s *instrumentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.InstrumentRepository().Delete(ctx, id); err != nil {
		return notFoundOr(err, "Instrument")
	}
	s.audit.Record(ctx, "instrument", id.String(), AuditDelete, nil)
	s.feed.FeedRemoval(ctx, InsightKindInstrument, id.String())
	return nil
}

func toMaintenanceResponse(r *entity.MaintenanceRecord) dto.MaintenanceResponse {
	return dto.MaintenanceResponse{
		Id:           r.Id,
		InstrumentId: r.InstrumentId,
		Component:    r.Component,
		HealthScore:  r.HealthScore,
		Cost:         r.Cost,
		Technician:   r.Technician,
		Notes:        r.Notes,
		PerformedAt:  r.PerformedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *instrumentService) GetMaintenance(ctx context.Context, instrumentId uuid.UUID) ([]dto.MaintenanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.MaintenanceRepository().FindAll(ctx,
		specification.ByInstrumentID{InstrumentID: instrumentId},
		specification.OrderBy{Field: "performed_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	res := make([]dto.MaintenanceResponse, 0, len(records))
	for _, r := range records {
		res = append(res, toMaintenanceResponse(r))
	}
	return res, nil
}

func (s *instrumentService) AddMaintenance(ctx context.Context, req *dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	instrument, err := uow.InstrumentRepository().FindOne(ctx, specification.ByID{ID: req.InstrumentId})
	if err != nil {
		return nil, err
	}
	if instrument == nil {
		return nil, serverutils.NewNotFound("Instrument")
	}

	now := time.Now()
	performedAt := now
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}
	record := entity.MaintenanceRecord{
		Id:           uuid.New(),
		InstrumentId: instrument.Id,
		Component:    req.Component,
		HealthScore:  req.HealthScore,
		Cost:         req.Cost,
		Technician:   req.Technician,
		Notes:        req.Notes,
		PerformedAt:  performedAt,
		CreatedAt:    now,
	}
	if err := uow.MaintenanceRepository().Create(ctx, &record); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "maintenance", record.Id.String(), AuditCreate, map[string]interface{}{
		"instrument_id": instrument.Id.String(),
		"component":     record.Component,
		"health_score":  record.HealthScore,
	})

	s.feed.FeedMaintenance(ctx, dto.AddMaintenanceDataRequest{
		ID:           record.Id.String(),
		InstrumentID: instrument.Id.String(),
		Component:    record.Component,
		HealthScore:  record.HealthScore,
	})
	if record.Cost > 0 {
		s.feed.FeedCost(ctx, dto.AddCostDataRequest{
			ID:       record.Id.String(),
			Category: "maintenance",
			Amount:   record.Cost,
		})
	}

	res := toMaintenanceResponse(&record)
	return &res, nil
}
