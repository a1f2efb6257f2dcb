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
	"intellilab-gc-be/pkg/labevents"

	"github.com/google/uuid"
)

type ISampleService interface {
	GetAll(ctx context.Context, filter dto.SampleFilter) (*dto.PageResponse[dto.SampleResponse], error)
	Create(ctx context.Context, req *dto.CreateSampleRequest) (*dto.SampleResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SampleResponse, error)
	Update(ctx context.Context, req *dto.UpdateSampleRequest) (*dto.SampleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateStatus accepts any transition between the known statuses.
	UpdateStatus(ctx context.Context, req *dto.UpdateSampleStatusRequest) (*dto.SampleResponse, error)
}

type sampleService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	events     labevents.Publisher
}

func NewSampleService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, events labevents.Publisher) ISampleService {
	return &sampleService{uowFactory: uowFactory, audit: audit, events: events}
}

func toSampleResponse(s *entity.Sample) dto.SampleResponse {
	return dto.SampleResponse{
		Id:           s.Id,
		SampleCode:   s.SampleCode,
		Name:         s.Name,
		Matrix:       s.Matrix,
		Status:       s.Status,
		Priority:     s.Priority,
		MethodId:     s.MethodId,
		InstrumentId: s.InstrumentId,
		ReceivedAt:   s.ReceivedAt,
		CompletedAt:  s.CompletedAt,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// setStatus keeps CompletedAt in step with the status.
func setStatus(sample *entity.Sample, status string, now time.Time) {
	sample.Status = status
	if status == dto.SampleStatusComplete {
		if sample.CompletedAt == nil {
			sample.CompletedAt = &now
		}
		return
	}
	sample.CompletedAt = nil
}

func (s *sampleService) GetAll(ctx context.Context, filter dto.SampleFilter) (*dto.PageResponse[dto.SampleResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.ByStatus{Status: filter.Status},
		specification.ByPriority{Priority: filter.Priority},
		specification.Search{Query: filter.Search, Fields: []string{"sample_code", "name", "matrix"}},
	}

	total, err := uow.SampleRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}
	samples, err := uow.SampleRepository().FindAll(ctx, append(specs,
		specification.OrderBy{Field: "received_at", Desc: true},
		specification.Page(filter.Page, filter.Limit),
	)...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SampleResponse, 0, len(samples))
	for _, sm := range samples {
		items = append(items, toSampleResponse(sm))
	}
	return &dto.PageResponse[dto.SampleResponse]{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *sampleService) ensureCodeFree(ctx context.Context, uow unitofwork.UnitOfWork, code string, self uuid.UUID) error {
	specs := []specification.Specification{specification.BySampleCode{Code: code}}
	if self != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: self})
	}
	n, err := uow.SampleRepository().Count(ctx, specs...)
	if err != nil {
		return err
	}
	if n > 0 {
		return serverutils.NewConflict("Sample code " + code + " already exists")
	}
	return nil
}

func (s *sampleService) Create(ctx context.Context, req *dto.CreateSampleRequest) (*dto.SampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	code := strings.TrimSpace(req.SampleCode)
	if err := s.ensureCodeFree(ctx, uow, code, uuid.Nil); err != nil {
		return nil, err
	}

	now := time.Now()
	sample := entity.Sample{
		Id:           uuid.New(),
		SampleCode:   code,
		Name:         req.Name,
		Matrix:       req.Matrix,
		Priority:     orDefault(req.Priority, dto.DefaultSamplePriority),
		MethodId:     req.MethodId,
		InstrumentId: req.InstrumentId,
		ReceivedAt:   now,
		Notes:        req.Notes,
		CreatedAt:    now,
	}
	if req.ReceivedAt != nil {
		sample.ReceivedAt = *req.ReceivedAt
	}
	setStatus(&sample, orDefault(req.Status, dto.SampleStatusReceived), now)

	if err := uow.SampleRepository().Create(ctx, &sample); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "sample", sample.Id.String(), AuditCreate, map[string]interface{}{"sample_code": code})
	res := toSampleResponse(&sample)
	return &res, nil
}

func (s *sampleService) find(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Sample, error) {
	sample, err := uow.SampleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, serverutils.NewNotFound("Sample")
	}
	return sample, nil
}

func (s *sampleService) Show(ctx context.Context, id uuid.UUID) (*dto.SampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sample, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	res := toSampleResponse(sample)
	return &res, nil
}

func (s *sampleService) Update(ctx context.Context, req *dto.UpdateSampleRequest) (*dto.SampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sample, err := s.find(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.SampleCode)
	if code != sample.SampleCode {
		if err := s.ensureCodeFree(ctx, uow, code, sample.Id); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	previous := sample.Status
	sample.SampleCode = code
	sample.Name = req.Name
	sample.Matrix = req.Matrix
	sample.Priority = orDefault(req.Priority, sample.Priority)
	sample.MethodId = req.MethodId
	sample.InstrumentId = req.InstrumentId
	sample.Notes = req.Notes
	if req.ReceivedAt != nil {
		sample.ReceivedAt = *req.ReceivedAt
	}
	setStatus(sample, orDefault(req.Status, previous), now)
	sample.UpdatedAt = &now

	if err := uow.SampleRepository().Update(ctx, sample); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "sample", sample.Id.String(), AuditUpdate, nil)
	if sample.Status != previous {
		s.events.PublishSampleStatusChanged(ctx, sample.Id, sample.Name, previous, sample.Status, serverutils.ActorFrom(ctx))
	}
	res := toSampleResponse(sample)
	return &res, nil
}

func (s *sampleService) UpdateStatus(ctx context.Context, req *dto.UpdateSampleStatusRequest) (*dto.SampleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sample, err := s.find(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	previous := sample.Status
	setStatus(sample, req.Status, now)
	sample.UpdatedAt = &now

	if err := uow.SampleRepository().Update(ctx, sample); err != nil {
		return nil, err
	}

	actor := serverutils.ActorFrom(ctx)
	s.audit.Record(ctx, "sample", sample.Id.String(), AuditStatusChange, map[string]interface{}{
		"from": previous,
		"to":   sample.Status,
	})
	s.events.PublishSampleStatusChanged(ctx, sample.Id, sample.Name, previous, sample.Status, actor)

	res := toSampleResponse(sample)
	return &res, nil
}

func (s *sampleService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SampleRepository().Delete(ctx, id); err != nil {
		return notFoundOr(err, "Sample")
	}
	s.audit.Record(ctx, "sample", id.String(), AuditDelete, nil)
	return nil
}
