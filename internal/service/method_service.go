package service

import (
	"context"
	"fmt"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/pkg/methodperf"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type IMethodService interface {
	GetAll(ctx context.Context, query dto.ListQuery) (*dto.PageResponse[dto.MethodResponse], error)
	Create(ctx context.Context, req *dto.CreateMethodRequest) (*dto.MethodResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.MethodResponse, error)
	Update(ctx context.Context, req *dto.UpdateMethodRequest) (*dto.MethodResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Export renders the method as a YAML document and returns it with a file name.
	Export(ctx context.Context, id uuid.UUID) ([]byte, string, error)
}

type methodService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	feed       IInsightFeed
}

func NewMethodService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, feed IInsightFeed) IMethodService {
	return &methodService{uowFactory: uowFactory, audit: audit, feed: feed}
}

func performanceOf(m *entity.Method) methodperf.Performance {
	return methodperf.Performance{
		AnalysisTimeMin:   m.AnalysisTimeMin,
		DetectionLimitPpm: m.DetectionLimitPpm,
		EfficiencyPercent: m.EfficiencyPercent,
		ColumnTemperature: m.ColumnTemperature,
	}
}

func applyPerformance(m *entity.Method) {
	perf := methodperf.Estimate(m.Params)
	m.AnalysisTimeMin = perf.AnalysisTimeMin
	m.DetectionLimitPpm = perf.DetectionLimitPpm
	m.EfficiencyPercent = perf.EfficiencyPercent
	m.ColumnTemperature = perf.ColumnTemperature
}

func toMethodResponse(m *entity.Method) dto.MethodResponse {
	return dto.MethodResponse{
		Id:           m.Id,
		Name:         m.Name,
		Description:  m.Description,
		InstrumentId: m.InstrumentId,
		Params:       dto.MethodParamsFrom(m.Params),
		Performance:  performanceOf(m),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (s *methodService) GetAll(ctx context.Context, query dto.ListQuery) (*dto.PageResponse[dto.MethodResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	search := specification.Search{Query: query.Search, Fields: []string{"name", "description"}}

	total, err := uow.MethodRepository().Count(ctx, search)
	if err != nil {
		return nil, err
	}
	methods, err := uow.MethodRepository().FindAll(ctx,
		search,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(query.Page, query.Limit),
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MethodResponse, 0, len(methods))
	for _, m := range methods {
		items = append(items, toMethodResponse(m))
	}
	return &dto.PageResponse[dto.MethodResponse]{Items: items, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

func (s *methodService) checkInstrument(ctx context.Context, uow unitofwork.UnitOfWork, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	instrument, err := uow.InstrumentRepository().FindOne(ctx, specification.ByID{ID: *id})
	if err != nil {
		return err
	}
	if instrument == nil {
		return serverutils.NewBadRequest("Instrument " + id.String() + " does not exist")
	}
	return nil
}

func (s *methodService) feedMethod(ctx context.Context, m *entity.Method) {
	s.feed.FeedMethod(ctx, dto.AddMethodDataRequest{
		ID:                m.Id.String(),
		Name:              m.Name,
		ColumnTemperature: m.ColumnTemperature,
		AnalysisTime:      m.AnalysisTimeMin,
		CarrierFlow:       m.Params.Carrier.FlowMLMin,
	})
}

func (s *methodService) Create(ctx context.Context, req *dto.CreateMethodRequest) (*dto.MethodResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.checkInstrument(ctx, uow, req.InstrumentId); err != nil {
		return nil, err
	}

	method := entity.Method{
		Id:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		InstrumentId: req.InstrumentId,
		Params:       req.Params.ToDomain(),
		CreatedAt:    time.Now(),
	}
	applyPerformance(&method)

	if err := uow.MethodRepository().Create(ctx, &method); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "method", method.Id.String(), AuditCreate, map[string]interface{}{"name": method.Name})
	s.feedMethod(ctx, &method)

	res := toMethodResponse(&method)
	return &res, nil
}

func (s *methodService) Show(ctx context.Context, id uuid.UUID) (*dto.MethodResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	method, err := uow.MethodRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, serverutils.NewNotFound("Method")
	}
	res := toMethodResponse(method)
	return &res, nil
}

func (s *methodService) Update(ctx context.Context, req *dto.UpdateMethodRequest) (*dto.MethodResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	method, err := uow.MethodRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, serverutils.NewNotFound("Method")
	}
	if err := s.checkInstrument(ctx, uow, req.InstrumentId); err != nil {
		return nil, err
	}

	method.Name = req.Name
	method.Description = req.Description
	method.InstrumentId = req.InstrumentId
	method.Params = req.Params.ToDomain()
	method.UpdatedAt = nowPtr()
	applyPerformance(method)

	if err := uow.MethodRepository().Update(ctx, method); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "method", method.Id.String(), AuditUpdate, nil)
	s.feedMethod(ctx, method)

	res := toMethodResponse(method)
	return &res, nil
}

func (s *methodService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MethodRepository().Delete(ctx, id); err != nil {
		return notFoundOr(err, "Method")
	}
	s.audit.Record(ctx, "method", id.String(), AuditDelete, nil)
	s.feed.FeedRemoval(ctx, InsightKindMethod, id.String())
	return nil
}

func (s *methodService) Export(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	method, err := uow.MethodRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, "", err
	}
	if method == nil {
		return nil, "", serverutils.NewNotFound("Method")
	}

	doc := dto.MethodExport{
		Name:        method.Name,
		Description: method.Description,
		Params:      method.Params,
		Performance: performanceOf(method),
		ExportedAt:  time.Now().UTC(),
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, "", fmt.Errorf("encode method export: %w", err)
	}
	return out, fmt.Sprintf("method-%s.yaml", method.Id), nil
}
