package service

import (
	"context"
	"errors"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/pkg/costcalc"

	"github.com/google/uuid"
)

const defaultCostCategory = "analysis"

type ICostService interface {
	GetAll(ctx context.Context, category string, page, limit int) (*dto.PageResponse[dto.CostRecordResponse], error)
	// Calculate persists the breakdown as a cost record.
	Calculate(ctx context.Context, req *dto.CalculateCostRequest) (*dto.CostRecordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type costService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	feed       IInsightFeed
}

func NewCostService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, feed IInsightFeed) ICostService {
	return &costService{uowFactory: uowFactory, audit: audit, feed: feed}
}

func costInputs(in costcalc.Input) map[string]interface{} {
	return map[string]interface{}{
		"sample_count":               in.SampleCount,
		"analysis_time_min":          in.AnalysisTimeMin,
		"carrier_flow_ml_min":        in.CarrierFlowMLMin,
		"gas_price_per_l":            in.GasPricePerL,
		"column_price":               in.ColumnPrice,
		"column_lifetime_injections": in.ColumnLifetimeInjections,
		"labor_rate_per_hour":        in.LaborRatePerHour,
		"labor_minutes_per_sample":   in.LaborMinutesPerSample,
		"consumables_per_sample":     in.ConsumablesPerSample,
		"instrument_hourly_rate":     in.InstrumentHourlyRate,
	}
}

func toCostRecordResponse(r *entity.CostRecord) dto.CostRecordResponse {
	return dto.CostRecordResponse{
		Id:          r.Id,
		Label:       r.Label,
		Category:    r.Category,
		MethodId:    r.MethodId,
		SampleCount: r.SampleCount,
		Inputs:      r.Inputs,
		Breakdown: costcalc.Breakdown{
			Gas:            r.Gas,
			ColumnWear:     r.ColumnWear,
			Labor:          r.Labor,
			Consumables:    r.Consumables,
			InstrumentTime: r.InstrumentTime,
			Total:          r.Total,
			PerSample:      r.PerSample,
		},
		CreatedAt: r.CreatedAt,
	}
}

func (s *costService) GetAll(ctx context.Context, category string, page, limit int) (*dto.PageResponse[dto.CostRecordResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	filter := specification.ByCategory{Category: category}

	total, err := uow.CostRepository().Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	records, err := uow.CostRepository().FindAll(ctx,
		filter,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(page, limit),
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CostRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toCostRecordResponse(r))
	}
	return &dto.PageResponse[dto.CostRecordResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *costService) Calculate(ctx context.Context, req *dto.CalculateCostRequest) (*dto.CostRecordResponse, error) {
	breakdown, err := costcalc.Calculate(req.Input)
	if err != nil {
		var inputErr *costcalc.InputError
		if errors.As(err, &inputErr) {
			return nil, serverutils.NewValidation("Invalid cost input", map[string]string{inputErr.Field: inputErr.Error()})
		}
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	record := entity.CostRecord{
		Id:             uuid.New(),
		Label:          req.Label,
		Category:       orDefault(req.Category, defaultCostCategory),
		MethodId:       req.MethodId,
		SampleCount:    req.SampleCount,
		Inputs:         costInputs(req.Input),
		Gas:            breakdown.Gas,
		ColumnWear:     breakdown.ColumnWear,
		Labor:          breakdown.Labor,
		Consumables:    breakdown.Consumables,
		InstrumentTime: breakdown.InstrumentTime,
		Total:          breakdown.Total,
		PerSample:      breakdown.PerSample,
		CreatedAt:      time.Now(),
	}
	if err := uow.CostRepository().Create(ctx, &record); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "cost", record.Id.String(), AuditCalculate, map[string]interface{}{
		"total":      record.Total,
		"per_sample": record.PerSample,
	})

	data := dto.AddCostDataRequest{
		ID:            record.Id.String(),
		Category:      record.Category,
		Amount:        record.Total,
		CostPerSample: record.PerSample,
	}
	if record.MethodId != nil {
		data.MethodID = record.MethodId.String()
	}
	s.feed.FeedCost(ctx, data)

	res := toCostRecordResponse(&record)
	return &res, nil
}

func (s *costService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CostRepository().Delete(ctx, id); err != nil {
		return notFoundOr(err, "Cost record")
	}
	s.audit.Record(ctx, "cost", id.String(), AuditDelete, nil)
	s.feed.FeedRemoval(ctx, InsightKindCost, id.String())
	return nil
}
