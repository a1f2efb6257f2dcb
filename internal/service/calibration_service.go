package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/metrics"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"
	"intellilab-gc-be/pkg/calibration"
	"intellilab-gc-be/pkg/labevents"
	"intellilab-gc-be/pkg/plot"

	"github.com/google/uuid"
)

type ICalibrationService interface {
	Validate(ctx context.Context, req *dto.ValidateCalibrationRequest) calibration.Validation
	DetectionLimit(ctx context.Context, req *dto.DetectionLimitRequest) (*dto.DetectionLimitResponse, error)
	GetResults(ctx context.Context, analyte string, page, limit int) (*dto.PageResponse[dto.CalibrationResultResponse], error)
	Show(ctx context.Context, id uuid.UUID) (*dto.CalibrationResultResponse, error)
	Plot(ctx context.Context, id uuid.UUID, format plot.Format) ([]byte, error)
}

type calibrationService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	events     labevents.Publisher
	metrics    *metrics.Metrics
}

func NewCalibrationService(
	uowFactory unitofwork.RepositoryFactory,
	audit IAuditService,
	events labevents.Publisher,
	m *metrics.Metrics,
) ICalibrationService {
	return &calibrationService{uowFactory: uowFactory, audit: audit, events: events, metrics: m}
}

func (s *calibrationService) Validate(_ context.Context, req *dto.ValidateCalibrationRequest) calibration.Validation {
	return calibration.Validate(dto.ToCalibrationPoints(req.Points))
}

func (s *calibrationService) DetectionLimit(ctx context.Context, req *dto.DetectionLimitRequest) (*dto.DetectionLimitResponse, error) {
	method, err := calibration.ParseMethod(req.Method)
	if err != nil {
		return nil, serverutils.NewBadRequest(err.Error())
	}

	points := dto.ToCalibrationPoints(req.Points)
	result, validation, err := calibration.Compute(points, method)
	if err != nil {
		s.metrics.ObserveDetectionLimit(string(method), "rejected")
		if !validation.IsValid {
			return nil, serverutils.NewValidation("Calibration data is invalid", validation)
		}
		if errors.Is(err, calibration.ErrDegenerateX) || errors.Is(err, calibration.ErrNonPositiveSlope) {
			validation.Errors = append(validation.Errors, strings.TrimPrefix(err.Error(), "calibration: "))
			validation.IsValid = false
			return nil, serverutils.NewValidation("Calibration data is invalid", validation)
		}
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored := entity.CalibrationResult{
		Id:             uuid.New(),
		Analyte:        req.Analyte,
		Method:         string(method),
		Points:         toEntityPoints(req.Points),
		Slope:          result.Slope,
		Intercept:      result.Intercept,
		RSquared:       result.RSquared,
		StdError:       result.StdError,
		Lod:            result.LOD,
		Loq:            result.LOQ,
		DetectionLimit: result.DetectionLimit,
		PointCount:     result.N,
		Warnings:       validation.Warnings,
		CreatedBy:      serverutils.ActorFrom(ctx),
		CreatedAt:      time.Now(),
	}
	if err := uow.CalibrationRepository().Create(ctx, &stored); err != nil {
		s.metrics.ObserveDetectionLimit(string(method), "error")
		return nil, err
	}
	s.metrics.ObserveDetectionLimit(string(method), "ok")

	s.audit.Record(ctx, "calibration", stored.Id.String(), AuditCalculate, map[string]interface{}{
		"method":          stored.Method,
		"detection_limit": stored.DetectionLimit,
		"r_squared":       stored.RSquared,
	})
	s.events.PublishCalibrationCompleted(ctx, stored.Id, stored.Method, stored.Lod, stored.Loq, stored.RSquared)

	return &dto.DetectionLimitResponse{
		Id:             stored.Id,
		Analyte:        stored.Analyte,
		Method:         stored.Method,
		Slope:          result.Slope,
		Intercept:      result.Intercept,
		RSquared:       result.RSquared,
		StdError:       result.StdError,
		Lod:            result.LOD,
		Loq:            result.LOQ,
		DetectionLimit: result.DetectionLimit,
		PointCount:     result.N,
		Validation:     validation,
		Series:         calibration.BuildSeries(points, result),
		CreatedAt:      stored.CreatedAt,
	}, nil
}

func toEntityPoints(in []dto.CalibrationPointRequest) []entity.CalibrationPoint {
	out := make([]entity.CalibrationPoint, len(in))
	for i, p := range in {
		out[i] = entity.CalibrationPoint{Concentration: p.Concentration, Area: p.Area}
	}
	return out
}

func toCalibrationResultResponse(r *entity.CalibrationResult) dto.CalibrationResultResponse {
	points := make([]dto.CalibrationPointRequest, len(r.Points))
	for i, p := range r.Points {
		points[i] = dto.CalibrationPointRequest{Concentration: p.Concentration, Area: p.Area}
	}
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return dto.CalibrationResultResponse{
		Id:             r.Id,
		Analyte:        r.Analyte,
		Method:         r.Method,
		Points:         points,
		Slope:          r.Slope,
		Intercept:      r.Intercept,
		RSquared:       r.RSquared,
		StdError:       r.StdError,
		Lod:            r.Lod,
		Loq:            r.Loq,
		DetectionLimit: r.DetectionLimit,
		PointCount:     r.PointCount,
		Warnings:       warnings,
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
	}
}

func (s *calibrationService) GetResults(ctx context.Context, analyte string, page, limit int) (*dto.PageResponse[dto.CalibrationResultResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	search := specification.Search{Query: analyte, Fields: []string{"analyte"}}

	total, err := uow.CalibrationRepository().Count(ctx, search)
	if err != nil {
		return nil, err
	}
	results, err := uow.CalibrationRepository().FindAll(ctx,
		search,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(page, limit),
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CalibrationResultResponse, 0, len(results))
	for _, r := range results {
		items = append(items, toCalibrationResultResponse(r))
	}
	return &dto.PageResponse[dto.CalibrationResultResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *calibrationService) find(ctx context.Context, id uuid.UUID) (*entity.CalibrationResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	result, err := uow.CalibrationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, serverutils.NewNotFound("Calibration result")
	}
	return result, nil
}

func (s *calibrationService) Show(ctx context.Context, id uuid.UUID) (*dto.CalibrationResultResponse, error) {
	result, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toCalibrationResultResponse(result)
	return &res, nil
}

func (s *calibrationService) Plot(ctx context.Context, id uuid.UUID, format plot.Format) ([]byte, error) {
	stored, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	points := make([]calibration.Point, len(stored.Points))
	for i, p := range stored.Points {
		points[i] = calibration.Point{Concentration: p.Concentration, Area: p.Area}
	}
	result := calibration.Result{
		Fit: calibration.Fit{
			Slope:     stored.Slope,
			Intercept: stored.Intercept,
			RSquared:  stored.RSquared,
			StdError:  stored.StdError,
			N:         stored.PointCount,
		},
		Method:         calibration.Method(stored.Method),
		LOD:            stored.Lod,
		LOQ:            stored.Loq,
		DetectionLimit: stored.DetectionLimit,
	}
	return calibration.RenderPlot(calibration.BuildSeries(points, result), result, format)
}
