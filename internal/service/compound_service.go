package service

import (
	"context"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// DefaultRtTolerance applies when a compound is saved without a retention window.
const DefaultRtTolerance = 0.1

type ICompoundService interface {
	GetAll(ctx context.Context, query dto.ListQuery) (*dto.PageResponse[dto.CompoundResponse], error)
	Create(ctx context.Context, req *dto.CreateCompoundRequest) (*dto.CompoundResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.CompoundResponse, error)
	Update(ctx context.Context, req *dto.UpdateCompoundRequest) (*dto.CompoundResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type compoundService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
}

func NewCompoundService(uowFactory unitofwork.RepositoryFactory, audit IAuditService) ICompoundService {
	return &compoundService{uowFactory: uowFactory, audit: audit}
}

func toCompoundResponse(c *entity.Compound) dto.CompoundResponse {
	return dto.CompoundResponse{
		Id:              c.Id,
		Name:            c.Name,
		CasNumber:       c.CasNumber,
		Formula:         c.Formula,
		MolecularWeight: c.MolecularWeight,
		RetentionTime:   c.RetentionTime,
		RtTolerance:     c.RtTolerance,
		Category:        c.Category,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func rtTolerance(v float64) float64 {
	if v <= 0 {
		return DefaultRtTolerance
	}
	return v
}

func (s *compoundService) GetAll(ctx context.Context, query dto.ListQuery) (*dto.PageResponse[dto.CompoundResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	search := specification.Search{Query: query.Search, Fields: []string{"name", "cas_number", "formula", "category"}}

	total, err := uow.CompoundRepository().Count(ctx, search)
	if err != nil {
		return nil, err
	}
	compounds, err := uow.CompoundRepository().FindAll(ctx,
		search,
		specification.OrderBy{Field: "retention_time"},
		specification.Page(query.Page, query.Limit),
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CompoundResponse, 0, len(compounds))
	for _, c := range compounds {
		items = append(items, toCompoundResponse(c))
	}
	return &dto.PageResponse[dto.CompoundResponse]{Items: items, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

func (s *compoundService) Create(ctx context.Context, req *dto.CreateCompoundRequest) (*dto.CompoundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	compound := entity.Compound{
		Id:              uuid.New(),
		Name:            req.Name,
		CasNumber:       req.CasNumber,
		Formula:         req.Formula,
		MolecularWeight: req.MolecularWeight,
		RetentionTime:   req.RetentionTime,
		RtTolerance:     rtTolerance(req.RtTolerance),
		Category:        req.Category,
		CreatedAt:       time.Now(),
	}
	if err := uow.CompoundRepository().Create(ctx, &compound); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "compound", compound.Id.String(), AuditCreate, map[string]interface{}{"name": compound.Name})
	res := toCompoundResponse(&compound)
	return &res, nil
}

func (s *compoundService) Show(ctx context.Context, id uuid.UUID) (*dto.CompoundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	compound, err := uow.CompoundRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if compound == nil {
		return nil, serverutils.NewNotFound("Compound")
	}
	res := toCompoundResponse(compound)
	return &res, nil
}

func (s *compoundService) Update(ctx context.Context, req *dto.UpdateCompoundRequest) (*dto.CompoundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	compound, err := uow.CompoundRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if compound == nil {
		return nil, serverutils.NewNotFound("Compound")
	}

	compound.Name = req.Name
	compound.CasNumber = req.CasNumber
	compound.Formula = req.Formula
	compound.MolecularWeight = req.MolecularWeight
	compound.RetentionTime = req.RetentionTime
	compound.RtTolerance = rtTolerance(req.RtTolerance)
	compound.Category = req.Category
	compound.UpdatedAt = nowPtr()

	if err := uow.CompoundRepository().Update(ctx, compound); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "compound", compound.Id.String(), AuditUpdate, nil)
	res := toCompoundResponse(compound)
	return &res, nil
}

func (s *compoundService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CompoundRepository().Delete(ctx, id); err != nil {
		return notFoundOr(err, "Compound")
	}
	s.audit.Record(ctx, "compound", id.String(), AuditDelete, nil)
	return nil
}
