package service

import (
	"context"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// DefaultTheme is served whenever no theme has been stored or activated.
var DefaultTheme = dto.BrandingThemeResponse{
	Name:           "IntelliLab GC",
	PrimaryColor:   "#1565C0",
	SecondaryColor: "#00897B",
	AccentColor:    "#FFB300",
	FontFamily:     "Inter, Roboto, sans-serif",
	IsActive:       true,
	IsDefault:      true,
}

type IBrandingService interface {
	GetAll(ctx context.Context) ([]dto.BrandingThemeResponse, error)
	Active(ctx context.Context) (*dto.BrandingThemeResponse, error)
	Create(ctx context.Context, req *dto.CreateBrandingThemeRequest) (*dto.BrandingThemeResponse, error)
	Activate(ctx context.Context, id uuid.UUID) (*dto.BrandingThemeResponse, error)
}

type brandingService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
}

func NewBrandingService(uowFactory unitofwork.RepositoryFactory, audit IAuditService) IBrandingService {
	return &brandingService{uowFactory: uowFactory, audit: audit}
}

func toBrandingResponse(t *entity.BrandingTheme) dto.BrandingThemeResponse {
	return dto.BrandingThemeResponse{
		Id:             t.Id,
		Name:           t.Name,
		PrimaryColor:   t.PrimaryColor,
		SecondaryColor: t.SecondaryColor,
		AccentColor:    t.AccentColor,
		LogoUrl:        t.LogoUrl,
		FontFamily:     t.FontFamily,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func defaultTheme() *dto.BrandingThemeResponse {
	theme := DefaultTheme
	return &theme
}

func (s *brandingService) GetAll(ctx context.Context) ([]dto.BrandingThemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	themes, err := uow.BrandingRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return []dto.BrandingThemeResponse{*defaultTheme()}, nil
	}
	res := make([]dto.BrandingThemeResponse, 0, len(themes))
	for _, t := range themes {
		res = append(res, toBrandingResponse(t))
	}
	return res, nil
}

func (s *brandingService) Active(ctx context.Context) (*dto.BrandingThemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	theme, err := uow.BrandingRepository().FindOne(ctx, specification.ActiveTheme{})
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return defaultTheme(), nil
	}
	res := toBrandingResponse(theme)
	return &res, nil
}

func (s *brandingService) Create(ctx context.Context, req *dto.CreateBrandingThemeRequest) (*dto.BrandingThemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	theme := entity.BrandingTheme{
		Id:             uuid.New(),
		Name:           req.Name,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		AccentColor:    req.AccentColor,
		LogoUrl:        req.LogoUrl,
		FontFamily:     req.FontFamily,
		CreatedAt:      time.Now(),
	}

	err := unitofwork.Transact(ctx, uow, func(tx unitofwork.UnitOfWork) error {
		if err := tx.BrandingRepository().Create(ctx, &theme); err != nil {
			return err
		}
		if !req.Activate {
			return nil
		}
		if err := tx.BrandingRepository().Activate(ctx, theme.Id); err != nil {
			return err
		}
		theme.IsActive = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "branding_theme", theme.Id.String(), AuditCreate, map[string]interface{}{"activate": req.Activate})
	res := toBrandingResponse(&theme)
	return &res, nil
}

func (s *brandingService) Activate(ctx context.Context, id uuid.UUID) (*dto.BrandingThemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var theme *entity.BrandingTheme
	err := unitofwork.Transact(ctx, uow, func(tx unitofwork.UnitOfWork) error {
		if err := tx.BrandingRepository().Activate(ctx, id); err != nil {
			return notFoundOr(err, "Branding theme")
		}
		found, err := tx.BrandingRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return err
		}
		theme = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "branding_theme", id.String(), AuditActivate, nil)
	res := toBrandingResponse(theme)
	return &res, nil
}
