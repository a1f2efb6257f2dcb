package service

import (
	"context"
	"time"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/entity"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/repository/specification"
	"intellilab-gc-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	AuditCreate       = "create"
	AuditUpdate       = "update"
	AuditDelete       = "delete"
	AuditStatusChange = "status_change"
	AuditCalculate    = "calculate"
	AuditImport       = "import"
	AuditActivate     = "activate"
	AuditAnalyze      = "analyze"
)

type IAuditService interface {
	// Record never fails the caller; write errors are logged.
	Record(ctx context.Context, entityType, entityId, action string, details map[string]interface{})
	List(ctx context.Context, entityType string, page, limit int) (*dto.PageResponse[dto.AuditLogResponse], error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAuditService {
	return &auditService{uowFactory: uowFactory, logger: log}
}

func (s *auditService) Record(ctx context.Context, entityType, entityId, action string, details map[string]interface{}) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry := &entity.AuditLog{
		Id:         uuid.New(),
		EntityType: entityType,
		EntityId:   entityId,
		Action:     action,
		Actor:      serverutils.ActorFrom(ctx),
		Details:    details,
		CreatedAt:  time.Now(),
	}
	if err := uow.AuditRepository().Create(ctx, entry); err != nil {
		s.logger.Error("AUDIT", "Failed to write audit log", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityId,
			"action":      action,
			"error":       err.Error(),
		})
	}
}

func (s *auditService) List(ctx context.Context, entityType string, page, limit int) (*dto.PageResponse[dto.AuditLogResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	filter := specification.ByEntityType{EntityType: entityType}

	total, err := uow.AuditRepository().Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	logs, err := uow.AuditRepository().FindAll(ctx,
		filter,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(page, limit),
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.AuditLogResponse{
			Id:         l.Id,
			EntityType: l.EntityType,
			EntityId:   l.EntityId,
			Action:     l.Action,
			Actor:      l.Actor,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt,
		})
	}
	return &dto.PageResponse[dto.AuditLogResponse]{Items: items, Total: total, Page: page, Limit: limit}, nil
}
