package service

import (
	"context"
	"errors"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/logger"
	"intellilab-gc-be/internal/pkg/serverutils"
)

type IAdminService interface {
	GetAuditLogs(ctx context.Context, entityType string, page, limit int) (*dto.PageResponse[dto.AuditLogResponse], error)

	// Logs
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	audit  IAuditService
	logger logger.ILogger
}

func NewAdminService(audit IAuditService, log logger.ILogger) IAdminService {
	return &adminService{audit: audit, logger: log}
}

func (s *adminService) GetAuditLogs(ctx context.Context, entityType string, page, limit int) (*dto.PageResponse[dto.AuditLogResponse], error) {
	return s.audit.List(ctx, entityType, page, limit)
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	logs, err := s.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, toLogListResponse(l))
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	l, err := s.logger.GetLogById(logId)
	if err != nil {
		if errors.Is(err, logger.ErrLogNotFound) {
			return nil, serverutils.NewNotFound("Log entry")
		}
		return nil, err
	}
	return &dto.LogDetailResponse{
		LogListResponse: *toLogListResponse(*l),
		Details:         l.Details,
	}, nil
}

func toLogListResponse(l logger.LogEntry) *dto.LogListResponse {
	return &dto.LogListResponse{
		Id:        l.Id,
		Level:     l.Level,
		Module:    l.Module,
		Message:   l.Message,
		Timestamp: l.Timestamp,
	}
}
