package service

import (
	"context"
	"errors"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/pkg/training"
)

type ITrainingService interface {
	GetAll(ctx context.Context) []training.Exercise
	Show(ctx context.Context, id string) (*training.Exercise, error)
	Submit(ctx context.Context, id string, req *dto.SubmitExerciseRequest) (*training.Grade, error)
}

type trainingService struct {
	catalog *training.Catalog
	audit   IAuditService
}

func NewTrainingService(catalog *training.Catalog, audit IAuditService) ITrainingService {
	return &trainingService{catalog: catalog, audit: audit}
}

func (s *trainingService) GetAll(ctx context.Context) []training.Exercise {
	return s.catalog.List()
}

func (s *trainingService) Show(ctx context.Context, id string) (*training.Exercise, error) {
	ex, err := s.catalog.Get(id)
	if err != nil {
		return nil, trainingError(err)
	}
	return &ex, nil
}

func (s *trainingService) Submit(ctx context.Context, id string, req *dto.SubmitExerciseRequest) (*training.Grade, error) {
	ex, err := s.catalog.Get(id)
	if err != nil {
		return nil, trainingError(err)
	}
	grade := training.GradeSubmission(ex, req.Answers)
	s.audit.Record(ctx, "training_exercise", id, AuditCalculate, map[string]interface{}{
		"score":  grade.Score,
		"total":  grade.Total,
		"passed": grade.Passed,
	})
	return &grade, nil
}

func trainingError(err error) error {
	if errors.Is(err, training.ErrExerciseNotFound) {
		return serverutils.NewNotFound("Exercise")
	}
	return err
}
