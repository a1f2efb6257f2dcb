package service

import (
	"context"
	"errors"

	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/pkg/methodperf"
)

type ISimulatorService interface {
	Inlet(ctx context.Context, in methodperf.InletInput) (*methodperf.InletResult, error)
}

type simulatorService struct{}

func NewSimulatorService() ISimulatorService {
	return &simulatorService{}
}

func (s *simulatorService) Inlet(ctx context.Context, in methodperf.InletInput) (*methodperf.InletResult, error) {
	res, err := methodperf.SimulateInlet(in)
	if err != nil {
		if errors.Is(err, methodperf.ErrInvalidInlet) {
			return nil, serverutils.NewValidation(err.Error(), nil)
		}
		return nil, err
	}
	return &res, nil
}
