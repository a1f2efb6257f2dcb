package dto

import (
	"time"

	"intellilab-gc-be/pkg/costcalc"

	"github.com/google/uuid"
)

type CalculateCostRequest struct {
	Label    string     `json:"label" validate:"max=120"`
	Category string     `json:"category" validate:"omitempty,oneof=analysis maintenance consumables other"`
	MethodId *uuid.UUID `json:"method_id"`
	costcalc.Input
}

type CostRecordResponse struct {
	Id          uuid.UUID              `json:"id"`
	Label       string                 `json:"label"`
	Category    string                 `json:"category"`
	MethodId    *uuid.UUID             `json:"method_id"`
	SampleCount int                    `json:"sample_count"`
	Inputs      map[string]interface{} `json:"inputs"`
	Breakdown   costcalc.Breakdown     `json:"breakdown"`
	CreatedAt   time.Time              `json:"created_at"`
}
