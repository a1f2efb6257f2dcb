package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCompoundRequest struct {
	Name            string  `json:"name" validate:"required,max=120"`
	CasNumber       string  `json:"cas_number" validate:"max=32"`
	Formula         string  `json:"formula"`
	MolecularWeight float64 `json:"molecular_weight" validate:"gte=0"`
	RetentionTime   float64 `json:"retention_time" validate:"gte=0"`
	RtTolerance     float64 `json:"rt_tolerance" validate:"gte=0"`
	Category        string  `json:"category"`
}

type UpdateCompoundRequest struct {
	Id uuid.UUID `json:"-"`
	CreateCompoundRequest
}

type CompoundResponse struct {
	Id              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	CasNumber       string     `json:"cas_number"`
	Formula         string     `json:"formula"`
	MolecularWeight float64    `json:"molecular_weight"`
	RetentionTime   float64    `json:"retention_time"`
	RtTolerance     float64    `json:"rt_tolerance"`
	Category        string     `json:"category"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
