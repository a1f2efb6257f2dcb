package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInstrumentRequest struct {
	Name             string     `json:"name" validate:"required,max=120"`
	Model            string     `json:"model" validate:"required,max=120"`
	SerialNumber     string     `json:"serial_number" validate:"required,max=64"`
	Location         string     `json:"location" validate:"max=120"`
	Status           string     `json:"status" validate:"omitempty,oneof=operational maintenance offline"`
	MaintenanceLevel string     `json:"maintenance_level" validate:"omitempty,oneof=routine preventive critical"`
	InstalledAt      *time.Time `json:"installed_at"`
	LastCalibratedAt *time.Time `json:"last_calibrated_at"`
	Notes            string     `json:"notes"`
}

type UpdateInstrumentRequest struct {
	Id uuid.UUID `json:"-"`
	CreateInstrumentRequest
}

type InstrumentResponse struct {
	Id               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Model            string     `json:"model"`
	SerialNumber     string     `json:"serial_number"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	MaintenanceLevel string     `json:"maintenance_level"`
	InstalledAt      *time.Time `json:"installed_at"`
	LastCalibratedAt *time.Time `json:"last_calibrated_at"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

type CreateMaintenanceRequest struct {
	InstrumentId uuid.UUID  `json:"-"`
	Component    string     `json:"component" validate:"required,max=120"`
	HealthScore  float64    `json:"health_score" validate:"gte=0,lte=100"`
	Cost         float64    `json:"cost" validate:"gte=0"`
	Technician   string     `json:"technician"`
	Notes        string     `json:"notes"`
	PerformedAt  *time.Time `json:"performed_at"`
}

type MaintenanceResponse struct {
	Id           uuid.UUID `json:"id"`
	InstrumentId uuid.UUID `json:"instrument_id"`
	Component    string    `json:"component"`
	HealthScore  float64   `json:"health_score"`
	Cost         float64   `json:"cost"`
	Technician   string    `json:"technician"`
	Notes        string    `json:"notes"`
	PerformedAt  time.Time `json:"performed_at"`
	CreatedAt    time.Time `json:"created_at"`
}
