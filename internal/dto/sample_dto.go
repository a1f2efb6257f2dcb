package dto

import (
	"time"

	"github.com/google/uuid"
)

const (
	SampleStatusReceived = "received"
	SampleStatusPrep     = "prep"
	SampleStatusAnalysis = "analysis"
	SampleStatusComplete = "complete"
	SampleStatusOnHold   = "on_hold"
)

var SampleStatuses = []string{
	SampleStatusReceived,
	SampleStatusPrep,
	SampleStatusAnalysis,
	SampleStatusComplete,
	SampleStatusOnHold,
}

const DefaultSamplePriority = "normal"

type CreateSampleRequest struct {
	SampleCode   string     `json:"sample_code" validate:"required,max=64"`
	Name         string     `json:"name" validate:"required,max=120"`
	Matrix       string     `json:"matrix" validate:"max=64"`
	Status       string     `json:"status" validate:"omitempty,oneof=received prep analysis complete on_hold"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	MethodId     *uuid.UUID `json:"method_id"`
	InstrumentId *uuid.UUID `json:"instrument_id"`
	ReceivedAt   *time.Time `json:"received_at"`
	Notes        string     `json:"notes"`
}

type UpdateSampleRequest struct {
	Id uuid.UUID `json:"-"`
	CreateSampleRequest
}

type UpdateSampleStatusRequest struct {
	Id     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"required,oneof=received prep analysis complete on_hold"`
}

type SampleFilter struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
}

type SampleResponse struct {
	Id           uuid.UUID  `json:"id"`
	SampleCode   string     `json:"sample_code"`
	Name         string     `json:"name"`
	Matrix       string     `json:"matrix"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	MethodId     *uuid.UUID `json:"method_id"`
	InstrumentId *uuid.UUID `json:"instrument_id"`
	ReceivedAt   time.Time  `json:"received_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
