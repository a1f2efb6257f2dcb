package dto

// Insight inputs accepted by the data routes. IDs are optional; the
// service assigns one when omitted.

type AddMethodDataRequest struct {
	ID                string  `json:"id"`
	Name              string  `json:"name" validate:"required"`
	ColumnTemperature float64 `json:"column_temperature" validate:"gte=0"`
	AnalysisTime      float64 `json:"analysis_time" validate:"gte=0"`
	CarrierFlow       float64 `json:"carrier_flow" validate:"gte=0"`
}

type AddMaintenanceDataRequest struct {
	ID           string  `json:"id"`
	InstrumentID string  `json:"instrument_id"`
	Component    string  `json:"component" validate:"required"`
	HealthScore  float64 `json:"health_score" validate:"gte=0,lte=100"`
}

type AddCostDataRequest struct {
	ID            string  `json:"id"`
	Category      string  `json:"category" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	CostPerSample float64 `json:"cost_per_sample" validate:"gte=0"`
	MethodID      string  `json:"method_id"`
}

// InsightInputMessage is the payload on the in-process insight topic.
type InsightInputMessage struct {
	Kind        string                     `json:"kind"` // method | maintenance | cost | instrument
	// RemovedID is set when the entity of Kind was deleted; the payload fields are then empty.
	RemovedID   string                     `json:"removed_id,omitempty"`
	Method      *AddMethodDataRequest      `json:"method,omitempty"`
	Maintenance *AddMaintenanceDataRequest `json:"maintenance,omitempty"`
	Cost        *AddCostDataRequest        `json:"cost,omitempty"`
}
