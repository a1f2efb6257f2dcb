package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecentSample struct {
	Id         uuid.UUID `json:"id"`
	SampleCode string    `json:"sample_code"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"received_at"`
}

type RecentCalibration struct {
	Id             uuid.UUID `json:"id"`
	Analyte        string    `json:"analyte"`
	Method         string    `json:"method"`
	DetectionLimit float64   `json:"detection_limit"`
	RSquared       float64   `json:"r_squared"`
	CreatedAt      time.Time `json:"created_at"`
}

type KPISnapshot struct {
	Instruments          int64               `json:"instruments"`
	Methods              int64               `json:"methods"`
	Compounds            int64               `json:"compounds"`
	SamplesByStatus      map[string]int64    `json:"samples_by_status"`
	SamplesByPriority    map[string]int64    `json:"samples_by_priority"`
	PendingSamples       int64               `json:"pending_samples"`
	AvgInstrumentHealth  float64             `json:"avg_instrument_health"`
	HighPriorityInsights int                 `json:"high_priority_insights"`
	RecentSamples        []RecentSample      `json:"recent_samples"`
	RecentCalibrations   []RecentCalibration `json:"recent_calibrations"`
	GeneratedAt          time.Time           `json:"generated_at"`
}
