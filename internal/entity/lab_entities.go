package entity

import (
	"time"

	"intellilab-gc-be/pkg/methodperf"

	"github.com/google/uuid"
)

type Instrument struct {
	Id               uuid.UUID
	Name             string
	Model            string
	SerialNumber     string
	Location         string
	Status           string
	MaintenanceLevel string
	InstalledAt      *time.Time
	LastCalibratedAt *time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

type MaintenanceRecord struct {
	Id           uuid.UUID
	InstrumentId uuid.UUID
	Component    string
	HealthScore  float64
	Cost         float64
	Technician   string
	Notes        string
	PerformedAt  time.Time
	CreatedAt    time.Time
}

type Method struct {
	Id                uuid.UUID
	Name              string
	Description       string
	InstrumentId      *uuid.UUID
	Params            methodperf.Params
	AnalysisTimeMin   float64
	DetectionLimitPpm float64
	EfficiencyPercent float64
	ColumnTemperature float64
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

type Compound struct {
	Id              uuid.UUID
	Name            string
	CasNumber       string
	Formula         string
	MolecularWeight float64
	RetentionTime   float64
	RtTolerance     float64
	Category        string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type Sample struct {
	Id           uuid.UUID
	SampleCode   string
	Name         string
	Matrix       string
	Status       string
	Priority     string
	MethodId     *uuid.UUID
	InstrumentId *uuid.UUID
	ReceivedAt   time.Time
	CompletedAt  *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type CostRecord struct {
	Id             uuid.UUID
	Label          string
	Category       string
	MethodId       *uuid.UUID
	SampleCount    int
	Inputs         map[string]interface{}
	Gas            float64
	ColumnWear     float64
	Labor          float64
	Consumables    float64
	InstrumentTime float64
	Total          float64
	PerSample      float64
	CreatedAt      time.Time
}

type CalibrationPoint struct {
	Concentration float64 `json:"concentration"`
	Area          float64 `json:"area"`
}

type CalibrationResult struct {
	Id             uuid.UUID
	Analyte        string
	Method         string
	Points         []CalibrationPoint
	Slope          float64
	Intercept      float64
	RSquared       float64
	StdError       float64
	Lod            float64
	Loq            float64
	DetectionLimit float64
	PointCount     int
	Warnings       []string
	CreatedBy      string
	CreatedAt      time.Time
}

type OCRPeak struct {
	RetentionTime float64 `json:"retention_time"`
	Height        float64 `json:"height"`
	Area          float64 `json:"area"`
	Width         float64 `json:"width"`
	Name          string  `json:"name,omitempty"`
}

type OCRAnalysis struct {
	Hash        string
	Filename    string
	ContentType string
	SizeBytes   int64
	BlobKey     string
	Engine      string
	Peaks       []OCRPeak
	CreatedAt   time.Time
}

type BrandingTheme struct {
	Id             uuid.UUID
	Name           string
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	LogoUrl        string
	FontFamily     string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

type AuditLog struct {
	Id         uuid.UUID
	EntityType string
	EntityId   string
	Action     string
	Actor      string
	Details    map[string]interface{}
	CreatedAt  time.Time
}
