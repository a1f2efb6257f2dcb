package model

import (
	"time"

	"intellilab-gc-be/pkg/methodperf"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Instrument struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string         `gorm:"type:varchar(255);not null"`
	Model            string         `gorm:"type:varchar(255)"`
	SerialNumber     string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Location         string         `gorm:"type:varchar(255)"`
	Status           string         `gorm:"type:varchar(30);not null;default:'online';index"`
	MaintenanceLevel string         `gorm:"type:varchar(30);not null;default:'routine'"`
	InstalledAt      *time.Time
	LastCalibratedAt *time.Time
	Notes            string         `gorm:"type:text"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Instrument) TableName() string {
	return "instruments"
}

type MaintenanceRecord struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InstrumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Component    string    `gorm:"type:varchar(100);not null"`
	HealthScore  float64   `gorm:"not null"`
	Cost         float64   `gorm:"not null;default:0"`
	Technician   string    `gorm:"type:varchar(255)"`
	Notes        string    `gorm:"type:text"`
	PerformedAt  time.Time `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Instrument *Instrument `gorm:"foreignKey:InstrumentId;constraint:OnDelete:CASCADE"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

type Method struct {
	Id                uuid.UUID                               `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string                                  `gorm:"type:varchar(255);not null"`
	Description       string                                  `gorm:"type:text"`
	InstrumentId      *uuid.UUID                              `gorm:"type:uuid;index"`
	Oven              datatypes.JSONType[methodperf.Oven]     `gorm:"type:jsonb"`
	Inlet             datatypes.JSONType[methodperf.Inlet]    `gorm:"type:jsonb"`
	Column            datatypes.JSONType[methodperf.Column]   `gorm:"type:jsonb"`
	Carrier           datatypes.JSONType[methodperf.Carrier]  `gorm:"type:jsonb"`
	Detector          datatypes.JSONType[methodperf.Detector] `gorm:"type:jsonb"`
	AnalysisTimeMin   float64
	DetectionLimitPpm float64
	EfficiencyPercent float64
	ColumnTemperature float64
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Method) TableName() string {
	return "methods"
}

type Compound struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string         `gorm:"type:varchar(255);not null;index"`
	CasNumber       string         `gorm:"type:varchar(50);index"`
	Formula         string         `gorm:"type:varchar(100)"`
	MolecularWeight float64
	RetentionTime   float64 `gorm:"index"`
	RtTolerance     float64 `gorm:"not null;default:0.05"`
	Category        string  `gorm:"type:varchar(100)"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Compound) TableName() string {
	return "compounds"
}

type Sample struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SampleCode   string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Matrix       string     `gorm:"type:varchar(100)"`
	Status       string     `gorm:"type:varchar(30);not null;default:'received';index"`
	Priority     string     `gorm:"type:varchar(30);not null;default:'normal';index"`
	MethodId     *uuid.UUID `gorm:"type:uuid;index"`
	InstrumentId *uuid.UUID `gorm:"type:uuid;index"`
	ReceivedAt   time.Time  `gorm:"not null"`
	CompletedAt  *time.Time
	Notes        string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Sample) TableName() string {
	return "samples"
}

type CostRecord struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Label          string            `gorm:"type:varchar(255)"`
	Category       string            `gorm:"type:varchar(50);not null;default:'analysis';index"`
	MethodId       *uuid.UUID        `gorm:"type:uuid;index"`
	SampleCount    int               `gorm:"not null"`
	Inputs         datatypes.JSONMap `gorm:"type:jsonb"`
	Gas            float64
	ColumnWear     float64
	Labor          float64
	Consumables    float64
	InstrumentTime float64
	Total          float64
	PerSample      float64
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (CostRecord) TableName() string {
	return "cost_records"
}

type CalibrationResult struct {
	Id             uuid.UUID                                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Analyte        string                                      `gorm:"type:varchar(255);index"`
	Method         string                                      `gorm:"type:varchar(20);not null"`
	Points         datatypes.JSONSlice[CalibrationPointJSON]   `gorm:"type:jsonb"`
	Slope          float64
	Intercept      float64
	RSquared       float64
	StdError       float64
	Lod            float64
	Loq            float64
	DetectionLimit float64
	PointCount     int
	Warnings       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedBy      string                      `gorm:"type:varchar(255)"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime;index"`
}

type CalibrationPointJSON struct {
	Concentration float64 `json:"concentration"`
	Area          float64 `json:"area"`
}

func (CalibrationResult) TableName() string {
	return "calibration_results"
}

type OCRPeakJSON struct {
	RetentionTime float64 `json:"retention_time"`
	Height        float64 `json:"height"`
	Area          float64 `json:"area"`
	Width         float64 `json:"width"`
	Name          string  `json:"name,omitempty"`
}

type OCRAnalysis struct {
	Hash        string                           `gorm:"type:char(16);primaryKey"`
	Filename    string                           `gorm:"type:varchar(255)"`
	ContentType string                           `gorm:"type:varchar(50)"`
	SizeBytes   int64
	BlobKey     string                           `gorm:"type:varchar(255)"`
	Engine      string                           `gorm:"type:varchar(100)"`
	Peaks       datatypes.JSONSlice[OCRPeakJSON] `gorm:"type:jsonb"`
	CreatedAt   time.Time                        `gorm:"autoCreateTime"`
}

func (OCRAnalysis) TableName() string {
	return "ocr_analyses"
}

type BrandingTheme struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	PrimaryColor   string    `gorm:"type:varchar(20)"`
	SecondaryColor string    `gorm:"type:varchar(20)"`
	AccentColor    string    `gorm:"type:varchar(20)"`
	LogoUrl        string    `gorm:"type:text"`
	FontFamily     string    `gorm:"type:varchar(100)"`
	IsActive       bool      `gorm:"not null;default:false;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (BrandingTheme) TableName() string {
	return "branding_themes"
}

type AuditLog struct {
	Id         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType string            `gorm:"type:varchar(50);not null;index"`
	EntityId   string            `gorm:"type:varchar(100);index"`
	Action     string            `gorm:"type:varchar(50);not null"`
	Actor      string            `gorm:"type:varchar(255)"`
	Details    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time         `gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AllLabModels lists every table for AutoMigrate.
func AllLabModels() []interface{} {
	return []interface{}{
		&Instrument{},
		&MaintenanceRecord{},
		&Method{},
		&Compound{},
		&Sample{},
		&CostRecord{},
		&CalibrationResult{},
		&OCRAnalysis{},
		&BrandingTheme{},
		&AuditLog{},
	}
}
