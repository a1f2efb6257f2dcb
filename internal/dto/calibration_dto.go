package dto

import (
	"time"

	"intellilab-gc-be/pkg/calibration"

	"github.com/google/uuid"
)

type CalibrationPointRequest struct {
	Concentration float64 `json:"concentration"`
	Area          float64 `json:"area"`
}

type ValidateCalibrationRequest struct {
	Points []CalibrationPointRequest `json:"points" validate:"required,min=1"`
}

type DetectionLimitRequest struct {
	Analyte string                    `json:"analyte" validate:"max=120"`
	Method  string                    `json:"method" validate:"omitempty,oneof=3sigma 10sigma"`
	Points  []CalibrationPointRequest `json:"points" validate:"required,min=1"`
}

func ToCalibrationPoints(in []CalibrationPointRequest) []calibration.Point {
	out := make([]calibration.Point, len(in))
	for i, p := range in {
		out[i] = calibration.Point{Concentration: p.Concentration, Area: p.Area}
	}
	return out
}

type DetectionLimitResponse struct {
	Id             uuid.UUID              `json:"id"`
	Analyte        string                 `json:"analyte"`
	Method         string                 `json:"method"`
	Slope          float64                `json:"slope"`
	Intercept      float64                `json:"intercept"`
	RSquared       float64                `json:"r_squared"`
	StdError       float64                `json:"std_error"`
	Lod            float64                `json:"lod"`
	Loq            float64                `json:"loq"`
	DetectionLimit float64                `json:"detection_limit"`
	PointCount     int                    `json:"point_count"`
	Validation     calibration.Validation `json:"validation"`
	Series         calibration.Series     `json:"series"`
	CreatedAt      time.Time              `json:"created_at"`
}

type CalibrationResultResponse struct {
	Id             uuid.UUID                 `json:"id"`
	Analyte        string                    `json:"analyte"`
	Method         string                    `json:"method"`
	Points         []CalibrationPointRequest `json:"points"`
	Slope          float64                   `json:"slope"`
	Intercept      float64                   `json:"intercept"`
	RSquared       float64                   `json:"r_squared"`
	StdError       float64                   `json:"std_error"`
	Lod            float64                   `json:"lod"`
	Loq            float64                   `json:"loq"`
	DetectionLimit float64                   `json:"detection_limit"`
	PointCount     int                       `json:"point_count"`
	Warnings       []string                  `json:"warnings"`
	CreatedBy      string                    `json:"created_by"`
	CreatedAt      time.Time                 `json:"created_at"`
}
