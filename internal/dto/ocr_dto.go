package dto

import (
	"time"

	"intellilab-gc-be/pkg/chromatogram"
)

type OCRPeakResponse struct {
	RetentionTime float64 `json:"retention_time"`
	Height        float64 `json:"height"`
	Area          float64 `json:"area"`
	Width         float64 `json:"width"`
	Name          string  `json:"name,omitempty"`
	CompoundName  string  `json:"compound_name,omitempty"`
}

type OCRAnalysisResponse struct {
	Hash        string             `json:"hash"`
	Filename    string             `json:"filename"`
	ContentType string             `json:"content_type"`
	SizeBytes   int64              `json:"size_bytes"`
	Engine      string             `json:"engine"`
	Cached      bool               `json:"cached"`
	Peaks       []OCRPeakResponse  `json:"peaks"`
	Trace       chromatogram.Trace `json:"trace"`
	CreatedAt   time.Time          `json:"created_at"`
}

type OCRUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	Noise       float64
}
