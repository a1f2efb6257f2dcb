package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	Id         uuid.UUID              `json:"id"`
	EntityType string                 `json:"entity_type"`
	EntityId   string                 `json:"entity_id"`
	Action     string                 `json:"action"`
	Actor      string                 `json:"actor"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// LogListResponse uses a string id because log ids are MD5 hashes of the line.
type LogListResponse struct {
	Id        string `json:"id"`
	Level     string `json:"level"`
	Module    string `json:"module"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}
