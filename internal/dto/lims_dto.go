package dto

type LimsRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type LimsImportResponse struct {
	Imported int            `json:"imported"`
	Skipped  int            `json:"skipped"`
	Errors   []LimsRowError `json:"errors"`
}
