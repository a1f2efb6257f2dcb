package dto

// ListQuery carries the common list parameters parsed by controllers.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
