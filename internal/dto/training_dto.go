package dto

type SubmitExerciseRequest struct {
	Answers map[string]float64 `json:"answers" validate:"required"`
}
