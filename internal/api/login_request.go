package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	StudentID string `json:"student_id" validate:"required" example:"S100"`
	Password  string `json:"password" validate:"required" example:"secret1"`
}
