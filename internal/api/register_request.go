package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	StudentID   string `json:"student_id" validate:"required" example:"S100"`
	Name        string `json:"name" validate:"required" example:"Alice Banda"`
	PhoneNumber string `json:"phone_number" validate:"required" example:"0971234567"`
	Password    string `json:"password" validate:"required,min=6,maxbytes=72" example:"secret1"`
}
