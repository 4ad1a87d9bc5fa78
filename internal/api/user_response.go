package api

import "time"

// UserResponse 不含密碼欄位
// swagger:model api.UserResponse
type UserResponse struct {
	ID          int       `json:"id" example:"1"`
	StudentID   string    `json:"student_id" example:"S100"`
	Name        string    `json:"name" example:"Alice Banda"`
	PhoneNumber string    `json:"phone_number" example:"0971234567"`
	University  string    `json:"university" example:"Chilanga North University"`
	CreatedAt   time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}
