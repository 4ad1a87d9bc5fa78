package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// 錯誤描述
	Error string `json:"error" example:"All fields are required"`
}
