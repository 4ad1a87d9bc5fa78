package api

// swagger:model api.CreateTransactionResponse
type CreateTransactionResponse struct {
	Message       string `json:"message" example:"Transaction created successfully"`
	TransactionID int    `json:"transaction_id" example:"1"`
}
