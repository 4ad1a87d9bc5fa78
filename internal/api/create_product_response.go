package api

// swagger:model api.CreateProductResponse
type CreateProductResponse struct {
	Message   string `json:"message" example:"Product added successfully"`
	ProductID int    `json:"product_id" example:"1"`
}
