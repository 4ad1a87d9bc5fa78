package api

// swagger:model api.CreateTransactionRequest
type CreateTransactionRequest struct {
	BuyerID     int     `json:"buyer_id" validate:"required" example:"2"`
	SellerID    int     `json:"seller_id" validate:"required" example:"1"`
	ProductID   int     `json:"product_id" validate:"required" example:"1"`
	Amount      float64 `json:"amount" validate:"required,gt=0,money" example:"150"`
	BuyerPhone  string  `json:"buyer_phone" validate:"required" example:"0967654321"`
	SellerPhone string  `json:"seller_phone" validate:"required" example:"0971234567"`
}
