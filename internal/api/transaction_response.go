package api

import "time"

// swagger:model api.TransactionResponse
type TransactionResponse struct {
	ID           int       `json:"id" example:"1"`
	BuyerID      int       `json:"buyer_id" example:"2"`
	SellerID     int       `json:"seller_id" example:"1"`
	ProductID    int       `json:"product_id" example:"1"`
	Amount       float64   `json:"amount" example:"150"`
	BuyerPhone   string    `json:"buyer_phone" example:"0967654321"`
	SellerPhone  string    `json:"seller_phone" example:"0971234567"`
	Status       string    `json:"status" example:"pending"`
	CreatedAt    time.Time `json:"created_at"`
	ProductTitle string    `json:"product_title" example:"Calculator"`
	SellerName   string    `json:"seller_name" example:"Alice Banda"`
}
