package api

import "time"

// ProductResponse 商品列表項目；seller_name 與 seller_phone 只在公開列表中出現
// swagger:model api.ProductResponse
type ProductResponse struct {
	ID          int       `json:"id" example:"1"`
	SellerID    int       `json:"seller_id" example:"1"`
	Title       string    `json:"title" example:"Calculator"`
	Description *string   `json:"description"`
	Price       float64   `json:"price" example:"150"`
	Category    string    `json:"category" example:"electronics"`
	ImagePath   *string   `json:"image_path"`
	PhoneNumber string    `json:"phone_number" example:"0971234567"`
	Status      string    `json:"status" example:"available"`
	CreatedAt   time.Time `json:"created_at"`
	SellerName  string    `json:"seller_name,omitempty" example:"Alice Banda"`
	SellerPhone string    `json:"seller_phone,omitempty" example:"0971234567"`
}
