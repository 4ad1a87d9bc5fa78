// File: internal/model/product.go
package model

import "time"

const ProductStatusAvailable = "available"

type Product struct {
	ID          int       `db:"id" json:"id"`
	SellerID    int       `db:"seller_id" json:"seller_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	ImagePath   *string   `db:"image_path" json:"image_path"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ProductListing 公開列表用，附帶賣家名稱與電話
type ProductListing struct {
	Product
	SellerName  string `db:"seller_name" json:"seller_name"`
	SellerPhone string `db:"seller_phone" json:"seller_phone"`
}
