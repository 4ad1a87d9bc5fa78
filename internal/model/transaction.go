// File: internal/model/transaction.go
package model

import "time"

const TransactionStatusPending = "pending"

type Transaction struct {
	ID          int       `db:"id" json:"id"`
	BuyerID     int       `db:"buyer_id" json:"buyer_id"`
	SellerID    int       `db:"seller_id" json:"seller_id"`
	ProductID   int       `db:"product_id" json:"product_id"`
	Amount      float64   `db:"amount" json:"amount"`
	BuyerPhone  string    `db:"buyer_phone" json:"buyer_phone"`
	SellerPhone string    `db:"seller_phone" json:"seller_phone"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TransactionListing 交易列表用，附帶商品標題與賣家名稱
type TransactionListing struct {
	Transaction
	ProductTitle string `db:"product_title" json:"product_title"`
	SellerName   string `db:"seller_name" json:"seller_name"`
}
