package store

import (
	"context"
	"fmt"

	"campus-market/internal/database"
	"campus-market/internal/model"
)

func CreateTransaction(ctx context.Context, db database.DB, t *model.Transaction) (*model.Transaction, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO transactions (buyer_id, seller_id, product_id, amount, buyer_phone, seller_phone)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, status, created_at`,
		t.BuyerID,
		t.SellerID,
		t.ProductID,
		t.Amount,
		t.BuyerPhone,
		t.SellerPhone,
	)
	if err := row.Scan(&t.ID, &t.Status, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTransaction: %w", classify(err))
	}
	return t, nil
}

// ListTransactionsByUser 列出使用者作為買方或賣方的所有交易
func ListTransactionsByUser(ctx context.Context, db database.DB, userID int) ([]model.TransactionListing, error) {
	rows, err := db.Query(ctx,
		`SELECT t.id, t.buyer_id, t.seller_id, t.product_id, t.amount, t.buyer_phone,
		        t.seller_phone, t.status, t.created_at, p.title, u.name
		 FROM transactions t
		 JOIN products p ON t.product_id = p.id
		 JOIN users u ON t.seller_id = u.id
		 WHERE t.buyer_id = $1 OR t.seller_id = $1
		 ORDER BY t.created_at DESC, t.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
	}
	defer rows.Close()

	listings := []model.TransactionListing{}
	for rows.Next() {
		var l model.TransactionListing
		if err := rows.Scan(
			&l.ID,
			&l.BuyerID,
			&l.SellerID,
			&l.ProductID,
			&l.Amount,
			&l.BuyerPhone,
			&l.SellerPhone,
			&l.Status,
			&l.CreatedAt,
			&l.ProductTitle,
			&l.SellerName,
		); err != nil {
			return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
	}
	return listings, nil
}
