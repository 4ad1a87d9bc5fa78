package store

import (
	"context"
	"fmt"

	"campus-market/internal/database"
	"campus-market/internal/model"
)

const productColumns = `p.id, p.seller_id, p.title, p.description, p.price, p.category,
		p.image_path, p.phone_number, p.status, p.created_at`

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) (*model.Product, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO products (seller_id, title, description, price, category, image_path, phone_number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, status, created_at`,
		p.SellerID,
		p.Title,
		p.Description,
		p.Price,
		p.Category,
		p.ImagePath,
		p.PhoneNumber,
	)
	if err := row.Scan(&p.ID, &p.Status, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", classify(err))
	}
	return p, nil
}

// ListAvailableProducts 列出上架中的商品，category 為空字串時不過濾
func ListAvailableProducts(ctx context.Context, db database.DB, category string) ([]model.ProductListing, error) {
	query := `SELECT ` + productColumns + `, u.name, u.phone_number
		 FROM products p
		 JOIN users u ON p.seller_id = u.id
		 WHERE p.status = 'available'`
	var args []any
	if category != "" {
		query += ` AND p.category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListAvailableProducts: %w", err)
	}
	defer rows.Close()

	listings := []model.ProductListing{}
	for rows.Next() {
		var l model.ProductListing
		dest := append(productDest(&l.Product), &l.SellerName, &l.SellerPhone)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("ListAvailableProducts: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAvailableProducts: %w", err)
	}
	return listings, nil
}

// ListProductsBySeller 列出賣家所有商品（不限狀態）
func ListProductsBySeller(ctx context.Context, db database.DB, sellerID int) ([]model.Product, error) {
	rows, err := db.Query(ctx,
		`SELECT `+productColumns+`
		 FROM products p
		 WHERE p.seller_id = $1
		 ORDER BY p.created_at DESC, p.id DESC`,
		sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListProductsBySeller: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(productDest(&p)...); err != nil {
			return nil, fmt.Errorf("ListProductsBySeller: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProductsBySeller: %w", err)
	}
	return products, nil
}

func GetProductStatus(ctx context.Context, db database.DB, productID int) (string, error) {
	var status string
	err := db.QueryRow(ctx, `SELECT status FROM products WHERE id = $1`, productID).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("GetProductStatus: %w", classify(err))
	}
	return status, nil
}

func productDest(p *model.Product) []any {
	return []any{
		&p.ID,
		&p.SellerID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImagePath,
		&p.PhoneNumber,
		&p.Status,
		&p.CreatedAt,
	}
}
