package api

import "campus-market/internal/model"

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		StudentID:   u.StudentID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		University:  u.University,
		CreatedAt:   u.CreatedAt,
	}
}

func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImagePath:   p.ImagePath,
		PhoneNumber: p.PhoneNumber,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// NewListingResponses 轉換公開列表，保證回傳非 nil slice
func NewListingResponses(list []model.ProductListing) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, l := range list {
		r := NewProductResponse(l.Product)
		r.SellerName = l.SellerName
		r.SellerPhone = l.SellerPhone
		out = append(out, r)
	}
	return out
}

func NewProductResponses(list []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}

func NewTransactionResponses(list []model.TransactionListing) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TransactionResponse{
			ID:           t.ID,
			BuyerID:      t.BuyerID,
			SellerID:     t.SellerID,
			ProductID:    t.ProductID,
			Amount:       t.Amount,
			BuyerPhone:   t.BuyerPhone,
			SellerPhone:  t.SellerPhone,
			Status:       t.Status,
			CreatedAt:    t.CreatedAt,
			ProductTitle: t.ProductTitle,
			SellerName:   t.SellerName,
		})
	}
	return out
}
