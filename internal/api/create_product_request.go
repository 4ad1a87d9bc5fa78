package api

// CreateProductRequest 以 multipart/form-data 送出，圖片另外以 image 欄位上傳
// swagger:model api.CreateProductRequest
type CreateProductRequest struct {
	SellerID    int    `form:"seller_id" validate:"required" example:"1"`
	Title       string `form:"title" validate:"required" example:"Calculator"`
	Description string `form:"description" example:"Casio fx-991, barely used"`
	Price       string `form:"price" validate:"required" example:"150"`
	Category    string `form:"category" validate:"required,category" example:"electronics"`
	PhoneNumber string `form:"phone_number" validate:"required" example:"0971234567"`
}
