package client

import (
	"errors"
	"strings"

	"campus-market/internal/api"
	"campus-market/internal/upload"
)

var formValidator = api.NewValidator()

// 表單驗證訊息
const (
	MsgAllFieldsRequired = "All fields are required"
	MsgLoginRequired     = "Please enter both Student ID and Password"
	MsgProductRequired   = "Required fields missing"
	MsgInvalidImage      = "Only image files are allowed!"
	MsgUnknownCategory   = "Unknown category"
)

// FormError 本地驗證失敗，不會呼叫 API
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

func IsFormError(err error) bool {
	var fe *FormError
	return errors.As(err, &fe)
}

type RegisterForm struct {
	StudentID       string `json:"student_id" validate:"required"`
	Name            string `json:"name" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"required"`
	Password        string `json:"password" validate:"required,min=6,maxbytes=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (f *RegisterForm) Validate() error {
	f.StudentID = strings.TrimSpace(f.StudentID)
	f.Name = strings.TrimSpace(f.Name)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	if err := formValidator.Validate(f); err != nil {
		return &FormError{Message: api.ValidationMessageWith(err, MsgAllFieldsRequired)}
	}
	return nil
}

func (f RegisterForm) request() api.RegisterRequest {
	return api.RegisterRequest{
		StudentID:   f.StudentID,
		Name:        f.Name,
		PhoneNumber: f.PhoneNumber,
		Password:    f.Password,
	}
}

type LoginForm struct {
	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

func (f *LoginForm) Validate() error {
	f.StudentID = strings.TrimSpace(f.StudentID)
	if err := formValidator.Validate(f); err != nil {
		return &FormError{Message: api.ValidationMessageWith(err, MsgLoginRequired)}
	}
	return nil
}

// ProductForm 上架表單；Image 為本機圖片路徑，可留空
type ProductForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Category    string `json:"category" validate:"required,category"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Image       string `json:"image"`
}

func (f *ProductForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Price = strings.TrimSpace(f.Price)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	if err := formValidator.Validate(f); err != nil {
		return &FormError{Message: api.ValidationMessageWith(err, MsgProductRequired)}
	}
	if _, err := api.ParsePrice(f.Price); err != nil {
		return &FormError{Message: err.Error()}
	}
	if f.Image != "" && !upload.AllowedExtension(f.Image) {
		return &FormError{Message: MsgInvalidImage}
	}
	return nil
}

type PurchaseForm struct {
	BuyerPhone string `json:"buyer_phone" validate:"required"`
}

func (f *PurchaseForm) Validate() error {
	f.BuyerPhone = strings.TrimSpace(f.BuyerPhone)
	if err := formValidator.Validate(f); err != nil {
		return &FormError{Message: api.ValidationMessageWith(err, MsgAllFieldsRequired)}
	}
	return nil
}

// validCategory all 也算合法
func validCategory(c string) bool {
	return c == api.CategoryAll || api.IsCategory(c)
}
