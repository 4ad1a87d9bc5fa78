package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator 建立帶有 category 規則與 json/form 欄位名稱的驗證器
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return IsCategory(fl.Field().String())
	})
	// maxbytes 以位元組計算長度，bcrypt 只接受 72 bytes 以內的密碼
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	// money 符合 NUMERIC(12,2)：小於 1e10 且最多兩位小數
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return ValidMoney(fl.Field().Float())
	})
	return &CustomValidator{validator: v}
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidationMessage 將驗證錯誤轉為使用者看得懂的訊息
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "All fields are required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label(fe.Field()), fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be greater than %s", label(fe.Field()), fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes long", label(fe.Field()), fe.Param())
	case "money":
		return fmt.Sprintf("%s must be less than %s with at most 2 decimal places", label(fe.Field()), MaxMoneyText)
	case "eqfield":
		return "Passwords do not match"
	case "category":
		return fmt.Sprintf("Category must be one of: %s", strings.Join(Categories, ", "))
	}
	return fmt.Sprintf("%s is invalid", label(fe.Field()))
}

// label 把 phone_number 轉成 Phone number
func label(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ValidationMessageWith 與 ValidationMessage 相同，但缺欄位時改用 requiredMsg
func ValidationMessageWith(err error, requiredMsg string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
		return requiredMsg
	}
	return ValidationMessage(err)
}
