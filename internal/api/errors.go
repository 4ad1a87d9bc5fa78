package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Kind 錯誤分類，每一類對應固定的 HTTP 狀態碼
type Kind string

const (
	KindValidation           Kind = "ValidationError"
	KindDuplicateKey         Kind = "DuplicateKey"
	KindUnauthorized         Kind = "Unauthorized"
	KindUnsupportedMediaType Kind = "UnsupportedMediaType"
	KindPayloadTooLarge      Kind = "PayloadTooLarge"
	KindInternal             Kind = "InternalError"
)

// Status 回傳分類對應的 HTTP 狀態碼
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindDuplicateKey:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error 帶分類的錯誤，可跨套件傳遞後再轉成錯誤信封
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// NewError 建立帶分類的錯誤
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Fail 以統一錯誤信封回應
func Fail(c echo.Context, kind Kind, msg string) error {
	return c.JSON(kind.Status(), ErrorResponse{Error: msg})
}

// HTTPErrorHandler 將所有未處理的錯誤轉為 {"error": "..."}，不外洩內部訊息
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Internal server error"

	var appErr *Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Kind.Status()
		msg = appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled request error")
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, ErrorResponse{Error: msg})
	}
	if werr != nil {
		log.Error().Err(werr).Msg("failed to write error response")
	}
}

// 多個 handler 共用的錯誤訊息
const (
	MsgDatabaseError  = "Database error"
	MsgTokenMismatch  = "token does not match user"
	MsgForeignKey     = "referenced record does not exist"
	MsgOutOfRange     = "numeric value out of range"
	MsgInvalidRequest = "Invalid request body"
)
