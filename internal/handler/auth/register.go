// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"campus-market/internal/api"
	"campus-market/internal/database"
	"campus-market/internal/model"
	"campus-market/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RegisterHandler 建立新使用者
// @Summary     Register a new user
// @Description 以學號、姓名、電話與密碼註冊，密碼至少 6 碼
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     200  {object} api.RegisterResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return api.Fail(c, api.KindValidation, msgInvalidBody)
		}
		if err := c.Validate(&req); err != nil {
			return api.Fail(c, api.KindValidation, api.ValidationMessage(err))
		}

		// 密碼哈希（bcrypt）
		hash, err := hashPassword(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("register: hash password")
			return api.Fail(c, api.KindInternal, msgDatabaseError)
		}

		created, err := createUser(c.Request().Context(), db, &model.User{
			StudentID:    req.StudentID,
			Name:         req.Name,
			PhoneNumber:  req.PhoneNumber,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return api.Fail(c, api.KindDuplicateKey, "Student ID already exists")
			}
			log.Error().Err(err).Str("student_id", req.StudentID).Msg("register: create user")
			return api.Fail(c, api.KindInternal, msgDatabaseError)
		}

		recordRegistration()
		return c.JSON(http.StatusOK, api.RegisterResponse{
			Message: "User registered successfully",
			UserID:  created.ID,
		})
	}
}
