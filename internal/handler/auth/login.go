// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"
	"time"

	"campus-market/internal/api"
	"campus-market/internal/database"
	"campus-market/internal/model"
	"campus-market/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "Invalid student ID or password"

// TokenIssuer 由 *service.Tokens 實作
type TokenIssuer interface {
	Issue(user *model.User) (string, time.Time, error)
}

// LoginHandler 使用學號與密碼驗證並回傳使用者與 JWT
// @Summary     登入使用者
// @Description 使用 student_id 與 password 驗證，回傳使用者資料、存取令牌與到期時間
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/login [post]
func LoginHandler(db database.DB, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return api.Fail(c, api.KindValidation, msgInvalidBody)
		}
		if err := c.Validate(&req); err != nil {
			return api.Fail(c, api.KindValidation,
				api.ValidationMessageWith(err, "Student ID and password are required"))
		}

		// 撈使用者資料
		user, err := getUserByStudentID(c.Request().Context(), db, req.StudentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return api.Fail(c, api.KindUnauthorized, msgInvalidCredentials)
			}
			log.Error().Err(err).Msg("login: get user")
			return api.Fail(c, api.KindInternal, msgDatabaseError)
		}

		// 驗證密碼
		authUser, err := authenticateUser(user, req.Password)
		if err != nil {
			return api.Fail(c, api.KindUnauthorized, msgInvalidCredentials)
		}

		// 發行存取令牌
		token, exp, err := tokens.Issue(authUser)
		if err != nil {
			log.Error().Err(err).Msg("login: issue token")
			return api.Fail(c, api.KindInternal, "failed to issue token")
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			User:        api.NewUserResponse(authUser),
			AccessToken: token,
			ExpiresAt:   exp,
		})
	}
}
