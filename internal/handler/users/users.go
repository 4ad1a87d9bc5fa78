// Package users 提供使用者自己的商品與交易列表
package users

import (
	"net/http"
	"strconv"

	"campus-market/internal/api"
	"campus-market/internal/database"
	"campus-market/internal/middleware"
	"campus-market/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// 測試時可替換
var (
	listProductsBySeller   = store.ListProductsBySeller
	listTransactionsByUser = store.ListTransactionsByUser
)

// parseUserID 解析 :id 並確認與 token 相同，錯誤交給 HTTPErrorHandler 輸出
func parseUserID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, api.NewError(api.KindValidation, "Invalid user ID")
	}
	if !middleware.IsUser(c, id) {
		return 0, api.NewError(api.KindUnauthorized, api.MsgTokenMismatch)
	}
	return id, nil
}

// ListUserProductsHandler 列出使用者上架過的所有商品（含已售出）
// @Summary     List a user's products
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {array}  api.ProductResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/users/{id}/products [get]
func ListUserProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUserID(c)
		if err != nil {
			return err
		}
		list, err := listProductsBySeller(c.Request().Context(), db, id)
		if err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("list user products")
			return api.Fail(c, api.KindInternal, api.MsgDatabaseError)
		}
		return c.JSON(http.StatusOK, api.NewProductResponses(list))
	}
}

// ListUserTransactionsHandler 列出使用者作為買方或賣方的交易
// @Summary     List a user's transactions
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {array}  api.TransactionResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/users/{id}/transactions [get]
func ListUserTransactionsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUserID(c)
		if err != nil {
			return err
		}
		list, err := listTransactionsByUser(c.Request().Context(), db, id)
		if err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("list user transactions")
			return api.Fail(c, api.KindInternal, api.MsgDatabaseError)
		}
		return c.JSON(http.StatusOK, api.NewTransactionResponses(list))
	}
}
