// File: internal/handler/transactions/create.go
package transactions

import (
	"errors"
	"net/http"

	"campus-market/internal/api"
	"campus-market/internal/database"
	"campus-market/internal/events"
	"campus-market/internal/metrics"
	"campus-market/internal/middleware"
	"campus-market/internal/model"
	"campus-market/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// 測試時可替換
var (
	createTransaction        = store.CreateTransaction
	getProductStatus         = store.GetProductStatus
	recordTransactionCreated = metrics.RecordTransactionCreated
)

// Options 交易建立的可選行為
type Options struct {
	// RequireAvailable 開啟後只允許購買 status = available 的商品
	RequireAvailable bool
}

// CreateTransactionHandler 建立一筆 pending 交易，付款在平台外以行動支付完成
// @Summary     Create a purchase transaction
// @Description 金額直接採用買方看到的商品價格，不重新驗證
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateTransactionRequest true "交易資料"
// @Success     200  {object} api.CreateTransactionResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/transactions [post]
func CreateTransactionHandler(db database.DB, emitter events.Emitter, opts Options) echo.HandlerFunc {
	if emitter == nil {
		emitter = events.Discard{}
	}
	return func(c echo.Context) error {
		var req api.CreateTransactionRequest
		if err := c.Bind(&req); err != nil {
			return api.Fail(c, api.KindValidation, api.MsgInvalidRequest)
		}
		if err := c.Validate(&req); err != nil {
			return api.Fail(c, api.KindValidation, api.ValidationMessage(err))
		}
		if !middleware.IsUser(c, req.BuyerID) {
			return api.Fail(c, api.KindUnauthorized, api.MsgTokenMismatch)
		}

		ctx := c.Request().Context()
		if opts.RequireAvailable {
			status, err := getProductStatus(ctx, db, req.ProductID)
			switch {
			case errors.Is(err, store.ErrNotFound):
				return api.Fail(c, api.KindValidation, api.MsgForeignKey)
			case err != nil:
				log.Error().Err(err).Int("product_id", req.ProductID).Msg("create transaction: product status")
				return api.Fail(c, api.KindInternal, api.MsgDatabaseError)
			case status != model.ProductStatusAvailable:
				return api.Fail(c, api.KindValidation, "product is not available")
			}
		}

		created, err := createTransaction(ctx, db, &model.Transaction{
			BuyerID:     req.BuyerID,
			SellerID:    req.SellerID,
			ProductID:   req.ProductID,
			Amount:      req.Amount,
			BuyerPhone:  req.BuyerPhone,
			SellerPhone: req.SellerPhone,
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrForeignKey):
				return api.Fail(c, api.KindValidation, api.MsgForeignKey)
			case errors.Is(err, store.ErrOutOfRange):
				return api.Fail(c, api.KindValidation, api.MsgOutOfRange)
			}
			log.Error().Err(err).Msg("create transaction")
			return api.Fail(c, api.KindInternal, api.MsgDatabaseError)
		}

		if ev, err := events.New(events.TypeTransactionCreated, created.ID, created); err == nil {
			emitter.Emit(ev)
		}
		recordTransactionCreated()

		return c.JSON(http.StatusOK, api.CreateTransactionResponse{
			Message:       "Transaction created successfully",
			TransactionID: created.ID,
		})
	}
}
