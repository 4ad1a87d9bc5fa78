// File: internal/handler/products/create.go
package products

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"campus-market/internal/api"
	"campus-market/internal/cache"
	"campus-market/internal/database"
	"campus-market/internal/events"
	"campus-market/internal/middleware"
	"campus-market/internal/model"
	"campus-market/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ImageStore 由 *upload.Store 實作
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// CreateProductHandler 上架新商品（multipart/form-data，可附圖片）
// @Summary     Create a product listing
// @Description 以表單建立商品，image 為選填圖片（jpeg/jpg/png/gif，5MB 以內）
// @Tags        products
// @Accept      multipart/form-data
// @Produce     json
// @Param       seller_id    formData int    true  "賣家 ID（須與 token 相同）"
// @Param       title        formData string true  "標題"
// @Param       description  formData string false "描述"
// @Param       price        formData string true  "價格（非負數）"
// @Param       category     formData string true  "分類"
// @Param       phone_number formData string true  "聯絡電話"
// @Param       image        formData file   false "商品圖片"
// @Success     200          {object} api.CreateProductResponse
// @Failure     400          {object} api.ErrorResponse
// @Failure     401          {object} api.ErrorResponse
// @Failure     413          {object} api.ErrorResponse
// @Failure     415          {object} api.ErrorResponse
// @Failure     500          {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/products [post]
func CreateProductHandler(db database.DB, images ImageStore, lc *cache.ListingCache, emitter events.Emitter) echo.HandlerFunc {
	if emitter == nil {
		emitter = events.Discard{}
	}
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return api.Fail(c, api.KindValidation, api.MsgInvalidRequest)
		}
		if err := c.Validate(&req); err != nil {
			return api.Fail(c, api.KindValidation, api.ValidationMessageWith(err, "Required fields missing"))
		}
		if !middleware.IsUser(c, req.SellerID) {
			return api.Fail(c, api.KindUnauthorized, api.MsgTokenMismatch)
		}

		price, err := api.ParsePrice(req.Price)
		if err != nil {
			return api.Fail(c, api.KindValidation, err.Error())
		}

		// 圖片為選填，先驗證並寫檔，失敗不會寫入資料庫
		var imageName *string
		fh, err := c.FormFile("image")
		switch {
		case err == nil:
			name, err := images.Save(fh)
			if err != nil {
				var appErr *api.Error
				if errors.As(err, &appErr) {
					return api.Fail(c, appErr.Kind, appErr.Message)
				}
				log.Error().Err(err).Msg("create product: save image")
				return api.Fail(c, api.KindInternal, "Failed to save image")
			}
			imageName = &name
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			return api.Fail(c, api.KindValidation, api.MsgInvalidRequest)
		}

		var desc *string
		if d := strings.TrimSpace(req.Description); d != "" {
			desc = &d
		}

		ctx := c.Request().Context()
		created, err := createProduct(ctx, db, &model.Product{
			SellerID:    req.SellerID,
			Title:       req.Title,
			Description: desc,
			Price:       price,
			Category:    req.Category,
			ImagePath:   imageName,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			if imageName != nil {
				if rerr := images.Remove(*imageName); rerr != nil {
					log.Warn().Err(rerr).Str("image", *imageName).Msg("create product: remove orphan image")
				}
			}
			switch {
			case errors.Is(err, store.ErrForeignKey):
				return api.Fail(c, api.KindValidation, api.MsgForeignKey)
			case errors.Is(err, store.ErrOutOfRange):
				return api.Fail(c, api.KindValidation, api.MsgOutOfRange)
			}
			log.Error().Err(err).Msg("create product")
			return api.Fail(c, api.KindInternal, api.MsgDatabaseError)
		}

		if lc != nil {
			if err := lc.Invalidate(ctx, created.Category); err != nil {
				log.Warn().Err(err).Msg("listing cache invalidate")
			}
		}
		if ev, err := events.New(events.TypeProductCreated, created.ID, api.NewProductResponse(*created)); err == nil {
			emitter.Emit(ev)
		}
		recordProductCreated(created.Category)

		return c.JSON(http.StatusOK, api.CreateProductResponse{
			Message:   "Product added successfully",
			ProductID: created.ID,
		})
	}
}
