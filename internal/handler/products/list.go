// File: internal/handler/products/list.go
package products

import (
	"fmt"
	"net/http"
	"strings"

	"campus-market/internal/api"
	"campus-market/internal/cache"
	"campus-market/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ListProductsHandler 列出上架中的商品，路徑帶 :category 時依分類過濾
// @Summary     List available products
// @Description 依建立時間新到舊列出 status = available 的商品，附賣家姓名與電話
// @Tags        products
// @Produce     json
// @Success     200 {array}  api.ProductResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/products [get]
func ListProductsHandler(db database.DB, lc *cache.ListingCache) echo.HandlerFunc {
	return listProducts(db, lc, false)
}

// ListProductsByCategoryHandler 依分類列出商品
// @Summary     List available products by category
// @Tags        products
// @Produce     json
// @Param       category path     string true "分類" Enums(electronics, books, clothing, furniture, food, services, other)
// @Success     200      {array}  api.ProductResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /api/products/category/{category} [get]
func ListProductsByCategoryHandler(db database.DB, lc *cache.ListingCache) echo.HandlerFunc {
	return listProducts(db, lc, true)
}

func listProducts(db database.DB, lc *cache.ListingCache, byCategory bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var category string
		if byCategory {
			category = c.Param("category")
		}
		if byCategory && !api.IsCategory(category) {
			return api.Fail(c, api.KindValidation,
				fmt.Sprintf("Category must be one of: %s", strings.Join(api.Categories, ", ")))
		}
		ctx := c.Request().Context()

		// 先查快取，失敗只記錄
		if lc != nil {
			list, ok, err := lc.Get(ctx, category)
			if err != nil {
				log.Warn().Err(err).Str("category", category).Msg("listing cache get")
			} else if ok {
				return c.JSON(http.StatusOK, api.NewListingResponses(list))
			}
		}

		list, err := listAvailableProducts(ctx, db, category)
		if err != nil {
			log.Error().Err(err).Str("category", category).Msg("list products")
			return api.Fail(c, api.KindInternal, api.MsgDatabaseError)
		}

		if lc != nil {
			if err := lc.Set(ctx, category, list); err != nil {
				log.Warn().Err(err).Str("category", category).Msg("listing cache set")
			}
		}
		return c.JSON(http.StatusOK, api.NewListingResponses(list))
	}
}
