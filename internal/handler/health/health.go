// File: internal/handler/health/health.go
package health

import (
	"context"
	"net/http"
	"time"

	"campus-market/internal/api"
	"campus-market/internal/cache"
	"campus-market/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const probeKey = "health:probe"

var timeNow = time.Now

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 回傳服務狀態，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Failure     500 {object} api.HealthResponse
// @Router      /api/health [get]
func HealthHandler(db database.DB, cch cache.Cache, env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := api.HealthResponse{Status: "healthy", Timestamp: timeNow().UTC(), Environment: env}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("health: database unhealthy")
			resp.Status = "unhealthy"
			return c.JSON(http.StatusInternalServerError, resp)
		}
		if cch != nil {
			if err := cch.Set(ctx, probeKey, "ok", time.Minute).Err(); err != nil {
				log.Error().Err(err).Msg("health: cache unhealthy")
				resp.Status = "unhealthy"
				return c.JSON(http.StatusInternalServerError, resp)
			}
		}
		return c.JSON(http.StatusOK, resp)
	}
}
