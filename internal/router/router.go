// File: internal/router/router.go
package router

import (
	"fmt"
	"net/http"
	"time"

	_ "campus-market/docs" // 引入 swag 產出的 docs

	"campus-market/internal/api"
	"campus-market/internal/cache"
	"campus-market/internal/database"
	"campus-market/internal/events"
	"campus-market/internal/handler/auth"
	"campus-market/internal/handler/health"
	"campus-market/internal/handler/products"
	"campus-market/internal/handler/transactions"
	"campus-market/internal/handler/users"
	"campus-market/internal/metrics"
	"campus-market/internal/middleware"
	"campus-market/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// Deps 路由需要的所有依賴
type Deps struct {
	DB       database.DB
	Cache    cache.Cache
	Listings *cache.ListingCache
	Images   products.ImageStore
	Tokens   *service.Tokens
	Emitter  events.Emitter

	Env              string
	UploadDir        string
	MaxUploadBytes   int64
	AuthRateLimit    float64
	RequireAvailable bool
}

const authBurst = 5

// authRateLimiter 以 client IP 限制登入與註冊頻率
func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     authBurst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return api.Fail(c, api.KindInternal, "failed to identify client")
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "rate limit exceeded"})
		},
	})
}

// uploadBodyLimit 圖片上限再加 1MB 給其他表單欄位
func uploadBodyLimit(maxBytes int64) echo.MiddlewareFunc {
	return echomw.BodyLimit(fmt.Sprintf("%dK", (maxBytes+1<<20)/1024))
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	e.Use(echomw.CORS())
	e.Use(metrics.Middleware())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	g := e.Group("/api")

	// 健康檢查
	g.GET("/health", health.HealthHandler(d.DB, d.Cache, d.Env))

	// 註冊與登入（限流）
	limiter := authRateLimiter(d.AuthRateLimit)
	g.POST("/register", auth.RegisterHandler(d.DB), limiter)
	g.POST("/login", auth.LoginHandler(d.DB, d.Tokens), limiter)

	// 公開商品列表
	g.GET("/products", products.ListProductsHandler(d.DB, d.Listings))
	g.GET("/products/category/:category", products.ListProductsByCategoryHandler(d.DB, d.Listings))

	// 需登入
	requireAuth := middleware.RequireAuth(d.Tokens)
	g.POST("/products", products.CreateProductHandler(d.DB, d.Images, d.Listings, d.Emitter),
		uploadBodyLimit(d.MaxUploadBytes), requireAuth)
	g.POST("/transactions", transactions.CreateTransactionHandler(d.DB, d.Emitter,
		transactions.Options{RequireAvailable: d.RequireAvailable}), requireAuth)

	g.GET("/users/:id/products", users.ListUserProductsHandler(d.DB), requireAuth)
	g.GET("/users/:id/transactions", users.ListUserTransactionsHandler(d.DB), requireAuth)
}
