package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ratewatch/rate-notifier/cmd/docs"
	portssvc "github.com/ratewatch/rate-notifier/internal/core/ports/services"
	"github.com/ratewatch/rate-notifier/internal/middleware"
	"github.com/ratewatch/rate-notifier/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCurrencyCodeValidation()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerRateRoutes(v1, services.Rate)

	// Subscription writes are the only unauthenticated mutation surface, so they
	// get per-IP rate limiting.
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		panic("invalid RATE_LIMIT configuration: " + err.Error())
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)
	registerSubscriptionRoutes(v1, services.Subscription, middleware.RateLimit(limiterInstance))
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerCurrencyCodeValidation adds a `currencycode` binding rule: exactly
// three ASCII letters, case-insensitive (normalization happens in the services).
func registerCurrencyCodeValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 3 {
			return false
		}
		for _, ch := range strings.ToUpper(code) {
			if ch < 'A' || ch > 'Z' {
				return false
			}
		}
		return true
	})
}
