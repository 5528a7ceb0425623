package v1

import (
	"net/http"

	"go-placement-backend/config"
	"go-placement-backend/internal/delivery/http/middleware"
	"go-placement-backend/internal/delivery/http/response"
	"go-placement-backend/internal/domain"
	"go-placement-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	SchedulingUC domain.SchedulingUsecase
	PlacementUC  domain.PlacementUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	allowedOrigins := append([]string{deps.Config.FrontendURL}, deps.Config.ExtraOrigins...)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(allowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	probeLimiter := middleware.RateLimitMiddleware(middleware.ProbeRateLimitConfig(deps.Config))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewInterviewHandler(protected, probeLimiter, deps.SchedulingUC)
		NewPlacementHandler(protected, deps.PlacementUC)
	}

	return r
}
