package v1

import (
	"net/http"
	"time"

	"go-contact-backend/config"
	"go-contact-backend/internal/delivery/http/middleware"
	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Config    *config.Config
	// ContactLimiter overrides the default rate limiter when set (tests).
	ContactLimiter gin.HandlerFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = domain.MaxRequestBodyBytes

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.BodyLimit(domain.MaxRequestBodyBytes))
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   deps.Config.ServiceName,
		})
	})

	limiter := deps.ContactLimiter
	if limiter == nil {
		limiter = middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(
			deps.Config.ContactRateLimit,
			time.Duration(deps.Config.ContactRateWindowMins)*time.Minute,
		))
	}
	NewContactHandler(api, deps.ContactUC, limiter)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, domain.MsgNotFound, nil)
	})

	return r
}
