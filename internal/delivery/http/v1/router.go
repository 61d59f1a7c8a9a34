package v1

import (
	"net/http"

	"new-recruitment-api/config"
	"new-recruitment-api/internal/delivery/http/middleware"
	"new-recruitment-api/internal/delivery/http/response"
	"new-recruitment-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.BodyLimit(deps.Config.BodyLimitBytes))
	r.Use(middleware.ErrorHandler())

	// Public routes
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "New Recruitment API")
	})
	r.GET("/health", func(c *gin.Context) {
		response.Message(c, http.StatusOK, "System operational")
	})

	// Everything else requires the shared API key
	protected := r.Group("")
	protected.Use(middleware.APIKey(deps.Config.APIKey))
	{
		NewCandidateHandler(protected, deps.CandidateUC)
	}

	return r
}
