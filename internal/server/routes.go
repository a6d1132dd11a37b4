package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railrakshak/backend/internal/server/handlers/api"
	"github.com/railrakshak/backend/internal/server/handlers/health"
	"github.com/railrakshak/backend/internal/server/middlewares"
	"github.com/railrakshak/backend/internal/version"
)

func SetupRoutes(healthH *health.HealthHandler) http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// NOTE cors must run before routing so unmatched OPTIONS are answered too
	r.Use(middlewares.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		api.AbortWithError(c, http.StatusInternalServerError, api.CodeInternalError, fmt.Errorf("panic: %v", recovered))
	}))
	r.Use(middlewares.CORS(middlewares.DevPolicy()))
	r.Use(middlewares.GZIP())

	r.GET("/", IndexHandler)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", healthH.Check)
		apiGroup.HEAD("/health", healthH.Check)
	}

	r.NoRoute(func(c *gin.Context) {
		c.PureJSON(http.StatusNotFound, api.APIError{
			Code:    api.CodeNotFound,
			Message: "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.PureJSON(http.StatusMethodNotAllowed, api.APIError{
			Code:    api.CodeMethodNotAllowed,
			Message: "method not allowed",
		})
	})

	return r.Handler()
}

func IndexHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, version.DetailedWithApp())
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
