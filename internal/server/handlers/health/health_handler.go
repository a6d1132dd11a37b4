package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service string
	now     func() time.Time
}

// New returns a handler reporting the given service name. A nil clock uses time.Now.
func New(service string, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{
		service: service,
		now:     now,
	}
}

func (h *HealthHandler) Status() *HealthStatus {
	return &HealthStatus{
		Status:  StatusOK,
		Service: h.service,
		Time:    h.now().UTC().Format(TimeFormat),
	}
}

func (h *HealthHandler) Check(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, h.Status())
}
