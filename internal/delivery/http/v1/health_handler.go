package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/usecase"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Description  Reports liveness plus the configured provider, storage driver and backing-service reachability.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	response.Success(c, http.StatusOK, "System status", status)
}
