package v1

import (
	"alvant-portal/internal/delivery/http/response"
	"alvant-portal/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Liveness and dependency status
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, healthUC.Check(c.Request.Context()))
	}
}
