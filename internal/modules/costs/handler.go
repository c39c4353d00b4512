package costs

import (
	"errors"
	"net/http"

	"thenest/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/event/:slug/costs", h.GetEventCosts)
}

func (h *Handler) GetEventCosts(c *gin.Context) {
	report, err := h.service.ForSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Akce nebyla nalezena")
			return
		}
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
