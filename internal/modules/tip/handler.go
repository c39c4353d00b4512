package tip

import (
	"errors"
	"net/http"

	"thenest/internal/pkg/request"
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
	rg.GET("/event/:slug/guests/:guestId/tip", h.Get)
}

func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.PUT("/event/:slug/guests/:guestId/tip", h.Set)
}

func (h *Handler) Set(c *gin.Context) {
	guestID, ok := request.UUIDParam(c, "guestId")
	if !ok {
		return
	}
	var req SetTipRequest
	if !request.BindJSON(c, &req) {
		return
	}
	t, err := h.service.Set(c.Request.Context(), c.Param("slug"), guestID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

func (h *Handler) Get(c *gin.Context) {
	guestID, ok := request.UUIDParam(c, "guestId")
	if !ok {
		return
	}
	t, err := h.service.Get(c.Request.Context(), c.Param("slug"), guestID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Akce nebyla nalezena")
	case errors.Is(err, ErrGuestNotFound):
		response.Error(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Host nebyl nalezen")
	case errors.Is(err, ErrGuestNotInEvent):
		response.Error(c, http.StatusBadRequest, "GUEST_NOT_IN_SESSION", "Host nepatří k této akci")
	default:
		response.Internal(c, err)
	}
}
