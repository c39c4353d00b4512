package guest

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
	rg.GET("/event/:slug/guests", h.ListForEvent)
}

// RegisterGuestRoutes mounts endpoints that need an approved user.
func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.POST("/event/:slug/guests", h.Register)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions/:id/guests", h.ListForSession)
	rg.PATCH("/guests/:id", h.Update)
	rg.DELETE("/guests/:id", h.Deactivate)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterGuestRequest
	if !request.BindJSON(c, &req) {
		return
	}
	g, err := h.service.Register(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, g)
}

func (h *Handler) ListForEvent(c *gin.Context) {
	list, err := h.service.ListForEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		WriteError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) ListForSession(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	list, err := h.service.ListForSession(c.Request.Context(), id, c.Query("include_inactive") == "true")
	if err != nil {
		WriteError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateGuestRequest
	if !request.BindJSON(c, &req) {
		return
	}
	g, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, g)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		WriteError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deactivated": true})
}

// WriteError maps guest errors to HTTP answers. Other modules that look up
// guests through Service reuse it.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Akce nebyla nalezena")
	case errors.Is(err, ErrGuestNotFound):
		response.Error(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Host nebyl nalezen")
	case errors.Is(err, ErrGuestNotInEvent):
		response.Error(c, http.StatusBadRequest, "GUEST_NOT_IN_SESSION", "Host nepatří k této akci")
	case errors.Is(err, ErrGuestInactive):
		response.Error(c, http.StatusConflict, "GUEST_INACTIVE", "Host už není aktivní")
	case errors.Is(err, ErrSessionClosed):
		response.Error(c, http.StatusConflict, "SESSION_CLOSED", "Registrace na tuto akci je uzavřena")
	case errors.Is(err, ErrGuestExists):
		response.Error(c, http.StatusConflict, "GUEST_EXISTS", "Host s tímto jménem je už registrován")
	default:
		response.Internal(c, err)
	}
}
