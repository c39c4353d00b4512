package consumption

import (
	"errors"
	"net/http"

	"thenest/internal/pkg/request"
	"thenest/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/consumption", h.List)
}

func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.POST("/consumption", h.Add)
	rg.DELETE("/consumption/:id", h.Delete)
}

func (h *Handler) Add(c *gin.Context) {
	var req AddConsumptionRequest
	if !request.BindJSON(c, &req) {
		return
	}
	e, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, e)
}

func (h *Handler) List(c *gin.Context) {
	guestID, ok := request.UUIDQuery(c, "guest_id")
	if !ok {
		return
	}
	if guestID == uuid.Nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Parametr guest_id je povinný")
		return
	}
	list, err := h.service.ListByGuest(c.Request.Context(), guestID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "CONSUMPTION_NOT_FOUND", "Záznam nebyl nalezen")
	case errors.Is(err, ErrGuestNotFound):
		response.Error(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Host nebyl nalezen")
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Produkt nebyl nalezen")
	case errors.Is(err, ErrGuestInactive):
		response.Error(c, http.StatusConflict, "GUEST_INACTIVE", "Host už není aktivní")
	case errors.Is(err, ErrProductUnavailable):
		response.Error(c, http.StatusConflict, "PRODUCT_UNAVAILABLE", "Produkt není k dispozici")
	default:
		response.Internal(c, err)
	}
}
