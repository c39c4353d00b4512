package hardware

import (
	"errors"
	"fmt"
	"net/http"

	"thenest/internal/pkg/request"
	"thenest/internal/pkg/response"
	"thenest/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/hardware", h.ListItems)
	rg.GET("/event/:slug/hardware", h.ListForEvent)
	rg.GET("/hardware/reservations", h.ListReservations)
}

func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.POST("/hardware/reservations", h.Reserve)
	rg.DELETE("/hardware/reservations/:id", h.Cancel)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/hardware/items")
	{
		items.GET("", h.AdminListItems)
		items.POST("", h.CreateItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *Handler) Reserve(c *gin.Context) {
	var req CreateReservationsRequest
	if !request.BindJSON(c, &req) {
		return
	}
	created, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"reservations": created})
}

func (h *Handler) ListReservations(c *gin.Context) {
	sessionID, ok := request.UUIDQuery(c, "session_id")
	if !ok {
		return
	}
	guestID, ok := request.UUIDQuery(c, "guest_id")
	if !ok {
		return
	}
	list, err := h.service.ListReservations(c.Request.Context(), sessionID, guestID, c.Query("all") != "true")
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) ListItems(c *gin.Context) {
	sessionID, ok := request.UUIDQuery(c, "session_id")
	if !ok {
		return
	}
	list, err := h.service.Availability(c.Request.Context(), sessionID, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) ListForEvent(c *gin.Context) {
	list, err := h.service.AvailabilityForEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) AdminListItems(c *gin.Context) {
	sessionID, ok := request.UUIDQuery(c, "session_id")
	if !ok {
		return
	}
	list, err := h.service.Availability(c.Request.Context(), sessionID, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if !request.BindJSON(c, &req) {
		return
	}
	it, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, it)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !request.BindJSON(c, &req) {
		return
	}
	it, err := h.service.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, it)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var shortage *repository.StockShortage
	switch {
	case errors.As(err, &shortage):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_STOCK",
			fmt.Sprintf("Nedostatek kusů: %s (k dispozici %d, požadováno %d)", shortage.ItemName, shortage.Available, shortage.Requested),
			gin.H{
				"hardware_item_id": shortage.ItemID,
				"item_name":        shortage.ItemName,
				"available":        shortage.Available,
				"requested":        shortage.Requested,
			})
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrGuestNotInSession):
		response.Error(c, http.StatusBadRequest, "GUEST_NOT_IN_SESSION", "Host nepatří k této akci")
	case errors.Is(err, ErrNoActiveSession):
		response.Error(c, http.StatusNotFound, "NO_ACTIVE_SESSION", "Žádná akce není aktivní")
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Akce nebyla nalezena")
	case errors.Is(err, ErrGuestNotFound):
		response.Error(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Host nebyl nalezen")
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "HARDWARE_NOT_FOUND", "Hardware nebyl nalezen")
	case errors.Is(err, ErrReservationMissing):
		response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Rezervace nebyla nalezena")
	case errors.Is(err, ErrItemUnavailable):
		response.Error(c, http.StatusConflict, "HARDWARE_UNAVAILABLE", "Hardware není k dispozici")
	case errors.Is(err, ErrGuestInactive):
		response.Error(c, http.StatusConflict, "GUEST_INACTIVE", "Host už není aktivní")
	default:
		response.Internal(c, err)
	}
}
