package seat

import (
	"errors"
	"log"
	"net/http"

	"thenest/internal/pkg/request"
	"thenest/internal/pkg/response"
	"thenest/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/seats/layout", h.Layout)
	rg.GET("/event/:slug/seats", h.Map)
	rg.GET("/event/:slug/seats/ws", h.Watch)
}

func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.POST("/event/:slug/seats", h.Claim)
	rg.DELETE("/seats/reservations/:id", h.Cancel)
}

func (h *Handler) Layout(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"seats": Layout})
}

func (h *Handler) Map(c *gin.Context) {
	seats, err := h.service.Map(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"seats": seats})
}

func (h *Handler) Claim(c *gin.Context) {
	var req ClaimRequest
	if !request.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Claim(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusCreated
	if res.Action != string(repository.SeatReserved) {
		status = http.StatusOK
	}
	response.JSON(c, status, res)
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
	response.JSON(c, http.StatusOK, gin.H{"action": "released"})
}

// Watch streams the seat map of an event over a websocket.
func (h *Handler) Watch(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, err := h.service.SessionID(ctx, c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	seats, err := h.service.Snapshot(ctx, sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request, sessionID, seats); err != nil {
		// the upgrader has already answered the client
		log.Printf("seat hub: upgrade: %v", err)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownSeat):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_SEAT", "Neznámé místo")
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Akce nebyla nalezena")
	case errors.Is(err, ErrGuestNotFound):
		response.Error(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Host nebyl nalezen")
	case errors.Is(err, ErrGuestNotInEvent):
		response.Error(c, http.StatusBadRequest, "GUEST_NOT_IN_SESSION", "Host nepatří k této akci")
	case errors.Is(err, ErrGuestInactive):
		response.Error(c, http.StatusConflict, "GUEST_INACTIVE", "Host už není aktivní")
	case errors.Is(err, ErrSeatTaken):
		response.Error(c, http.StatusConflict, "SEAT_TAKEN", "Místo je už obsazené")
	case errors.Is(err, ErrReservationMissing):
		response.Error(c, http.StatusNotFound, "SEAT_RESERVATION_NOT_FOUND", "Rezervace místa nebyla nalezena")
	default:
		response.Internal(c, err)
	}
}
