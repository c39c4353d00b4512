package settlement

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
	rg.GET("/event/:slug/guests/:guestId/payment-qr", h.PaymentQR)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions/:id/settlement", h.View)
	rg.POST("/sessions/:id/settlement", h.Apply)
	rg.POST("/sessions/:id/settlement/migrate-keys", h.MigrateKeys)
	rg.GET("/sessions/:id/settlement/:guestId/pdf", h.Invoice)
}

func (h *Handler) Apply(c *gin.Context) {
	sessionID, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req ActionRequest
	if !request.BindJSON(c, &req) {
		return
	}
	st, err := h.service.Apply(c.Request.Context(), sessionID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, st)
}

func (h *Handler) View(c *gin.Context) {
	sessionID, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.service.View(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

func (h *Handler) MigrateKeys(c *gin.Context) {
	sessionID, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	res, err := h.service.MigrateKeys(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *Handler) Invoice(c *gin.Context) {
	sessionID, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	guestID, ok := request.UUIDParam(c, "guestId")
	if !ok {
		return
	}
	inv, err := h.service.Invoice(c.Request.Context(), sessionID, guestID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+inv.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", inv.Content)
}

func (h *Handler) PaymentQR(c *gin.Context) {
	guestID, ok := request.UUIDParam(c, "guestId")
	if !ok {
		return
	}
	png, err := h.service.PaymentQR(c.Request.Context(), c.Param("slug"), guestID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Akce nebyla nalezena")
	case errors.Is(err, ErrGuestNotFound):
		response.Error(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Host nebyl nalezen")
	case errors.Is(err, ErrGuestNotInSession):
		response.Error(c, http.StatusBadRequest, "GUEST_NOT_IN_SESSION", "Host nepatří k této akci")
	case errors.Is(err, ErrSettlementNotFound):
		response.Error(c, http.StatusNotFound, "SETTLEMENT_NOT_FOUND", "Vyúčtování neexistuje")
	case errors.Is(err, ErrNotFinalized):
		response.Error(c, http.StatusNotFound, "NOT_FINALIZED", "Vyúčtování ještě není uzavřeno")
	case errors.Is(err, ErrNoBankAccount):
		response.Error(c, http.StatusConflict, "NO_BANK_ACCOUNT", "Není nastaven bankovní účet")
	case errors.Is(err, ErrSymbolTaken):
		response.Error(c, http.StatusConflict, "SYMBOL_TAKEN", "Variabilní symbol už je použit")
	case errors.Is(err, ErrNothingToPay):
		response.Error(c, http.StatusConflict, "NOTHING_TO_PAY", "Není co platit")
	default:
		response.Internal(c, err)
	}
}
