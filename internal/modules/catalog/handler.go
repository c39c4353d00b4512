package catalog

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
	rg.GET("/products", h.ListProducts)
	rg.GET("/games", h.ListGames)
	rg.GET("/event/:slug/games", h.GamesForEvent)
	rg.GET("/event/:slug/menu", h.EventMenu)
}

func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.POST("/event/:slug/games/:gameId/vote", h.Vote)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.AdminListProducts)
	rg.POST("/products", h.CreateProduct)
	rg.PATCH("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)

	rg.GET("/games", h.AdminListGames)
	rg.POST("/games", h.CreateGame)
	rg.PATCH("/games/:id", h.UpdateGame)
	rg.DELETE("/games/:id", h.DeleteGame)

	rg.GET("/sessions/:id/menu", h.SessionMenu)
	rg.POST("/sessions/:id/menu", h.CreateMenuItem)
	rg.POST("/sessions/:id/menu/from-template", h.FromTemplate)
	rg.PATCH("/menu/:id", h.UpdateMenuItem)
	rg.DELETE("/menu/:id", h.DeleteMenuItem)

	rg.GET("/meal-templates", h.ListTemplates)
	rg.POST("/meal-templates", h.CreateTemplate)
	rg.PATCH("/meal-templates/:id", h.UpdateTemplate)
	rg.DELETE("/meal-templates/:id", h.DeleteTemplate)
}

/* ---------- products ---------- */

func (h *Handler) ListProducts(c *gin.Context) {
	list, err := h.service.ListProducts(c.Request.Context(), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) AdminListProducts(c *gin.Context) {
	list, err := h.service.ListProducts(c.Request.Context(), false)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if !request.BindJSON(c, &req) {
		return
	}
	p, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if !request.BindJSON(c, &req) {
		return
	}
	p, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- games ---------- */

func (h *Handler) ListGames(c *gin.Context) {
	list, err := h.service.ListGames(c.Request.Context(), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) AdminListGames(c *gin.Context) {
	list, err := h.service.ListGames(c.Request.Context(), false)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) GamesForEvent(c *gin.Context) {
	list, err := h.service.GamesForEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) Vote(c *gin.Context) {
	gameID, ok := request.UUIDParam(c, "gameId")
	if !ok {
		return
	}
	var req VoteRequest
	if !request.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Vote(c.Request.Context(), c.Param("slug"), gameID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *Handler) CreateGame(c *gin.Context) {
	var req GameRequest
	if !request.BindJSON(c, &req) {
		return
	}
	g, err := h.service.CreateGame(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, g)
}

func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req GameRequest
	if !request.BindJSON(c, &req) {
		return
	}
	g, err := h.service.UpdateGame(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, g)
}

func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteGame(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- menu ---------- */

func (h *Handler) EventMenu(c *gin.Context) {
	list, err := h.service.EventMenu(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) SessionMenu(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	list, err := h.service.SessionMenu(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req MenuItemRequest
	if !request.BindJSON(c, &req) {
		return
	}
	m, err := h.service.CreateMenuItem(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, m)
}

func (h *Handler) FromTemplate(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req FromTemplateRequest
	if !request.BindJSON(c, &req) {
		return
	}
	m, err := h.service.FromTemplate(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, m)
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req MenuItemRequest
	if !request.BindJSON(c, &req) {
		return
	}
	m, err := h.service.UpdateMenuItem(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, m)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteMenuItem(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListTemplates(c *gin.Context) {
	list, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if !request.BindJSON(c, &req) {
		return
	}
	t, err := h.service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, t)
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req TemplateRequest
	if !request.BindJSON(c, &req) {
		return
	}
	t, err := h.service.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteTemplate(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": true})
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
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Produkt nebyl nalezen")
	case errors.Is(err, ErrGameNotFound):
		response.Error(c, http.StatusNotFound, "GAME_NOT_FOUND", "Hra nebyla nalezena")
	case errors.Is(err, ErrGameInactive):
		response.Error(c, http.StatusConflict, "GAME_INACTIVE", "Pro tuto hru nelze hlasovat")
	case errors.Is(err, ErrMenuDisabled):
		response.Error(c, http.StatusNotFound, "MENU_DISABLED", "Tato akce nemá jídelníček")
	case errors.Is(err, ErrMenuItemNotFound):
		response.Error(c, http.StatusNotFound, "MENU_ITEM_NOT_FOUND", "Položka jídelníčku nebyla nalezena")
	case errors.Is(err, ErrTemplateNotFound):
		response.Error(c, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "Šablona jídla nebyla nalezena")
	default:
		response.Internal(c, err)
	}
}
