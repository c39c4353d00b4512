package auth

import (
	"errors"
	"net/http"

	"thenest/internal/domain"
	"thenest/internal/middleware"
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

// RegisterPublicRoutes mounts register and login; the caller wraps rg with the rate limiter.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterGuestRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.POST("/users/:id/approve", h.Approve)
	rg.POST("/users/:id/reject", h.Reject)
	rg.PATCH("/users/:id/role", h.SetRole)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !request.BindJSON(c, &req) {
		return
	}
	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, u)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *Handler) Me(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Přihlaste se")
		return
	}
	u, err := h.service.Me(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), domain.UserStatus(c.Query("status")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

func (h *Handler) Approve(c *gin.Context) { h.setStatus(c, domain.UserApproved) }

func (h *Handler) Reject(c *gin.Context) { h.setStatus(c, domain.UserRejected) }

func (h *Handler) setStatus(c *gin.Context, status domain.UserStatus) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	u, err := h.service.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *Handler) SetRole(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req SetRoleRequest
	if !request.BindJSON(c, &req) {
		return
	}
	u, err := h.service.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Nesprávný e-mail nebo heslo")
	case errors.Is(err, ErrPendingApproval):
		response.Error(c, http.StatusForbidden, "ACCOUNT_PENDING", "Účet čeká na schválení")
	case errors.Is(err, ErrRejected):
		response.Error(c, http.StatusForbidden, "ACCOUNT_REJECTED", "Účet byl zamítnut")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Tento e-mail je už registrován")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "Uživatel nebyl nalezen")
	default:
		response.Internal(c, err)
	}
}
