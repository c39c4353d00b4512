// Package settings exposes the singleton admin settings record. Only the bank
// details are editable here; the active-session pointer is moved through the
// session endpoints.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"thenest/internal/domain"
	"thenest/internal/pkg/qrpay"
	"thenest/internal/pkg/request"
	"thenest/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var ErrValidation = errors.New("validation error")

type Repository interface {
	Get(ctx context.Context) (*domain.AdminSettings, error)
	UpdateBank(ctx context.Context, s *domain.AdminSettings) error
}

type UpdateBankRequest struct {
	BankAccountNumber string `json:"bank_account_number" binding:"max=32"`
	BankCode          string `json:"bank_code" binding:"max=8"`
	IBAN              string `json:"iban" binding:"max=42"`
	RecipientName     string `json:"recipient_name" binding:"max=120"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*domain.AdminSettings, error) {
	return s.repo.Get(ctx)
}

// UpdateBank replaces the payment destination. An IBAN, when given, must pass
// its check digits so payment QR codes never point at a typo.
func (s *Service) UpdateBank(ctx context.Context, req UpdateBankRequest) (*domain.AdminSettings, error) {
	in := &domain.AdminSettings{
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
		BankCode:          strings.TrimSpace(req.BankCode),
		IBAN:              qrpay.NormalizeIBAN(req.IBAN),
		RecipientName:     strings.TrimSpace(req.RecipientName),
	}
	if in.IBAN != "" && !qrpay.ValidIBAN(in.IBAN) {
		return nil, fmt.Errorf("%w: iban", ErrValidation)
	}
	if err := s.repo.UpdateBank(ctx, in); err != nil {
		return nil, err
	}
	log.Printf("admin action: bank_settings_updated iban_set=%t account_set=%t", in.IBAN != "", in.BankAccountNumber != "")
	return s.repo.Get(ctx)
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.Get)
	rg.PUT("/settings", h.Update)
}

func (h *Handler) Get(c *gin.Context) {
	st, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, st)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBankRequest
	if !request.BindJSON(c, &req) {
		return
	}
	st, err := h.service.UpdateBank(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "INVALID_IBAN", "Neplatný IBAN")
			return
		}
		response.Internal(c, err)
		return
	}
	response.JSON(c, http.StatusOK, st)
}
