package upload

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

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.Upload)
}

func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Chybí soubor v poli file")
		return
	}
	url, err := h.service.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Soubor je prázdný")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Soubor je větší než 10 MB")
		case errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusUnsupportedMediaType, "INVALID_FILE_TYPE", "Povolené jsou jen obrázky JPEG, PNG, GIF a WebP")
		default:
			response.Internal(c, err)
		}
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"url": url})
}
