package request

import (
	"net/http"

	"thenest/internal/pkg/response"
	"thenest/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BindJSON decodes the body into dst and runs struct validation. On failure it
// writes a 400 and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Neplatná data požadavku", err.Error())
		return false
	}
	if errs := validator.Validate(dst); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Neplatná data požadavku", errs)
		return false
	}
	return true
}

// UUIDParam parses a path parameter as a UUID, answering 400 INVALID_ID otherwise.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Neplatné ID")
		return uuid.Nil, false
	}
	return id, true
}

// UUIDQuery parses an optional query parameter. An empty value yields uuid.Nil.
func UUIDQuery(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Neplatné ID v parametru "+name)
		return uuid.Nil, false
	}
	return id, true
}
