package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thenest/internal/database"
	"thenest/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	return NewService(repository.NewSettingsRepository(db))
}

func TestUpdateBank(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	st, err := svc.UpdateBank(ctx, UpdateBankRequest{
		BankAccountNumber: "19-2000145399",
		BankCode:          "0800",
		IBAN:              "cz65 0800 0000 1920 0014 5399",
		RecipientName:     " The Nest ",
	})
	require.NoError(t, err)
	assert.Equal(t, "CZ6508000000192000145399", st.IBAN)
	assert.Equal(t, "The Nest", st.RecipientName)
	assert.True(t, st.HasBankAccount())

	_, err = svc.UpdateBank(ctx, UpdateBankRequest{IBAN: "CZ6508000000192000145398"})
	assert.ErrorIs(t, err, ErrValidation)

	cleared, err := svc.UpdateBank(ctx, UpdateBankRequest{})
	require.NoError(t, err)
	assert.False(t, cleared.HasBankAccount())
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(setup(t)).RegisterAdminRoutes(r.Group("/api/admin"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{"iban":"XX00"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_IBAN")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
