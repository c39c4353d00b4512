package costs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thenest/internal/database"
	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	svc := NewService(
		repository.NewSessionRepository(db),
		repository.NewLedgerRepository(db),
		repository.NewSettingsRepository(db),
	)
	return svc, db
}

func seedEvent(t *testing.T, db *gorm.DB) (*domain.Session, domain.Guest) {
	t.Helper()
	s := &domain.Session{
		Name:                   "Jarní LAN",
		Slug:                   "jarni-lan",
		StartDate:              time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PricePerNight:          decimal.NewFromInt(200),
		SurchargeEnabled:       true,
		HardwarePricingEnabled: true,
		Status:                 domain.SessionUpcoming,
	}
	require.NoError(t, db.Create(s).Error)

	karel := domain.Guest{Name: "Karel", SessionID: s.ID, NightsCount: 2, IsActive: true}
	require.NoError(t, db.Create(&karel).Error)
	left := domain.Guest{Name: "Odjel", SessionID: s.ID, NightsCount: 1, IsActive: true}
	require.NoError(t, db.Create(&left).Error)
	require.NoError(t, db.Model(&left).Update("is_active", false).Error)

	pivo30 := domain.Product{Name: "Pivo", Category: "Nápoje", Price: decimal.NewFromInt(30), IsAvailable: true}
	pivo35 := domain.Product{Name: "Pivo", Category: "Nápoje", Price: decimal.NewFromInt(35), IsAvailable: true}
	require.NoError(t, db.Create(&pivo30).Error)
	require.NoError(t, db.Create(&pivo35).Error)

	t0 := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&domain.Consumption{GuestID: karel.ID, ProductID: pivo30.ID, SessionID: s.ID, Quantity: 2, ConsumedAt: t0}).Error)
	require.NoError(t, db.Create(&domain.Consumption{GuestID: karel.ID, ProductID: pivo35.ID, SessionID: s.ID, Quantity: 1, ConsumedAt: t0.Add(time.Hour)}).Error)

	pc := domain.HardwareItem{Name: "Herní PC", Type: domain.HardwarePC, PricePerNight: decimal.NewFromInt(150), Quantity: 2, IsAvailable: true}
	require.NoError(t, db.Create(&pc).Error)
	require.NoError(t, db.Create(&domain.HardwareReservation{
		HardwareItemID: pc.ID, GuestID: karel.ID, SessionID: s.ID, Quantity: 1, NightsCount: 2,
		TotalPrice: decimal.NewFromInt(300), Status: domain.ReservationActive,
	}).Error)
	require.NoError(t, db.Create(&domain.HardwareReservation{
		HardwareItemID: pc.ID, GuestID: karel.ID, SessionID: s.ID, Quantity: 1, NightsCount: 2,
		TotalPrice: decimal.NewFromInt(999), Status: domain.ReservationCancelled,
	}).Error)

	return s, karel
}

func TestService_ForSlug(t *testing.T) {
	svc, db := setupService(t)
	s, karel := seedEvent(t, db)

	report, err := svc.ForSlug(context.Background(), s.Slug)
	require.NoError(t, err)

	assert.Equal(t, 1, report.GuestCount)
	assert.True(t, report.IsPreliminary)
	// 200 + (10-1)*150
	assertMoney(t, "1550", report.EffectivePricePerNight)
	require.Len(t, report.Guests, 1)

	gc := report.Guests[0]
	assert.Equal(t, karel.ID, gc.ID)
	assertMoney(t, "3100", gc.NightsTotal)
	require.Len(t, gc.Consumption, 1)
	assert.Equal(t, 3, gc.Consumption[0].Quantity)
	assertMoney(t, "95", gc.SnacksTotal)
	require.Len(t, gc.Hardware, 1)
	assertMoney(t, "300", gc.HwTotal)
	assertMoney(t, "3495", gc.GrandTotal)
}

func TestService_ForSlug_FinalizedSettlement(t *testing.T) {
	svc, db := setupService(t)
	s, karel := seedEvent(t, db)

	now := time.Now()
	require.NoError(t, db.Create(&domain.Settlement{
		SessionID:      s.ID,
		GuestID:        karel.ID,
		Status:         domain.SettlementPending,
		QRGeneratedAt:  &now,
		VariableSymbol: "2403010001",
		Overrides:      map[string]decimal.Decimal{KeyAccommodation: decimal.NewFromInt(1000)},
		Adjustments:    []domain.LineItem{{Label: "Sleva", Amount: decimal.NewFromInt(-95)}},
	}).Error)

	report, err := svc.ForSlug(context.Background(), s.Slug)
	require.NoError(t, err)
	assert.False(t, report.IsPreliminary)
	st := report.Guests[0].Settlement
	require.NotNil(t, st)
	// 1000 + 95 + 300 - 95
	assertMoney(t, "1300", st.FinalTotal)
	assert.Equal(t, "2403010001", st.VariableSymbol)
}

func TestService_UnknownSession(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.ForSlug(context.Background(), "nic")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestHandler_GetEventCosts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, db := setupService(t)
	s, _ := seedEvent(t, db)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/"+s.Slug+"/costs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Jarní LAN", body["sessionName"])
	assert.Equal(t, true, body["isPreliminary"])
	assert.Nil(t, body["bankSettings"])
	guests := body["guests"].([]any)
	require.Len(t, guests, 1)
	g := guests[0].(map[string]any)
	assert.Equal(t, float64(95), g["snacksTotal"])
	assert.Nil(t, g["settlement"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/missing/costs", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_NOT_FOUND")
}
