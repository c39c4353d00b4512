package hardware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"thenest/internal/database"
	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc   *Service
	db    *gorm.DB
	sess  *domain.Session
	guest *domain.Guest
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	sess := &domain.Session{Name: "LAN", Slug: "lan", StartDate: time.Now(), HardwarePricingEnabled: true}
	require.NoError(t, db.Create(sess).Error)
	g := &domain.Guest{Name: "Karel", SessionID: sess.ID, NightsCount: 2, IsActive: true}
	require.NoError(t, db.Create(g).Error)

	settings := repository.NewSettingsRepository(db)
	id := sess.ID
	require.NoError(t, settings.SetActiveSession(context.Background(), &id))

	svc := NewService(
		repository.NewHardwareRepository(db),
		repository.NewGuestRepository(db),
		repository.NewSessionRepository(db),
		settings,
	)
	return &fixture{svc: svc, db: db, sess: sess, guest: g}
}

func (f *fixture) item(t *testing.T, name string, qty int, price int64) *domain.HardwareItem {
	t.Helper()
	it := &domain.HardwareItem{Name: name, Type: domain.HardwareMonitor, PricePerNight: decimal.NewFromInt(price), Quantity: qty, IsAvailable: true}
	require.NoError(t, f.db.Create(it).Error)
	return it
}

func (f *fixture) countReservations(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&domain.HardwareReservation{}).Count(&n).Error)
	return n
}

func TestCoalesce(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	reqs, err := Coalesce(CreateReservationsRequest{
		Reservations:    []ReservationLine{{HardwareItemID: b, Quantity: 2}, {HardwareItemID: a}},
		HardwareItemIDs: []uuid.UUID{a, a, b},
	})
	require.NoError(t, err)
	assert.Equal(t, []repository.ReservationRequest{{ItemID: b, Quantity: 3}, {ItemID: a, Quantity: 3}}, reqs)

	_, err = Coalesce(CreateReservationsRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReserve_RejectsWholeBatchOnShortage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	pc := f.item(t, "Herní PC", 5, 200)
	mon := f.item(t, "Monitor 27\"", 2, 100)

	_, err := f.svc.Reserve(ctx, CreateReservationsRequest{
		GuestID:     f.guest.ID,
		NightsCount: 2,
		Reservations: []ReservationLine{
			{HardwareItemID: pc.ID, Quantity: 1},
			{HardwareItemID: mon.ID, Quantity: 3},
		},
	})
	var shortage *repository.StockShortage
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, mon.ID, shortage.ItemID)
	assert.Equal(t, 2, shortage.Available)
	assert.Equal(t, 3, shortage.Requested)
	assert.Contains(t, err.Error(), "Monitor 27")
	assert.Equal(t, int64(0), f.countReservations(t), "no partial reservation")
}

func TestReserve_SnapshotPriceAndStockAccounting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	mon := f.item(t, "Monitor", 2, 100)

	created, err := f.svc.Reserve(ctx, CreateReservationsRequest{
		GuestID:         f.guest.ID,
		NightsCount:     3,
		HardwareItemIDs: []uuid.UUID{mon.ID, mon.ID},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, 2, created[0].Quantity)
	assert.True(t, decimal.NewFromInt(600).Equal(created[0].TotalPrice))
	assert.Equal(t, f.sess.ID, created[0].SessionID)

	// later price changes do not touch the frozen total
	require.NoError(t, f.db.Model(mon).Update("price_per_night", decimal.NewFromInt(999)).Error)
	list, err := f.svc.ListReservations(ctx, f.sess.ID, f.guest.ID, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, decimal.NewFromInt(600).Equal(list[0].TotalPrice))

	_, err = f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: 1, HardwareItemIDs: []uuid.UUID{mon.ID}})
	var shortage *repository.StockShortage
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, 0, shortage.Available)

	// cancelled reservations free their units
	require.NoError(t, f.svc.Cancel(ctx, created[0].ID))
	avail, err := f.svc.Availability(ctx, f.sess.ID, false)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, 2, avail[0].Available)

	_, err = f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: 1, HardwareItemIDs: []uuid.UUID{mon.ID}})
	assert.NoError(t, err)
}

func TestReserve_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	mon := f.item(t, "Monitor", 2, 100)

	_, err := f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: 1, HardwareItemIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, f.db.Model(mon).Update("is_available", false).Error)
	_, err = f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: 1, HardwareItemIDs: []uuid.UUID{mon.ID}})
	assert.ErrorIs(t, err, ErrItemUnavailable)

	_, err = f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: uuid.New(), NightsCount: 1, HardwareItemIDs: []uuid.UUID{mon.ID}})
	assert.ErrorIs(t, err, ErrGuestNotFound)

	other := uuid.New()
	_, err = f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, SessionID: &other, NightsCount: 1, HardwareItemIDs: []uuid.UUID{mon.ID}})
	assert.ErrorIs(t, err, ErrGuestNotInSession)

	_, err = f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: 0, HardwareItemIDs: []uuid.UUID{mon.ID}})
	assert.ErrorIs(t, err, ErrValidation)
}

// The in-memory store runs one transaction at a time, so this checks that
// parallel callers drain stock exactly; row locking is covered in the repository.
func TestReserve_ParallelCallersDrainStockExactly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	pc := f.item(t, "PC", 3, 200)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: 1, HardwareItemIDs: []uuid.UUID{pc.ID}})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, int64(3), f.countReservations(t))
}

func TestCreateItem_ZeroQuantityIsKept(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	zero := 0
	it, err := f.svc.CreateItem(ctx, CreateItemRequest{Name: "Rezerva", Type: domain.HardwarePC, PricePerNight: decimal.NewFromInt(100), Quantity: &zero})
	require.NoError(t, err)

	var stored domain.HardwareItem
	require.NoError(t, f.db.First(&stored, "id = ?", it.ID).Error)
	assert.Equal(t, 0, stored.Quantity)

	_, err = f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: 1, HardwareItemIDs: []uuid.UUID{it.ID}})
	var shortage *repository.StockShortage
	require.True(t, errors.As(err, &shortage), "got %v", err)
	assert.Equal(t, 0, shortage.Available)
	assert.Zero(t, f.countReservations(t))

	def, err := f.svc.CreateItem(ctx, CreateItemRequest{Name: "PC", Type: domain.HardwarePC})
	require.NoError(t, err)
	assert.Equal(t, 1, def.Quantity)
}

func TestReserve_PriceOfLargeBooking(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	const units = 1 << 60
	farm := f.item(t, "Farma", units, 1)

	_, err := f.svc.Reserve(ctx, CreateReservationsRequest{GuestID: f.guest.ID, NightsCount: MaxNights + 1, HardwareItemIDs: []uuid.UUID{farm.ID}})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := f.svc.Reserve(ctx, CreateReservationsRequest{
		GuestID:      f.guest.ID,
		NightsCount:  MaxNights,
		Reservations: []ReservationLine{{HardwareItemID: farm.ID, Quantity: units}},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	want := decimal.NewFromInt(units).Mul(decimal.NewFromInt(MaxNights))
	assert.True(t, want.Equal(created[0].TotalPrice), created[0].TotalPrice.String())
	assert.True(t, created[0].TotalPrice.IsPositive())
}

func TestHandler_InsufficientStock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)
	mon := f.item(t, "Monitor Dell", 2, 100)

	r := gin.New()
	NewHandler(f.svc).RegisterGuestRoutes(r.Group("/api"))

	body := `{"guest_id":"` + f.guest.ID.String() + `","nights_count":2,"reservations":[{"hardware_item_id":"` + mon.ID.String() + `","quantity":3}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/hardware/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_STOCK")
	assert.Contains(t, w.Body.String(), "Monitor Dell")
	assert.Equal(t, int64(0), f.countReservations(t))
}
