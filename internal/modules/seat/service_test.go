package seat

import (
	"context"
	"encoding/json"
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
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	updates [][]SeatState
}

func (p *recordingPublisher) Publish(_ uuid.UUID, seats []SeatState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, seats)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.updates)
}

type fixture struct {
	sess *domain.Session
	x, y *domain.Guest
}

func setup(t *testing.T, pub Publisher) (*Service, fixture) {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	sess := &domain.Session{Name: "LAN", Slug: "lan", StartDate: time.Now()}
	require.NoError(t, db.Create(sess).Error)
	x := &domain.Guest{Name: "Xaver", SessionID: sess.ID, NightsCount: 1, IsActive: true}
	y := &domain.Guest{Name: "Yvona", SessionID: sess.ID, NightsCount: 1, IsActive: true}
	require.NoError(t, db.Create(x).Error)
	require.NoError(t, db.Create(y).Error)

	svc := NewService(repository.NewSeatRepository(db), repository.NewSessionRepository(db), repository.NewGuestRepository(db), pub)
	return svc, fixture{sess: sess, x: x, y: y}
}

func TestLayout(t *testing.T) {
	assert.Len(t, Layout, 18)
	assert.Equal(t, "A1", Layout[0])
	assert.Equal(t, "D2", Layout[len(Layout)-1])
	assert.True(t, ValidSeat("C4"))
	assert.False(t, ValidSeat("C5"))
	assert.False(t, ValidSeat("E1"))
}

func TestClaim_ToggleMoveAndConflict(t *testing.T) {
	pub := &recordingPublisher{}
	svc, f := setup(t, pub)
	ctx := context.Background()

	res, err := svc.Claim(ctx, "lan", ClaimRequest{GuestID: f.x.ID, SeatID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, "reserved", res.Action)
	assert.Equal(t, "A1", res.SeatID)

	_, err = svc.Claim(ctx, "lan", ClaimRequest{GuestID: f.y.ID, SeatID: "A1"})
	assert.ErrorIs(t, err, ErrSeatTaken)

	res, err = svc.Claim(ctx, "lan", ClaimRequest{GuestID: f.x.ID, SeatID: "A2"})
	require.NoError(t, err)
	assert.Equal(t, "moved", res.Action)

	seats, err := svc.Map(ctx, "lan")
	require.NoError(t, err)
	assert.False(t, seats[0].Reserved, "A1 is free after the move")
	assert.True(t, seats[1].Reserved)
	assert.Equal(t, "Xaver", seats[1].GuestName)

	res, err = svc.Claim(ctx, "lan", ClaimRequest{GuestID: f.x.ID, SeatID: "A2"})
	require.NoError(t, err)
	assert.Equal(t, "released", res.Action)
	assert.Nil(t, res.ID)

	seats, err = svc.Map(ctx, "lan")
	require.NoError(t, err)
	for _, s := range seats {
		assert.False(t, s.Reserved, s.SeatID)
	}
	assert.Equal(t, 3, pub.count(), "only successful changes are broadcast")
}

func TestClaim_Rejections(t *testing.T) {
	svc, f := setup(t, nil)
	ctx := context.Background()

	_, err := svc.Claim(ctx, "lan", ClaimRequest{GuestID: f.x.ID, SeatID: "Z9"})
	assert.ErrorIs(t, err, ErrUnknownSeat)

	_, err = svc.Claim(ctx, "other", ClaimRequest{GuestID: f.x.ID, SeatID: "A1"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Claim(ctx, "lan", ClaimRequest{GuestID: uuid.New(), SeatID: "A1"})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestCancel(t *testing.T) {
	svc, f := setup(t, nil)
	ctx := context.Background()

	res, err := svc.Claim(ctx, "lan", ClaimRequest{GuestID: f.y.ID, SeatID: "D2"})
	require.NoError(t, err)
	require.NotNil(t, res.ID)

	require.NoError(t, svc.Cancel(ctx, *res.ID))
	assert.ErrorIs(t, svc.Cancel(ctx, *res.ID), ErrReservationMissing)
}

func TestHandler_SeatTaken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, f := setup(t, nil)
	r := gin.New()
	NewHandler(svc, NewHub(nil)).RegisterGuestRoutes(r.Group("/api"))

	claim := func(guest uuid.UUID) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/event/lan/seats",
			strings.NewReader(`{"guest_id":"`+guest.String()+`","seat_id":"B3"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, claim(f.x.ID).Code)
	w := claim(f.y.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "SEAT_TAKEN")

	w = claim(f.x.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"released"`)
}

func TestHandler_ClaimStatusPerOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, f := setup(t, nil)
	r := gin.New()
	NewHandler(svc, NewHub(nil)).RegisterGuestRoutes(r.Group("/api"))

	claim := func(seat string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/event/lan/seats",
			strings.NewReader(`{"guest_id":"`+f.x.ID.String()+`","seat_id":"`+seat+`"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := claim("A1")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"reserved"`)

	w = claim("A2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"moved"`)

	w = claim("A2")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"released"`)
}

func TestHub_BroadcastsSeatUpdates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	defer hub.Close()
	svc, f := setup(t, hub)

	r := gin.New()
	h := NewHandler(svc, hub)
	h.RegisterRoutes(r.Group("/api"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/event/lan/seats/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() SeatUpdate {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		var u SeatUpdate
		require.NoError(t, json.Unmarshal(msg, &u))
		return u
	}

	initial := read()
	assert.Equal(t, EventSeatUpdate, initial.Type)
	assert.Len(t, initial.Seats, len(Layout))
	assert.Equal(t, 1, hub.Clients())

	_, err = svc.Claim(context.Background(), "lan", ClaimRequest{GuestID: f.x.ID, SeatID: "C1"})
	require.NoError(t, err)

	update := read()
	var c1 SeatState
	for _, s := range update.Seats {
		if s.SeatID == "C1" {
			c1 = s
		}
	}
	assert.True(t, c1.Reserved)
	assert.Equal(t, "Xaver", c1.GuestName)
}
