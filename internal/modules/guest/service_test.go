package guest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"thenest/internal/database"
	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Service, *gorm.DB, *domain.Session) {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	sess := &domain.Session{Name: "LAN", Slug: "lan", StartDate: time.Now(), Status: domain.SessionUpcoming}
	require.NoError(t, db.Create(sess).Error)

	svc := NewService(repository.NewSessionRepository(db), repository.NewGuestRepository(db))
	return svc, db, sess
}

func karel() RegisterGuestRequest {
	return RegisterGuestRequest{Name: "Karel", NightsCount: 2, CheckInDate: "2024-03-01", CheckOutDate: "2024-03-03"}
}

func TestRegister_DuplicateActiveNameConflicts(t *testing.T) {
	svc, _, sess := setup(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, sess.Slug, karel())
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	_, err = svc.Register(ctx, sess.Slug, karel())
	assert.ErrorIs(t, err, ErrGuestExists)

	padded := karel()
	padded.Name = "  Karel "
	_, err = svc.Register(ctx, sess.Slug, padded)
	assert.ErrorIs(t, err, ErrGuestExists)

	lower := karel()
	lower.Name = "karel"
	_, err = svc.Register(ctx, sess.Slug, lower)
	assert.NoError(t, err, "names compare case-sensitively")
}

func TestRegister_AfterDeactivationAllowed(t *testing.T) {
	svc, _, sess := setup(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, sess.Slug, karel())
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, first.ID))

	second, err := svc.Register(ctx, sess.Slug, karel())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	active, err := svc.ListForEvent(ctx, sess.Slug)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListForSession(ctx, sess.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, sess := setup(t)
	ctx := context.Background()

	bad := []RegisterGuestRequest{
		{Name: "  ", NightsCount: 1, CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02"},
		{Name: "Eva", NightsCount: 0, CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02"},
		{Name: "Eva", NightsCount: 1, CheckInDate: "zítra", CheckOutDate: "2024-03-02"},
		{Name: "Eva", NightsCount: 1, CheckInDate: "2024-03-05", CheckOutDate: "2024-03-02"},
	}
	for _, req := range bad {
		_, err := svc.Register(ctx, sess.Slug, req)
		assert.ErrorIs(t, err, ErrValidation, "%+v", req)
	}

	// nights_count is not derived from the dates
	g, err := svc.Register(ctx, sess.Slug, RegisterGuestRequest{Name: "Eva", NightsCount: 5, CheckInDate: "2024-03-01", CheckOutDate: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, 5, g.NightsCount)
}

func TestRegister_ClosedOrMissingSession(t *testing.T) {
	svc, db, sess := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "neexistuje", karel())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, db.Model(sess).Update("status", domain.SessionCancelled).Error)
	_, err = svc.Register(ctx, sess.Slug, karel())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestUpdate_RenameIntoTakenName(t *testing.T) {
	svc, _, sess := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, sess.Slug, karel())
	require.NoError(t, err)
	eva := karel()
	eva.Name = "Eva"
	g, err := svc.Register(ctx, sess.Slug, eva)
	require.NoError(t, err)

	name := "Karel"
	_, err = svc.Update(ctx, g.ID, UpdateGuestRequest{Name: &name})
	assert.ErrorIs(t, err, ErrGuestExists)

	nights := 3
	upd, err := svc.Update(ctx, g.ID, UpdateGuestRequest{NightsCount: &nights})
	require.NoError(t, err)
	assert.Equal(t, 3, upd.NightsCount)
}

func TestActiveInSession(t *testing.T) {
	svc, db, sess := setup(t)
	ctx := context.Background()

	g, err := svc.Register(ctx, sess.Slug, karel())
	require.NoError(t, err)

	other := &domain.Session{Name: "Jiná", Slug: "jina", StartDate: time.Now()}
	require.NoError(t, db.Create(other).Error)

	_, err = svc.ActiveInSession(ctx, g.ID, other.ID)
	assert.ErrorIs(t, err, ErrGuestNotInEvent)

	require.NoError(t, svc.Deactivate(ctx, g.ID))
	_, err = svc.ActiveInSession(ctx, g.ID, sess.ID)
	assert.ErrorIs(t, err, ErrGuestInactive)
}

func TestHandler_RegisterConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, sess := setup(t)
	r := gin.New()
	h := NewHandler(svc)
	h.RegisterGuestRoutes(r.Group("/api"))

	body := `{"name":"Karel","nights_count":2,"check_in_date":"2024-03-01","check_out_date":"2024-03-03"}`
	post := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/event/"+sess.Slug+"/guests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, post().Code)
	w := post()
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "GUEST_EXISTS")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/event/"+sess.Slug+"/guests", strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
