package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
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

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	svc := NewService(
		repository.NewProductRepository(db),
		repository.NewGameRepository(db),
		repository.NewMenuRepository(db),
		repository.NewSessionRepository(db),
		repository.NewGuestRepository(db),
	)
	return svc, db
}

func seedSession(t *testing.T, db *gorm.DB, slug string, menu bool) *domain.Session {
	t.Helper()
	s := &domain.Session{Name: slug, Slug: slug, StartDate: time.Now(), MenuEnabled: menu}
	require.NoError(t, db.Create(s).Error)
	return s
}

func TestProducts(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	cola, err := svc.CreateProduct(ctx, CreateProductRequest{Name: " Kofola ", Price: decimal.NewFromInt(25), Category: "Nápoje"})
	require.NoError(t, err)
	assert.Equal(t, "Kofola", cola.Name)
	assert.True(t, cola.IsAvailable)

	_, err = svc.CreateProduct(ctx, CreateProductRequest{Name: "Chipsy", Price: decimal.NewFromInt(40), IsAvailable: ptr(false)})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, CreateProductRequest{Name: "Zdarma?", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)

	public, err := svc.ListProducts(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Kofola", public[0].Name)

	updated, err := svc.UpdateProduct(ctx, cola.ID, UpdateProductRequest{Price: ptr(decimal.NewFromInt(30))})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(updated.Price))
	assert.Equal(t, "Nápoje", updated.Category)

	require.NoError(t, svc.DeleteProduct(ctx, cola.ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, cola.ID), ErrProductNotFound)
}

func TestVote_TogglesAndRanks(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	sess := seedSession(t, db, "lan", false)
	g := &domain.Guest{Name: "Karel", SessionID: sess.ID, NightsCount: 1, IsActive: true}
	require.NoError(t, db.Create(g).Error)

	cs, err := svc.CreateGame(ctx, GameRequest{Name: ptr("Counter-Strike")})
	require.NoError(t, err)
	aoe, err := svc.CreateGame(ctx, GameRequest{Name: ptr("Age of Empires II")})
	require.NoError(t, err)

	res, err := svc.Vote(ctx, "lan", cs.ID, VoteRequest{GuestID: g.ID})
	require.NoError(t, err)
	assert.True(t, res.Voted)
	assert.Equal(t, 1, res.Votes)

	games, err := svc.GamesForEvent(ctx, "lan")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, cs.ID, games[0].ID)
	assert.Equal(t, aoe.ID, games[1].ID)

	res, err = svc.Vote(ctx, "lan", cs.ID, VoteRequest{GuestID: g.ID})
	require.NoError(t, err)
	assert.False(t, res.Voted)
	assert.Equal(t, 0, res.Votes)

	_, err = svc.UpdateGame(ctx, aoe.ID, GameRequest{IsActive: ptr(false)})
	require.NoError(t, err)
	_, err = svc.Vote(ctx, "lan", aoe.ID, VoteRequest{GuestID: g.ID})
	assert.ErrorIs(t, err, ErrGameInactive)

	other := seedSession(t, db, "jina", false)
	_, err = svc.Vote(ctx, other.Slug, cs.ID, VoteRequest{GuestID: g.ID})
	assert.ErrorIs(t, err, ErrGuestNotInEvent)

	_, err = svc.Vote(ctx, "lan", uuid.New(), VoteRequest{GuestID: g.ID})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestMenu(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	off := seedSession(t, db, "bez-jidla", false)
	on := seedSession(t, db, "s-jidlem", true)

	_, err := svc.EventMenu(ctx, off.Slug)
	assert.ErrorIs(t, err, ErrMenuDisabled)

	_, err = svc.CreateMenuItem(ctx, on.ID, MenuItemRequest{Date: ptr("2024-10-05"), MealType: ptr(domain.MealType("brunch")), Title: ptr("Vejce")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateMenuItem(ctx, on.ID, MenuItemRequest{Date: ptr("2024-10-05"), MealType: ptr(domain.MealDinner), Title: ptr("Guláš")})
	require.NoError(t, err)

	tpl, err := svc.CreateTemplate(ctx, TemplateRequest{Name: ptr("Palačinky"), MealType: ptr(domain.MealBreakfast), Description: ptr("s marmeládou")})
	require.NoError(t, err)
	copied, err := svc.FromTemplate(ctx, on.ID, FromTemplateRequest{TemplateID: tpl.ID, Date: "2024-10-06"})
	require.NoError(t, err)
	assert.Equal(t, "Palačinky", copied.Title)
	assert.Equal(t, domain.MealBreakfast, copied.MealType)
	require.NotNil(t, copied.TemplateID)
	assert.Equal(t, tpl.ID, *copied.TemplateID)

	_, err = svc.FromTemplate(ctx, on.ID, FromTemplateRequest{TemplateID: uuid.New(), Date: "2024-10-06"})
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	items, err := svc.EventMenu(ctx, on.Slug)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Guláš", items[0].Title)

	// deleting a template leaves copied items in place
	require.NoError(t, svc.DeleteTemplate(ctx, tpl.ID))
	items, err = svc.SessionMenu(ctx, on.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestHandler_MenuDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, db := setup(t)
	seedSession(t, db, "lan", false)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/event/lan/menu", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "MENU_DISABLED")
}
