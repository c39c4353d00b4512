package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

// Service owns the global catalogs: products, games and meal templates, plus
// the per-session menu and game votes.
type Service struct {
	products ProductRepository
	games    GameRepository
	menu     MenuRepository
	sessions SessionRepository
	guests   GuestRepository
}

func NewService(products ProductRepository, games GameRepository, menu MenuRepository, sessions SessionRepository, guests GuestRepository) *Service {
	return &Service{products: products, games: games, menu: menu, sessions: sessions, guests: guests}
}

func (s *Service) sessionBySlug(ctx context.Context, slug string) (*domain.Session, error) {
	sess, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *Service) sessionByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func requiredText(field string, v *string) (string, error) {
	t := strings.TrimSpace(*v)
	if t == "" {
		return "", fmt.Errorf("%w: %s", ErrValidation, field)
	}
	return t, nil
}

/* ---------- products ---------- */

func (s *Service) ListProducts(ctx context.Context, availableOnly bool) ([]domain.Product, error) {
	return s.products.List(ctx, availableOnly)
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	name, err := requiredText("name", &req.Name)
	if err != nil {
		return nil, err
	}
	if req.Price.IsNegative() || (req.PurchasePrice != nil && req.PurchasePrice.IsNegative()) {
		return nil, fmt.Errorf("%w: price", ErrValidation)
	}
	p := &domain.Product{
		Name:          name,
		Price:         req.Price,
		PurchasePrice: req.PurchasePrice,
		Category:      strings.TrimSpace(req.Category),
		ImageURL:      req.ImageURL,
		IsAvailable:   true,
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("admin action: product_created id=%s name=%q", p.ID, p.Name)
	return p, nil
}

// UpdateProduct edits a product. Price changes reprice past consumption too,
// since consumption amounts are read live.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		if p.Name, err = requiredText("name", req.Name); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price", ErrValidation)
		}
		p.Price = *req.Price
	}
	if req.PurchasePrice != nil {
		p.PurchasePrice = req.PurchasePrice
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("admin action: product_updated id=%s", p.ID)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	log.Printf("admin action: product_deleted id=%s", id)
	return nil
}

/* ---------- games ---------- */

func withVotes(games []domain.Game, counts map[uuid.UUID]int) []GameWithVotes {
	out := make([]GameWithVotes, 0, len(games))
	for _, g := range games {
		out = append(out, GameWithVotes{Game: g, Votes: counts[g.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Votes > out[j].Votes })
	return out
}

func (s *Service) ListGames(ctx context.Context, activeOnly bool) ([]domain.Game, error) {
	return s.games.List(ctx, activeOnly)
}

// GamesForEvent lists active games, most voted first.
func (s *Service) GamesForEvent(ctx context.Context, slug string) ([]GameWithVotes, error) {
	sess, err := s.sessionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	games, err := s.games.List(ctx, true)
	if err != nil {
		return nil, err
	}
	counts, err := s.games.VoteCounts(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return withVotes(games, counts), nil
}

// Vote toggles the guest's vote for a game in the event.
func (s *Service) Vote(ctx context.Context, slug string, gameID uuid.UUID, req VoteRequest) (*VoteResult, error) {
	sess, err := s.sessionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	g, err := s.guests.GetByID(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if g.SessionID != sess.ID {
		return nil, ErrGuestNotInEvent
	}
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if !game.IsActive {
		return nil, ErrGameInactive
	}

	voted, err := s.games.ToggleVote(ctx, &domain.GameVote{GameID: game.ID, GuestID: g.ID, SessionID: sess.ID})
	if err != nil {
		return nil, err
	}
	counts, err := s.games.VoteCounts(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{GameID: game.ID, Voted: voted, Votes: counts[game.ID]}, nil
}

func applyGame(g *domain.Game, req GameRequest) error {
	if req.Name != nil {
		name, err := requiredText("name", req.Name)
		if err != nil {
			return err
		}
		g.Name = name
	}
	if req.Genre != nil {
		g.Genre = *req.Genre
	}
	if req.MaxPlayers != nil {
		g.MaxPlayers = *req.MaxPlayers
	}
	if req.ImageURL != nil {
		g.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}
	return nil
}

func (s *Service) CreateGame(ctx context.Context, req GameRequest) (*domain.Game, error) {
	if req.Name == nil {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}
	g := &domain.Game{IsActive: true}
	if err := applyGame(g, req); err != nil {
		return nil, err
	}
	if err := s.games.Create(ctx, g); err != nil {
		return nil, err
	}
	log.Printf("admin action: game_created id=%s name=%q", g.ID, g.Name)
	return g, nil
}

func (s *Service) UpdateGame(ctx context.Context, id uuid.UUID, req GameRequest) (*domain.Game, error) {
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if err := applyGame(g, req); err != nil {
		return nil, err
	}
	if err := s.games.Update(ctx, g); err != nil {
		return nil, err
	}
	log.Printf("admin action: game_updated id=%s", g.ID)
	return g, nil
}

func (s *Service) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := s.games.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	log.Printf("admin action: game_deleted id=%s", id)
	return nil
}
