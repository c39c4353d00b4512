package catalog

import (
	"thenest/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,max=200"`
	Price         decimal.Decimal  `json:"price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Category      string           `json:"category" binding:"max=100"`
	ImageURL      string           `json:"image_url"`
	IsAvailable   *bool            `json:"is_available"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=200"`
	Price         *decimal.Decimal `json:"price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Category      *string          `json:"category"`
	ImageURL      *string          `json:"image_url"`
	IsAvailable   *bool            `json:"is_available"`
}

type GameRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=200"`
	Genre      *string `json:"genre"`
	MaxPlayers *int    `json:"max_players" binding:"omitempty,min=0"`
	ImageURL   *string `json:"image_url"`
	IsActive   *bool   `json:"is_active"`
}

// GameWithVotes is a game with its vote count in one session.
type GameWithVotes struct {
	domain.Game
	Votes int `json:"votes"`
}

type VoteRequest struct {
	GuestID uuid.UUID `json:"guest_id" binding:"required"`
}

type VoteResult struct {
	GameID uuid.UUID `json:"game_id"`
	Voted  bool      `json:"voted"`
	Votes  int       `json:"votes"`
}

type MenuItemRequest struct {
	Date        *string          `json:"date"`
	MealType    *domain.MealType `json:"meal_type"`
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Description *string          `json:"description"`
}

type TemplateRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	MealType    *domain.MealType `json:"meal_type"`
	Description *string          `json:"description"`
}

type FromTemplateRequest struct {
	TemplateID uuid.UUID `json:"template_id" binding:"required"`
	Date       string    `json:"date" binding:"required"`
}
