package domain

import "github.com/google/uuid"

type Game struct {
	Base
	Name       string `json:"name" gorm:"not null"`
	Genre      string `json:"genre,omitempty"`
	MaxPlayers int    `json:"max_players,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	IsActive   bool   `json:"is_active" gorm:"not null"`
}

type GameVote struct {
	Base
	GameID    uuid.UUID `json:"game_id" gorm:"type:uuid;not null;uniqueIndex:idx_game_vote"`
	GuestID   uuid.UUID `json:"guest_id" gorm:"type:uuid;not null;uniqueIndex:idx_game_vote"`
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;not null;uniqueIndex:idx_game_vote"`
}
