package domain

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MealTemplate is a reusable dish the admin can drop into any event's menu.
type MealTemplate struct {
	Base
	Name        string   `json:"name" gorm:"not null"`
	MealType    MealType `json:"meal_type" gorm:"type:varchar(16);not null"`
	Description string   `json:"description,omitempty" gorm:"type:text"`
}

type MenuItem struct {
	Base
	SessionID   uuid.UUID  `json:"session_id" gorm:"type:uuid;not null;index"`
	Date        time.Time  `json:"date" gorm:"not null"`
	MealType    MealType   `json:"meal_type" gorm:"type:varchar(16);not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	TemplateID  *uuid.UUID `json:"template_id,omitempty" gorm:"type:uuid"`
}
