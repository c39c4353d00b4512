package repository

import (
	"context"
	"errors"
	"fmt"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SymbolAllocator returns the next free variable symbol starting with prefix.
type SymbolAllocator func(prefix string) (string, error)

type SettlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) Get(ctx context.Context, sessionID, guestID uuid.UUID) (*domain.Settlement, error) {
	var s domain.Settlement
	if err := r.db.WithContext(ctx).Where("session_id = ? AND guest_id = ?", sessionID, guestID).First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SettlementRepository) MapBySession(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID]domain.Settlement, error) {
	rows, err := r.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]domain.Settlement, len(rows))
	for _, s := range rows {
		out[s.GuestID] = s
	}
	return out, nil
}

func (r *SettlementRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Settlement, error) {
	var rows []domain.Settlement
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at asc, id asc").Find(&rows).Error
	return rows, err
}

// Modify applies fn to the settlement of (session, guest) inside one transaction.
// When none exists and create is set, fn receives a fresh draft; otherwise ErrNotFound.
func (r *SettlementRepository) Modify(
	ctx context.Context,
	sessionID, guestID uuid.UUID,
	create bool,
	fn func(s *domain.Settlement, alloc SymbolAllocator) error,
) (*domain.Settlement, error) {
	var out domain.Settlement
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ? AND guest_id = ?", sessionID, guestID).
			First(&out).Error
		isNew := false
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if !create {
				return ErrNotFound
			}
			out = domain.Settlement{SessionID: sessionID, GuestID: guestID, Status: domain.SettlementDraft}
			isNew = true
		}

		alloc := func(prefix string) (string, error) {
			return nextVariableSymbol(tx, sessionID, prefix)
		}
		if err := fn(&out, alloc); err != nil {
			return err
		}

		if isNew {
			err = tx.Create(&out).Error
		} else {
			err = tx.Save(&out).Error
		}
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// nextVariableSymbol holds the session row lock until the transaction ends, so
// concurrent allocations within one session run one after another.
func nextVariableSymbol(tx *gorm.DB, sessionID uuid.UUID, prefix string) (string, error) {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").First(&domain.Session{}, "id = ?", sessionID).Error; err != nil {
		return "", notFound(err)
	}
	var n int64
	if err := tx.Model(&domain.Settlement{}).
		Where("session_id = ? AND variable_symbol <> ''", sessionID).
		Count(&n).Error; err != nil {
		return "", err
	}
	for seq := n + 1; seq <= 9999; seq++ {
		candidate := fmt.Sprintf("%s%04d", prefix, seq)
		var taken int64
		if err := tx.Model(&domain.Settlement{}).
			Where("session_id = ? AND variable_symbol = ?", sessionID, candidate).
			Count(&taken).Error; err != nil {
			return "", err
		}
		if taken == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("variable symbols exhausted for prefix %s", prefix)
}

// SaveOverrides rewrites only the overrides column of each settlement, atomically.
func (r *SettlementRepository) SaveOverrides(ctx context.Context, rows []domain.Settlement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Model(&rows[i]).Select("overrides", "updated_at").Updates(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
