package repository

import (
	"context"
	"errors"

	"thenest/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var s domain.Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SessionRepository) GetBySlug(ctx context.Context, slug string) (*domain.Session, error) {
	var s domain.Session
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	var out []domain.Session
	err := r.db.WithContext(ctx).Order("start_date desc").Find(&out).Error
	return out, err
}

// Delete removes only the session row. Guests, ledgers and reservations stay in place.
// If the session was active the pointer is cleared in the same transaction.
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Session{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&domain.AdminSettings{}).
			Where("id = ? AND active_session_id = ?", domain.AdminSettingsID, id).
			Update("active_session_id", nil).Error
	})
}

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the singleton settings row, creating it on first use.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.AdminSettings, error) {
	var s domain.AdminSettings
	err := r.db.WithContext(ctx).First(&s, "id = ?", domain.AdminSettingsID).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = domain.AdminSettings{ID: domain.AdminSettingsID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&s, "id = ?", domain.AdminSettingsID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SetActiveSession moves the active pointer. A nil id clears it.
func (r *SettingsRepository) SetActiveSession(ctx context.Context, id *uuid.UUID) error {
	if _, err := r.Get(ctx); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&domain.AdminSettings{}).
		Where("id = ?", domain.AdminSettingsID).
		Update("active_session_id", id).Error
}

// ClearActiveSessionIf clears the pointer only when it still points at id.
func (r *SettingsRepository) ClearActiveSessionIf(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.AdminSettings{}).
		Where("id = ? AND active_session_id = ?", domain.AdminSettingsID, id).
		Update("active_session_id", nil).Error
}

func (r *SettingsRepository) UpdateBank(ctx context.Context, s *domain.AdminSettings) error {
	if _, err := r.Get(ctx); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&domain.AdminSettings{}).
		Where("id = ?", domain.AdminSettingsID).
		Updates(map[string]any{
			"bank_account_number": s.BankAccountNumber,
			"bank_code":           s.BankCode,
			"iban":                s.IBAN,
			"recipient_name":      s.RecipientName,
		}).Error
}
