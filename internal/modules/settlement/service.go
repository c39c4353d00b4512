package settlement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"thenest/internal/domain"
	"thenest/internal/metrics"
	"thenest/internal/modules/costs"
	"thenest/internal/pkg/qrpay"
	"thenest/internal/repository"

	"github.com/google/uuid"
)

// symbolDateLayout is the YYMMDD prefix of variable symbols.
const symbolDateLayout = "060102"

const qrSize = 320

type Service struct {
	settlements SettlementRepository
	sessions    SessionRepository
	guests      GuestRepository
	costs       CostReader
	currency    string
	now         func() time.Time
}

func NewService(settlements SettlementRepository, sessions SessionRepository, guests GuestRepository, costs CostReader, currency string) *Service {
	return &Service{
		settlements: settlements,
		sessions:    sessions,
		guests:      guests,
		costs:       costs,
		currency:    currency,
		now:         time.Now,
	}
}

func validItems(field string, items *[]domain.LineItem) error {
	if items == nil {
		return nil
	}
	for i, it := range *items {
		if strings.TrimSpace(it.Label) == "" {
			return fmt.Errorf("%w: %s[%d].label", ErrValidation, field, i)
		}
	}
	return nil
}

func validateUpdate(req ActionRequest) error {
	if req.Overrides != nil {
		for k := range *req.Overrides {
			if !costs.ValidOverrideKey(k) {
				return fmt.Errorf("%w: unknown override key %q", ErrValidation, k)
			}
		}
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("%w: status", ErrValidation)
	}
	if vs := req.VariableSymbol; vs != nil {
		if len(*vs) > 10 || strings.Trim(*vs, "0123456789") != "" {
			return fmt.Errorf("%w: variable_symbol", ErrValidation)
		}
	}
	if err := validItems("custom_items", req.CustomItems); err != nil {
		return err
	}
	return validItems("adjustments", req.Adjustments)
}

// Apply runs one admin action against the guest's settlement.
func (s *Service) Apply(ctx context.Context, sessionID uuid.UUID, req ActionRequest) (*domain.Settlement, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
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
		return nil, ErrGuestNotInSession
	}

	now := s.now().UTC()
	var (
		create bool
		fn     func(st *domain.Settlement, alloc repository.SymbolAllocator) error
	)
	switch req.Action {
	case ActionGenerateQR:
		create = true
		fn = func(st *domain.Settlement, alloc repository.SymbolAllocator) error {
			st.QRGeneratedAt = &now
			if st.Status != domain.SettlementPaid {
				st.Status = domain.SettlementPending
			}
			if st.VariableSymbol == "" {
				vs, err := alloc(sess.StartDate.Format(symbolDateLayout))
				if err != nil {
					return err
				}
				st.VariableSymbol = vs
			}
			return nil
		}
	case ActionMarkPaid:
		fn = func(st *domain.Settlement, _ repository.SymbolAllocator) error {
			st.Status = domain.SettlementPaid
			st.PaidAt = &now
			return nil
		}
	case ActionMarkUnpaid:
		fn = func(st *domain.Settlement, _ repository.SymbolAllocator) error {
			st.Status = domain.SettlementPending
			st.PaidAt = nil
			return nil
		}
	case ActionUpdate:
		if err := validateUpdate(req); err != nil {
			return nil, err
		}
		create = true
		fn = func(st *domain.Settlement, _ repository.SymbolAllocator) error {
			if req.Adjustments != nil {
				st.Adjustments = *req.Adjustments
			}
			if req.Overrides != nil {
				st.Overrides = *req.Overrides
			}
			if req.CustomItems != nil {
				st.CustomItems = *req.CustomItems
			}
			if req.Notes != nil {
				st.Notes = *req.Notes
			}
			if req.Status != nil {
				st.Status = *req.Status
				if *req.Status != domain.SettlementPaid {
					st.PaidAt = nil
				} else if st.PaidAt == nil {
					st.PaidAt = &now
				}
			}
			if req.VariableSymbol != nil {
				st.VariableSymbol = *req.VariableSymbol
			}
			return nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, req.Action)
	}

	st, err := s.settlements.Modify(ctx, sess.ID, g.ID, create, fn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSettlementNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSymbolTaken
		}
		return nil, err
	}
	metrics.TrackSettlementAction(req.Action)
	log.Printf("admin action: settlement %s session=%s guest=%s status=%s vs=%s",
		req.Action, sess.ID, g.ID, st.Status, st.VariableSymbol)
	return st, nil
}

// View returns the admin settlement screen for a session.
func (s *Service) View(ctx context.Context, sessionID uuid.UUID) (*AdminView, error) {
	report, err := s.costs.ForSession(ctx, sessionID)
	if err != nil {
		return nil, costsErr(err)
	}
	records, err := s.settlements.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	byGuest := make(map[uuid.UUID]*domain.Settlement, len(records))
	for i := range records {
		byGuest[records[i].GuestID] = &records[i]
	}

	view := &AdminView{Report: report, Guests: make([]GuestView, 0, len(report.Guests))}
	for _, gc := range report.Guests {
		view.Guests = append(view.Guests, GuestView{GuestCosts: gc, Record: byGuest[gc.ID]})
	}
	return view, nil
}

// MigrateKeys rewrites positional override keys of every settlement in the
// session to stable keys, based on the current line order.
func (s *Service) MigrateKeys(ctx context.Context, sessionID uuid.UUID) (*MigrateResult, error) {
	report, err := s.costs.ForSession(ctx, sessionID)
	if err != nil {
		return nil, costsErr(err)
	}
	records, err := s.settlements.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var changed []domain.Settlement
	for _, st := range records {
		gc, ok := report.Guest(st.GuestID)
		if !ok {
			continue
		}
		migrated, did := costs.MigrateOverrides(gc, st.Overrides)
		if !did {
			continue
		}
		st.Overrides = migrated
		changed = append(changed, st)
	}
	if len(changed) > 0 {
		if err := s.settlements.SaveOverrides(ctx, changed); err != nil {
			return nil, err
		}
	}
	log.Printf("admin action: override keys migrated session=%s settlements=%d", sessionID, len(changed))
	return &MigrateResult{Updated: len(changed)}, nil
}

func (s *Service) payment(report *costs.Report, gc *costs.GuestCosts) qrpay.Payment {
	bank := report.BankSettings
	return qrpay.Payment{
		IBAN:           bank.IBAN,
		Amount:         gc.Settlement.FinalTotal,
		Currency:       s.currency,
		VariableSymbol: gc.Settlement.VariableSymbol,
		Message:        report.SessionName + " " + gc.Name,
		RecipientName:  bank.RecipientName,
	}
}

func paymentQR(p qrpay.Payment) ([]byte, error) {
	png, err := qrpay.PNG(p, qrSize)
	if errors.Is(err, qrpay.ErrInvalidAmount) {
		return nil, ErrNothingToPay
	}
	if errors.Is(err, qrpay.ErrInvalidIBAN) {
		return nil, fmt.Errorf("%w: IBAN is not valid", ErrNoBankAccount)
	}
	return png, err
}

// PaymentQR renders the bank-transfer QR for a finalized settlement.
func (s *Service) PaymentQR(ctx context.Context, slug string, guestID uuid.UUID) ([]byte, error) {
	report, err := s.costs.ForSlug(ctx, slug)
	if err != nil {
		return nil, costsErr(err)
	}
	gc, ok := report.Guest(guestID)
	if !ok {
		return nil, ErrGuestNotFound
	}
	if gc.Settlement == nil {
		return nil, ErrNotFinalized
	}
	if report.BankSettings == nil || report.BankSettings.IBAN == "" {
		return nil, ErrNoBankAccount
	}
	return paymentQR(s.payment(report, gc))
}

func costsErr(err error) error {
	switch {
	case errors.Is(err, costs.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, costs.ErrGuestNotFound):
		return ErrGuestNotFound
	}
	return err
}
