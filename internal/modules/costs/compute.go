package costs

import (
	"sort"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// below this many active guests every guest pays a surcharge per missing guest
	surchargeGuestThreshold  = 10
	surchargePerMissingGuest = 150

	UnknownProductName  = "Neznámé"
	UnknownHardwareName = "Neznámý HW"
)

// SurchargePerNight is the per-night increase applied while the session is short of guests.
func SurchargePerNight(enabled bool, activeGuests int) decimal.Decimal {
	if !enabled {
		return decimal.Zero
	}
	missing := surchargeGuestThreshold - activeGuests
	if missing <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(missing * surchargePerMissingGuest))
}

// EffectivePricePerNight depends on the current active guest count, so every bill
// moves when guests join or leave.
func EffectivePricePerNight(s *domain.Session, activeGuests int) decimal.Decimal {
	return s.PricePerNight.Add(SurchargePerNight(s.SurchargeEnabled, activeGuests))
}

// GuestInput holds one guest's slice of the ledger.
type GuestInput struct {
	Guest        domain.Guest
	Consumption  []domain.Consumption
	Products     map[uuid.UUID]domain.Product
	Reservations []domain.HardwareReservation
	Items        map[uuid.UUID]domain.HardwareItem
	Tip          *domain.Tip
	Settlement   *domain.Settlement
}

var hardwareTypeRank = map[domain.HardwareType]int{
	domain.HardwarePC:      0,
	domain.HardwareMonitor: 1,
	domain.HardwareOther:   2,
}

func rankOf(t domain.HardwareType) int {
	if r, ok := hardwareTypeRank[t]; ok {
		return r
	}
	return len(hardwareTypeRank)
}

// ConsumptionLines groups records by product name in order of first appearance,
// then stable-sorts the groups by category. Both the guest view and the admin
// settlement view index overrides into this exact order.
func ConsumptionLines(records []domain.Consumption, products map[uuid.UUID]domain.Product) []ConsumptionLine {
	var lines []ConsumptionLine
	index := make(map[string]int)
	for _, c := range records {
		name, category, price := UnknownProductName, "", decimal.Zero
		if p, ok := products[c.ProductID]; ok {
			name, category, price = p.Name, p.Category, p.Price
		}
		amount := price.Mul(decimal.NewFromInt(int64(c.Quantity)))

		i, ok := index[name]
		if !ok {
			index[name] = len(lines)
			lines = append(lines, ConsumptionLine{
				Name:       name,
				Category:   category,
				Quantity:   c.Quantity,
				TotalPrice: amount,
				Pricing:    PricingLive,
			})
			continue
		}
		lines[i].Quantity += c.Quantity
		lines[i].TotalPrice = lines[i].TotalPrice.Add(amount)
	}

	sort.SliceStable(lines, func(a, b int) bool { return lines[a].Category < lines[b].Category })
	for i := range lines {
		lines[i].Key = ConsumptionKey(i)
		lines[i].StableKey = StableConsumptionKey(lines[i].Name)
	}
	if lines == nil {
		lines = []ConsumptionLine{}
	}
	return lines
}

// HardwareLines lists active reservations stable-sorted by type, pc before monitor before other.
func HardwareLines(reservations []domain.HardwareReservation, items map[uuid.UUID]domain.HardwareItem) []HardwareLine {
	lines := make([]HardwareLine, 0, len(reservations))
	for _, r := range reservations {
		if r.Status != domain.ReservationActive {
			continue
		}
		name, typ := UnknownHardwareName, domain.HardwareOther
		if it, ok := items[r.HardwareItemID]; ok {
			name, typ = it.Name, it.Type
		}
		lines = append(lines, HardwareLine{
			ReservationID:  r.ID,
			HardwareItemID: r.HardwareItemID,
			Name:           name,
			Type:           typ,
			Quantity:       r.Quantity,
			NightsCount:    r.NightsCount,
			TotalPrice:     r.TotalPrice,
			Pricing:        PricingSnapshot,
		})
	}

	sort.SliceStable(lines, func(a, b int) bool { return rankOf(lines[a].Type) < rankOf(lines[b].Type) })
	for i := range lines {
		lines[i].Key = HardwareKey(i)
		lines[i].StableKey = StableHardwareKey(lines[i].ReservationID)
	}
	return lines
}

// ComputeGuest builds the preliminary breakdown of one guest and, when the
// settlement is finalized, the override-resolved settlement block.
func ComputeGuest(s *domain.Session, activeGuests int, in GuestInput) GuestCosts {
	nightsTotal := EffectivePricePerNight(s, activeGuests).Mul(decimal.NewFromInt(int64(in.Guest.NightsCount)))

	consumption := ConsumptionLines(in.Consumption, in.Products)
	snacksTotal := decimal.Zero
	for _, l := range consumption {
		snacksTotal = snacksTotal.Add(l.TotalPrice)
	}

	hardware := HardwareLines(in.Reservations, in.Items)
	hwTotal := decimal.Zero
	if s.HardwarePricingEnabled {
		for _, l := range hardware {
			hwTotal = hwTotal.Add(l.TotalPrice)
		}
	}

	tip := decimal.Zero
	var tipPct *decimal.Decimal
	if in.Tip != nil {
		tip = in.Tip.Amount
		tipPct = in.Tip.Percentage
	}

	gc := GuestCosts{
		ID:            in.Guest.ID,
		Name:          in.Guest.Name,
		NightsCount:   in.Guest.NightsCount,
		NightsTotal:   nightsTotal,
		Consumption:   consumption,
		SnacksTotal:   snacksTotal,
		Hardware:      hardware,
		HwTotal:       hwTotal,
		Tip:           tip,
		TipPercentage: tipPct,
		GrandTotal:    nightsTotal.Add(snacksTotal).Add(hwTotal).Add(tip),
	}

	if in.Settlement.IsFinalized() {
		gc.Settlement = finalize(s, &gc, in.Settlement)
	}
	return gc
}

func finalize(s *domain.Session, gc *GuestCosts, st *domain.Settlement) *SettlementBlock {
	ov := st.Overrides
	lines := make(map[string]decimal.Decimal, 2+len(gc.Consumption)+len(gc.Hardware))

	nightsVal := resolve(ov, "", KeyAccommodation, gc.NightsTotal)
	tipVal := resolve(ov, "", KeyTip, gc.Tip)
	lines[KeyAccommodation] = nightsVal
	lines[KeyTip] = tipVal

	consumptionVal := decimal.Zero
	for _, l := range gc.Consumption {
		v := resolve(ov, l.StableKey, l.Key, l.TotalPrice)
		lines[l.Key] = v
		consumptionVal = consumptionVal.Add(v)
	}

	hardwareVal := decimal.Zero
	for _, l := range gc.Hardware {
		base := decimal.Zero
		if s.HardwarePricingEnabled {
			base = l.TotalPrice
		}
		v := resolve(ov, l.StableKey, l.Key, base)
		lines[l.Key] = v
		hardwareVal = hardwareVal.Add(v)
	}

	customVal := domain.SumLineItems(st.CustomItems)
	adjustVal := domain.SumLineItems(st.Adjustments)

	final := nightsVal.Add(consumptionVal).Add(hardwareVal).Add(tipVal).Add(customVal).Add(adjustVal)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return &SettlementBlock{
		Status:           st.Status,
		NightsTotal:      nightsVal,
		ConsumptionTotal: consumptionVal,
		HardwareTotal:    hardwareVal,
		Tip:              tipVal,
		CustomItemsTotal: customVal,
		AdjustmentsTotal: adjustVal,
		CustomItems:      nonNilItems(st.CustomItems),
		Adjustments:      nonNilItems(st.Adjustments),
		FinalTotal:       final,
		Lines:            lines,
		VariableSymbol:   st.VariableSymbol,
		PaidAt:           st.PaidAt,
		QRGeneratedAt:    st.QRGeneratedAt,
	}
}

func nonNilItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return []domain.LineItem{}
	}
	return items
}

// BuildReport aggregates every active guest of the session.
func BuildReport(s *domain.Session, l *repository.Ledger, settings *domain.AdminSettings) *Report {
	activeGuests := len(l.Guests)

	byGuestConsumption := make(map[uuid.UUID][]domain.Consumption)
	for _, c := range l.Consumption {
		byGuestConsumption[c.GuestID] = append(byGuestConsumption[c.GuestID], c)
	}
	byGuestReservations := make(map[uuid.UUID][]domain.HardwareReservation)
	for _, r := range l.Reservations {
		byGuestReservations[r.GuestID] = append(byGuestReservations[r.GuestID], r)
	}

	report := &Report{
		SessionID:              s.ID,
		Guests:                 make([]GuestCosts, 0, len(l.Guests)),
		SessionName:            s.Name,
		PricePerNight:          s.PricePerNight,
		EffectivePricePerNight: EffectivePricePerNight(s, activeGuests),
		SurchargeEnabled:       s.SurchargeEnabled,
		GuestCount:             activeGuests,
		HardwarePricingEnabled: s.HardwarePricingEnabled,
		IsPreliminary:          true,
		BankSettings:           bankSettings(settings),
	}

	for _, g := range l.Guests {
		in := GuestInput{
			Guest:        g,
			Consumption:  byGuestConsumption[g.ID],
			Products:     l.Products,
			Reservations: byGuestReservations[g.ID],
			Items:        l.Items,
		}
		if t, ok := l.Tips[g.ID]; ok {
			in.Tip = &t
		}
		if st, ok := l.Settlements[g.ID]; ok {
			in.Settlement = &st
		}
		gc := ComputeGuest(s, activeGuests, in)
		if gc.Settlement != nil {
			report.IsPreliminary = false
		}
		report.Guests = append(report.Guests, gc)
	}
	return report
}

func bankSettings(s *domain.AdminSettings) *BankSettings {
	if !s.HasBankAccount() && (s == nil || s.RecipientName == "") {
		return nil
	}
	return &BankSettings{
		AccountNumber: s.BankAccountNumber,
		BankCode:      s.BankCode,
		IBAN:          s.IBAN,
		RecipientName: s.RecipientName,
	}
}
