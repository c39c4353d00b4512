package costs

import (
	"fmt"
	"testing"
	"time"

	"thenest/internal/domain"
	"thenest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !money(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got), msgAndArgs...)
	}
}

func newSession(price string, surcharge, hwPricing bool) *domain.Session {
	s := &domain.Session{
		Name:                   "Zimní LAN",
		Slug:                   "zimni-lan",
		PricePerNight:          money(price),
		SurchargeEnabled:       surcharge,
		HardwarePricingEnabled: hwPricing,
	}
	s.ID = uuid.New()
	return s
}

func newGuest(name string, nights int) domain.Guest {
	g := domain.Guest{Name: name, NightsCount: nights, IsActive: true}
	g.ID = uuid.New()
	return g
}

func newProduct(name, category, price string) domain.Product {
	p := domain.Product{Name: name, Category: category, Price: money(price), IsAvailable: true}
	p.ID = uuid.New()
	return p
}

func consumed(g domain.Guest, p domain.Product, qty int, at time.Time) domain.Consumption {
	c := domain.Consumption{GuestID: g.ID, ProductID: p.ID, Quantity: qty, ConsumedAt: at}
	c.ID = uuid.New()
	return c
}

func finalized(overrides map[string]decimal.Decimal) *domain.Settlement {
	now := time.Now()
	return &domain.Settlement{Status: domain.SettlementPending, QRGeneratedAt: &now, Overrides: overrides}
}

func TestEffectivePrice_SurchargeDisabledIgnoresGuestCount(t *testing.T) {
	s := newSession("300", false, false)
	for _, n := range []int{0, 1, 7, 10, 25} {
		assertMoney(t, "300", EffectivePricePerNight(s, n), "guests=%d", n)
	}
}

func TestEffectivePrice_NoSurchargeFromTenGuests(t *testing.T) {
	s := newSession("300", true, false)
	for _, n := range []int{10, 11, 40} {
		assertMoney(t, "300", EffectivePricePerNight(s, n), "guests=%d", n)
	}
}

func TestEffectivePrice_SevenGuestsAddsThreeSurcharges(t *testing.T) {
	s := newSession("300", true, false)
	assertMoney(t, "750", EffectivePricePerNight(s, 7))
}

func TestConsumptionLines_MergesByNameAcrossProducts(t *testing.T) {
	g := newGuest("Karel", 1)
	pivo30 := newProduct("Pivo", "Nápoje", "30")
	pivo35 := newProduct("Pivo", "Nápoje", "35")
	products := map[uuid.UUID]domain.Product{pivo30.ID: pivo30, pivo35.ID: pivo35}
	t0 := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)

	lines := ConsumptionLines([]domain.Consumption{
		consumed(g, pivo30, 2, t0),
		consumed(g, pivo35, 1, t0.Add(time.Hour)),
	}, products)

	require.Len(t, lines, 1)
	assert.Equal(t, "Pivo", lines[0].Name)
	assert.Equal(t, 3, lines[0].Quantity)
	assertMoney(t, "95", lines[0].TotalPrice)
	assert.Equal(t, PricingLive, lines[0].Pricing)
}

func TestConsumptionLines_NameMatchIsCaseSensitive(t *testing.T) {
	g := newGuest("Karel", 1)
	a := newProduct("Pivo", "Nápoje", "30")
	b := newProduct("pivo", "Nápoje", "30")
	lines := ConsumptionLines([]domain.Consumption{
		consumed(g, a, 1, time.Now()),
		consumed(g, b, 1, time.Now()),
	}, map[uuid.UUID]domain.Product{a.ID: a, b.ID: b})
	assert.Len(t, lines, 2)
}

func TestConsumptionLines_SortedByCategoryKeepingFirstAppearance(t *testing.T) {
	g := newGuest("Karel", 1)
	cola := newProduct("Cola", "Nápoje", "25")
	chips := newProduct("Chipsy", "Jídlo", "40")
	pivo := newProduct("Pivo", "Nápoje", "30")
	bageta := newProduct("Bageta", "Jídlo", "60")
	products := map[uuid.UUID]domain.Product{cola.ID: cola, chips.ID: chips, pivo.ID: pivo, bageta.ID: bageta}
	t0 := time.Now()

	lines := ConsumptionLines([]domain.Consumption{
		consumed(g, cola, 1, t0),
		consumed(g, chips, 1, t0.Add(1*time.Minute)),
		consumed(g, pivo, 1, t0.Add(2*time.Minute)),
		consumed(g, bageta, 1, t0.Add(3*time.Minute)),
	}, products)

	var names, keys []string
	for _, l := range lines {
		names = append(names, l.Name)
		keys = append(keys, l.Key)
	}
	assert.Equal(t, []string{"Chipsy", "Bageta", "Cola", "Pivo"}, names)
	assert.Equal(t, []string{"consumption-0", "consumption-1", "consumption-2", "consumption-3"}, keys)
	assert.Equal(t, "consumption:Chipsy", lines[0].StableKey)
}

func TestConsumptionLines_MissingProductIsPlaceholder(t *testing.T) {
	g := newGuest("Karel", 1)
	ghost := newProduct("Smazáno", "X", "99")
	lines := ConsumptionLines([]domain.Consumption{consumed(g, ghost, 4, time.Now())}, map[uuid.UUID]domain.Product{})
	require.Len(t, lines, 1)
	assert.Equal(t, UnknownProductName, lines[0].Name)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.True(t, lines[0].TotalPrice.IsZero())
}

func reservation(g domain.Guest, item domain.HardwareItem, total string) domain.HardwareReservation {
	r := domain.HardwareReservation{
		HardwareItemID: item.ID,
		GuestID:        g.ID,
		Quantity:       1,
		NightsCount:    2,
		TotalPrice:     money(total),
		Status:         domain.ReservationActive,
	}
	r.ID = uuid.New()
	return r
}

func hwItem(name string, typ domain.HardwareType) domain.HardwareItem {
	it := domain.HardwareItem{Name: name, Type: typ, Quantity: 1, IsAvailable: true}
	it.ID = uuid.New()
	return it
}

func TestHardwareLines_SortedPCMonitorOther(t *testing.T) {
	g := newGuest("Karel", 2)
	mon := hwItem("Monitor 27", domain.HardwareMonitor)
	other := hwItem("Headset", domain.HardwareOther)
	pc := hwItem("Herní PC", domain.HardwarePC)
	mon2 := hwItem("Monitor 24", domain.HardwareMonitor)
	items := map[uuid.UUID]domain.HardwareItem{mon.ID: mon, other.ID: other, pc.ID: pc, mon2.ID: mon2}

	lines := HardwareLines([]domain.HardwareReservation{
		reservation(g, other, "50"),
		reservation(g, mon, "100"),
		reservation(g, pc, "400"),
		reservation(g, mon2, "80"),
	}, items)

	var names []string
	for _, l := range lines {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Herní PC", "Monitor 27", "Monitor 24", "Headset"}, names)
	assert.Equal(t, "hardware-0", lines[0].Key)
	assert.Equal(t, PricingSnapshot, lines[0].Pricing)
}

func TestHardwareLines_MissingItemCountsSnapshot(t *testing.T) {
	g := newGuest("Karel", 2)
	gone := hwItem("X", domain.HardwarePC)
	lines := HardwareLines([]domain.HardwareReservation{reservation(g, gone, "120")}, nil)
	require.Len(t, lines, 1)
	assert.Equal(t, UnknownHardwareName, lines[0].Name)
	assert.Equal(t, domain.HardwareOther, lines[0].Type)
	assertMoney(t, "120", lines[0].TotalPrice)
}

func TestComputeGuest_PreliminaryTotal(t *testing.T) {
	s := newSession("200", false, true)
	g := newGuest("Karel", 2)
	cola := newProduct("Cola", "Nápoje", "25")
	pc := hwItem("PC", domain.HardwarePC)
	tip := &domain.Tip{Amount: money("50")}

	gc := ComputeGuest(s, 12, GuestInput{
		Guest:        g,
		Consumption:  []domain.Consumption{consumed(g, cola, 2, time.Now())},
		Products:     map[uuid.UUID]domain.Product{cola.ID: cola},
		Reservations: []domain.HardwareReservation{reservation(g, pc, "300")},
		Items:        map[uuid.UUID]domain.HardwareItem{pc.ID: pc},
		Tip:          tip,
	})

	assertMoney(t, "400", gc.NightsTotal)
	assertMoney(t, "50", gc.SnacksTotal)
	assertMoney(t, "300", gc.HwTotal)
	assertMoney(t, "50", gc.Tip)
	assertMoney(t, "800", gc.GrandTotal)
	assert.Nil(t, gc.Settlement)
}

func TestComputeGuest_HardwarePricingDisabled(t *testing.T) {
	s := newSession("200", false, false)
	g := newGuest("Karel", 1)
	pc := hwItem("PC", domain.HardwarePC)
	in := GuestInput{
		Guest:        g,
		Reservations: []domain.HardwareReservation{reservation(g, pc, "300")},
		Items:        map[uuid.UUID]domain.HardwareItem{pc.ID: pc},
	}

	gc := ComputeGuest(s, 10, in)
	assert.True(t, gc.HwTotal.IsZero())
	assertMoney(t, "200", gc.GrandTotal)
	require.Len(t, gc.Hardware, 1)

	in.Settlement = finalized(map[string]decimal.Decimal{})
	gc = ComputeGuest(s, 10, in)
	require.NotNil(t, gc.Settlement)
	assert.True(t, gc.Settlement.HardwareTotal.IsZero())

	in.Settlement = finalized(map[string]decimal.Decimal{"hardware-0": money("99")})
	gc = ComputeGuest(s, 10, in)
	assertMoney(t, "99", gc.Settlement.HardwareTotal)
}

func TestComputeGuest_UnfinalizedSettlementIgnored(t *testing.T) {
	s := newSession("200", false, false)
	g := newGuest("Karel", 1)
	st := &domain.Settlement{
		Status:      domain.SettlementDraft,
		Overrides:   map[string]decimal.Decimal{KeyAccommodation: money("1")},
		CustomItems: []domain.LineItem{{Label: "Pizza", Amount: money("150")}},
		Adjustments: []domain.LineItem{{Label: "Sleva", Amount: money("-100")}},
	}

	gc := ComputeGuest(s, 10, GuestInput{Guest: g, Settlement: st})
	assert.Nil(t, gc.Settlement)
	assertMoney(t, "200", gc.GrandTotal)
	assertMoney(t, "200", gc.Payable())
}

func TestComputeGuest_OverridesApplied(t *testing.T) {
	s := newSession("200", false, true)
	g := newGuest("Karel", 2)
	cola := newProduct("Cola", "Nápoje", "25")
	chips := newProduct("Chipsy", "Jídlo", "40")
	pc := hwItem("PC", domain.HardwarePC)
	res := reservation(g, pc, "300")

	in := GuestInput{
		Guest: g,
		Consumption: []domain.Consumption{
			consumed(g, cola, 2, time.Now()),
			consumed(g, chips, 1, time.Now().Add(time.Minute)),
		},
		Products:     map[uuid.UUID]domain.Product{cola.ID: cola, chips.ID: chips},
		Reservations: []domain.HardwareReservation{res},
		Items:        map[uuid.UUID]domain.HardwareItem{pc.ID: pc},
		Tip:          &domain.Tip{Amount: money("20")},
		Settlement: finalized(map[string]decimal.Decimal{
			KeyAccommodation:          money("300"),
			KeyTip:                    money("0"),
			"consumption-0":           money("10"), // Chipsy after the category sort
			StableHardwareKey(res.ID): money("150"),
			"hardware-0":              money("1"), // loses against the stable key
		}),
	}
	in.Settlement.CustomItems = []domain.LineItem{{Label: "Pizza", Amount: money("120")}}
	in.Settlement.Adjustments = []domain.LineItem{{Label: "Sleva", Amount: money("-70")}}
	in.Settlement.VariableSymbol = "2401050001"

	gc := ComputeGuest(s, 10, in)
	require.NotNil(t, gc.Settlement)
	st := gc.Settlement
	assertMoney(t, "300", st.NightsTotal)
	assertMoney(t, "60", st.ConsumptionTotal) // 10 + 50
	assertMoney(t, "150", st.HardwareTotal)
	assertMoney(t, "0", st.Tip)
	assertMoney(t, "120", st.CustomItemsTotal)
	assertMoney(t, "-70", st.AdjustmentsTotal)
	assertMoney(t, "560", st.FinalTotal)
	assert.Equal(t, "2401050001", st.VariableSymbol)
	assertMoney(t, "560", gc.Payable())

	// preliminary breakdown is unaffected by overrides
	assertMoney(t, "400", gc.NightsTotal)
	assertMoney(t, "810", gc.GrandTotal)
}

func TestComputeGuest_StableConsumptionKeyWins(t *testing.T) {
	s := newSession("0", false, false)
	g := newGuest("Karel", 1)
	cola := newProduct("Cola", "Nápoje", "25")
	gc := ComputeGuest(s, 10, GuestInput{
		Guest:       g,
		Consumption: []domain.Consumption{consumed(g, cola, 1, time.Now())},
		Products:    map[uuid.UUID]domain.Product{cola.ID: cola},
		Settlement: finalized(map[string]decimal.Decimal{
			"consumption-0":    money("5"),
			"consumption:Cola": money("7"),
		}),
	})
	assertMoney(t, "7", gc.Settlement.FinalTotal)
}

func TestComputeGuest_FinalTotalNeverNegative(t *testing.T) {
	s := newSession("200", false, false)
	g := newGuest("Karel", 1)
	st := finalized(nil)
	st.Adjustments = []domain.LineItem{{Label: "Sleva", Amount: money("-150")}, {Label: "Dárek", Amount: money("-100")}}

	gc := ComputeGuest(s, 10, GuestInput{Guest: g, Settlement: st})
	require.NotNil(t, gc.Settlement)
	assertMoney(t, "-250", gc.Settlement.AdjustmentsTotal)
	assert.True(t, gc.Settlement.FinalTotal.IsZero())
}

func TestBuildReport_PreliminaryFlagAndSurcharge(t *testing.T) {
	s := newSession("250", true, false)
	guests := make([]domain.Guest, 0, 7)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		g := newGuest(name, 1)
		g.SessionID = s.ID
		guests = append(guests, g)
	}
	draft := domain.Settlement{GuestID: guests[0].ID, Status: domain.SettlementDraft}
	ledger := &repository.Ledger{
		Guests:      guests,
		Settlements: map[uuid.UUID]domain.Settlement{guests[0].ID: draft},
	}

	report := BuildReport(s, ledger, &domain.AdminSettings{})
	assert.True(t, report.IsPreliminary)
	assert.Equal(t, 7, report.GuestCount)
	assertMoney(t, "700", report.EffectivePricePerNight)
	assert.Nil(t, report.BankSettings)
	for _, gc := range report.Guests {
		assert.Nil(t, gc.Settlement)
		assertMoney(t, "700", gc.GrandTotal)
	}

	now := time.Now()
	draft.QRGeneratedAt = &now
	ledger.Settlements[guests[0].ID] = draft
	report = BuildReport(s, ledger, &domain.AdminSettings{IBAN: "CZ6508000000192000145399", RecipientName: "The Nest"})
	assert.False(t, report.IsPreliminary)
	require.NotNil(t, report.BankSettings)
	assert.Equal(t, "CZ6508000000192000145399", report.BankSettings.IBAN)
	assert.NotNil(t, report.Guests[0].Settlement)
	assert.Nil(t, report.Guests[1].Settlement)
}

func TestMigrateOverrides(t *testing.T) {
	resID := uuid.New()
	gc := &GuestCosts{
		Consumption: []ConsumptionLine{{Key: "consumption-0", StableKey: "consumption:Chipsy"}, {Key: "consumption-1", StableKey: "consumption:Cola"}},
		Hardware:    []HardwareLine{{Key: "hardware-0", StableKey: StableHardwareKey(resID)}},
	}
	in := map[string]decimal.Decimal{
		KeyAccommodation:   money("100"),
		"consumption-0":    money("1"),
		"consumption-1":    money("2"),
		"consumption:Cola": money("3"),
		"hardware-0":       money("4"),
		"hardware-5":       money("5"),
	}

	out, changed := MigrateOverrides(gc, in)
	assert.True(t, changed)
	assert.Len(t, out, 5)
	assertMoney(t, "100", out[KeyAccommodation])
	assertMoney(t, "1", out["consumption:Chipsy"])
	assertMoney(t, "3", out["consumption:Cola"])
	assertMoney(t, "4", out[StableHardwareKey(resID)])
	assertMoney(t, "5", out["hardware-5"])
	_, stillPositional := out["consumption-0"]
	assert.False(t, stillPositional)
	assert.Len(t, in, 6, "input map is not mutated")
}

func TestValidOverrideKey(t *testing.T) {
	for _, k := range []string{"accommodation", "tip", "consumption-0", "hardware-12", "consumption:Pivo", StableHardwareKey(uuid.New())} {
		assert.True(t, ValidOverrideKey(k), k)
	}
	for _, k := range []string{"", "food", "consumption-", "hardware-x", "hardware:abc", "Accommodation"} {
		assert.False(t, ValidOverrideKey(k), k)
	}
}
