package settlement

import (
	"bytes"
	"context"
	"fmt"

	"thenest/internal/modules/costs"
	"thenest/internal/pkg/utils"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// Invoice is a rendered PDF bill.
type Invoice struct {
	Filename string
	Content  []byte
}

type invoiceRow struct {
	Label  string
	Amount decimal.Decimal
}

// invoiceRows lists the bill lines and the total they add up to. A finalized
// settlement contributes its resolved line amounts, custom items and adjustments.
func (s *Service) invoiceRows(gc *costs.GuestCosts, report *costs.Report) ([]invoiceRow, decimal.Decimal) {
	st := gc.Settlement
	amount := func(key string, raw decimal.Decimal) decimal.Decimal {
		if st != nil {
			if v, ok := st.Lines[key]; ok {
				return v
			}
		}
		return raw
	}

	rows := []invoiceRow{{
		Label:  fmt.Sprintf("Ubytovani (%d noci x %s)", gc.NightsCount, s.money(report.EffectivePricePerNight)),
		Amount: amount(costs.KeyAccommodation, gc.NightsTotal),
	}}
	for _, l := range gc.Consumption {
		rows = append(rows, invoiceRow{fmt.Sprintf("%s (%dx)", l.Name, l.Quantity), amount(l.Key, l.TotalPrice)})
	}
	for _, l := range gc.Hardware {
		raw := l.TotalPrice
		if !report.HardwarePricingEnabled {
			raw = decimal.Zero
		}
		rows = append(rows, invoiceRow{fmt.Sprintf("%s (%dx, %d noci)", l.Name, l.Quantity, l.NightsCount), amount(l.Key, raw)})
	}
	if tip := amount(costs.KeyTip, gc.Tip); !tip.IsZero() {
		rows = append(rows, invoiceRow{"Spropitne", tip})
	}

	if st == nil {
		return rows, gc.GrandTotal
	}
	for _, it := range st.CustomItems {
		rows = append(rows, invoiceRow{it.Label, it.Amount})
	}
	for _, it := range st.Adjustments {
		rows = append(rows, invoiceRow{it.Label, it.Amount})
	}
	return rows, st.FinalTotal
}

// core PDF fonts only cover Latin-1
func pdfText(s string) string {
	return utils.StripDiacritics(s)
}

func (s *Service) money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + s.currency
}

// Invoice renders the guest's bill. Finalized settlements get the resolved
// totals and, when a bank account is configured, a payment QR code.
func (s *Service) Invoice(ctx context.Context, sessionID, guestID uuid.UUID) (*Invoice, error) {
	gc, report, err := s.costs.ForGuest(ctx, sessionID, guestID)
	if err != nil {
		return nil, costsErr(err)
	}

	var qr []byte
	if gc.Settlement != nil && report.BankSettings != nil && report.BankSettings.IBAN != "" {
		// a QR that cannot be built is left out rather than failing the invoice
		if png, err := paymentQR(s.payment(report, gc)); err == nil {
			qr = png
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfText(report.SessionName+" - "+gc.Name), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, pdfText(report.SessionName))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, pdfText("Host: "+gc.Name))
	pdf.Ln(8)
	if gc.Settlement != nil && gc.Settlement.VariableSymbol != "" {
		pdf.Cell(0, 8, "VS: "+gc.Settlement.VariableSymbol)
		pdf.Ln(8)
	}
	pdf.Ln(4)

	row := func(label, amount string) {
		pdf.CellFormat(130, 7, pdfText(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, amount, "B", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	row("Polozka", "Castka")
	pdf.SetFont("Arial", "", 11)

	rows, total := s.invoiceRows(gc, report)
	for _, r := range rows {
		row(r.Label, s.money(r.Amount))
	}

	pdf.SetFont("Arial", "B", 12)
	label := "Celkem"
	if gc.Settlement == nil {
		label = "Celkem (predbezne)"
	}
	row(label, s.money(total))

	if qr != nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(qr))
		pdf.Ln(8)
		pdf.ImageOptions("payment-qr", 15, pdf.GetY(), 50, 50, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return &Invoice{
		Filename: fmt.Sprintf("%s-%s.pdf", utils.Slugify(report.SessionName), utils.Slugify(gc.Name)),
		Content:  buf.Bytes(),
	}, nil
}
