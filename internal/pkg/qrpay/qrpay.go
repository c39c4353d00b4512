// Package qrpay builds Czech "Short Payment Descriptor" strings and renders
// them as QR codes that banking apps can scan.
package qrpay

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"thenest/internal/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const (
	version       = "1.0"
	maxMessageLen = 60
	maxSymbolLen  = 10
)

var (
	ErrInvalidIBAN   = errors.New("qrpay: invalid IBAN")
	ErrInvalidAmount = errors.New("qrpay: amount must be positive")
	ErrInvalidSymbol = errors.New("qrpay: variable symbol must be up to 10 digits")
)

// Payment is one bank transfer request.
type Payment struct {
	IBAN           string
	Amount         decimal.Decimal
	Currency       string
	VariableSymbol string
	Message        string
	RecipientName  string
}

// NormalizeIBAN drops spaces and upper-cases the account.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
}

// ValidIBAN checks length, alphabet and the mod-97 check digits.
func ValidIBAN(iban string) bool {
	iban = NormalizeIBAN(iban)
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	rem := 0
	for _, r := range rearranged {
		var v int
		switch {
		case r >= '0' && r <= '9':
			v = int(r - '0')
		case r >= 'A' && r <= 'Z':
			v = int(r-'A') + 10
		default:
			return false
		}
		if v >= 10 {
			rem = (rem*100 + v) % 97
		} else {
			rem = (rem*10 + v) % 97
		}
	}
	return rem == 1
}

func escape(v string) string {
	return strings.ReplaceAll(v, "*", "%2A")
}

func message(m string) string {
	m = strings.TrimSpace(utils.StripDiacritics(m))
	if utf8.RuneCountInString(m) > maxMessageLen {
		m = string([]rune(m)[:maxMessageLen])
	}
	return m
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the SPD payload, for example
// SPD*1.0*ACC:CZ6508000000192000145399*AM:450.00*CC:CZK*X-VS:2410050001*MSG:LAN.
func (p Payment) String() (string, error) {
	iban := NormalizeIBAN(p.IBAN)
	if !ValidIBAN(iban) {
		return "", ErrInvalidIBAN
	}
	if !p.Amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	if len(p.VariableSymbol) > maxSymbolLen || !digitsOnly(p.VariableSymbol) {
		return "", ErrInvalidSymbol
	}
	currency := strings.ToUpper(p.Currency)
	if currency == "" {
		currency = "CZK"
	}

	parts := []string{
		"SPD", version,
		"ACC:" + iban,
		"AM:" + p.Amount.StringFixed(2),
		"CC:" + currency,
	}
	if p.VariableSymbol != "" {
		parts = append(parts, "X-VS:"+p.VariableSymbol)
	}
	if msg := message(p.Message); msg != "" {
		parts = append(parts, "MSG:"+escape(msg))
	}
	if rn := message(p.RecipientName); rn != "" {
		parts = append(parts, "RN:"+escape(rn))
	}
	return strings.Join(parts, "*"), nil
}

// PNG encodes the payment as a QR image of size×size pixels.
func PNG(p Payment, size int) ([]byte, error) {
	payload, err := p.String()
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qrpay: encode: %w", err)
	}
	return png, nil
}
