package costs

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	KeyAccommodation = "accommodation"
	KeyTip           = "tip"

	consumptionPositional = "consumption-"
	hardwarePositional    = "hardware-"
	consumptionStable     = "consumption:"
	hardwareStable        = "hardware:"
)

var overrideKeyPattern = regexp.MustCompile(
	`^(accommodation|tip|consumption-\d+|hardware-\d+|consumption:.+|hardware:[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})$`,
)

// ValidOverrideKey reports whether k addresses a line the aggregation knows about.
func ValidOverrideKey(k string) bool {
	return overrideKeyPattern.MatchString(k)
}

func ConsumptionKey(i int) string { return consumptionPositional + strconv.Itoa(i) }

func HardwareKey(i int) string { return hardwarePositional + strconv.Itoa(i) }

// StableConsumptionKey addresses a consumption group by product name, which is
// also what groups are merged on.
func StableConsumptionKey(name string) string { return consumptionStable + name }

func StableHardwareKey(reservationID uuid.UUID) string {
	return hardwareStable + reservationID.String()
}

// resolve picks the override for a line: stable key first, then positional key, then base.
func resolve(overrides map[string]decimal.Decimal, stable, positional string, base decimal.Decimal) decimal.Decimal {
	if stable != "" {
		if v, ok := overrides[stable]; ok {
			return v
		}
	}
	if v, ok := overrides[positional]; ok {
		return v
	}
	return base
}

func positionalIndex(key, prefix string) (int, bool) {
	if !strings.HasPrefix(key, prefix) {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// MigrateOverrides rewrites positional consumption/hardware keys into stable keys
// using the guest's current line order. A stable key already present keeps its
// value. Positional keys pointing past the end of the list are left untouched.
func MigrateOverrides(g *GuestCosts, overrides map[string]decimal.Decimal) (map[string]decimal.Decimal, bool) {
	if len(overrides) == 0 {
		return overrides, false
	}
	out := make(map[string]decimal.Decimal, len(overrides))
	for k, v := range overrides {
		out[k] = v
	}

	changed := false
	for k, v := range overrides {
		stable := ""
		if i, ok := positionalIndex(k, consumptionPositional); ok && i < len(g.Consumption) {
			stable = g.Consumption[i].StableKey
		} else if i, ok := positionalIndex(k, hardwarePositional); ok && i < len(g.Hardware) {
			stable = g.Hardware[i].StableKey
		}
		if stable == "" {
			continue
		}
		if _, exists := overrides[stable]; !exists {
			out[stable] = v
		}
		delete(out, k)
		changed = true
	}
	return out, changed
}
