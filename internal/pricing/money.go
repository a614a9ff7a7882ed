package pricing

import (
	"github.com/angelmondragon/rflink-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// Flat legacy prices at or above this magnitude are assumed to be cents.
	centsThreshold = decimal.NewFromInt(1000)
)

// Amount is a source price tagged with the unit it was expressed in.
type Amount struct {
	Value decimal.Decimal `json:"value"`
	Unit  enums.PriceUnit `json:"unit"`
}

// Cents tags an integer minor-unit amount.
func Cents(v int64) Amount {
	return Amount{Value: decimal.NewFromInt(v), Unit: enums.PriceUnitCents}
}

// Dollars tags an already-decimal amount.
func Dollars(v decimal.Decimal) Amount {
	return Amount{Value: v, Unit: enums.PriceUnitDecimal}
}

// Decimal returns the amount in canonical decimal currency.
func (a Amount) Decimal() decimal.Decimal {
	return Normalize(a.Value, a.Unit)
}

// Normalize converts raw into decimal currency according to hint.
func Normalize(raw decimal.Decimal, hint enums.PriceUnit) decimal.Decimal {
	switch hint {
	case enums.PriceUnitCents:
		return raw.Div(hundred)
	case enums.PriceUnitDecimal, enums.PriceUnitPerFoot:
		return raw
	default:
		// Unknown units come from legacy flat prices. Small values were
		// stored as dollars, large ones as cents. See DESIGN.md.
		if raw.LessThan(centsThreshold) {
			return raw
		}
		return raw.Div(hundred)
	}
}

// RoundCents rounds to two places, half-up. Only output boundaries call it.
func RoundCents(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
