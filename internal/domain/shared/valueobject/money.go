package valueobject

import (
	"github.com/shopspring/decimal"
)

var (
	// cent is the smallest adjustment unit used when splitting amounts
	cent = decimal.New(1, -2)
	// rateTolerance is the closeness under which two tax rates are treated as the same rate
	rateTolerance = decimal.New(1, -2)
)

// RoundCents rounds an amount to 2 decimal places (half away from zero)
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// RoundRate rounds a rate to 4 decimal places
func RoundRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Round(4)
}

// SafeDiv divides a by b, returning zero when b is not positive
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if !b.IsPositive() {
		return decimal.Zero
	}
	return a.Div(b)
}

// RatesClose reports whether two rates differ by less than 0.01
func RatesClose(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(rateTolerance)
}

// DivideAmongLines splits total across n lines without leaking or fabricating cents.
//
// Every line receives round(total/n, 2); the residual left by that rounding is
// handed out one cent at a time to the first lines in index order. The returned
// amounts always sum to round(total, 2). A non-positive n yields an empty slice.
func DivideAmongLines(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return []decimal.Decimal{}
	}

	total = RoundCents(total)
	count := decimal.NewFromInt(int64(n))
	base := RoundCents(total.Div(count))

	discrepancy := RoundCents(total.Sub(base.Mul(count)))
	pennies := discrepancy.Abs().Shift(2).Round(0).IntPart()
	modifier := cent
	if !discrepancy.IsPositive() {
		modifier = cent.Neg()
	}

	lines := make([]decimal.Decimal, n)
	for i := range lines {
		line := base
		if pennies > 0 {
			line = line.Add(modifier)
			pennies--
		}
		lines[i] = RoundCents(line)
	}
	return lines
}
