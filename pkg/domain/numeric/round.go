package numeric

import "github.com/shopspring/decimal"

var half = decimal.New(5, -1)

// Round2 rounds to two decimal places, ties towards positive infinity
// (floor(x*100 + 0.5) / 100). The arithmetic is exact, so 1.005 always
// becomes 1.01.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// Sum adds values in order.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// CeilInt returns the smallest integer not less than d.
func CeilInt(d decimal.Decimal) int {
	return int(d.Ceil().IntPart())
}
