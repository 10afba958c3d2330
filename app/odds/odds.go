package odds

import (
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// AmericanToDecimal converts American odds to decimal odds.
// Positive odds quote profit per 100 staked, negative odds quote the stake
// needed to profit 100. Zero is not a valid American price.
func AmericanToDecimal(american int) (decimal.Decimal, error) {
	if american == 0 {
		return decimal.Zero, models.ErrInvalidOdds
	}
	a := decimal.NewFromInt(int64(american))
	if american > 0 {
		return a.Div(hundred).Add(one), nil
	}
	return hundred.Div(a.Abs()).Add(one), nil
}

// DecimalToAmerican converts decimal odds to the nearest American price.
// Decimal odds at or below 1 carry no payout and are rejected.
func DecimalToAmerican(d decimal.Decimal) (int, error) {
	if d.LessThanOrEqual(one) {
		return 0, models.ErrInvalidOdds
	}
	if d.GreaterThanOrEqual(two) {
		return int(d.Sub(one).Mul(hundred).Round(0).IntPart()), nil
	}
	return int(hundred.Neg().Div(d.Sub(one)).Round(0).IntPart()), nil
}

// Payout returns stake times the decimal equivalent of the American odds.
func Payout(stake decimal.Decimal, american int) (decimal.Decimal, error) {
	d, err := AmericanToDecimal(american)
	if err != nil {
		return decimal.Zero, err
	}
	return stake.Mul(d), nil
}

// Profit returns the payout net of the stake.
func Profit(stake decimal.Decimal, american int) (decimal.Decimal, error) {
	payout, err := Payout(stake, american)
	if err != nil {
		return decimal.Zero, err
	}
	return payout.Sub(stake), nil
}

// ImpliedProbability returns 1/d for the American price.
func ImpliedProbability(american int) (decimal.Decimal, error) {
	d, err := AmericanToDecimal(american)
	if err != nil {
		return decimal.Zero, err
	}
	return one.Div(d), nil
}
