package odds

import (
	"testing"

	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		american int
		want     string
	}{
		{100, "2"},
		{150, "2.5"},
		{-200, "1.5"},
		{250, "3.5"},
	}
	for _, tt := range tests {
		d, err := AmericanToDecimal(tt.american)
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString(tt.want)),
			"american %d: got %s want %s", tt.american, d, tt.want)
	}

	// -110 is 100/110 + 1
	d, err := AmericanToDecimal(-110)
	require.NoError(t, err)
	want := decimal.NewFromInt(100).Div(decimal.NewFromInt(110)).Add(decimal.NewFromInt(1))
	assert.True(t, d.Equal(want))

	_, err = AmericanToDecimal(0)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		decimal string
		want    int
	}{
		{"2", 100},
		{"2.5", 150},
		{"1.5", -200},
		{"3.5", 250},
	}
	for _, tt := range tests {
		got, err := DecimalToAmerican(decimal.RequireFromString(tt.decimal))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "decimal %s", tt.decimal)
	}

	for _, bad := range []string{"1", "0.5", "0"} {
		_, err := DecimalToAmerican(decimal.RequireFromString(bad))
		assert.ErrorIs(t, err, models.ErrInvalidOdds, "decimal %s", bad)
	}
}

// Converting American to decimal and back lands on the same price for every
// representable American value.
func TestOddsConversionRoundTrip(t *testing.T) {
	for _, american := range []int{-10000, -550, -200, -110, -105, -100, 100, 105, 110, 264, 550, 10000} {
		d, err := AmericanToDecimal(american)
		require.NoError(t, err)
		back, err := DecimalToAmerican(d)
		require.NoError(t, err)
		assert.Equal(t, american, back)
	}
}

func TestPayoutAndProfit(t *testing.T) {
	stake := decimal.NewFromInt(100)

	payout, err := Payout(stake, -110)
	require.NoError(t, err)
	assert.True(t, payout.Round(2).Equal(decimal.RequireFromString("190.91")))

	profit, err := Profit(stake, -110)
	require.NoError(t, err)
	assert.True(t, profit.Round(2).Equal(decimal.RequireFromString("90.91")))

	payout, err = Payout(stake, 150)
	require.NoError(t, err)
	assert.True(t, payout.Equal(decimal.NewFromInt(250)))
}

func TestImpliedProbability(t *testing.T) {
	p, err := ImpliedProbability(-110)
	require.NoError(t, err)
	assert.True(t, p.Round(4).Equal(decimal.RequireFromString("0.5238")))

	p, err = ImpliedProbability(100)
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.RequireFromString("0.5")))
}
