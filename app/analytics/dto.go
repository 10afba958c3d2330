package analytics

import "github.com/shopspring/decimal"

// DevigRequest holds a two-sided American market
type DevigRequest struct {
	SideAOdds int `json:"side_a_odds" binding:"required"`
	SideBOdds int `json:"side_b_odds" binding:"required"`
}

// KellyRequest asks for a Kelly stake recommendation
type KellyRequest struct {
	TrueProbability decimal.Decimal `json:"true_probability" binding:"required"`
	DecimalOdds     decimal.Decimal `json:"decimal_odds" binding:"required"`
	Bankroll        decimal.Decimal `json:"bankroll" binding:"required"`
	Multiplier      decimal.Decimal `json:"multiplier" binding:"required"`
}
