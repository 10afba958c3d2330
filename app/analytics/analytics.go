package analytics

import (
	"github.com/nssports/sportsbook/app/odds"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// DevigResult carries the implied and fair probabilities of a two-sided
// market alongside its hold.
type DevigResult struct {
	ImpliedProbA decimal.Decimal `json:"implied_prob_a"`
	ImpliedProbB decimal.Decimal `json:"implied_prob_b"`
	Hold         decimal.Decimal `json:"hold"`
	FairProbA    decimal.Decimal `json:"fair_prob_a"`
	FairProbB    decimal.Decimal `json:"fair_prob_b"`
}

// Devig strips the overround from a two-sided American market, recovering
// the fair probability of each side.
func Devig(sideA, sideB int) (*DevigResult, error) {
	pa, err := odds.ImpliedProbability(sideA)
	if err != nil {
		return nil, err
	}
	pb, err := odds.ImpliedProbability(sideB)
	if err != nil {
		return nil, err
	}

	total := pa.Add(pb)
	return &DevigResult{
		ImpliedProbA: pa,
		ImpliedProbB: pb,
		Hold:         total.Sub(one),
		FairProbA:    pa.Div(total),
		FairProbB:    pb.Div(total),
	}, nil
}

// KellyResult carries the full-Kelly fraction and the fractional stake
// recommendation.
type KellyResult struct {
	FullKelly        decimal.Decimal `json:"full_kelly"`
	AdjustedFraction decimal.Decimal `json:"adjusted_fraction"`
	RecommendedStake decimal.Decimal `json:"recommended_stake"`
}

// Kelly sizes a stake by the Kelly criterion: f* = (p(d-1) - (1-p)) / (d-1),
// floored at zero when there is no edge. The multiplier scales the fraction
// (0.25 for quarter Kelly).
func Kelly(trueProb, decimalOdds, bankroll, multiplier decimal.Decimal) (*KellyResult, error) {
	if decimalOdds.LessThanOrEqual(one) {
		return nil, models.ErrInvalidOdds
	}
	if trueProb.LessThanOrEqual(decimal.Zero) || trueProb.GreaterThanOrEqual(one) {
		return nil, models.ErrInvalidStake
	}

	b := decimalOdds.Sub(one)
	q := one.Sub(trueProb)
	fullKelly := trueProb.Mul(b).Sub(q).Div(b)
	if fullKelly.LessThanOrEqual(decimal.Zero) {
		return &KellyResult{
			FullKelly:        decimal.Zero,
			AdjustedFraction: decimal.Zero,
			RecommendedStake: decimal.Zero,
		}, nil
	}

	adjusted := fullKelly.Mul(multiplier)
	return &KellyResult{
		FullKelly:        fullKelly,
		AdjustedFraction: adjusted,
		RecommendedStake: adjusted.Mul(bankroll),
	}, nil
}
