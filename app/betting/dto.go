package betting

import (
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

// LegRequest is one selection inside a placement request. Odds and line are
// the bound values from the quote the bettor accepted; teaser legs ignore
// the odds field because teaser pricing is fixed by table.
type LegRequest struct {
	GameID    uuid.UUID       `json:"game_id" binding:"required"`
	Market    string          `json:"market" binding:"required,oneof=spread moneyline total player_prop game_prop"`
	Selection string          `json:"selection" binding:"required,oneof=home away over under"`
	Odds      int             `json:"odds"`
	Line      decimal.Decimal `json:"line"`
}

// PlaceBetRequest accepts a bet composition for placement
type PlaceBetRequest struct {
	BetType        string          `json:"bet_type" binding:"required,oneof=single parlay teaser"`
	Stake          decimal.Decimal `json:"stake" binding:"required"`
	Legs           []LegRequest    `json:"legs" binding:"required,min=1,dive"`
	TeaserPushRule *string         `json:"teaser_push_rule" binding:"omitempty,oneof=push lose revert"`
}

// ToLegs converts the request legs into the persisted shape.
func (r *PlaceBetRequest) ToLegs() models.BetLegs {
	legs := make(models.BetLegs, len(r.Legs))
	for i, leg := range r.Legs {
		legs[i] = models.BetLeg{
			GameID:    leg.GameID,
			Market:    models.MarketType(leg.Market),
			Selection: leg.Selection,
			Odds:      leg.Odds,
			Line:      leg.Line,
		}
	}
	return legs
}

// BetResponse represents a bet
type BetResponse struct {
	ID              string          `json:"id"`
	BetType         string          `json:"bet_type"`
	Status          string          `json:"status"`
	Stake           decimal.Decimal `json:"stake"`
	Odds            int             `json:"odds"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	Legs            models.BetLegs  `json:"legs"`
	TeaserPoints    decimal.Decimal `json:"teaser_points,omitempty"`
	TeaserPushRule  *string         `json:"teaser_push_rule,omitempty"`
	PlacedAt        time.Time       `json:"placed_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
}

// ToBetResponse converts a bet model to its response
func ToBetResponse(bet *models.Bet) *BetResponse {
	resp := &BetResponse{
		ID:              bet.ID.String(),
		BetType:         string(bet.BetType),
		Status:          string(bet.Status),
		Stake:           bet.Stake,
		Odds:            bet.Odds,
		PotentialPayout: bet.PotentialPayout,
		Legs:            bet.Legs,
		TeaserPoints:    bet.TeaserPoints,
		PlacedAt:        bet.PlacedAt,
		SettledAt:       bet.SettledAt,
	}
	if bet.TeaserPushRule != nil {
		rule := string(*bet.TeaserPushRule)
		resp.TeaserPushRule = &rule
	}
	return resp
}
