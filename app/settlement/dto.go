package settlement

import "github.com/shopspring/decimal"

// BetResult is the settlement output for one bet
type BetResult struct {
	BetID  string          `json:"bet_id"`
	Status string          `json:"status"`
	Payout decimal.Decimal `json:"payout"`
	// Deferred marks a bet left pending because a leg had no final result.
	Deferred bool `json:"deferred,omitempty"`
}

// GameReport summarizes settling every pending bet on one game
type GameReport struct {
	GameID         string      `json:"game_id"`
	BetsSettled    int         `json:"bets_settled"`
	BetsDeferred   int         `json:"bets_deferred"`
	CountsByStatus map[string]int `json:"counts_by_status"`
	Results        []BetResult `json:"results,omitempty"`
}

// SweepReport summarizes one bounded sweep pass
type SweepReport struct {
	GamesProcessed int            `json:"games_processed"`
	BetsSettled    int            `json:"bets_settled"`
	BetsDeferred   int            `json:"bets_deferred"`
	CountsByStatus map[string]int `json:"counts_by_status"`
}
