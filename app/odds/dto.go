package odds

import (
	"time"

	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

// ReplaceConfigRequest carries a full replacement configuration. Margins are
// American price points per side, keyed by market type.
type ReplaceConfigRequest struct {
	Margins         map[string]decimal.Decimal            `json:"margins" binding:"required"`
	Rounding        string                                `json:"rounding" binding:"required,oneof=none nearest_5 nearest_10"`
	LiveMultiplier  decimal.Decimal                       `json:"live_multiplier" binding:"required"`
	LeagueOverrides map[string]map[string]decimal.Decimal `json:"league_overrides"`
	ChangedBy       string                                `json:"changed_by" binding:"required,max=64"`
}

// ToModel converts the request into an active configuration row.
func (r *ReplaceConfigRequest) ToModel() *models.OddsConfig {
	margins := make(models.MarginTable, len(r.Margins))
	for market, m := range r.Margins {
		margins[models.MarketType(market)] = m
	}
	var overrides models.LeagueOverrides
	if len(r.LeagueOverrides) > 0 {
		overrides = make(models.LeagueOverrides, len(r.LeagueOverrides))
		for league, table := range r.LeagueOverrides {
			mt := make(models.MarginTable, len(table))
			for market, m := range table {
				mt[models.MarketType(market)] = m
			}
			overrides[league] = mt
		}
	}
	return &models.OddsConfig{
		Margins:         margins,
		Rounding:        models.RoundingMethod(r.Rounding),
		LiveMultiplier:  r.LiveMultiplier,
		LeagueOverrides: overrides,
		IsActive:        true,
	}
}

// ConfigResponse represents an odds configuration
type ConfigResponse struct {
	ID              string                 `json:"id"`
	Margins         models.MarginTable     `json:"margins"`
	Rounding        string                 `json:"rounding"`
	LiveMultiplier  decimal.Decimal        `json:"live_multiplier"`
	LeagueOverrides models.LeagueOverrides `json:"league_overrides,omitempty"`
	IsActive        bool                   `json:"is_active"`
	LastModified    time.Time              `json:"last_modified"`
}

// ToConfigResponse converts a configuration model to its response
func ToConfigResponse(cfg *models.OddsConfig) *ConfigResponse {
	return &ConfigResponse{
		ID:              cfg.ID.String(),
		Margins:         cfg.Margins,
		Rounding:        string(cfg.Rounding),
		LiveMultiplier:  cfg.LiveMultiplier,
		LeagueOverrides: cfg.LeagueOverrides,
		IsActive:        cfg.IsActive,
		LastModified:    cfg.LastModified,
	}
}

// HistoryResponse represents one configuration replacement record
type HistoryResponse struct {
	ID             string         `json:"id"`
	ConfigID       string         `json:"config_id"`
	PreviousValues models.JSONMap `json:"previous_values,omitempty"`
	NewValues      models.JSONMap `json:"new_values"`
	ChangedBy      string         `json:"changed_by"`
	CreatedAt      time.Time      `json:"created_at"`
}

// QuoteRequest asks for a raw two-sided market to be priced
type QuoteRequest struct {
	Market    string          `json:"market" binding:"required,oneof=spread moneyline total player_prop game_prop"`
	League    string          `json:"league" binding:"required,max=32"`
	Live      bool            `json:"live"`
	Line      decimal.Decimal `json:"line"`
	SideAOdds int             `json:"side_a_odds" binding:"required"`
	SideBOdds int             `json:"side_b_odds" binding:"required"`
}

// QuoteResponse is the bound quote returned to the caller
type QuoteResponse struct {
	Market      string          `json:"market"`
	League      string          `json:"league"`
	Live        bool            `json:"live"`
	Line        decimal.Decimal `json:"line"`
	SideAOdds   int             `json:"side_a_odds"`
	SideBOdds   int             `json:"side_b_odds"`
	ImpliedHold decimal.Decimal `json:"implied_hold"`
	ConfigID    string          `json:"config_id"`
}
