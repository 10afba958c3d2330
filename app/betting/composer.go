package betting

import (
	"github.com/nssports/sportsbook/app/odds"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

// Composer prices and validates bet compositions against bound odds. It is
// pure: persistence and game-state checks live in the service.
type Composer struct {
	config *Config
}

// NewComposer creates a new bet composer
func NewComposer(config *Config) *Composer {
	return &Composer{config: config}
}

// Pricing is the result of composing a bet: the bound odds it carries and
// the payout it locks in.
type Pricing struct {
	Odds            int
	CombinedDecimal decimal.Decimal
	PotentialPayout decimal.Decimal
	TeaserPoints    decimal.Decimal
}

// PriceSingle prices a one-selection bet at its bound odds.
func (cp *Composer) PriceSingle(stake decimal.Decimal, american int) (*Pricing, error) {
	d, err := odds.AmericanToDecimal(american)
	if err != nil {
		return nil, err
	}
	return &Pricing{
		Odds:            american,
		CombinedDecimal: d,
		PotentialPayout: stake.Mul(d),
	}, nil
}

// PriceParlay multiplies the per-leg decimal odds into a combined price.
func (cp *Composer) PriceParlay(stake decimal.Decimal, legs models.BetLegs) (*Pricing, error) {
	combined := decimal.NewFromInt(1)
	for _, leg := range legs {
		d, err := odds.AmericanToDecimal(leg.Odds)
		if err != nil {
			return nil, err
		}
		combined = combined.Mul(d)
	}
	american, err := odds.DecimalToAmerican(combined)
	if err != nil {
		return nil, err
	}
	return &Pricing{
		Odds:            american,
		CombinedDecimal: combined,
		PotentialPayout: stake.Mul(combined),
	}, nil
}

// PriceTeaser looks up the fixed point shift and payout price for the sport,
// leg count and push rule. Teaser odds never derive from leg prices.
func (cp *Composer) PriceTeaser(stake decimal.Decimal, sport string, legCount int, rule models.TeaserPushRule) (*Pricing, error) {
	pointTable, ok := cp.config.TeaserPoints[sport]
	if !ok {
		return nil, models.ErrUnsupportedTeaser
	}
	points, ok := pointTable[legCount]
	if !ok {
		return nil, models.ErrUnsupportedTeaser
	}
	oddsTable, ok := cp.config.TeaserOdds[rule]
	if !ok {
		return nil, models.ErrInvalidPushRule
	}
	american, ok := oddsTable[legCount]
	if !ok {
		return nil, models.ErrUnsupportedTeaser
	}

	d, err := odds.AmericanToDecimal(american)
	if err != nil {
		return nil, err
	}
	return &Pricing{
		Odds:            american,
		CombinedDecimal: d,
		PotentialPayout: stake.Mul(d),
		TeaserPoints:    points,
	}, nil
}

// ValidateStake checks the configured stake bounds.
func (cp *Composer) ValidateStake(stake decimal.Decimal) error {
	if stake.LessThanOrEqual(decimal.Zero) {
		return models.ErrInvalidStake
	}
	if stake.LessThan(cp.config.MinStake) {
		return models.ErrStakeTooSmall
	}
	if stake.GreaterThan(cp.config.MaxStake) {
		return models.ErrStakeTooLarge
	}
	return nil
}

// ValidateLegs enforces the composition rules shared by all bet types:
// no duplicate game+market+selection, leg counts per type, teaser market
// restrictions.
func (cp *Composer) ValidateLegs(betType models.BetType, legs models.BetLegs) error {
	if len(legs) == 0 {
		return models.ErrTooFewLegs
	}

	type legKey struct {
		game      string
		market    models.MarketType
		selection string
	}
	seen := make(map[legKey]struct{}, len(legs))
	for _, leg := range legs {
		key := legKey{leg.GameID.String(), leg.Market, leg.Selection}
		if _, ok := seen[key]; ok {
			return models.ErrConflictingLegs
		}
		seen[key] = struct{}{}
	}

	switch betType {
	case models.BetTypeSingle:
		if len(legs) != 1 {
			return models.ErrTooManyLegs
		}
	case models.BetTypeParlay:
		if len(legs) < 2 {
			return models.ErrTooFewLegs
		}
		if len(legs) > cp.config.MaxParlayLegs {
			return models.ErrTooManyLegs
		}
	case models.BetTypeTeaser:
		if len(legs) < 2 {
			return models.ErrTooFewLegs
		}
		for _, leg := range legs {
			if leg.Market != models.MarketSpread && leg.Market != models.MarketTotal {
				return models.ErrInvalidTeaserLeg
			}
		}
	default:
		return models.ErrInvalidBetType
	}
	return nil
}
