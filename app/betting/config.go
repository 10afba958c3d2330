package betting

import (
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

// TeaserPointTable maps leg count to the favorable point shift for a sport
type TeaserPointTable map[int]decimal.Decimal

// TeaserOddsTable maps leg count to the fixed American payout price for a
// push rule
type TeaserOddsTable map[int]int

// Config represents the configuration for the betting module
type Config struct {
	MinStake         decimal.Decimal `env:"BET_MIN_STAKE"`
	MaxStake         decimal.Decimal `env:"BET_MAX_STAKE"`
	MaxParlayLegs    int             `env:"BET_MAX_PARLAY_LEGS"`
	AllowLiveBetting bool            `env:"BET_ALLOW_LIVE"`

	// Teaser pricing is fixed by sport and leg count, never derived from
	// leg prices.
	TeaserPoints map[string]TeaserPointTable
	TeaserOdds   map[models.TeaserPushRule]TeaserOddsTable
}

func (c *Config) Validate() error {
	if c.MinStake.LessThanOrEqual(decimal.Zero) {
		return models.ErrInvalidStake
	}
	if c.MaxStake.LessThanOrEqual(c.MinStake) {
		return models.ErrInvalidStake
	}
	if c.MaxParlayLegs < 2 {
		return models.ErrTooFewLegs
	}
	if len(c.TeaserPoints) == 0 || len(c.TeaserOdds) == 0 {
		return models.ErrUnsupportedTeaser
	}
	return nil
}

// GetDefaultConfig returns the default betting configuration
func GetDefaultConfig() *Config {
	return &Config{
		MinStake:         decimal.NewFromInt(1),
		MaxStake:         decimal.NewFromInt(10000),
		MaxParlayLegs:    10,
		AllowLiveBetting: false,
		TeaserPoints: map[string]TeaserPointTable{
			"football": {
				2: decimal.NewFromFloat(6.0),
				3: decimal.NewFromFloat(6.5),
				4: decimal.NewFromFloat(7.0),
			},
			"basketball": {
				2: decimal.NewFromFloat(4.0),
				3: decimal.NewFromFloat(4.5),
				4: decimal.NewFromFloat(5.0),
			},
		},
		TeaserOdds: map[models.TeaserPushRule]TeaserOddsTable{
			models.TeaserPushRefunds: {
				2: -120,
				3: 160,
				4: 260,
			},
			models.TeaserPushLoses: {
				2: 100,
				3: 180,
				4: 300,
			},
		},
	}
}
