package odds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nssports/sportsbook/internal/cache"
	"github.com/nssports/sportsbook/internal/logger"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

const (
	marginCachePrefix = "margin:"
	marginCacheTTL    = 30 * time.Second
)

// RawMarket is a two-sided market quote as supplied by the ingestion
// pipeline. SideA is home (or over), SideB is away (or under).
type RawMarket struct {
	Market    models.MarketType `json:"market"`
	League    string            `json:"league"`
	Live      bool              `json:"live"`
	Line      decimal.Decimal   `json:"line"`
	SideAOdds int               `json:"side_a_odds"`
	SideBOdds int               `json:"side_b_odds"`
}

// BoundQuote is the platform-priced version of a raw market: margin injected,
// prices rounded, implied hold attached. These are the odds a bet binds to.
type BoundQuote struct {
	Market      models.MarketType `json:"market"`
	League      string            `json:"league"`
	Live        bool              `json:"live"`
	Line        decimal.Decimal   `json:"line"`
	SideAOdds   int               `json:"side_a_odds"`
	SideBOdds   int               `json:"side_b_odds"`
	ImpliedHold decimal.Decimal   `json:"implied_hold"`
	ConfigID    string            `json:"config_id"`
}

// Engine applies the active margin configuration to raw market odds.
// Results are cached per configuration version; replacing the configuration
// invalidates the cache synchronously, so a quote never outlives the
// configuration that produced it.
type Engine struct {
	repo   ConfigReader
	cache  cache.Cache[BoundQuote]
	logger logger.Logger
}

// NewEngine creates a margin injection engine
func NewEngine(repo ConfigReader, c cache.Cache[BoundQuote], l logger.Logger) *Engine {
	return &Engine{repo: repo, cache: c, logger: l}
}

// safeDefaultConfig is the fallback when no active configuration exists.
// Margins are deliberately conservative.
func safeDefaultConfig() *models.OddsConfig {
	return &models.OddsConfig{
		Margins: models.MarginTable{
			models.MarketSpread:     decimal.NewFromInt(10),
			models.MarketMoneyline:  decimal.NewFromInt(15),
			models.MarketTotal:      decimal.NewFromInt(10),
			models.MarketPlayerProp: decimal.NewFromInt(20),
			models.MarketGameProp:   decimal.NewFromInt(20),
		},
		Rounding:       models.RoundingNearest5,
		LiveMultiplier: decimal.NewFromFloat(1.5),
	}
}

// Price produces the bound quote for a raw market under the active
// configuration. Deterministic for a given input and configuration version.
func (e *Engine) Price(ctx context.Context, raw *RawMarket) (*BoundQuote, error) {
	cfg, err := e.repo.GetActiveConfig(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrConfigMissing) {
			return nil, fmt.Errorf("failed to load active odds configuration: %w", err)
		}
		e.logger.Warn("no active odds configuration, using safe defaults", logger.Fields{
			"market": raw.Market,
			"league": raw.League,
		})
		cfg = safeDefaultConfig()
	}
	return e.priceWith(ctx, raw, cfg)
}

func (e *Engine) priceWith(ctx context.Context, raw *RawMarket, cfg *models.OddsConfig) (*BoundQuote, error) {
	key := e.cacheKey(raw, cfg)
	if cached, err := e.cache.Get(ctx, key); err == nil {
		return &cached, nil
	}

	margin := cfg.MarginFor(raw.Market, raw.League)
	if raw.Live {
		margin = margin.Mul(cfg.LiveMultiplier)
	}
	points := int(margin.Round(0).IntPart())

	sideA, err := adjustPrice(raw.SideAOdds, points, cfg.Rounding)
	if err != nil {
		return nil, err
	}
	sideB, err := adjustPrice(raw.SideBOdds, points, cfg.Rounding)
	if err != nil {
		return nil, err
	}

	hold, err := impliedHold(sideA, sideB)
	if err != nil {
		return nil, err
	}

	quote := &BoundQuote{
		Market:      raw.Market,
		League:      raw.League,
		Live:        raw.Live,
		Line:        snapLine(raw.Line),
		SideAOdds:   sideA,
		SideBOdds:   sideB,
		ImpliedHold: hold,
		ConfigID:    cfg.ID.String(),
	}

	if err := e.cache.Set(ctx, key, *quote, marginCacheTTL); err != nil {
		e.logger.Warn("failed to cache bound quote", logger.Fields{"key": key, "error": err.Error()})
	}
	return quote, nil
}

// InvalidateCache drops every cached quote. Called from the configuration
// write path before the replacement commits.
func (e *Engine) InvalidateCache(ctx context.Context) error {
	return e.cache.DeletePrefix(ctx, marginCachePrefix)
}

func (e *Engine) cacheKey(raw *RawMarket, cfg *models.OddsConfig) string {
	return fmt.Sprintf("%s%s:%s:%s:%t:%s:%d:%d",
		marginCachePrefix, cfg.ID, raw.Market, raw.League, raw.Live,
		raw.Line.String(), raw.SideAOdds, raw.SideBOdds)
}

// snapLine snaps a line to the nearest half point, so a bound quote never
// carries a finer increment than the book trades in.
func snapLine(line decimal.Decimal) decimal.Decimal {
	return line.Mul(two).Round(0).Div(two)
}

// adjustPrice moves an American price against the bettor by the given number
// of points, crossing the +-100 gap when needed, then rounds per the
// configured method.
func adjustPrice(american, points int, rounding models.RoundingMethod) (int, error) {
	if american == 0 {
		return 0, models.ErrInvalidOdds
	}
	adjusted := american - points
	if american > 0 && adjusted < 100 {
		// +95 does not exist; the price continues at -105
		adjusted = -(200 - adjusted)
	}
	return roundPrice(adjusted, rounding), nil
}

func roundPrice(american int, rounding models.RoundingMethod) int {
	var step int
	switch rounding {
	case models.RoundingNearest5:
		step = 5
	case models.RoundingNearest10:
		step = 10
	default:
		return american
	}

	sign := 1
	mag := american
	if american < 0 {
		sign = -1
		mag = -american
	}
	mag = ((mag + step/2) / step) * step
	if mag < 100 {
		mag = 100
	}
	return sign * mag
}

// impliedHold is the two-sided overround of the adjusted prices, in percent.
func impliedHold(sideA, sideB int) (decimal.Decimal, error) {
	pa, err := ImpliedProbability(sideA)
	if err != nil {
		return decimal.Zero, err
	}
	pb, err := ImpliedProbability(sideB)
	if err != nil {
		return decimal.Zero, err
	}
	return pa.Add(pb).Sub(one).Mul(hundred), nil
}
