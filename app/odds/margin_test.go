package odds

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/internal/cache"
	"github.com/nssports/sportsbook/internal/logger"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfigReader struct {
	cfg *models.OddsConfig
	err error
}

func (s *stubConfigReader) GetActiveConfig(_ context.Context) (*models.OddsConfig, error) {
	return s.cfg, s.err
}

func testConfig() *models.OddsConfig {
	return &models.OddsConfig{
		ID: uuid.New(),
		Margins: models.MarginTable{
			models.MarketSpread:    decimal.NewFromInt(10),
			models.MarketMoneyline: decimal.NewFromInt(20),
		},
		Rounding:       models.RoundingNone,
		LiveMultiplier: decimal.NewFromFloat(1.5),
		IsActive:       true,
	}
}

func TestAdjustPrice(t *testing.T) {
	tests := []struct {
		name     string
		american int
		points   int
		rounding models.RoundingMethod
		want     int
	}{
		{"negative side worsens", -110, 10, models.RoundingNone, -120},
		{"positive side shrinks", 150, 10, models.RoundingNone, 140},
		{"crosses the gap", 105, 20, models.RoundingNone, -115},
		{"lands exactly on 100", 110, 10, models.RoundingNone, 100},
		{"rounds to nearest 5", -108, 10, models.RoundingNearest5, -120},
		{"rounds to nearest 10", 144, 10, models.RoundingNearest10, 130},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adjustPrice(tt.american, tt.points, tt.rounding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := adjustPrice(0, 10, models.RoundingNone)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
}

func TestRoundPrice_FloorsAt100(t *testing.T) {
	assert.Equal(t, 100, roundPrice(102, models.RoundingNearest5))
	assert.Equal(t, -100, roundPrice(-96, models.RoundingNearest10))
	assert.Equal(t, 102, roundPrice(102, models.RoundingNone))
}

func TestImpliedHold(t *testing.T) {
	hold, err := impliedHold(-110, -110)
	require.NoError(t, err)
	assert.True(t, hold.Round(2).Equal(decimal.RequireFromString("4.76")), "got %s", hold)

	hold, err = impliedHold(100, 100)
	require.NoError(t, err)
	assert.True(t, hold.IsZero())
}

func TestEngine_Price(t *testing.T) {
	raw := &RawMarket{
		Market:    models.MarketSpread,
		League:    "NFL",
		Line:      decimal.NewFromFloat(-3.5),
		SideAOdds: -110,
		SideBOdds: -110,
	}

	t.Run("applies configured margin", func(t *testing.T) {
		engine := NewEngine(&stubConfigReader{cfg: testConfig()}, &cache.Mock[BoundQuote]{}, logger.NewNullLogger())

		quote, err := engine.Price(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, -120, quote.SideAOdds)
		assert.Equal(t, -120, quote.SideBOdds)
		assert.True(t, quote.ImpliedHold.GreaterThan(decimal.Zero))
	})

	t.Run("live multiplier scales the margin", func(t *testing.T) {
		engine := NewEngine(&stubConfigReader{cfg: testConfig()}, &cache.Mock[BoundQuote]{}, logger.NewNullLogger())

		live := *raw
		live.Live = true
		quote, err := engine.Price(context.Background(), &live)
		require.NoError(t, err)
		assert.Equal(t, -125, quote.SideAOdds)
	})

	t.Run("falls back to safe defaults when no config is active", func(t *testing.T) {
		engine := NewEngine(&stubConfigReader{err: models.ErrConfigMissing}, &cache.Mock[BoundQuote]{}, logger.NewNullLogger())

		quote, err := engine.Price(context.Background(), raw)
		require.NoError(t, err)
		// default spread margin of 10 points, rounded nearest 5
		assert.Equal(t, -120, quote.SideAOdds)
	})

	t.Run("serves cached quote", func(t *testing.T) {
		cached := BoundQuote{SideAOdds: -999}
		mockCache := &cache.Mock[BoundQuote]{
			GetFunc: func(_ context.Context, _ string) (BoundQuote, error) {
				return cached, nil
			},
		}
		engine := NewEngine(&stubConfigReader{cfg: testConfig()}, mockCache, logger.NewNullLogger())

		quote, err := engine.Price(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, -999, quote.SideAOdds)
	})
}

func TestSnapLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-3.5", "-3.5"},
		{"-3.25", "-3.5"},
		{"44.1", "44"},
		{"44.75", "45"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got := snapLine(decimal.RequireFromString(tt.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s snapped to %s", tt.in, got)
	}
}

func TestEngine_Price_SnapsLine(t *testing.T) {
	engine := NewEngine(&stubConfigReader{cfg: testConfig()}, &cache.Mock[BoundQuote]{}, logger.NewNullLogger())

	raw := &RawMarket{
		Market:    models.MarketSpread,
		League:    "NFL",
		Line:      decimal.RequireFromString("-3.25"),
		SideAOdds: -110,
		SideBOdds: -110,
	}
	quote, err := engine.Price(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, quote.Line.Equal(decimal.RequireFromString("-3.5")), "got %s", quote.Line)
}

func TestEngine_InvalidateCache(t *testing.T) {
	var gotPrefix string
	mockCache := &cache.Mock[BoundQuote]{
		DeletePrefixFunc: func(_ context.Context, prefix string) error {
			gotPrefix = prefix
			return nil
		},
	}
	engine := NewEngine(&stubConfigReader{cfg: testConfig()}, mockCache, logger.NewNullLogger())

	require.NoError(t, engine.InvalidateCache(context.Background()))
	assert.Equal(t, marginCachePrefix, gotPrefix)
}
