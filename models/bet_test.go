package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBet() *Bet {
	return &Bet{
		UserID:          uuid.New(),
		BetType:         BetTypeSingle,
		Status:          BetStatusPending,
		Stake:           decimal.NewFromInt(10),
		Odds:            -110,
		PotentialPayout: decimal.NewFromFloat(19.09),
		Legs: BetLegs{
			{GameID: uuid.New(), Market: MarketSpread, Selection: SelectionHome, Odds: -110, Line: decimal.NewFromInt(-3)},
		},
	}
}

func TestBet_Settle(t *testing.T) {
	bet := validBet()
	at := time.Now()

	require.NoError(t, bet.Settle(BetStatusWon, at))
	assert.Equal(t, BetStatusWon, bet.Status)
	require.NotNil(t, bet.SettledAt)
	assert.Equal(t, at, *bet.SettledAt)

	// a settled bet never transitions again
	err := bet.Settle(BetStatusLost, time.Now())
	assert.ErrorIs(t, err, ErrAlreadySettled)
	assert.Equal(t, BetStatusWon, bet.Status)
}

func TestBet_Settle_RejectsNonTerminalStatus(t *testing.T) {
	bet := validBet()
	err := bet.Settle(BetStatusPending, time.Now())
	assert.Error(t, err)
	assert.True(t, bet.IsPending())
}

func TestBet_GameIDs_Deduplicates(t *testing.T) {
	gameA := uuid.New()
	gameB := uuid.New()

	bet := validBet()
	bet.BetType = BetTypeParlay
	bet.Legs = BetLegs{
		{GameID: gameA, Market: MarketSpread, Selection: SelectionHome},
		{GameID: gameA, Market: MarketTotal, Selection: SelectionOver},
		{GameID: gameB, Market: MarketMoneyline, Selection: SelectionAway},
	}

	ids := bet.GameIDs()
	require.Len(t, ids, 2)
	assert.Contains(t, ids, gameA)
	assert.Contains(t, ids, gameB)
}

func TestBet_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validBet().Validate())
	})

	t.Run("missing user", func(t *testing.T) {
		bet := validBet()
		bet.UserID = uuid.Nil
		assert.ErrorIs(t, bet.Validate(), ErrInvalidUserID)
	})

	t.Run("zero stake", func(t *testing.T) {
		bet := validBet()
		bet.Stake = decimal.Zero
		assert.ErrorIs(t, bet.Validate(), ErrInvalidStake)
	})

	t.Run("single with two legs", func(t *testing.T) {
		bet := validBet()
		bet.Legs = append(bet.Legs, bet.Legs[0])
		assert.ErrorIs(t, bet.Validate(), ErrTooManyLegs)
	})

	t.Run("teaser without push rule", func(t *testing.T) {
		bet := validBet()
		bet.BetType = BetTypeTeaser
		bet.Legs = append(bet.Legs, BetLeg{GameID: uuid.New(), Market: MarketTotal, Selection: SelectionOver})
		assert.ErrorIs(t, bet.Validate(), ErrInvalidPushRule)
	})
}

func TestBetLegs_ScanRoundTrip(t *testing.T) {
	legs := BetLegs{
		{GameID: uuid.New(), Market: MarketSpread, Selection: SelectionHome, Odds: -110, Line: decimal.NewFromFloat(-3.5)},
	}

	value, err := legs.Value()
	require.NoError(t, err)

	var scanned BetLegs
	require.NoError(t, scanned.Scan(value))
	require.Len(t, scanned, 1)
	assert.Equal(t, legs[0].GameID, scanned[0].GameID)
	assert.True(t, legs[0].Line.Equal(scanned[0].Line))
}

func TestBetStatus_IsTerminal(t *testing.T) {
	assert.False(t, BetStatusPending.IsTerminal())
	assert.True(t, BetStatusWon.IsTerminal())
	assert.True(t, BetStatusLost.IsTerminal())
	assert.True(t, BetStatusPush.IsTerminal())
}
