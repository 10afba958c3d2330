package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_CreditDebit(t *testing.T) {
	account := &Account{Balance: decimal.NewFromInt(100)}

	require.NoError(t, account.Credit(decimal.NewFromInt(50)))
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(150)))

	require.NoError(t, account.Debit(decimal.NewFromInt(150)))
	assert.True(t, account.Balance.IsZero())

	assert.ErrorIs(t, account.Debit(decimal.NewFromInt(1)), ErrInsufficientFunds)
	assert.ErrorIs(t, account.Credit(decimal.Zero), ErrInvalidDelta)
	assert.ErrorIs(t, account.Debit(decimal.NewFromInt(-5)), ErrInvalidDelta)
}

func TestAccount_Available(t *testing.T) {
	account := &Account{Balance: decimal.NewFromInt(100)}

	assert.True(t, account.Available(decimal.NewFromInt(30)).Equal(decimal.NewFromInt(70)))
	assert.True(t, account.Available(decimal.Zero).Equal(decimal.NewFromInt(100)))
	// risk above balance clamps to zero, never negative
	assert.True(t, account.Available(decimal.NewFromInt(150)).IsZero())
}

func TestLedgerEntry_Validate(t *testing.T) {
	entry := &LedgerEntry{
		UserID:        uuid.New(),
		Delta:         decimal.NewFromInt(25),
		BalanceBefore: decimal.NewFromInt(100),
		BalanceAfter:  decimal.NewFromInt(125),
		Reason:        LedgerReasonDeposit,
	}
	require.NoError(t, entry.Validate())

	entry.BalanceAfter = decimal.NewFromInt(120)
	assert.ErrorIs(t, entry.Validate(), ErrLedgerInconsistent)

	entry.BalanceAfter = decimal.NewFromInt(125)
	entry.Delta = decimal.Zero
	assert.ErrorIs(t, entry.Validate(), ErrInvalidDelta)
}
