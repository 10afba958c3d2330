package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerReason classifies why a balance moved
type LedgerReason string

const (
	LedgerReasonDeposit    LedgerReason = "deposit"
	LedgerReasonWithdrawal LedgerReason = "withdrawal"
	LedgerReasonPayout     LedgerReason = "payout"
	LedgerReasonAdjustment LedgerReason = "adjustment"
)

// LedgerEntry is an immutable, append-only record of one balance mutation.
// Rows are never updated or deleted.
type LedgerEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_user" json:"user_id"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null" json:"account_id"`
	Delta         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"delta"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"balance_after"`
	Reason        LedgerReason    `gorm:"type:varchar(20);not null" json:"reason"`
	Initiator     string          `gorm:"type:varchar(64);not null" json:"initiator"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid" json:"reference_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index:idx_ledger_created_at" json:"created_at"`
}

// TableName specifies the table name for LedgerEntry model
func (*LedgerEntry) TableName() string {
	return "ledger_entries"
}

// BeforeCreate sets up the model before creation
func (e *LedgerEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// IsBalanceConsistent checks that before + delta == after.
func (e *LedgerEntry) IsBalanceConsistent() bool {
	return e.BalanceBefore.Add(e.Delta).Equal(e.BalanceAfter)
}

// Validate performs validation on the ledger entry model
func (e *LedgerEntry) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	if e.Delta.IsZero() {
		return ErrInvalidDelta
	}
	if !e.IsBalanceConsistent() {
		return ErrLedgerInconsistent
	}
	if e.BalanceAfter.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}
	return nil
}
