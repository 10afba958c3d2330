package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account holds a user's stored balance. Risk (the sum of stakes on pending
// bets) and available funds are derived, never stored, so they cannot drift
// from the bet set.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0.00;check:balance >= 0" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Account model
func (*Account) TableName() string {
	return "accounts"
}

// BeforeCreate sets up the model before creation
func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Credit increases the balance. The amount must be positive.
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidDelta
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit decreases the balance, refusing to take it negative.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidDelta
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Available returns the spendable amount given the caller-computed risk.
func (a *Account) Available(risk decimal.Decimal) decimal.Decimal {
	avail := a.Balance.Sub(risk)
	if avail.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return avail
}
