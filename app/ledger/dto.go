package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
)

// AdjustBalanceRequest moves a user's balance by delta. Negative deltas are
// withdrawal-type and are rejected past the current balance.
type AdjustBalanceRequest struct {
	Delta       decimal.Decimal `json:"delta" binding:"required"`
	Reason      string          `json:"reason" binding:"required,oneof=deposit withdrawal payout adjustment"`
	Initiator   string          `json:"initiator" binding:"required,max=64"`
	ReferenceID *uuid.UUID      `json:"reference_id"`
}

// SummaryResponse is the user's financial position
type SummaryResponse struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Risk      decimal.Decimal `json:"risk"`
	Available decimal.Decimal `json:"available"`
}

// EntryResponse represents one ledger entry
type EntryResponse struct {
	ID            string          `json:"id"`
	Delta         decimal.Decimal `json:"delta"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reason        string          `json:"reason"`
	Initiator     string          `json:"initiator"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToEntryResponse converts a ledger entry model to its response
func ToEntryResponse(e *models.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID.String(),
		Delta:         e.Delta,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Reason:        string(e.Reason),
		Initiator:     e.Initiator,
		ReferenceID:   e.ReferenceID,
		CreatedAt:     e.CreatedAt,
	}
}
