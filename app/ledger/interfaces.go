package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines the interface for account and ledger data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	// GetAccountForUpdate takes a row lock; call only inside a transaction.
	GetAccountForUpdate(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	CreateEntry(ctx context.Context, entry *models.LedgerEntry) error
	ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.LedgerEntry, error)
	SumPendingStakes(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// Service defines the interface for balance management
type Service interface {
	AdjustBalance(ctx context.Context, userID uuid.UUID, req *AdjustBalanceRequest) (*EntryResponse, error)
	Risk(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Available(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Summary(ctx context.Context, userID uuid.UUID) (*SummaryResponse, error)
	Entries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]EntryResponse, error)
	InvalidateRisk(ctx context.Context, userID uuid.UUID)
}
