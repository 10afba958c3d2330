package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/internal/cache"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	riskCachePrefix = "risk:"
	riskCacheTTL    = 5 * time.Second
)

type service struct {
	db        *gorm.DB
	repo      Repository
	riskCache cache.Cache[string]
}

// NewService creates a new ledger service. The risk cache is a short-TTL
// read cache only; transactional paths always recompute from the bet set.
func NewService(db *gorm.DB, repo Repository, riskCache cache.Cache[string]) Service {
	return &service{db: db, repo: repo, riskCache: riskCache}
}

// Apply mutates an account balance and appends the paired ledger entry using
// the given (possibly transactional) repository. Both writes succeed or
// neither does; a mismatch between them is ErrLedgerInconsistent and must
// abort the surrounding transaction.
func Apply(ctx context.Context, repo Repository, userID uuid.UUID,
	delta decimal.Decimal, reason models.LedgerReason, initiator string,
	referenceID *uuid.UUID) (*models.LedgerEntry, error) {
	if delta.IsZero() {
		return nil, models.ErrInvalidDelta
	}

	account, err := repo.GetAccountForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	before := account.Balance
	if delta.GreaterThan(decimal.Zero) {
		err = account.Credit(delta)
	} else {
		err = account.Debit(delta.Neg())
	}
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		UserID:        userID,
		AccountID:     account.ID,
		Delta:         delta,
		BalanceBefore: before,
		BalanceAfter:  account.Balance,
		Reason:        reason,
		Initiator:     initiator,
		ReferenceID:   referenceID,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := repo.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	if err := repo.CreateEntry(ctx, entry); err != nil {
		// The surrounding transaction must roll the balance write back;
		// surfacing this as a ledger inconsistency makes it fail loudly.
		return nil, fmt.Errorf("%w: %v", models.ErrLedgerInconsistent, err)
	}
	return entry, nil
}

func (s *service) AdjustBalance(ctx context.Context, userID uuid.UUID, req *AdjustBalanceRequest) (*EntryResponse, error) {
	var entry *models.LedgerEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = Apply(ctx, s.repo.WithTx(tx), userID, req.Delta,
			models.LedgerReason(req.Reason), req.Initiator, req.ReferenceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToEntryResponse(entry), nil
}

// Risk returns the sum of stakes across the user's pending bets. The cached
// value is advisory; placement and settlement recompute inside their own
// transactions.
func (s *service) Risk(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	key := riskCachePrefix + userID.String()
	if cached, err := s.riskCache.Get(ctx, key); err == nil {
		if risk, err := decimal.NewFromString(cached); err == nil {
			return risk, nil
		}
	}

	risk, err := s.repo.SumPendingStakes(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute risk: %w", err)
	}
	_ = s.riskCache.Set(ctx, key, risk.String(), riskCacheTTL)
	return risk, nil
}

func (s *service) Available(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	account, err := s.repo.GetAccountByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	risk, err := s.Risk(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Available(risk), nil
}

func (s *service) Summary(ctx context.Context, userID uuid.UUID) (*SummaryResponse, error) {
	account, err := s.repo.GetAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	risk, err := s.Risk(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		UserID:    userID.String(),
		Balance:   account.Balance,
		Risk:      risk,
		Available: account.Available(risk),
	}, nil
}

func (s *service) Entries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]EntryResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := s.repo.ListEntries(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = *ToEntryResponse(&entries[i])
	}
	return responses, nil
}

// InvalidateRisk drops the cached risk figure after a placement or
// settlement changes the pending bet set.
func (s *service) InvalidateRisk(ctx context.Context, userID uuid.UUID) {
	_ = s.riskCache.Delete(ctx, riskCachePrefix+userID.String())
}
