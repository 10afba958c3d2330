package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/app/ledger"
	"github.com/nssports/sportsbook/internal/logger"
	"github.com/nssports/sportsbook/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type service struct {
	db         *gorm.DB
	repo       Repository
	grader     *Grader
	ledgerRepo ledger.Repository
	ledgerSvc  ledger.Service
	config     *Config
	logger     logger.Logger
}

// NewService creates a new settlement service
func NewService(db *gorm.DB, repo Repository, grader *Grader,
	ledgerRepo ledger.Repository, ledgerSvc ledger.Service,
	config *Config, lg logger.Logger) Service {
	return &service{
		db:         db,
		repo:       repo,
		grader:     grader,
		ledgerRepo: ledgerRepo,
		ledgerSvc:  ledgerSvc,
		config:     config,
		logger:     lg,
	}
}

// SettleBet grades one bet and, when the result is terminal, writes the
// status flip and the ledger effect in a single transaction. Re-invocation
// on a settled bet is a no-op; a bet without a final result defers.
func (s *service) SettleBet(ctx context.Context, betID uuid.UUID) (*BetResult, error) {
	bet, err := s.repo.GetBetByID(ctx, betID)
	if err != nil {
		return nil, err
	}
	if !bet.IsPending() {
		return alreadySettledResult(bet), nil
	}

	games, err := s.repo.GetGamesByIDs(ctx, bet.GameIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	result, err := s.grader.Grade(bet, games)
	if err != nil {
		return nil, err
	}
	if result.Deferred {
		return &BetResult{
			BetID:    bet.ID.String(),
			Status:   string(models.BetStatusPending),
			Payout:   decimal.Zero,
			Deferred: true,
		}, nil
	}

	settledAt := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		won, err := s.repo.WithTx(tx).SettleBet(ctx, bet.ID, result.Status, settledAt)
		if err != nil {
			return fmt.Errorf("failed to settle bet: %w", err)
		}
		if !won {
			// Another worker got there first; the transaction commits
			// nothing and the caller sees the stored terminal state.
			return models.ErrAlreadySettled
		}

		if result.Status == models.BetStatusWon {
			_, err = ledger.Apply(ctx, s.ledgerRepo.WithTx(tx), bet.UserID,
				result.Payout, models.LedgerReasonPayout, "settlement", &bet.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, models.ErrAlreadySettled) {
		current, lookupErr := s.repo.GetBetByID(ctx, betID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return alreadySettledResult(current), nil
	}
	if err != nil {
		if errors.Is(err, models.ErrLedgerInconsistent) {
			s.logger.Error(err, map[string]interface{}{
				"bet_id": bet.ID.String(),
				"user_id": bet.UserID.String(),
			})
		}
		return nil, err
	}

	s.ledgerSvc.InvalidateRisk(ctx, bet.UserID)
	s.logger.Info("bet settled", map[string]interface{}{
		"bet_id": bet.ID.String(),
		"status": string(result.Status),
		"payout": result.Payout.String(),
	})
	return &BetResult{
		BetID:  bet.ID.String(),
		Status: string(result.Status),
		Payout: result.Payout,
	}, nil
}

// SettleGame resolves every pending bet that references the game. Deferred
// bets stay pending for the next sweep; a ledger inconsistency on one bet
// aborts the run so it fails loudly.
func (s *service) SettleGame(ctx context.Context, gameID uuid.UUID) (*GameReport, error) {
	bets, err := s.repo.GetPendingBetsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bets: %w", err)
	}

	report := &GameReport{
		GameID:         gameID.String(),
		CountsByStatus: map[string]int{},
	}
	for i := range bets {
		result, err := s.SettleBet(ctx, bets[i].ID)
		if err != nil {
			if errors.Is(err, models.ErrLedgerInconsistent) {
				return nil, err
			}
			s.logger.Error(err, map[string]interface{}{
				"bet_id":  bets[i].ID.String(),
				"game_id": gameID.String(),
			})
			continue
		}
		report.Results = append(report.Results, *result)
		if result.Deferred {
			report.BetsDeferred++
			continue
		}
		report.BetsSettled++
		report.CountsByStatus[result.Status]++
	}
	return report, nil
}

// Sweep settles a bounded batch of finished games that still have pending
// bets. Unresolved games are retried on the next pass.
func (s *service) Sweep(ctx context.Context) (*SweepReport, error) {
	gameIDs, err := s.repo.FindSettleableGames(ctx, s.config.SweepBatch)
	if err != nil {
		return nil, fmt.Errorf("failed to find settleable games: %w", err)
	}

	report := &SweepReport{CountsByStatus: map[string]int{}}
	for _, gameID := range gameIDs {
		gameReport, err := s.SettleGame(ctx, gameID)
		if err != nil {
			if errors.Is(err, models.ErrLedgerInconsistent) {
				return nil, err
			}
			s.logger.Error(err, map[string]interface{}{"game_id": gameID.String()})
			continue
		}
		report.GamesProcessed++
		report.BetsSettled += gameReport.BetsSettled
		report.BetsDeferred += gameReport.BetsDeferred
		for status, count := range gameReport.CountsByStatus {
			report.CountsByStatus[status] += count
		}
	}

	s.logger.Info("settlement sweep complete", map[string]interface{}{
		"games_processed": report.GamesProcessed,
		"bets_settled":    report.BetsSettled,
		"bets_deferred":   report.BetsDeferred,
	})
	return report, nil
}

func (s *service) FindSettleableGames(ctx context.Context, limit int) ([]uuid.UUID, error) {
	return s.repo.FindSettleableGames(ctx, limit)
}

func alreadySettledResult(bet *models.Bet) *BetResult {
	payout := decimal.Zero
	if bet.Status == models.BetStatusWon {
		payout = bet.PotentialPayout
	}
	return &BetResult{
		BetID:  bet.ID.String(),
		Status: string(bet.Status),
		Payout: payout,
	}
}
