package betting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/app/ledger"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

type service struct {
	db         *gorm.DB
	repo       Repository
	ledgerRepo ledger.Repository
	ledgerSvc  ledger.Service
	composer   *Composer
	config     *Config
}

// NewService creates a new bet placement service
func NewService(db *gorm.DB, repo Repository, ledgerRepo ledger.Repository,
	ledgerSvc ledger.Service, composer *Composer, config *Config) Service {
	return &service{
		db:         db,
		repo:       repo,
		ledgerRepo: ledgerRepo,
		ledgerSvc:  ledgerSvc,
		composer:   composer,
		config:     config,
	}
}

// PlaceBet validates, prices and persists a bet. The stake is not debited;
// it becomes committed risk, and available funds shrink accordingly.
func (s *service) PlaceBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*BetResponse, error) {
	if err := s.composer.ValidateStake(req.Stake); err != nil {
		return nil, err
	}

	betType := models.BetType(req.BetType)
	legs := req.ToLegs()
	if err := s.composer.ValidateLegs(betType, legs); err != nil {
		return nil, err
	}

	sport, err := s.checkGames(ctx, legs)
	if err != nil {
		return nil, err
	}

	pricing, rule, err := s.price(betType, req, legs, sport)
	if err != nil {
		return nil, err
	}

	bet := &models.Bet{
		UserID:          userID,
		BetType:         betType,
		Status:          models.BetStatusPending,
		Stake:           req.Stake,
		Odds:            pricing.Odds,
		PotentialPayout: pricing.PotentialPayout.Round(2),
		Legs:            legs,
		TeaserPoints:    pricing.TeaserPoints,
		TeaserPushRule:  rule,
	}
	if err := bet.Validate(); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txLedger := s.ledgerRepo.WithTx(tx)

		// Lock the account so concurrent placements serialize on the
		// available-funds check.
		account, err := txLedger.GetAccountForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}
		risk, err := txLedger.SumPendingStakes(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to compute risk: %w", err)
		}
		if account.Available(risk).LessThan(req.Stake) {
			return models.ErrInsufficientFunds
		}

		return s.repo.WithTx(tx).CreateBet(ctx, bet)
	})
	if err != nil {
		return nil, err
	}

	s.ledgerSvc.InvalidateRisk(ctx, userID)
	return ToBetResponse(bet), nil
}

func (s *service) GetBetByID(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	bet, err := s.repo.GetBetByID(ctx, betID)
	if err != nil {
		return nil, err
	}
	if bet.UserID != userID {
		return nil, models.ErrRecordNotFound
	}
	return ToBetResponse(bet), nil
}

func (s *service) GetUserBets(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]BetResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	bets, err := s.repo.GetBetsByUser(ctx, userID, models.BetStatus(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}

	responses := make([]BetResponse, len(bets))
	for i := range bets {
		responses[i] = *ToBetResponse(&bets[i])
	}
	return responses, nil
}

// checkGames verifies every referenced game exists and is still open for
// this bet, and returns the common sport for teaser pricing.
func (s *service) checkGames(ctx context.Context, legs models.BetLegs) (string, error) {
	now := time.Now()
	sport := ""
	for _, leg := range legs {
		game, err := s.repo.GetGameByID(ctx, leg.GameID)
		if err != nil {
			return "", models.ErrInvalidGameID
		}
		if game.Status == models.GameStatusFinished {
			return "", models.ErrGameAlreadyStarted
		}
		if game.HasStarted(now) && !s.config.AllowLiveBetting {
			return "", models.ErrGameAlreadyStarted
		}
		if sport == "" {
			sport = game.Sport
		} else if sport != game.Sport {
			sport = "mixed"
		}
	}
	return sport, nil
}

func (s *service) price(betType models.BetType, req *PlaceBetRequest,
	legs models.BetLegs, sport string) (*Pricing, *models.TeaserPushRule, error) {
	switch betType {
	case models.BetTypeSingle:
		pricing, err := s.composer.PriceSingle(req.Stake, legs[0].Odds)
		return pricing, nil, err

	case models.BetTypeParlay:
		pricing, err := s.composer.PriceParlay(req.Stake, legs)
		return pricing, nil, err

	case models.BetTypeTeaser:
		if req.TeaserPushRule == nil {
			return nil, nil, models.ErrInvalidPushRule
		}
		rule := models.TeaserPushRule(*req.TeaserPushRule)
		// The revert rule's recursive semantics are not pinned down;
		// refuse it rather than guess at settlement time.
		if rule == models.TeaserPushReverts {
			return nil, nil, fmt.Errorf("%w: revert is not offered", models.ErrInvalidPushRule)
		}
		pricing, err := s.composer.PriceTeaser(req.Stake, sport, len(legs), rule)
		if err != nil {
			return nil, nil, err
		}
		return pricing, &rule, nil

	default:
		return nil, nil, models.ErrInvalidBetType
	}
}
