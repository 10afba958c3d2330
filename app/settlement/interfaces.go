package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

// Repository defines the interface for settlement data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error)
	// SettleBet is a compare-and-swap gated on status still being pending.
	// It reports false, without error, when another worker won the race.
	SettleBet(ctx context.Context, betID uuid.UUID, status models.BetStatus, at time.Time) (bool, error)
	GetPendingBetsByGame(ctx context.Context, gameID uuid.UUID) ([]models.Bet, error)
	GetGamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Game, error)
	// FindSettleableGames lists finished games that still carry at least
	// one pending bet, bounded for batch sweeps.
	FindSettleableGames(ctx context.Context, limit int) ([]uuid.UUID, error)
}

// Service defines the interface for settlement execution
type Service interface {
	SettleBet(ctx context.Context, betID uuid.UUID) (*BetResult, error)
	SettleGame(ctx context.Context, gameID uuid.UUID) (*GameReport, error)
	Sweep(ctx context.Context) (*SweepReport, error)
	FindSettleableGames(ctx context.Context, limit int) ([]uuid.UUID, error)
}
