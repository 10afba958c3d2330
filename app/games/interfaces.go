package games

import (
	"context"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

// Repository defines the interface for game data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateGame(ctx context.Context, game *models.Game) error
	GetGameByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	UpdateGame(ctx context.Context, game *models.Game) error
	ListGames(ctx context.Context, status models.GameStatus, limit, offset int) ([]models.Game, error)
}

// Service defines the interface for game lifecycle management
type Service interface {
	CreateGame(ctx context.Context, req *CreateGameRequest) (*GameResponse, error)
	GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error)
	ListGames(ctx context.Context, status string, limit, offset int) ([]GameResponse, error)
	RecordResult(ctx context.Context, req *ResultRequest) (*GameResponse, error)
	VerifySignature(payload []byte, signature string) error
}

// SettlementTrigger is notified when a game reaches a final result so the
// bets on it can be graded out of band.
type SettlementTrigger interface {
	EnqueueGame(gameID uuid.UUID, priority int)
}

// PriorityWebhook ranks webhook-driven settlement ahead of background
// sweeps in the settlement queue.
const PriorityWebhook = 100
