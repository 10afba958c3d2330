package betting

import (
	"context"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

// Repository defines the interface for bet data access
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateBet(ctx context.Context, bet *models.Bet) error
	GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error)
	GetBetsByUser(ctx context.Context, userID uuid.UUID, status models.BetStatus, limit, offset int) ([]models.Bet, error)
	GetGameByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
}

// Service defines the interface for bet placement
type Service interface {
	PlaceBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*BetResponse, error)
	GetBetByID(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error)
	GetUserBets(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]BetResponse, error)
}
