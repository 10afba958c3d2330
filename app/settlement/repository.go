package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetBetByID(ctx context.Context, id uuid.UUID) (*models.Bet, error) {
	var bet models.Bet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRecordNotFound
		}
		return nil, err
	}
	return &bet, nil
}

func (r *repository) SettleBet(ctx context.Context, betID uuid.UUID, status models.BetStatus, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Bet{}).
		Where("id = ? AND status = ?", betID, models.BetStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"settled_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// GetPendingBetsByGame matches on the JSONB legs payload; the containment
// operator uses the GIN index on bets.legs.
func (r *repository) GetPendingBetsByGame(ctx context.Context, gameID uuid.UUID) ([]models.Bet, error) {
	legFilter := fmt.Sprintf(`[{"game_id": %q}]`, gameID.String())

	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BetStatusPending).
		Where("legs @> ?", legFilter).
		Order("placed_at ASC").
		Find(&bets).Error
	return bets, err
}

func (r *repository) GetGamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Game, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*models.Game{}, nil
	}

	var games []models.Game
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&games).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Game, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
	}
	return byID, nil
}

func (r *repository) FindSettleableGames(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		SELECT g.id
		FROM games g
		WHERE g.status = ?
		  AND g.home_score IS NOT NULL
		  AND g.away_score IS NOT NULL
		  AND EXISTS (
			SELECT 1 FROM bets b
			WHERE b.status = ?
			  AND b.legs @> jsonb_build_array(jsonb_build_object('game_id', g.id::text))
		  )
		ORDER BY g.updated_at ASC
		LIMIT ?`,
		models.GameStatusFinished, models.BetStatusPending, limit,
	).Scan(&ids).Error
	return ids, err
}
