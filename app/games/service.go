package games

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/internal/logger"
	"github.com/nssports/sportsbook/models"
	"gorm.io/gorm"
)

type service struct {
	db      *gorm.DB
	repo    Repository
	trigger SettlementTrigger
	secret  []byte
	logger  logger.Logger
}

// NewService creates a new games service
func NewService(db *gorm.DB, repo Repository, trigger SettlementTrigger,
	webhookSecret string, lg logger.Logger) Service {
	return &service{
		db:      db,
		repo:    repo,
		trigger: trigger,
		secret:  []byte(webhookSecret),
		logger:  lg,
	}
}

func (s *service) CreateGame(ctx context.Context, req *CreateGameRequest) (*GameResponse, error) {
	game := &models.Game{
		Sport:    req.Sport,
		League:   req.League,
		HomeTeam: req.HomeTeam,
		AwayTeam: req.AwayTeam,
		Status:   models.GameStatusScheduled,
		StartsAt: req.StartsAt,
	}
	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return ToGameResponse(game), nil
}

func (s *service) GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error) {
	game, err := s.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToGameResponse(game), nil
}

func (s *service) ListGames(ctx context.Context, status string, limit, offset int) ([]GameResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	games, err := s.repo.ListGames(ctx, models.GameStatus(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	responses := make([]GameResponse, len(games))
	for i := range games {
		responses[i] = *ToGameResponse(&games[i])
	}
	return responses, nil
}

// RecordResult applies a feed update to the game and, once the game holds a
// final result, enqueues it for settlement at webhook priority.
func (s *service) RecordResult(ctx context.Context, req *ResultRequest) (*GameResponse, error) {
	var game *models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		var err error
		game, err = txRepo.GetGameByID(ctx, req.GameID)
		if err != nil {
			return err
		}

		game.Status = models.GameStatus(req.Status)
		if req.HomeScore != nil {
			game.HomeScore = req.HomeScore
		}
		if req.AwayScore != nil {
			game.AwayScore = req.AwayScore
		}
		return txRepo.UpdateGame(ctx, game)
	})
	if err != nil {
		return nil, err
	}

	if game.HasFinalResult() && s.trigger != nil {
		s.trigger.EnqueueGame(game.ID, PriorityWebhook)
		s.logger.Info("game result recorded, settlement queued",
			map[string]interface{}{"game_id": game.ID.String()})
	}
	return ToGameResponse(game), nil
}

// VerifySignature checks the hex HMAC-SHA256 of the raw webhook body.
func (s *service) VerifySignature(payload []byte, signature string) error {
	if len(s.secret) == 0 {
		return models.ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return models.ErrInvalidSignature
	}
	return nil
}
