package games

import (
	"time"

	"github.com/google/uuid"
	"github.com/nssports/sportsbook/models"
)

// CreateGameRequest registers an upcoming game
type CreateGameRequest struct {
	Sport    string    `json:"sport" binding:"required"`
	League   string    `json:"league" binding:"required"`
	HomeTeam string    `json:"home_team" binding:"required"`
	AwayTeam string    `json:"away_team" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
}

// ResultRequest carries a status or score update from the result feed.
// Scores may arrive before the final status; settlement only fires once
// the game is finished with both scores present.
type ResultRequest struct {
	GameID    uuid.UUID `json:"game_id" binding:"required"`
	Status    string    `json:"status" binding:"required,oneof=scheduled live finished"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
}

// GameResponse represents a game
type GameResponse struct {
	ID        string    `json:"id"`
	Sport     string    `json:"sport"`
	League    string    `json:"league"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Status    string    `json:"status"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
	StartsAt  time.Time `json:"starts_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToGameResponse converts a game model to its response
func ToGameResponse(game *models.Game) *GameResponse {
	return &GameResponse{
		ID:        game.ID.String(),
		Sport:     game.Sport,
		League:    game.League,
		HomeTeam:  game.HomeTeam,
		AwayTeam:  game.AwayTeam,
		Status:    string(game.Status),
		HomeScore: game.HomeScore,
		AwayScore: game.AwayScore,
		StartsAt:  game.StartsAt,
		UpdatedAt: game.UpdatedAt,
	}
}
