package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameStatus represents the lifecycle of an external game
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusLive      GameStatus = "live"
	GameStatusFinished  GameStatus = "finished"
)

// Game is the persisted snapshot of an external event. The core never
// mutates games except through the verified result feed; settlement treats
// them as read-only.
type Game struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Sport     string     `gorm:"type:varchar(32);not null" json:"sport"`
	League    string     `gorm:"type:varchar(32);not null;index" json:"league"`
	HomeTeam  string     `gorm:"type:varchar(64);not null" json:"home_team"`
	AwayTeam  string     `gorm:"type:varchar(64);not null" json:"away_team"`
	Status    GameStatus `gorm:"type:varchar(16);not null;default:'scheduled';index" json:"status"`
	HomeScore *int       `gorm:"type:int" json:"home_score"`
	AwayScore *int       `gorm:"type:int" json:"away_score"`
	StartsAt  time.Time  `gorm:"type:timestamptz;not null" json:"starts_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Game model
func (*Game) TableName() string {
	return "games"
}

// BeforeCreate sets up the model before creation
func (g *Game) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// HasStarted reports whether the game is past its scheduled start.
func (g *Game) HasStarted(now time.Time) bool {
	return g.Status != GameStatusScheduled || !now.Before(g.StartsAt)
}

// HasFinalResult reports whether the game can drive settlement: finished
// with both scores present. A finished game with missing scores is a wait
// state, not an error.
func (g *Game) HasFinalResult() bool {
	return g.Status == GameStatusFinished && g.HomeScore != nil && g.AwayScore != nil
}
