package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BetType discriminates the bet variants. Settlement dispatches on this tag.
type BetType string

const (
	BetTypeSingle BetType = "single"
	BetTypeParlay BetType = "parlay"
	BetTypeTeaser BetType = "teaser"
)

// BetStatus represents the settlement state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "pending"
	BetStatusWon     BetStatus = "won"
	BetStatusLost    BetStatus = "lost"
	BetStatusPush    BetStatus = "push"
)

// IsTerminal reports whether the status ends the bet lifecycle.
func (s BetStatus) IsTerminal() bool {
	return s == BetStatusWon || s == BetStatusLost || s == BetStatusPush
}

// MarketType identifies the wager market a leg is priced against
type MarketType string

const (
	MarketSpread     MarketType = "spread"
	MarketMoneyline  MarketType = "moneyline"
	MarketTotal      MarketType = "total"
	MarketPlayerProp MarketType = "player_prop"
	MarketGameProp   MarketType = "game_prop"
)

// Selection side constants. Spread and moneyline legs pick a team side,
// total legs pick over or under.
const (
	SelectionHome  = "home"
	SelectionAway  = "away"
	SelectionOver  = "over"
	SelectionUnder = "under"
)

// TeaserPushRule controls how a tied teaser leg resolves the whole bet
type TeaserPushRule string

const (
	TeaserPushRefunds TeaserPushRule = "push"
	TeaserPushLoses   TeaserPushRule = "lose"
	TeaserPushReverts TeaserPushRule = "revert"
)

// BetLeg is one selection inside a bet, with odds and line bound at
// placement and immutable thereafter. Teaser legs store the raw market line;
// the favorable point shift is applied at grading time from TeaserPoints.
type BetLeg struct {
	GameID    uuid.UUID       `json:"game_id"`
	Market    MarketType      `json:"market"`
	Selection string          `json:"selection"`
	Odds      int             `json:"odds"`
	Line      decimal.Decimal `json:"line"`
}

// BetLegs is the JSONB payload of a bet's legs
type BetLegs []BetLeg

// Value implements driver.Valuer interface
func (bl BetLegs) Value() (driver.Value, error) {
	return json.Marshal(bl)
}

// Scan implements sql.Scanner interface
func (bl *BetLegs) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, bl)
	case string:
		return json.Unmarshal([]byte(v), bl)
	}
	return nil
}

// Bet is a placed wager. Odds, line, legs and potential payout are captured
// at placement and never recalculated; settlement writes only Status and
// SettledAt, exactly once.
type Bet struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_bets_user" json:"user_id"`
	BetType         BetType          `gorm:"type:varchar(10);not null" json:"bet_type"`
	Status          BetStatus        `gorm:"type:varchar(10);not null;default:'pending';index:idx_bets_status" json:"status"`
	Stake           decimal.Decimal  `gorm:"type:decimal(20,2);not null;check:stake > 0" json:"stake"`
	Odds            int              `gorm:"not null" json:"odds"`
	PotentialPayout decimal.Decimal  `gorm:"type:decimal(20,2);not null" json:"potential_payout"`
	Legs            BetLegs          `gorm:"type:jsonb;not null" json:"legs"`
	TeaserPoints    decimal.Decimal  `gorm:"type:decimal(4,1);not null;default:0" json:"teaser_points"`
	TeaserPushRule  *TeaserPushRule  `gorm:"type:varchar(10)" json:"teaser_push_rule,omitempty"`
	PlacedAt        time.Time        `gorm:"autoCreateTime" json:"placed_at"`
	SettledAt       *time.Time       `gorm:"type:timestamptz" json:"settled_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Bet model
func (*Bet) TableName() string {
	return "bets"
}

// BeforeCreate sets up the model before creation
func (b *Bet) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the bet is still awaiting settlement
func (b *Bet) IsPending() bool {
	return b.Status == BetStatusPending
}

// IsSettled checks if the bet has reached a terminal status
func (b *Bet) IsSettled() bool {
	return b.Status.IsTerminal() && b.SettledAt != nil
}

// GameIDs returns the distinct games this bet depends on.
func (b *Bet) GameIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(b.Legs))
	ids := make([]uuid.UUID, 0, len(b.Legs))
	for _, leg := range b.Legs {
		if _, ok := seen[leg.GameID]; ok {
			continue
		}
		seen[leg.GameID] = struct{}{}
		ids = append(ids, leg.GameID)
	}
	return ids
}

// Settle moves the bet to a terminal status. The in-memory guard mirrors
// the transactional compare-and-swap in the settlement repository.
func (b *Bet) Settle(status BetStatus, at time.Time) error {
	if !b.IsPending() {
		return ErrAlreadySettled
	}
	if !status.IsTerminal() {
		return ErrInvalidBetType
	}
	b.Status = status
	b.SettledAt = &at
	return nil
}

// Validate performs validation on the bet model
func (b *Bet) Validate() error {
	if b.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	switch b.BetType {
	case BetTypeSingle, BetTypeParlay, BetTypeTeaser:
	default:
		return ErrInvalidBetType
	}
	if b.Stake.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStake
	}
	if len(b.Legs) == 0 {
		return ErrTooFewLegs
	}
	if b.BetType == BetTypeSingle && len(b.Legs) != 1 {
		return ErrTooManyLegs
	}
	if b.BetType == BetTypeTeaser && b.TeaserPushRule == nil {
		return ErrInvalidPushRule
	}
	if b.PotentialPayout.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStake
	}
	return nil
}
