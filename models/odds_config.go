package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoundingMethod controls how adjusted American prices are rounded
type RoundingMethod string

const (
	RoundingNone      RoundingMethod = "none"
	RoundingNearest5  RoundingMethod = "nearest_5"
	RoundingNearest10 RoundingMethod = "nearest_10"
)

// MarginTable maps market types to margin, in American price points per side
type MarginTable map[MarketType]decimal.Decimal

// Value implements driver.Valuer interface
func (mt MarginTable) Value() (driver.Value, error) {
	return json.Marshal(mt)
}

// Scan implements sql.Scanner interface
func (mt *MarginTable) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, mt)
	case string:
		return json.Unmarshal([]byte(v), mt)
	}
	return nil
}

// LeagueOverrides maps a league to its margin table, consulted before the
// global table
type LeagueOverrides map[string]MarginTable

// Value implements driver.Valuer interface
func (lo LeagueOverrides) Value() (driver.Value, error) {
	return json.Marshal(lo)
}

// Scan implements sql.Scanner interface
func (lo *LeagueOverrides) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, lo)
	case string:
		return json.Unmarshal([]byte(v), lo)
	}
	return nil
}

// OddsConfig is the administrator-controlled margin configuration. Exactly
// one row is active at any time; replacing it deactivates the prior row and
// appends an OddsConfigHistory record in the same transaction.
type OddsConfig struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Margins         MarginTable     `gorm:"type:jsonb;not null" json:"margins"`
	Rounding        RoundingMethod  `gorm:"type:varchar(16);not null;default:'nearest_5'" json:"rounding"`
	LiveMultiplier  decimal.Decimal `gorm:"type:decimal(6,3);not null;default:1.0" json:"live_multiplier"`
	LeagueOverrides LeagueOverrides `gorm:"type:jsonb" json:"league_overrides,omitempty"`
	IsActive        bool            `gorm:"not null;default:false;index" json:"is_active"`
	LastModified    time.Time       `gorm:"autoUpdateTime" json:"last_modified"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for OddsConfig model
func (*OddsConfig) TableName() string {
	return "odds_configs"
}

// BeforeCreate sets up the model before creation
func (c *OddsConfig) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// MarginFor resolves the margin for a market, preferring a league override.
func (c *OddsConfig) MarginFor(market MarketType, league string) decimal.Decimal {
	if override, ok := c.LeagueOverrides[league]; ok {
		if m, ok := override[market]; ok {
			return m
		}
	}
	if m, ok := c.Margins[market]; ok {
		return m
	}
	return decimal.Zero
}

// Validate performs validation on the configuration model
func (c *OddsConfig) Validate() error {
	if len(c.Margins) == 0 {
		return ErrInvalidMargin
	}
	for _, m := range c.Margins {
		if m.LessThan(decimal.Zero) {
			return ErrInvalidMargin
		}
	}
	for _, table := range c.LeagueOverrides {
		for _, m := range table {
			if m.LessThan(decimal.Zero) {
				return ErrInvalidMargin
			}
		}
	}
	switch c.Rounding {
	case RoundingNone, RoundingNearest5, RoundingNearest10:
	default:
		return ErrInvalidRounding
	}
	if c.LiveMultiplier.LessThan(decimal.Zero) {
		return ErrInvalidMargin
	}
	return nil
}

// OddsConfigHistory is an append-only audit record of a configuration
// replacement. Rows are keyed by the new configuration and never edited.
type OddsConfigHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ConfigID       uuid.UUID `gorm:"type:uuid;not null;index" json:"config_id"`
	PreviousValues JSONMap   `gorm:"type:jsonb" json:"previous_values"`
	NewValues      JSONMap   `gorm:"type:jsonb;not null" json:"new_values"`
	ChangedBy      string    `gorm:"type:varchar(64);not null" json:"changed_by"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for OddsConfigHistory model
func (*OddsConfigHistory) TableName() string {
	return "odds_config_history"
}

// BeforeCreate sets up the model before creation
func (h *OddsConfigHistory) BeforeCreate(_ *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// JSONMap is a free-form JSONB column
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return nil
}
