package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns one Account and many Bets. Identity and authorization live
// outside this core; the row exists so ledger and bet scoping have a stable
// foreign key.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Account *Account `gorm:"foreignKey:UserID" json:"account,omitempty"`
	Bets    []Bet    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for User model
func (*User) TableName() string {
	return "users"
}

// BeforeCreate sets up the model before creation
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
