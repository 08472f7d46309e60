package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// users — организаторы встреч. Идентифицируются по Telegram ID,
// туда же уходят напоминания.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	TelegramID   int64  `gorm:"not null;uniqueIndex"`
	DisplayName  string `gorm:"type:varchar(255)"`
	// username из Telegram, без @
	Username     string `gorm:"type:varchar(255)"`
	ContactPhone string `gorm:"type:varchar(32)"`

	Blocked bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Meetings []Meeting `gorm:"foreignKey:OrganizerID"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
