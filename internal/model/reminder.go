package model

import (
	"time"

	"github.com/google/uuid"
)

// reminder_deliveries — отметки об отправленных напоминаниях.
// Пара (meeting_id, offset_minutes) уникальна: одно напоминание на смещение.
// Строка вставляется до отправки и служит захватом; Channels заполняются после.
// При переносе встречи и возврате из отмены строки встречи удаляются.
type ReminderDelivery struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	MeetingID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reminder_meeting_offset"`
	OffsetMinutes int       `gorm:"not null;uniqueIndex:idx_reminder_meeting_offset"`

	Channels string    `gorm:"type:varchar(255)"`
	SentAt   time.Time `gorm:"not null"`
}
