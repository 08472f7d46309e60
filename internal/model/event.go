package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Тип события аудита встречи.
type EventType string

const (
	EventTypeMeetingCreated       EventType = "meeting_created"
	EventTypeMeetingRescheduled   EventType = "meeting_rescheduled"
	EventTypeMeetingCanceled      EventType = "meeting_canceled"
	EventTypeMeetingCompleted     EventType = "meeting_completed"
	EventTypeMeetingStatusChanged EventType = "meeting_status_changed"
	EventTypeMeetingDeleted       EventType = "meeting_deleted"
	EventTypeCalendarSyncFailed   EventType = "calendar_sync_failed"
)

// meeting_events — журнал изменений встреч.
// MeetingID не внешний ключ: записи переживают удаление встречи.
type MeetingEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	MeetingID uuid.UUID  `gorm:"type:uuid;not null;index"`

	Details string `gorm:"type:text"`
}

func (e *MeetingEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
