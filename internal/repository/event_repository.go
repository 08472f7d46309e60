package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/google/uuid"
)

type EventRepository interface {
	Record(ctx context.Context, e *model.MeetingEvent) error
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]model.MeetingEvent, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Record(ctx context.Context, e *model.MeetingEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListByMeeting — журнал встречи в порядке записи.
func (r *GormEventRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]model.MeetingEvent, error) {
	var events []model.MeetingEvent
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
