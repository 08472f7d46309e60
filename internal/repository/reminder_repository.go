package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/google/uuid"
)

type ReminderRepository interface {
	// Было ли уже отправлено (или отправляется) напоминание с этим смещением.
	Delivered(ctx context.Context, meetingID uuid.UUID, offsetMinutes int) (bool, error)
	// Занять отправку до вызова каналов. false — её уже занял другой инстанс.
	Claim(ctx context.Context, d *model.ReminderDelivery) (bool, error)
	// Записать каналы, через которые напоминание ушло.
	Confirm(ctx context.Context, id int64, channels string, sentAt time.Time) error
	// Снять занятую отправку, если ни один канал не сработал.
	Release(ctx context.Context, id int64) error
	// Забыть все отправки встречи: после переноса или возврата из отмены
	// напоминания считаются заново.
	ResetMeeting(ctx context.Context, meetingID uuid.UUID) error
}

type GormReminderRepository struct {
	db *gorm.DB
}

func NewGormReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

func (r *GormReminderRepository) Delivered(ctx context.Context, meetingID uuid.UUID, offsetMinutes int) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.ReminderDelivery{}).
		Where("meeting_id = ? AND offset_minutes = ?", meetingID, offsetMinutes).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormReminderRepository) Claim(ctx context.Context, d *model.ReminderDelivery) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "offset_minutes"}},
			DoNothing: true,
		}).
		Create(d)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormReminderRepository) Confirm(ctx context.Context, id int64, channels string, sentAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ReminderDelivery{}).
		Where("id = ?", id).
		Updates(map[string]any{"channels": channels, "sent_at": sentAt}).Error
}

func (r *GormReminderRepository) Release(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ReminderDelivery{}, id).Error
}

func (r *GormReminderRepository) ResetMeeting(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&model.ReminderDelivery{}).Error
}
