package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/meeting-planner/internal/calendar"
	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/google/uuid"
)

type MeetingRepository interface {
	// Создать встречу.
	Create(ctx context.Context, m *model.Meeting) error
	// Найти встречу по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	// Перезаписать встречу целиком (включая нулевые поля).
	Update(ctx context.Context, m *model.Meeting) error
	// Обновить статус встречи.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.MeetingStatus) error
	// Удалить встречу.
	Delete(ctx context.Context, id uuid.UUID) error
	// Встречи одного дня, по времени начала.
	ListByDate(ctx context.Context, date calendar.Date) ([]model.Meeting, error)
	// Встречи за диапазон дат включительно; пустой statuses — любые статусы.
	ListRange(ctx context.Context, from, to calendar.Date, statuses []model.MeetingStatus) ([]model.Meeting, error)
}

type GormMeetingRepository struct {
	db *gorm.DB
}

func NewGormMeetingRepository(db *gorm.DB) *GormMeetingRepository {
	return &GormMeetingRepository{db: db}
}

func (r *GormMeetingRepository) Create(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *GormMeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	var m model.Meeting
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMeetingRepository) Update(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
}

func (r *GormMeetingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.MeetingStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormMeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Meeting{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormMeetingRepository) ListByDate(ctx context.Context, date calendar.Date) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("date = ?", model.NewDate(date)).
		Order("start_time ASC").
		Order("id ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *GormMeetingRepository) ListRange(
	ctx context.Context,
	from, to calendar.Date,
	statuses []model.MeetingStatus,
) ([]model.Meeting, error) {
	var meetings []model.Meeting
	q := r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("date >= ? AND date <= ?", model.NewDate(from), model.NewDate(to))

	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	if err := q.Order("date ASC").Order("start_time ASC").Order("id ASC").Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}
