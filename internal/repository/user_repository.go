package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Leganyst/meeting-planner/internal/calendar"
	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/google/uuid"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	UpsertUser(ctx context.Context, telegramID int64, displayName, username, contactPhone string) (*model.User, error)
	UpdateContacts(ctx context.Context, telegramID int64, displayName, username, contactPhone string) (*model.User, error)
	SetBlocked(ctx context.Context, telegramID int64, blocked bool) (*model.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOrganizer — проекция пользователя для проверки перед бронированием.
// Отсутствие пользователя не ошибка: возвращается nil.
func (r *GormUserRepository) FindOrganizer(ctx context.Context, telegramID int64) (*calendar.Organizer, error) {
	u, err := r.FindByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &calendar.Organizer{
		ID:          u.ID,
		TelegramID:  u.TelegramID,
		DisplayName: u.DisplayName,
		Blocked:     u.Blocked,
	}, nil
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	// Keep only digits; ignore formatting characters.
	b := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		c := phone[i]
		if c >= '0' && c <= '9' {
			b = append(b, c)
		}
	}
	return string(b)
}

func (r *GormUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	n := normalizePhone(phone)
	if n == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var u model.User
	// Try normalized first, then raw (in case old data is not normalized).
	q := r.db.WithContext(ctx).Model(&model.User{}).
		Where("contact_phone = ?", n)
	if strings.TrimSpace(phone) != n {
		q = q.Or("contact_phone = ?", strings.TrimSpace(phone))
	}
	if err := q.First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) UpsertUser(ctx context.Context, telegramID int64, displayName, username, contactPhone string) (*model.User, error) {
	contactPhone = normalizePhone(contactPhone)
	var u model.User
	tx := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&u)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			u.TelegramID = telegramID
			u.DisplayName = displayName
			u.ContactPhone = contactPhone
			u.Username = username
			if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
				return nil, err
			}
			return &u, nil
		}
		return nil, tx.Error
	}
	updates := map[string]any{
		"display_name":  displayName,
		"contact_phone": contactPhone,
		"username":      username,
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("telegram_id = ?", telegramID).Updates(updates).Error; err != nil {
		return nil, err
	}
	u.DisplayName = displayName
	u.ContactPhone = contactPhone
	u.Username = username
	return &u, nil
}

func (r *GormUserRepository) UpdateContacts(ctx context.Context, telegramID int64, displayName, username, contactPhone string) (*model.User, error) {
	updates := map[string]any{}
	if displayName != "" {
		updates["display_name"] = displayName
	}
	if contactPhone != "" {
		updates["contact_phone"] = normalizePhone(contactPhone)
	}
	if username != "" {
		updates["username"] = username
	}
	if len(updates) == 0 {
		return r.FindByTelegramID(ctx, telegramID)
	}
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("telegram_id = ?", telegramID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByTelegramID(ctx, telegramID)
}

// SetBlocked — заблокированный пользователь не может бронировать встречи.
func (r *GormUserRepository) SetBlocked(ctx context.Context, telegramID int64, blocked bool) (*model.User, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("telegram_id = ?", telegramID).Update("blocked", blocked)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByTelegramID(ctx, telegramID)
}
