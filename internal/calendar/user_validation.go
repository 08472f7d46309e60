package calendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Ошибки валидации организатора встречи.
var (
	ErrInvalidTelegramID = errors.New("invalid telegram id")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserBlocked       = errors.New("user is blocked")
)

// Organizer — пользователь, от имени которого бронируется встреча.
type Organizer struct {
	ID          uuid.UUID
	TelegramID  int64
	DisplayName string
	Blocked     bool
}

// OrganizerStore — источник данных о пользователях.
// В сервисе это обёртка над репозиторием, в тестах — мок.
type OrganizerStore interface {
	FindOrganizer(ctx context.Context, telegramID int64) (*Organizer, error)
}

// ValidateOrganizer:
//   - проверяет корректность идентификатора;
//   - достаёт пользователя из хранилища;
//   - отсекает заблокированных.
func ValidateOrganizer(ctx context.Context, store OrganizerStore, telegramID int64) (*Organizer, error) {
	if telegramID <= 0 {
		return nil, ErrInvalidTelegramID
	}

	o, err := store.FindOrganizer(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrUserNotFound
	}
	if o.Blocked {
		return nil, ErrUserBlocked
	}
	return o, nil
}
