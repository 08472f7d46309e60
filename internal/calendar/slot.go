package calendar

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidInterval — длительность <= 0, отрицательная дорога
// или конец встречи за пределами суток.
var ErrInvalidInterval = errors.New("invalid interval")

type Kind string

const (
	KindVirtual  Kind = "virtual"
	KindPhysical Kind = "physical"
)

func (k Kind) Valid() bool {
	return k == KindVirtual || k == KindPhysical
}

// Status — просто метка: любые переходы разрешены вызывающим кодом.
type Status string

const (
	StatusUpcoming    Status = "upcoming"
	StatusRescheduled Status = "rescheduled"
	StatusCanceled    Status = "canceled"
	StatusCompleted   Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusRescheduled, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// Meeting — неизменяемый снимок встречи, с которым работает движок слотов.
// Поля считаются провалидированными на границе (парсинг, репозиторий).
type Meeting struct {
	ID            uuid.UUID
	Date          Date
	Start         TimeOfDay
	End           TimeOfDay
	TravelMinutes int
	Kind          Kind
	Status        Status
}

func (m Meeting) DurationMinutes() int {
	return int(m.End - m.Start)
}

// Slot возвращает окно встречи с учётом дороги.
func (m Meeting) Slot() (Slot, error) {
	return ComputeSlot(m.Start, m.DurationMinutes(), m.TravelMinutes)
}

// Slot — окно встречи, расширенное на время дороги до и после.
// Гарантируется SlotStart <= start < End <= SlotEnd.
type Slot struct {
	SlotStart TimeOfDay
	SlotEnd   TimeOfDay
	End       TimeOfDay
}

// ComputeSlot считает конец встречи и окно с дорогой.
// Окно обрезается границами суток [00:00, 24:00]; сама встреча через полночь
// переходить не может — в этом случае возвращается ErrInvalidInterval.
func ComputeSlot(start TimeOfDay, durationMinutes, travelMinutes int) (Slot, error) {
	if durationMinutes <= 0 {
		return Slot{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInterval, durationMinutes)
	}
	if travelMinutes < 0 {
		return Slot{}, fmt.Errorf("%w: travel must be non-negative, got %d", ErrInvalidInterval, travelMinutes)
	}
	if !start.Valid() {
		return Slot{}, fmt.Errorf("%w: start %d out of day", ErrInvalidInterval, int(start))
	}

	end := start + TimeOfDay(durationMinutes)
	if end > MinutesPerDay {
		return Slot{}, fmt.Errorf("%w: %s + %d min crosses midnight", ErrInvalidInterval, start, durationMinutes)
	}

	slotStart := start - TimeOfDay(travelMinutes)
	if slotStart < 0 {
		slotStart = 0
	}
	slotEnd := end + TimeOfDay(travelMinutes)
	if slotEnd > MinutesPerDay {
		slotEnd = MinutesPerDay
	}

	return Slot{SlotStart: slotStart, SlotEnd: slotEnd, End: end}, nil
}
