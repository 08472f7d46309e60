package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDate      = errors.New("invalid date")
)

// MinutesPerDay — 24:00, верхняя граница дня.
const MinutesPerDay = 24 * 60

// TimeOfDay — время суток в минутах от полуночи.
// Допустимое начало встречи: [0, 1440); 1440 (24:00) допустимо только как конец.
type TimeOfDay int

// NewTimeOfDay собирает время из часов и минут без проверки диапазона.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay разбирает строку "HH:MM" (допускается и "HH:MM:SS", секунды отбрасываются).
// "24:00" принимается как конец дня.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 2 || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
	}

	t := NewTimeOfDay(h, m)
	if t > MinutesPerDay || (t == MinutesPerDay && sec != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return t, nil
}

// MustParseTimeOfDay — для тестов и констант.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Valid — время может быть началом встречи.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Date — календарная дата без времени.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf берёт дату из t в его собственной таймзоне.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate разбирает дату в формате YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// In возвращает полночь даты в loc (UTC при loc == nil).
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At — момент времени tod в день d по настенным часам loc.
// В дни перевода часов это не то же самое, что полночь плюс tod минут.
// 24:00 нормализуется в полночь следующего дня.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, tod.Hour(), tod.Minute(), 0, 0, loc)
}

// Before сравнивает даты хронологически.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
