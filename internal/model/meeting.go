package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/meeting-planner/internal/calendar"
)

// Тип встречи.
type MeetingKind string

const (
	MeetingKindVirtual  MeetingKind = MeetingKind(calendar.KindVirtual)
	MeetingKindPhysical MeetingKind = MeetingKind(calendar.KindPhysical)
)

// Статус встречи — метка без правил переходов.
type MeetingStatus string

const (
	MeetingStatusUpcoming    MeetingStatus = MeetingStatus(calendar.StatusUpcoming)
	MeetingStatusRescheduled MeetingStatus = MeetingStatus(calendar.StatusRescheduled)
	MeetingStatusCanceled    MeetingStatus = MeetingStatus(calendar.StatusCanceled)
	MeetingStatusCompleted   MeetingStatus = MeetingStatus(calendar.StatusCompleted)
)

// Active — встреча ещё состоится (по ней шлём напоминания и считаем конфликты).
func (s MeetingStatus) Active() bool {
	return s == MeetingStatusUpcoming || s == MeetingStatusRescheduled
}

// meetings
type Meeting struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	OrganizerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title      string `gorm:"type:varchar(255);not null"`
	ClientName string `gorm:"type:varchar(255)"`
	Location   string `gorm:"type:text"`
	MeetingURL string `gorm:"type:text"`

	Kind   MeetingKind   `gorm:"type:varchar(16);not null"`
	Status MeetingStatus `gorm:"type:varchar(32);not null;default:'upcoming';index"`

	// Дата без времени и время начала/конца в часовом поясе сервиса.
	Date      datatypes.Date `gorm:"type:date;not null;index"`
	StartTime datatypes.Time `gorm:"type:time;not null"`
	EndTime   datatypes.Time `gorm:"type:time;not null"`

	// Дорога до места встречи и обратно, в минутах.
	TravelMinutes int `gorm:"not null;default:0"`

	// UID события во внешнем календаре; пусто, если зеркалирование не удалось.
	CalendarUID string     `gorm:"type:varchar(255);index"`
	SyncedAt    *time.Time `gorm:"type:timestamp with time zone"`

	CancelReason string     `gorm:"type:text"`
	CanceledAt   *time.Time `gorm:"type:timestamp with time zone"`
	CompletedAt  *time.Time `gorm:"type:timestamp with time zone"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Organizer *User `gorm:"foreignKey:OrganizerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (m *Meeting) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// NewDate переводит календарную дату в колонку date (полночь UTC).
func NewDate(d calendar.Date) datatypes.Date {
	return datatypes.Date(d.In(time.UTC))
}

// NewTime переводит время суток в колонку time.
func NewTime(t calendar.TimeOfDay) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0)
}

// SetSchedule записывает дату и интервал встречи.
func (m *Meeting) SetSchedule(date calendar.Date, start, end calendar.TimeOfDay) {
	m.Date = NewDate(date)
	m.StartTime = NewTime(start)
	m.EndTime = NewTime(end)
}

func (m *Meeting) CalendarDate() calendar.Date {
	return calendar.DateOf(time.Time(m.Date))
}

func (m *Meeting) Start() calendar.TimeOfDay {
	return toTimeOfDay(m.StartTime)
}

func (m *Meeting) End() calendar.TimeOfDay {
	return toTimeOfDay(m.EndTime)
}

func toTimeOfDay(t datatypes.Time) calendar.TimeOfDay {
	return calendar.TimeOfDay(time.Duration(t) / time.Minute)
}

// StartsAt — момент начала встречи в часовом поясе loc.
func (m *Meeting) StartsAt(loc *time.Location) time.Time {
	return m.CalendarDate().At(m.Start(), loc)
}

// ToSlotMeeting — снимок для движка слотов.
func (m *Meeting) ToSlotMeeting() calendar.Meeting {
	return calendar.Meeting{
		ID:            m.ID,
		Date:          m.CalendarDate(),
		Start:         m.Start(),
		End:           m.End(),
		TravelMinutes: m.TravelMinutes,
		Kind:          calendar.Kind(m.Kind),
		Status:        calendar.Status(m.Status),
	}
}

// SlotMeetings конвертирует список встреч, отбрасывая битые записи
// (конец не позже начала) — движок слотов их не принимает.
func SlotMeetings(ms []Meeting) []calendar.Meeting {
	out := make([]calendar.Meeting, 0, len(ms))
	for i := range ms {
		sm := ms[i].ToSlotMeeting()
		if sm.End <= sm.Start {
			continue
		}
		out = append(out, sm)
	}
	return out
}
