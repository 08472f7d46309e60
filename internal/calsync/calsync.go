// Package calsync зеркалирует встречи во внешний календарь.
package calsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Leganyst/meeting-planner/internal/model"
)

// Event — представление встречи во внешнем календаре.
// Start/End покрывают слот целиком, вместе с дорогой.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	URL         string
	Start       time.Time
	End         time.Time
}

type Syncer interface {
	// Upsert создаёт или перезаписывает событие с данным UID.
	Upsert(ctx context.Context, ev Event) error
	Delete(ctx context.Context, uid string) error
}

// Noop — календарь не настроен.
type Noop struct{}

func (Noop) Upsert(context.Context, Event) error { return nil }
func (Noop) Delete(context.Context, string) error { return nil }

// UIDFor — стабильный UID события для встречи.
func UIDFor(m *model.Meeting) string {
	if m.CalendarUID != "" {
		return m.CalendarUID
	}
	return m.ID.String() + "@meeting-planner"
}

// EventFromMeeting строит событие по встрече; loc — часовой пояс,
// в котором заданы дата и время встречи.
func EventFromMeeting(m *model.Meeting, loc *time.Location) (Event, error) {
	slot, err := m.ToSlotMeeting().Slot()
	if err != nil {
		return Event{}, fmt.Errorf("meeting %s: %w", m.ID, err)
	}
	date := m.CalendarDate()

	var desc []string
	if m.ClientName != "" {
		desc = append(desc, "Client: "+m.ClientName)
	}
	desc = append(desc, fmt.Sprintf("Meeting: %s-%s", m.Start(), m.End()))
	if m.TravelMinutes > 0 {
		desc = append(desc, fmt.Sprintf("Travel: %d min each way", m.TravelMinutes))
	}

	location := m.Location
	if m.Kind == model.MeetingKindVirtual && location == "" {
		location = m.MeetingURL
	}

	return Event{
		UID:         UIDFor(m),
		Summary:     m.Title,
		Description: strings.Join(desc, "\n"),
		Location:    location,
		URL:         m.MeetingURL,
		Start:       date.At(slot.SlotStart, loc),
		End:         date.At(slot.SlotEnd, loc),
	}, nil
}
