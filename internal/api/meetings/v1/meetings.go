// Package meetingsv1 описывает API сервиса встреч (meetings.v1.MeetingService).
// Сообщения передаются JSON-кодеком пакета api.
package meetingsv1

import "time"

type Meeting struct {
	Id            string    `json:"id"`
	OrganizerId   string    `json:"organizer_id"`
	Title         string    `json:"title"`
	ClientName    string    `json:"client_name,omitempty"`
	Location      string    `json:"location,omitempty"`
	MeetingUrl    string    `json:"meeting_url,omitempty"`
	Kind          string    `json:"kind"`
	Status        string    `json:"status"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	TravelMinutes int32     `json:"travel_minutes"`
	SlotStart     string    `json:"slot_start"`
	SlotEnd       string    `json:"slot_end"`
	CalendarUid   string    `json:"calendar_uid,omitempty"`
	CancelReason  string    `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateMeetingRequest struct {
	OrganizerTelegramId int64  `json:"organizer_telegram_id"`
	Title               string `json:"title"`
	ClientName          string `json:"client_name,omitempty"`
	Location            string `json:"location,omitempty"`
	MeetingUrl          string `json:"meeting_url,omitempty"`
	Kind                string `json:"kind"`
	Date                string `json:"date"`
	StartTime           string `json:"start_time"`
	DurationMinutes     int32  `json:"duration_minutes"`
	TravelMinutes       int32  `json:"travel_minutes"`
}

type CreateMeetingResponse struct {
	Meeting *Meeting `json:"meeting"`
	// ID встреч того же дня, пересекающихся с созданной.
	ConflictsWith []string `json:"conflicts_with,omitempty"`
}

type RescheduleMeetingRequest struct {
	Id              string `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int32  `json:"duration_minutes"`
	// nil — оставить прежнюю дорогу.
	TravelMinutes *int32 `json:"travel_minutes,omitempty"`
}

type RescheduleMeetingResponse struct {
	Meeting       *Meeting `json:"meeting"`
	ConflictsWith []string `json:"conflicts_with,omitempty"`
}

type CancelMeetingRequest struct {
	Id     string `json:"id"`
	Reason string `json:"reason,omitempty"`
}

type CancelMeetingResponse struct {
	Meeting *Meeting `json:"meeting"`
}

type CompleteMeetingRequest struct {
	Id string `json:"id"`
}

type CompleteMeetingResponse struct {
	Meeting *Meeting `json:"meeting"`
}

type SetStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type SetStatusResponse struct {
	Meeting *Meeting `json:"meeting"`
}

type DeleteMeetingRequest struct {
	Id string `json:"id"`
}

type DeleteMeetingResponse struct{}

type GetMeetingRequest struct {
	Id string `json:"id"`
}

type GetMeetingResponse struct {
	Meeting *Meeting `json:"meeting"`
}

type ListMeetingsRequest struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Statuses []string `json:"statuses,omitempty"`
	Page     int32    `json:"page,omitempty"`
	PageSize int32    `json:"page_size,omitempty"`
}

type ListMeetingsResponse struct {
	Meetings   []*Meeting `json:"meetings"`
	Page       int32      `json:"page"`
	PageSize   int32      `json:"page_size"`
	TotalCount int32      `json:"total_count"`
	HasNext    bool       `json:"has_next"`
}

type DayViewRequest struct {
	Date string `json:"date"`
	// cluster (по умолчанию) или neighborhood.
	LaneMode string `json:"lane_mode,omitempty"`
}

type ConflictPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Placement — положение встречи на сетке дня.
type Placement struct {
	MeetingId string  `json:"meeting_id"`
	Lane      int32   `json:"lane"`
	LaneCount int32   `json:"lane_count"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	SlotIndex int32   `json:"slot_index"`
	SlotSpan  int32   `json:"slot_span"`
}

type DayViewResponse struct {
	Date         string          `json:"date"`
	Meetings     []*Meeting      `json:"meetings"`
	Conflicts    []*ConflictPair `json:"conflicts,omitempty"`
	HasConflicts bool            `json:"has_conflicts"`
	Grid         []string        `json:"grid"`
	Placements   []*Placement    `json:"placements"`
}

type ComputeSlotRequest struct {
	StartTime       string `json:"start_time"`
	DurationMinutes int32  `json:"duration_minutes"`
	TravelMinutes   int32  `json:"travel_minutes"`
}

type ComputeSlotResponse struct {
	SlotStart string `json:"slot_start"`
	SlotEnd   string `json:"slot_end"`
	EndTime   string `json:"end_time"`
}

// FreeSlotsRequest — поиск свободного времени на сетке дня.
type FreeSlotsRequest struct {
	Date            string `json:"date"`
	DurationMinutes int32  `json:"duration_minutes"`
	TravelMinutes   int32  `json:"travel_minutes"`
	Page            int32  `json:"page,omitempty"`
	PageSize        int32  `json:"page_size,omitempty"`
}

type FreeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	SlotStart string `json:"slot_start"`
	SlotEnd   string `json:"slot_end"`
}

type FreeSlotsResponse struct {
	Slots      []*FreeSlot `json:"slots"`
	TotalCount int32       `json:"total_count"`
	HasNext    bool        `json:"has_next"`
}

type WatchRequest struct{}

type ChangeEvent struct {
	Kind      string `json:"kind"`
	MeetingId string `json:"meeting_id"`
	Date      string `json:"date"`
}
