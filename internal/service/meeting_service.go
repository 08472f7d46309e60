package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	meetingspb "github.com/Leganyst/meeting-planner/internal/api/meetings/v1"
	"github.com/Leganyst/meeting-planner/internal/calendar"
	"github.com/Leganyst/meeting-planner/internal/calsync"
	"github.com/Leganyst/meeting-planner/internal/changefeed"
	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/Leganyst/meeting-planner/internal/repository"
)

// MeetingOptions — параметры сетки дня и часового пояса встреч.
type MeetingOptions struct {
	Location       *time.Location
	GridFrom       calendar.TimeOfDay
	GridTo         calendar.TimeOfDay
	GridStep       int
	LaneMode       calendar.LaneMode
	LaneGapPercent float64
	ParsePolicy    calendar.ParsePolicy
}

func DefaultMeetingOptions() MeetingOptions {
	return MeetingOptions{
		Location:       time.UTC,
		GridFrom:       calendar.NewTimeOfDay(7, 0),
		GridTo:         calendar.NewTimeOfDay(21, 0),
		GridStep:       30,
		LaneMode:       calendar.LaneModeCluster,
		LaneGapPercent: 1,
		ParsePolicy:    calendar.PolicyStrict,
	}
}

type MeetingService struct {
	meetingspb.UnimplementedMeetingServiceServer

	meetings   repository.MeetingRepository
	events     repository.EventRepository
	reminders  repository.ReminderRepository
	organizers calendar.OrganizerStore
	calendar   calsync.Syncer
	feed       changefeed.Feed
	opts       MeetingOptions
	logger     *slog.Logger
	now        func() time.Time
}

func NewMeetingService(
	meetings repository.MeetingRepository,
	events repository.EventRepository,
	reminders repository.ReminderRepository,
	organizers calendar.OrganizerStore,
	syncer calsync.Syncer,
	feed changefeed.Feed,
	opts MeetingOptions,
	logger *slog.Logger,
) *MeetingService {
	if syncer == nil {
		syncer = calsync.Noop{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.GridStep <= 0 {
		opts.GridStep = DefaultMeetingOptions().GridStep
	}
	if feed == nil {
		feed = changefeed.NewLocal(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MeetingService{
		meetings:   meetings,
		events:     events,
		reminders:  reminders,
		organizers: organizers,
		calendar:   syncer,
		feed:       feed,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateMeeting бронирует встречу. Пересечения с другими встречами дня
// не мешают созданию: они возвращаются в ответе.
func (s *MeetingService) CreateMeeting(ctx context.Context, req *meetingspb.CreateMeetingRequest) (*meetingspb.CreateMeetingResponse, error) {
	const op = "create meeting"

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, toStatus(op, invalidf("title is required"))
	}
	kind := calendar.Kind(req.Kind)
	if !kind.Valid() {
		return nil, toStatus(op, invalidf("unknown kind %q", req.Kind))
	}
	date, start, err := parseSchedule(req.Date, req.StartTime)
	if err != nil {
		return nil, toStatus(op, err)
	}
	slot, err := calendar.ComputeSlot(start, int(req.DurationMinutes), int(req.TravelMinutes))
	if err != nil {
		return nil, toStatus(op, err)
	}

	organizer, err := calendar.ValidateOrganizer(ctx, s.organizers, req.OrganizerTelegramId)
	if err != nil {
		return nil, toStatus(op, err)
	}

	m := &model.Meeting{
		OrganizerID:   organizer.ID,
		Title:         title,
		ClientName:    strings.TrimSpace(req.ClientName),
		Location:      strings.TrimSpace(req.Location),
		MeetingURL:    strings.TrimSpace(req.MeetingUrl),
		Kind:          model.MeetingKind(kind),
		Status:        model.MeetingStatusUpcoming,
		TravelMinutes: int(req.TravelMinutes),
	}
	m.SetSchedule(date, start, slot.End)

	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, toStatus(op, err)
	}

	s.mirror(ctx, m)
	s.audit(ctx, m, model.EventTypeMeetingCreated, &organizer.ID, fmt.Sprintf("%s %s-%s", date, start, slot.End))
	s.publish(ctx, changefeed.KindCreated, m.ID, date)

	conflicts, err := s.conflictsOf(ctx, m)
	if err != nil {
		return nil, toStatus(op, err)
	}

	s.logger.Info("meeting created",
		"meeting_id", m.ID,
		"date", date.String(),
		"start", start.String(),
		"conflicts", len(conflicts),
	)
	return &meetingspb.CreateMeetingResponse{Meeting: mapMeeting(m), ConflictsWith: conflicts}, nil
}

// RescheduleMeeting переносит встречу на новые дату и время.
func (s *MeetingService) RescheduleMeeting(ctx context.Context, req *meetingspb.RescheduleMeetingRequest) (*meetingspb.RescheduleMeetingResponse, error) {
	const op = "reschedule meeting"

	m, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, toStatus(op, err)
	}
	date, start, err := parseSchedule(req.Date, req.StartTime)
	if err != nil {
		return nil, toStatus(op, err)
	}
	travel := m.TravelMinutes
	if req.TravelMinutes != nil {
		travel = int(*req.TravelMinutes)
	}
	slot, err := calendar.ComputeSlot(start, int(req.DurationMinutes), travel)
	if err != nil {
		return nil, toStatus(op, err)
	}

	prevDate := m.CalendarDate()
	prev := fmt.Sprintf("%s %s-%s", prevDate, m.Start(), m.End())

	m.SetSchedule(date, start, slot.End)
	m.TravelMinutes = travel
	m.Status = model.MeetingStatusRescheduled
	if err := s.meetings.Update(ctx, m); err != nil {
		return nil, toStatus(op, err)
	}

	s.resetReminders(ctx, m)
	s.mirror(ctx, m)
	s.audit(ctx, m, model.EventTypeMeetingRescheduled, &m.OrganizerID,
		fmt.Sprintf("%s -> %s %s-%s", prev, date, start, slot.End))
	s.publish(ctx, changefeed.KindUpdated, m.ID, date)
	if prevDate != date {
		s.publish(ctx, changefeed.KindUpdated, m.ID, prevDate)
	}

	conflicts, err := s.conflictsOf(ctx, m)
	if err != nil {
		return nil, toStatus(op, err)
	}
	return &meetingspb.RescheduleMeetingResponse{Meeting: mapMeeting(m), ConflictsWith: conflicts}, nil
}

// CancelMeeting отменяет встречу и убирает её из внешнего календаря.
func (s *MeetingService) CancelMeeting(ctx context.Context, req *meetingspb.CancelMeetingRequest) (*meetingspb.CancelMeetingResponse, error) {
	const op = "cancel meeting"

	m, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, toStatus(op, err)
	}

	now := s.now().UTC()
	m.Status = model.MeetingStatusCanceled
	m.CanceledAt = &now
	m.CancelReason = strings.TrimSpace(req.Reason)
	if err := s.meetings.Update(ctx, m); err != nil {
		return nil, toStatus(op, err)
	}

	s.unmirror(ctx, m)
	s.audit(ctx, m, model.EventTypeMeetingCanceled, &m.OrganizerID, m.CancelReason)
	s.publish(ctx, changefeed.KindUpdated, m.ID, m.CalendarDate())

	return &meetingspb.CancelMeetingResponse{Meeting: mapMeeting(m)}, nil
}

// CompleteMeeting отмечает встречу состоявшейся.
func (s *MeetingService) CompleteMeeting(ctx context.Context, req *meetingspb.CompleteMeetingRequest) (*meetingspb.CompleteMeetingResponse, error) {
	const op = "complete meeting"

	m, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, toStatus(op, err)
	}

	now := s.now().UTC()
	m.Status = model.MeetingStatusCompleted
	m.CompletedAt = &now
	if err := s.meetings.Update(ctx, m); err != nil {
		return nil, toStatus(op, err)
	}

	s.audit(ctx, m, model.EventTypeMeetingCompleted, &m.OrganizerID, "")
	s.publish(ctx, changefeed.KindUpdated, m.ID, m.CalendarDate())

	return &meetingspb.CompleteMeetingResponse{Meeting: mapMeeting(m)}, nil
}

// SetStatus ставит произвольный статус: переходы между статусами не ограничены.
// Внешний календарь догоняет статус: отмена удаляет событие, возврат из отмены создаёт заново.
func (s *MeetingService) SetStatus(ctx context.Context, req *meetingspb.SetStatusRequest) (*meetingspb.SetStatusResponse, error) {
	const op = "set status"

	st := calendar.Status(req.Status)
	if !st.Valid() {
		return nil, toStatus(op, invalidf("unknown status %q", req.Status))
	}
	m, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, toStatus(op, err)
	}

	prev := m.Status
	next := model.MeetingStatus(st)
	if err := s.meetings.UpdateStatus(ctx, m.ID, next); err != nil {
		return nil, toStatus(op, err)
	}
	m.Status = next

	switch {
	case next == model.MeetingStatusCanceled && prev != model.MeetingStatusCanceled:
		s.unmirror(ctx, m)
	case prev == model.MeetingStatusCanceled && next.Active():
		s.resetReminders(ctx, m)
		s.mirror(ctx, m)
	}

	s.audit(ctx, m, model.EventTypeMeetingStatusChanged, &m.OrganizerID, fmt.Sprintf("%s -> %s", prev, next))
	s.publish(ctx, changefeed.KindUpdated, m.ID, m.CalendarDate())

	return &meetingspb.SetStatusResponse{Meeting: mapMeeting(m)}, nil
}

// DeleteMeeting удаляет встречу насовсем. Событие календаря удаляется заранее,
// по возможности: его ошибка удаление не останавливает.
func (s *MeetingService) DeleteMeeting(ctx context.Context, req *meetingspb.DeleteMeetingRequest) (*meetingspb.DeleteMeetingResponse, error) {
	const op = "delete meeting"

	m, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, toStatus(op, err)
	}

	s.unmirror(ctx, m)
	if err := s.meetings.Delete(ctx, m.ID); err != nil {
		return nil, toStatus(op, err)
	}

	s.audit(ctx, m, model.EventTypeMeetingDeleted, &m.OrganizerID, m.Title)
	s.publish(ctx, changefeed.KindDeleted, m.ID, m.CalendarDate())

	return &meetingspb.DeleteMeetingResponse{}, nil
}

func (s *MeetingService) GetMeeting(ctx context.Context, req *meetingspb.GetMeetingRequest) (*meetingspb.GetMeetingResponse, error) {
	m, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, toStatus("get meeting", err)
	}
	return &meetingspb.GetMeetingResponse{Meeting: mapMeeting(m)}, nil
}

// ListMeetings — встречи за диапазон дат включительно, по дате и времени начала.
func (s *MeetingService) ListMeetings(ctx context.Context, req *meetingspb.ListMeetingsRequest) (*meetingspb.ListMeetingsResponse, error) {
	const op = "list meetings"

	from, err := calendar.ParseDate(req.From)
	if err != nil {
		return nil, toStatus(op, err)
	}
	to, err := calendar.ParseDate(req.To)
	if err != nil {
		return nil, toStatus(op, err)
	}
	if to.Before(from) {
		return nil, toStatus(op, invalidf("to must not be before from"))
	}

	statuses := make([]model.MeetingStatus, 0, len(req.Statuses))
	for _, raw := range req.Statuses {
		st := calendar.Status(raw)
		if !st.Valid() {
			return nil, toStatus(op, invalidf("unknown status %q", raw))
		}
		statuses = append(statuses, model.MeetingStatus(st))
	}

	meetings, err := s.meetings.ListRange(ctx, from, to, statuses)
	if err != nil {
		return nil, toStatus(op, err)
	}

	page := calendar.Paginate(meetings, int(req.Page), int(req.PageSize))
	resp := &meetingspb.ListMeetingsResponse{
		Meetings:   make([]*meetingspb.Meeting, 0, len(page.Items)),
		Page:       int32(page.Page),
		PageSize:   int32(page.PageSize),
		TotalCount: int32(page.Total),
		HasNext:    page.HasNext,
	}
	for i := range page.Items {
		resp.Meetings = append(resp.Meetings, mapMeeting(&page.Items[i]))
	}
	return resp, nil
}

// DayView собирает раскладку дня: конфликты, дорожки и положение на сетке.
// Отменённые встречи возвращаются в списке, но в конфликтах и раскладке не участвуют.
func (s *MeetingService) DayView(ctx context.Context, req *meetingspb.DayViewRequest) (*meetingspb.DayViewResponse, error) {
	const op = "day view"

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, toStatus(op, err)
	}
	mode := s.opts.LaneMode
	if req.LaneMode != "" {
		if mode, err = calendar.ParseLaneMode(req.LaneMode); err != nil {
			return nil, toStatus(op, invalidf("%v", err))
		}
	}

	meetings, err := s.meetings.ListByDate(ctx, date)
	if err != nil {
		return nil, toStatus(op, err)
	}

	grid, err := calendar.BuildGrid(s.opts.GridFrom, s.opts.GridTo, s.opts.GridStep)
	if err != nil {
		return nil, toStatus(op, err)
	}

	var active []model.Meeting
	for _, m := range meetings {
		if m.Status != model.MeetingStatusCanceled {
			active = append(active, m)
		}
	}
	day := model.SlotMeetings(active)
	conflicts := calendar.FindConflicts(day)
	lanes := calendar.AssignLanes(day, date, mode)

	resp := &meetingspb.DayViewResponse{
		Date:         date.String(),
		Meetings:     make([]*meetingspb.Meeting, 0, len(meetings)),
		HasConflicts: len(conflicts) > 0,
		Grid:         make([]string, 0, len(grid)),
		Placements:   make([]*meetingspb.Placement, 0, len(active)),
	}
	for i := range meetings {
		resp.Meetings = append(resp.Meetings, mapMeeting(&meetings[i]))
	}
	for _, p := range conflicts {
		resp.Conflicts = append(resp.Conflicts, &meetingspb.ConflictPair{A: p.A.String(), B: p.B.String()})
	}
	for _, g := range grid {
		resp.Grid = append(resp.Grid, g.String())
	}

	for i := range active {
		m := &active[i]
		lane, ok := lanes[m.ID]
		if !ok {
			// битая запись, отброшенная движком
			continue
		}
		placement, err := calendar.Place(m.StartTime.String(), m.EndTime.String(), grid, s.opts.GridStep, s.opts.ParsePolicy)
		if err != nil {
			return nil, toStatus(op, fmt.Errorf("meeting %s: %w", m.ID, err))
		}
		left, width := calendar.LaneGeometry(lane, s.opts.LaneGapPercent)
		resp.Placements = append(resp.Placements, &meetingspb.Placement{
			MeetingId: m.ID.String(),
			Lane:      int32(lane.Lane),
			LaneCount: int32(lane.LaneCount),
			Left:      left,
			Width:     width,
			SlotIndex: int32(placement.Index),
			SlotSpan:  int32(placement.Span),
		})
	}
	return resp, nil
}

// ComputeSlot считает окно встречи без обращения к хранилищу.
func (s *MeetingService) ComputeSlot(_ context.Context, req *meetingspb.ComputeSlotRequest) (*meetingspb.ComputeSlotResponse, error) {
	const op = "compute slot"

	start, err := calendar.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, toStatus(op, err)
	}
	slot, err := calendar.ComputeSlot(start, int(req.DurationMinutes), int(req.TravelMinutes))
	if err != nil {
		return nil, toStatus(op, err)
	}
	return &meetingspb.ComputeSlotResponse{
		SlotStart: slot.SlotStart.String(),
		SlotEnd:   slot.SlotEnd.String(),
		EndTime:   slot.End.String(),
	}, nil
}

// FreeSlots — начала на сетке дня, где встреча с дорогой не задевает чужие окна.
func (s *MeetingService) FreeSlots(ctx context.Context, req *meetingspb.FreeSlotsRequest) (*meetingspb.FreeSlotsResponse, error) {
	const op = "free slots"

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, toStatus(op, err)
	}
	grid, err := calendar.BuildGrid(s.opts.GridFrom, s.opts.GridTo, s.opts.GridStep)
	if err != nil {
		return nil, toStatus(op, err)
	}
	meetings, err := s.meetings.ListByDate(ctx, date)
	if err != nil {
		return nil, toStatus(op, err)
	}

	free, err := calendar.FreeSlots(model.SlotMeetings(meetings), date, grid, int(req.DurationMinutes), int(req.TravelMinutes))
	if err != nil {
		return nil, toStatus(op, err)
	}

	page := calendar.Paginate(free, int(req.Page), int(req.PageSize))
	resp := &meetingspb.FreeSlotsResponse{
		Slots:      make([]*meetingspb.FreeSlot, 0, len(page.Items)),
		TotalCount: int32(page.Total),
		HasNext:    page.HasNext,
	}
	for _, c := range page.Items {
		resp.Slots = append(resp.Slots, &meetingspb.FreeSlot{
			StartTime: c.Start.String(),
			EndTime:   c.End.String(),
			SlotStart: c.SlotStart.String(),
			SlotEnd:   c.SlotEnd.String(),
		})
	}
	return resp, nil
}

// Watch отдаёт сигналы об изменениях, пока клиент не отключится.
func (s *MeetingService) Watch(_ *meetingspb.WatchRequest, stream grpc.ServerStreamingServer[meetingspb.ChangeEvent]) error {
	ctx := stream.Context()
	changes, err := s.feed.Subscribe(ctx)
	if err != nil {
		return toStatus("watch", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			if err := stream.Send(&meetingspb.ChangeEvent{
				Kind:      string(c.Kind),
				MeetingId: c.MeetingID.String(),
				Date:      c.Date,
			}); err != nil {
				return err
			}
		}
	}
}

func parseSchedule(rawDate, rawStart string) (calendar.Date, calendar.TimeOfDay, error) {
	date, err := calendar.ParseDate(rawDate)
	if err != nil {
		return calendar.Date{}, 0, err
	}
	start, err := calendar.ParseTimeOfDay(rawStart)
	if err != nil {
		return calendar.Date{}, 0, err
	}
	if !start.Valid() {
		return calendar.Date{}, 0, fmt.Errorf("%w: start %s is outside the day", calendar.ErrInvalidTimeOfDay, start)
	}
	return date, start, nil
}

func (s *MeetingService) load(ctx context.Context, rawID string) (*model.Meeting, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, invalidf("invalid meeting id %q", rawID)
	}
	m, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// conflictsOf — ID неотменённых встреч того же дня, пересекающихся с m.
func (s *MeetingService) conflictsOf(ctx context.Context, m *model.Meeting) ([]string, error) {
	if m.Status == model.MeetingStatusCanceled {
		return nil, nil
	}
	sameDay, err := s.meetings.ListByDate(ctx, m.CalendarDate())
	if err != nil {
		return nil, err
	}
	var others []model.Meeting
	for _, o := range sameDay {
		if o.Status != model.MeetingStatusCanceled {
			others = append(others, o)
		}
	}
	var ids []string
	for _, o := range calendar.ConflictsWith(m.ToSlotMeeting(), model.SlotMeetings(others)) {
		ids = append(ids, o.ID.String())
	}
	return ids, nil
}

// mirror создаёт или обновляет событие во внешнем календаре.
// Ошибка синхронизации не ломает сценарий: пишется в лог и в журнал встречи.
func (s *MeetingService) mirror(ctx context.Context, m *model.Meeting) {
	ev, err := calsync.EventFromMeeting(m, s.opts.Location)
	if err == nil {
		err = s.calendar.Upsert(ctx, ev)
	}
	if err != nil {
		s.syncFailed(ctx, m, "upsert", err)
		return
	}

	now := s.now().UTC()
	m.CalendarUID = ev.UID
	m.SyncedAt = &now
	if err := s.meetings.Update(ctx, m); err != nil {
		s.logger.Error("store calendar uid failed", "meeting_id", m.ID, "err", err)
	}
}

func (s *MeetingService) unmirror(ctx context.Context, m *model.Meeting) {
	if m.CalendarUID == "" {
		return
	}
	if err := s.calendar.Delete(ctx, m.CalendarUID); err != nil {
		s.syncFailed(ctx, m, "delete", err)
	}
}

// resetReminders сбрасывает отметки об отправленных напоминаниях.
// Ошибка не отменяет изменение встречи: она только пишется в лог.
func (s *MeetingService) resetReminders(ctx context.Context, m *model.Meeting) {
	if s.reminders == nil {
		return
	}
	if err := s.reminders.ResetMeeting(ctx, m.ID); err != nil {
		s.logger.Error("reset reminders failed", "meeting_id", m.ID, "err", err)
	}
}

func (s *MeetingService) syncFailed(ctx context.Context, m *model.Meeting, action string, err error) {
	s.logger.Warn("calendar sync failed",
		"meeting_id", m.ID,
		"action", action,
		"err", err,
	)
	s.audit(ctx, m, model.EventTypeCalendarSyncFailed, nil, fmt.Sprintf("%s: %v", action, err))
}

func (s *MeetingService) audit(ctx context.Context, m *model.Meeting, t model.EventType, userID *uuid.UUID, details string) {
	if s.events == nil {
		return
	}
	e := &model.MeetingEvent{
		EventType: t,
		UserID:    userID,
		MeetingID: m.ID,
		Details:   details,
	}
	if err := s.events.Record(ctx, e); err != nil {
		s.logger.Error("audit record failed", "meeting_id", m.ID, "event", t, "err", err)
	}
}

func (s *MeetingService) publish(ctx context.Context, kind changefeed.Kind, id uuid.UUID, date calendar.Date) {
	err := s.feed.Publish(ctx, changefeed.Change{Kind: kind, MeetingID: id, Date: date.String()})
	if err != nil && !errors.Is(err, changefeed.ErrClosed) {
		s.logger.Warn("publish change failed", "meeting_id", id, "err", err)
	}
}

func mapMeeting(m *model.Meeting) *meetingspb.Meeting {
	if m == nil {
		return nil
	}
	out := &meetingspb.Meeting{
		Id:            m.ID.String(),
		OrganizerId:   m.OrganizerID.String(),
		Title:         m.Title,
		ClientName:    m.ClientName,
		Location:      m.Location,
		MeetingUrl:    m.MeetingURL,
		Kind:          string(m.Kind),
		Status:        string(m.Status),
		Date:          m.CalendarDate().String(),
		StartTime:     m.Start().String(),
		EndTime:       m.End().String(),
		TravelMinutes: int32(m.TravelMinutes),
		CalendarUid:   m.CalendarUID,
		CancelReason:  m.CancelReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if slot, err := m.ToSlotMeeting().Slot(); err == nil {
		out.SlotStart = slot.SlotStart.String()
		out.SlotEnd = slot.SlotEnd.String()
	}
	return out
}
