package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	identitypb "github.com/Leganyst/meeting-planner/internal/api/identity/v1"
	meetingspb "github.com/Leganyst/meeting-planner/internal/api/meetings/v1"
	"github.com/Leganyst/meeting-planner/internal/calsync"
	"github.com/Leganyst/meeting-planner/internal/changefeed"
	"github.com/Leganyst/meeting-planner/internal/db"
	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/Leganyst/meeting-planner/internal/repository"
	"github.com/google/uuid"
)

type fakeCalendar struct {
	mu      sync.Mutex
	err     error
	upserts []calsync.Event
	deletes []string
}

func (f *fakeCalendar) Upsert(_ context.Context, ev calsync.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, ev)
	return nil
}

func (f *fakeCalendar) Delete(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, uid)
	return nil
}

type testEnv struct {
	svc       *MeetingService
	identity  *IdentityService
	meetings  *repository.GormMeetingRepository
	events    *repository.GormEventRepository
	reminders *repository.GormReminderRepository
	calendar  *fakeCalendar
	feed      *changefeed.Local
	changes   <-chan changefeed.Change
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.NewInMemory(model.AutoMigrate)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	users := repository.NewGormUserRepository(gdb)
	env := &testEnv{
		meetings:  repository.NewGormMeetingRepository(gdb),
		events:    repository.NewGormEventRepository(gdb),
		reminders: repository.NewGormReminderRepository(gdb),
		calendar:  &fakeCalendar{},
		feed:      changefeed.NewLocal(64),
		identity:  NewIdentityService(users),
	}
	env.svc = NewMeetingService(env.meetings, env.events, env.reminders, users, env.calendar, env.feed, DefaultMeetingOptions(), nil)
	env.svc.now = func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	env.changes, err = env.feed.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if _, err := env.identity.RegisterUser(context.Background(), &identitypb.RegisterUserRequest{
		TelegramId:  100,
		DisplayName: "Anna",
		Username:    "anna",
	}); err != nil {
		t.Fatalf("register user: %v", err)
	}
	return env
}

func (e *testEnv) create(t *testing.T, start string, duration, travel int32) *meetingspb.CreateMeetingResponse {
	t.Helper()
	resp, err := e.svc.CreateMeeting(context.Background(), &meetingspb.CreateMeetingRequest{
		OrganizerTelegramId: 100,
		Title:               "Consultation",
		ClientName:          "Boris",
		Kind:                "physical",
		Location:            "Office",
		Date:                "2025-03-14",
		StartTime:           start,
		DurationMinutes:     duration,
		TravelMinutes:       travel,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	return resp
}

func (e *testEnv) drain() []changefeed.Change {
	var out []changefeed.Change
	for {
		select {
		case c := <-e.changes:
			out = append(out, c)
		default:
			return out
		}
	}
}

func (e *testEnv) eventTypes(t *testing.T, id string) []model.EventType {
	t.Helper()
	events, err := e.events.ListByMeeting(context.Background(), uuid.MustParse(id))
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	out := make([]model.EventType, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.EventType)
	}
	return out
}

func hasEvent(types []model.EventType, want model.EventType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func expectCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if got := status.Code(err); got != want {
		t.Fatalf("expected %s, got %s (%v)", want, got, err)
	}
}

func TestMeetingService_CreateMeeting(t *testing.T) {
	env := newTestEnv(t)

	resp := env.create(t, "10:00", 60, 30)
	m := resp.Meeting
	if m.Status != "upcoming" || m.EndTime != "11:00" {
		t.Fatalf("unexpected meeting %+v", m)
	}
	if m.SlotStart != "09:30" || m.SlotEnd != "11:30" {
		t.Fatalf("unexpected slot %s-%s", m.SlotStart, m.SlotEnd)
	}
	if m.CalendarUid == "" || len(env.calendar.upserts) != 1 || env.calendar.upserts[0].UID != m.CalendarUid {
		t.Fatalf("expected calendar mirror, got uid=%q upserts=%d", m.CalendarUid, len(env.calendar.upserts))
	}
	if len(resp.ConflictsWith) != 0 {
		t.Fatalf("first meeting must be conflict-free, got %v", resp.ConflictsWith)
	}
	if !hasEvent(env.eventTypes(t, m.Id), model.EventTypeMeetingCreated) {
		t.Fatalf("expected meeting_created audit")
	}
	changes := env.drain()
	if len(changes) != 1 || changes[0].Kind != changefeed.KindCreated || changes[0].Date != "2025-03-14" {
		t.Fatalf("unexpected changes %+v", changes)
	}
}

func TestMeetingService_CreateMeetingReportsConflicts(t *testing.T) {
	env := newTestEnv(t)

	first := env.create(t, "10:00", 60, 0)
	second := env.create(t, "10:30", 60, 0)
	if len(second.ConflictsWith) != 1 || second.ConflictsWith[0] != first.Meeting.Id {
		t.Fatalf("expected conflict with first meeting, got %v", second.ConflictsWith)
	}

	touching := env.create(t, "11:30", 30, 0)
	if len(touching.ConflictsWith) != 0 {
		t.Fatalf("touching meeting must not conflict, got %v", touching.ConflictsWith)
	}
}

func TestMeetingService_CreateMeetingValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := meetingspb.CreateMeetingRequest{
		OrganizerTelegramId: 100,
		Title:               "Call",
		Kind:                "virtual",
		Date:                "2025-03-14",
		StartTime:           "10:00",
		DurationMinutes:     30,
	}

	cases := []struct {
		name   string
		mutate func(r *meetingspb.CreateMeetingRequest)
		code   codes.Code
	}{
		{"zero duration", func(r *meetingspb.CreateMeetingRequest) { r.DurationMinutes = 0 }, codes.InvalidArgument},
		{"negative travel", func(r *meetingspb.CreateMeetingRequest) { r.TravelMinutes = -5 }, codes.InvalidArgument},
		{"past midnight", func(r *meetingspb.CreateMeetingRequest) { r.StartTime = "23:30"; r.DurationMinutes = 60 }, codes.InvalidArgument},
		{"start at 24:00", func(r *meetingspb.CreateMeetingRequest) { r.StartTime = "24:00" }, codes.InvalidArgument},
		{"bad time", func(r *meetingspb.CreateMeetingRequest) { r.StartTime = "ten" }, codes.InvalidArgument},
		{"bad date", func(r *meetingspb.CreateMeetingRequest) { r.Date = "14.03.2025" }, codes.InvalidArgument},
		{"bad kind", func(r *meetingspb.CreateMeetingRequest) { r.Kind = "hybrid" }, codes.InvalidArgument},
		{"no title", func(r *meetingspb.CreateMeetingRequest) { r.Title = "  " }, codes.InvalidArgument},
		{"unknown organizer", func(r *meetingspb.CreateMeetingRequest) { r.OrganizerTelegramId = 999 }, codes.NotFound},
		{"no organizer", func(r *meetingspb.CreateMeetingRequest) { r.OrganizerTelegramId = 0 }, codes.InvalidArgument},
	}
	for _, c := range cases {
		req := base
		c.mutate(&req)
		_, err := env.svc.CreateMeeting(ctx, &req)
		if got := status.Code(err); got != c.code {
			t.Fatalf("%s: expected %s, got %s (%v)", c.name, c.code, got, err)
		}
	}

	// ровно до полуночи — допустимо
	req := base
	req.StartTime = "23:00"
	req.DurationMinutes = 60
	req.TravelMinutes = 30
	resp, err := env.svc.CreateMeeting(ctx, &req)
	if err != nil {
		t.Fatalf("meeting ending at 24:00 must be accepted: %v", err)
	}
	if resp.Meeting.EndTime != "24:00" || resp.Meeting.SlotEnd != "24:00" {
		t.Fatalf("unexpected end %s / slot end %s", resp.Meeting.EndTime, resp.Meeting.SlotEnd)
	}
}

func TestMeetingService_BlockedOrganizer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.identity.SetBlocked(ctx, &identitypb.SetBlockedRequest{TelegramId: 100, Blocked: true}); err != nil {
		t.Fatalf("block: %v", err)
	}
	_, err := env.svc.CreateMeeting(ctx, &meetingspb.CreateMeetingRequest{
		OrganizerTelegramId: 100,
		Title:               "Call",
		Kind:                "virtual",
		Date:                "2025-03-14",
		StartTime:           "10:00",
		DurationMinutes:     30,
	})
	expectCode(t, err, codes.PermissionDenied)
}

func TestMeetingService_CalendarFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.calendar.err = errors.New("caldav unavailable")

	resp := env.create(t, "10:00", 60, 0)
	if resp.Meeting.CalendarUid != "" {
		t.Fatalf("calendar uid must stay empty on failure, got %q", resp.Meeting.CalendarUid)
	}
	if _, err := env.svc.GetMeeting(context.Background(), &meetingspb.GetMeetingRequest{Id: resp.Meeting.Id}); err != nil {
		t.Fatalf("meeting must be persisted: %v", err)
	}
	types := env.eventTypes(t, resp.Meeting.Id)
	if !hasEvent(types, model.EventTypeCalendarSyncFailed) || !hasEvent(types, model.EventTypeMeetingCreated) {
		t.Fatalf("expected sync failure and creation in audit, got %v", types)
	}
}

func TestMeetingService_RescheduleMeeting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.create(t, "10:00", 60, 15)
	env.drain()

	resp, err := env.svc.RescheduleMeeting(ctx, &meetingspb.RescheduleMeetingRequest{
		Id:              created.Meeting.Id,
		Date:            "2025-03-15",
		StartTime:       "14:00",
		DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	m := resp.Meeting
	if m.Status != "rescheduled" || m.Date != "2025-03-15" || m.EndTime != "15:30" || m.TravelMinutes != 15 {
		t.Fatalf("unexpected meeting %+v", m)
	}
	if len(env.calendar.upserts) != 2 || env.calendar.upserts[1].UID != created.Meeting.CalendarUid {
		t.Fatalf("expected calendar update with the same uid")
	}

	changes := env.drain()
	dates := map[string]bool{}
	for _, c := range changes {
		dates[c.Date] = true
	}
	if !dates["2025-03-14"] || !dates["2025-03-15"] {
		t.Fatalf("expected changes for both days, got %+v", changes)
	}

	zero := int32(0)
	resp, err = env.svc.RescheduleMeeting(ctx, &meetingspb.RescheduleMeetingRequest{
		Id:              created.Meeting.Id,
		Date:            "2025-03-15",
		StartTime:       "14:00",
		DurationMinutes: 90,
		TravelMinutes:   &zero,
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if resp.Meeting.TravelMinutes != 0 || resp.Meeting.SlotStart != "14:00" {
		t.Fatalf("expected travel reset, got %+v", resp.Meeting)
	}

	_, err = env.svc.RescheduleMeeting(ctx, &meetingspb.RescheduleMeetingRequest{
		Id: uuid.NewString(), Date: "2025-03-15", StartTime: "14:00", DurationMinutes: 30,
	})
	expectCode(t, err, codes.NotFound)

	_, err = env.svc.RescheduleMeeting(ctx, &meetingspb.RescheduleMeetingRequest{
		Id: "not-a-uuid", Date: "2025-03-15", StartTime: "14:00", DurationMinutes: 30,
	})
	expectCode(t, err, codes.InvalidArgument)
}

func TestMeetingService_CancelMeeting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.create(t, "10:00", 60, 0)
	resp, err := env.svc.CancelMeeting(ctx, &meetingspb.CancelMeetingRequest{Id: created.Meeting.Id, Reason: "client is sick"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if resp.Meeting.Status != "canceled" || resp.Meeting.CancelReason != "client is sick" {
		t.Fatalf("unexpected meeting %+v", resp.Meeting)
	}
	if len(env.calendar.deletes) != 1 || env.calendar.deletes[0] != created.Meeting.CalendarUid {
		t.Fatalf("expected calendar delete, got %v", env.calendar.deletes)
	}

	// отменённая встреча больше не занимает время
	other := env.create(t, "10:15", 30, 0)
	if len(other.ConflictsWith) != 0 {
		t.Fatalf("canceled meeting must not conflict, got %v", other.ConflictsWith)
	}
}

func TestMeetingService_CompleteAndSetStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.create(t, "10:00", 60, 0)

	done, err := env.svc.CompleteMeeting(ctx, &meetingspb.CompleteMeetingRequest{Id: created.Meeting.Id})
	if err != nil || done.Meeting.Status != "completed" {
		t.Fatalf("complete: %+v / %v", done, err)
	}

	// любые переходы разрешены
	for _, st := range []string{"upcoming", "canceled", "rescheduled", "completed"} {
		resp, err := env.svc.SetStatus(ctx, &meetingspb.SetStatusRequest{Id: created.Meeting.Id, Status: st})
		if err != nil {
			t.Fatalf("set status %s: %v", st, err)
		}
		if resp.Meeting.Status != st {
			t.Fatalf("expected %s, got %s", st, resp.Meeting.Status)
		}
	}
	if len(env.calendar.deletes) != 1 {
		t.Fatalf("expected one calendar delete on cancel, got %d", len(env.calendar.deletes))
	}
	if len(env.calendar.upserts) != 2 {
		t.Fatalf("expected calendar re-create after leaving canceled, got %d upserts", len(env.calendar.upserts))
	}

	_, err = env.svc.SetStatus(ctx, &meetingspb.SetStatusRequest{Id: created.Meeting.Id, Status: "archived"})
	expectCode(t, err, codes.InvalidArgument)
}

func TestMeetingService_ScheduleChangesResetReminders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.create(t, "10:00", 60, 0)
	id := uuid.MustParse(created.Meeting.Id)
	claim := func() {
		t.Helper()
		for _, off := range []int{60, 15} {
			if _, err := env.reminders.Claim(ctx, &model.ReminderDelivery{MeetingID: id, OffsetMinutes: off, SentAt: time.Now()}); err != nil {
				t.Fatalf("claim %d: %v", off, err)
			}
		}
	}
	pending := func(when string) {
		t.Helper()
		for _, off := range []int{60, 15} {
			if done, _ := env.reminders.Delivered(ctx, id, off); done {
				t.Fatalf("%s: offset %d must be pending again", when, off)
			}
		}
	}

	claim()
	if _, err := env.svc.RescheduleMeeting(ctx, &meetingspb.RescheduleMeetingRequest{
		Id:              created.Meeting.Id,
		Date:            "2025-03-14",
		StartTime:       "15:00",
		DurationMinutes: 60,
	}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	pending("after reschedule")

	claim()
	if _, err := env.svc.CancelMeeting(ctx, &meetingspb.CancelMeetingRequest{Id: created.Meeting.Id}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if done, _ := env.reminders.Delivered(ctx, id, 15); !done {
		t.Fatalf("cancel must keep delivery records")
	}
	if _, err := env.svc.SetStatus(ctx, &meetingspb.SetStatusRequest{Id: created.Meeting.Id, Status: "upcoming"}); err != nil {
		t.Fatalf("set status: %v", err)
	}
	pending("after leaving canceled")

	claim()
	if _, err := env.svc.SetStatus(ctx, &meetingspb.SetStatusRequest{Id: created.Meeting.Id, Status: "rescheduled"}); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if done, _ := env.reminders.Delivered(ctx, id, 15); !done {
		t.Fatalf("status change without a new time must keep delivery records")
	}
}

func TestMeetingService_DeleteMeeting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.create(t, "10:00", 60, 0)
	env.drain()

	if _, err := env.svc.DeleteMeeting(ctx, &meetingspb.DeleteMeetingRequest{Id: created.Meeting.Id}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := env.svc.GetMeeting(ctx, &meetingspb.GetMeetingRequest{Id: created.Meeting.Id})
	expectCode(t, err, codes.NotFound)

	if len(env.calendar.deletes) != 1 {
		t.Fatalf("expected calendar delete")
	}
	if !hasEvent(env.eventTypes(t, created.Meeting.Id), model.EventTypeMeetingDeleted) {
		t.Fatalf("audit must survive deletion")
	}
	changes := env.drain()
	if len(changes) != 1 || changes[0].Kind != changefeed.KindDeleted {
		t.Fatalf("unexpected changes %+v", changes)
	}

	_, err = env.svc.DeleteMeeting(ctx, &meetingspb.DeleteMeetingRequest{Id: created.Meeting.Id})
	expectCode(t, err, codes.NotFound)
}

func TestMeetingService_ListMeetings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, start := range []string{"09:00", "10:00", "11:00", "12:00", "13:00"} {
		env.create(t, start, 30, 0)
	}
	first := env.create(t, "08:00", 30, 0)
	if _, err := env.svc.CancelMeeting(ctx, &meetingspb.CancelMeetingRequest{Id: first.Meeting.Id}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	resp, err := env.svc.ListMeetings(ctx, &meetingspb.ListMeetingsRequest{From: "2025-03-14", To: "2025-03-14", Page: 1, PageSize: 4})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalCount != 6 || len(resp.Meetings) != 4 || !resp.HasNext {
		t.Fatalf("unexpected page: total=%d len=%d next=%v", resp.TotalCount, len(resp.Meetings), resp.HasNext)
	}
	if resp.Meetings[0].StartTime != "08:00" {
		t.Fatalf("expected ordering by start time, got %s", resp.Meetings[0].StartTime)
	}

	resp, err = env.svc.ListMeetings(ctx, &meetingspb.ListMeetingsRequest{From: "2025-03-01", To: "2025-03-31", Statuses: []string{"upcoming"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.TotalCount != 5 {
		t.Fatalf("expected 5 upcoming meetings, got %d", resp.TotalCount)
	}

	_, err = env.svc.ListMeetings(ctx, &meetingspb.ListMeetingsRequest{From: "2025-03-14", To: "2025-03-13"})
	expectCode(t, err, codes.InvalidArgument)
	_, err = env.svc.ListMeetings(ctx, &meetingspb.ListMeetingsRequest{From: "2025-03-14", To: "2025-03-14", Statuses: []string{"lost"}})
	expectCode(t, err, codes.InvalidArgument)
}

func TestMeetingService_DayView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.create(t, "09:00", 60, 0)
	b := env.create(t, "09:30", 60, 0)
	c := env.create(t, "10:15", 45, 0)
	canceled := env.create(t, "09:00", 120, 0)
	if _, err := env.svc.CancelMeeting(ctx, &meetingspb.CancelMeetingRequest{Id: canceled.Meeting.Id}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	view, err := env.svc.DayView(ctx, &meetingspb.DayViewRequest{Date: "2025-03-14"})
	if err != nil {
		t.Fatalf("day view: %v", err)
	}
	if len(view.Meetings) != 4 {
		t.Fatalf("expected canceled meeting in the list, got %d meetings", len(view.Meetings))
	}
	if !view.HasConflicts || len(view.Conflicts) != 2 {
		t.Fatalf("expected A-B and B-C conflicts, got %+v", view.Conflicts)
	}
	for _, p := range view.Conflicts {
		if p.A == canceled.Meeting.Id || p.B == canceled.Meeting.Id {
			t.Fatalf("canceled meeting must not take part in conflicts")
		}
	}
	if len(view.Grid) != 28 || view.Grid[0] != "07:00" {
		t.Fatalf("unexpected grid %v", view.Grid)
	}

	placements := map[string]*meetingspb.Placement{}
	for _, p := range view.Placements {
		placements[p.MeetingId] = p
	}
	if len(placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(placements))
	}
	pa, pb, pc := placements[a.Meeting.Id], placements[b.Meeting.Id], placements[c.Meeting.Id]
	if pa.Lane != 0 || pb.Lane != 1 || pc.Lane != 0 || pa.LaneCount != 2 {
		t.Fatalf("unexpected lanes a=%+v b=%+v c=%+v", pa, pb, pc)
	}
	if pa.SlotIndex != 4 || pa.SlotSpan != 2 {
		t.Fatalf("unexpected grid placement for a: %+v", pa)
	}
	if pc.SlotIndex != 6 || pc.SlotSpan != 2 {
		t.Fatalf("unexpected grid placement for c: %+v", pc)
	}

	view, err = env.svc.DayView(ctx, &meetingspb.DayViewRequest{Date: "2025-03-14", LaneMode: "neighborhood"})
	if err != nil {
		t.Fatalf("day view: %v", err)
	}
	for _, p := range view.Placements {
		if p.MeetingId == b.Meeting.Id && p.LaneCount != 3 {
			t.Fatalf("neighborhood mode: expected 3 lanes for b, got %d", p.LaneCount)
		}
	}

	_, err = env.svc.DayView(ctx, &meetingspb.DayViewRequest{Date: "2025-03-14", LaneMode: "spiral"})
	expectCode(t, err, codes.InvalidArgument)
}

func TestMeetingService_ComputeSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.svc.ComputeSlot(ctx, &meetingspb.ComputeSlotRequest{StartTime: "00:20", DurationMinutes: 40, TravelMinutes: 30})
	if err != nil {
		t.Fatalf("compute slot: %v", err)
	}
	if resp.SlotStart != "00:00" || resp.EndTime != "01:00" || resp.SlotEnd != "01:30" {
		t.Fatalf("unexpected slot %+v", resp)
	}

	_, err = env.svc.ComputeSlot(ctx, &meetingspb.ComputeSlotRequest{StartTime: "23:50", DurationMinutes: 30})
	expectCode(t, err, codes.InvalidArgument)
}

func TestIdentityService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	profile, err := env.identity.GetProfile(ctx, &identitypb.GetProfileRequest{TelegramId: 100})
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.User.DisplayName != "Anna" || profile.User.Username != "anna" {
		t.Fatalf("unexpected profile %+v", profile.User)
	}

	updated, err := env.identity.UpdateContacts(ctx, &identitypb.UpdateContactsRequest{TelegramId: 100, ContactPhone: "+7 900 000-00-00"})
	if err != nil {
		t.Fatalf("update contacts: %v", err)
	}
	if updated.User.ContactPhone != "79000000000" || updated.User.DisplayName != "Anna" {
		t.Fatalf("unexpected user %+v", updated.User)
	}

	_, err = env.identity.GetProfile(ctx, &identitypb.GetProfileRequest{TelegramId: 404})
	expectCode(t, err, codes.NotFound)
	_, err = env.identity.RegisterUser(ctx, &identitypb.RegisterUserRequest{})
	expectCode(t, err, codes.InvalidArgument)
	_, err = env.identity.SetBlocked(ctx, &identitypb.SetBlockedRequest{TelegramId: 404, Blocked: true})
	expectCode(t, err, codes.NotFound)
}

func TestMeetingService_FreeSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.create(t, "08:00", 60, 30)

	resp, err := env.svc.FreeSlots(ctx, &meetingspb.FreeSlotsRequest{Date: "2025-03-14", DurationMinutes: 30, PageSize: 3})
	if err != nil {
		t.Fatalf("free slots: %v", err)
	}
	// окно 07:30–09:30 занято
	if resp.TotalCount != 24 || len(resp.Slots) != 3 || !resp.HasNext {
		t.Fatalf("unexpected page: total=%d len=%d next=%v", resp.TotalCount, len(resp.Slots), resp.HasNext)
	}
	if resp.Slots[0].StartTime != "07:00" || resp.Slots[1].StartTime != "09:30" {
		t.Fatalf("unexpected slots %+v %+v", resp.Slots[0], resp.Slots[1])
	}

	_, err = env.svc.FreeSlots(ctx, &meetingspb.FreeSlotsRequest{Date: "2025-03-14"})
	expectCode(t, err, codes.InvalidArgument)
}
