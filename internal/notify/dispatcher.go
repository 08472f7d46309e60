package notify

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/Leganyst/meeting-planner/internal/calendar"
	"github.com/Leganyst/meeting-planner/internal/model"
	"github.com/Leganyst/meeting-planner/internal/repository"
)

const (
	DefaultSpec     = "* * * * *"
	DefaultLookback = 10 * time.Minute
)

// DefaultOffsets — за сутки, за час и за 15 минут.
var DefaultOffsets = []int{24 * 60, 60, 15}

type Config struct {
	// Смещения в минутах до начала встречи.
	Offsets []int
	// cron-выражение проверки.
	Spec string
	// Окно, в котором пропущенное напоминание ещё отправляется.
	Lookback time.Duration
	// Часовой пояс, в котором записаны даты и время встреч.
	Location *time.Location
}

func (c *Config) setDefaults() {
	if len(c.Offsets) == 0 {
		c.Offsets = DefaultOffsets
	}
	if c.Spec == "" {
		c.Spec = DefaultSpec
	}
	if c.Lookback <= 0 {
		c.Lookback = DefaultLookback
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
}

// Dispatcher по расписанию ищет встречи, для которых наступило время
// напоминания, и отправляет каждое напоминание один раз.
type Dispatcher struct {
	meetings  repository.MeetingRepository
	users     repository.UserRepository
	reminders repository.ReminderRepository
	sender    *MultiSender
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
	cron      *cron.Cron
}

func NewDispatcher(
	meetings repository.MeetingRepository,
	users repository.UserRepository,
	reminders repository.ReminderRepository,
	sender *MultiSender,
	cfg Config,
	logger *slog.Logger,
) *Dispatcher {
	cfg.setDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger}
	return &Dispatcher{
		meetings:  meetings,
		users:     users,
		reminders: reminders,
		sender:    sender,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

func (d *Dispatcher) Start() error {
	if _, err := d.cron.AddFunc(d.cfg.Spec, d.tick); err != nil {
		return fmt.Errorf("add reminder check: %w", err)
	}
	d.cron.Start()
	d.logger.Info("reminder dispatcher started",
		"spec", d.cfg.Spec,
		"offsets_min", d.cfg.Offsets,
		"tz", d.cfg.Location.String(),
	)
	return nil
}

// Stop ждёт завершения текущей проверки или отмены ctx.
func (d *Dispatcher) Stop(ctx context.Context) {
	done := d.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	d.logger.Info("reminder dispatcher stopped")
}

func (d *Dispatcher) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
	defer cancel()
	if _, err := d.RunOnce(ctx); err != nil {
		d.logger.Error("reminder check failed", "err", err)
	}
}

// RunOnce отправляет напоминания, срок которых попал в (now-lookback, now].
// Возвращает число отправленных напоминаний.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	loc := d.cfg.Location
	now := d.now().In(loc)
	windowStart := now.Add(-d.cfg.Lookback)

	minOffset, maxOffset := slices.Min(d.cfg.Offsets), slices.Max(d.cfg.Offsets)
	from := calendar.DateOf(windowStart.Add(time.Duration(minOffset) * time.Minute))
	to := calendar.DateOf(now.Add(time.Duration(maxOffset) * time.Minute))

	meetings, err := d.meetings.ListRange(ctx, from, to, []model.MeetingStatus{
		model.MeetingStatusUpcoming,
		model.MeetingStatusRescheduled,
	})
	if err != nil {
		return 0, fmt.Errorf("list meetings: %w", err)
	}

	organizers := make(map[uuid.UUID]*model.User)
	sent := 0
	for i := range meetings {
		m := &meetings[i]
		startsAt := m.StartsAt(loc)
		for _, offset := range d.cfg.Offsets {
			due := startsAt.Add(-time.Duration(offset) * time.Minute)
			if !due.After(windowStart) || due.After(now) {
				continue
			}
			ok, err := d.deliver(ctx, m, startsAt, offset, organizers)
			if err != nil {
				d.logger.Error("reminder not delivered",
					"meeting_id", m.ID,
					"offset_min", offset,
					"err", err,
				)
				continue
			}
			if ok {
				sent++
			}
		}
	}
	return sent, nil
}

// deliver занимает отметку до отправки: из двух инстансов в каналы уходит
// только тот, чья вставка прошла. Если не сработал ни один канал, отметка
// снимается и напоминание повторится на следующей проверке.
func (d *Dispatcher) deliver(
	ctx context.Context,
	m *model.Meeting,
	startsAt time.Time,
	offset int,
	organizers map[uuid.UUID]*model.User,
) (bool, error) {
	claim := &model.ReminderDelivery{
		MeetingID:     m.ID,
		OffsetMinutes: offset,
		SentAt:        d.now().UTC(),
	}
	claimed, err := d.reminders.Claim(ctx, claim)
	if err != nil {
		return false, fmt.Errorf("claim delivery: %w", err)
	}
	if !claimed {
		return false, nil
	}

	channels, err := d.send(ctx, m, startsAt, offset, organizers)
	if err != nil {
		if relErr := d.reminders.Release(ctx, claim.ID); relErr != nil {
			d.logger.Error("reminder claim not released",
				"meeting_id", m.ID,
				"offset_min", offset,
				"err", relErr,
			)
		}
		return false, err
	}

	if err := d.reminders.Confirm(ctx, claim.ID, strings.Join(channels, ","), d.now().UTC()); err != nil {
		return true, fmt.Errorf("confirm delivery: %w", err)
	}
	return true, nil
}

func (d *Dispatcher) send(
	ctx context.Context,
	m *model.Meeting,
	startsAt time.Time,
	offset int,
	organizers map[uuid.UUID]*model.User,
) ([]string, error) {
	organizer, ok := organizers[m.OrganizerID]
	if !ok {
		var err error
		organizer, err = d.users.FindByID(ctx, m.OrganizerID)
		if err != nil {
			return nil, fmt.Errorf("find organizer: %w", err)
		}
		organizers[m.OrganizerID] = organizer
	}

	return d.sender.Deliver(ctx, Reminder{
		MeetingID:           m.ID,
		OffsetMinutes:       offset,
		Title:               m.Title,
		ClientName:          m.ClientName,
		Kind:                string(m.Kind),
		Location:            m.Location,
		MeetingURL:          m.MeetingURL,
		StartsAt:            startsAt,
		OrganizerTelegramID: organizer.TelegramID,
		OrganizerName:       organizer.DisplayName,
	})
}

// cronLogger пишет события cron в slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
