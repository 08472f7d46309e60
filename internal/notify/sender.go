// Package notify рассылает напоминания о предстоящих встречах.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var ErrNoSenders = errors.New("no senders configured")

// Reminder — одно напоминание: встреча и смещение, за которое оно отправлено.
type Reminder struct {
	MeetingID     uuid.UUID
	OffsetMinutes int

	Title      string
	ClientName string
	Kind       string
	Location   string
	MeetingURL string
	StartsAt   time.Time

	OrganizerTelegramID int64
	OrganizerName       string
}

type Sender interface {
	Name() string
	Send(ctx context.Context, r Reminder) error
}

// MultiSender отправляет напоминание во все каналы.
// Ошибка одного канала не мешает остальным.
type MultiSender struct {
	senders []Sender
	logger  *slog.Logger
}

func NewMultiSender(logger *slog.Logger, senders ...Sender) *MultiSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &MultiSender{senders: senders, logger: logger}
}

func (m *MultiSender) Name() string { return "multi" }

func (m *MultiSender) Send(ctx context.Context, r Reminder) error {
	_, err := m.Deliver(ctx, r)
	return err
}

// Deliver возвращает имена каналов, принявших напоминание.
// Ошибка — только если не сработал ни один канал.
func (m *MultiSender) Deliver(ctx context.Context, r Reminder) ([]string, error) {
	if len(m.senders) == 0 {
		return nil, ErrNoSenders
	}

	var (
		delivered []string
		errs      []error
	)
	for _, s := range m.senders {
		if err := s.Send(ctx, r); err != nil {
			m.logger.Warn("reminder channel failed",
				"channel", s.Name(),
				"meeting_id", r.MeetingID,
				"offset_min", r.OffsetMinutes,
				"err", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		delivered = append(delivered, s.Name())
	}
	if len(delivered) == 0 {
		return nil, errors.Join(errs...)
	}
	return delivered, nil
}

// LogSender пишет напоминание в лог; работает всегда.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, r Reminder) error {
	s.logger.Info("meeting reminder",
		"meeting_id", r.MeetingID,
		"offset_min", r.OffsetMinutes,
		"title", r.Title,
		"starts_at", r.StartsAt,
		"telegram_id", r.OrganizerTelegramID,
	)
	return nil
}
