package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender шлёт напоминание организатору в личку бота.
type TelegramSender struct {
	api botAPI
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &TelegramSender{api: api}, nil
}

func (s *TelegramSender) Name() string { return "telegram" }

func (s *TelegramSender) Send(_ context.Context, r Reminder) error {
	if r.OrganizerTelegramID == 0 {
		return fmt.Errorf("organizer has no telegram id")
	}
	msg := tgbotapi.NewMessage(r.OrganizerTelegramID, ReminderText(r))
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := s.api.Send(msg)
	return err
}

// ReminderText — текст напоминания в HTML-разметке Telegram.
func ReminderText(r Reminder) string {
	var b strings.Builder
	b.WriteString("🔔 <b>Напоминание о встрече</b>\n\n")
	b.WriteString(html.EscapeString(r.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "🕒 %s (через %s)\n", r.StartsAt.Format("02.01.2006 15:04"), formatOffset(r.OffsetMinutes))
	if r.ClientName != "" {
		fmt.Fprintf(&b, "👤 %s\n", html.EscapeString(r.ClientName))
	}
	if r.Location != "" {
		fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(r.Location))
	}
	if r.MeetingURL != "" {
		fmt.Fprintf(&b, "🔗 %s\n", html.EscapeString(r.MeetingURL))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatOffset(minutes int) string {
	switch {
	case minutes >= 60*24 && minutes%(60*24) == 0:
		return fmt.Sprintf("%d дн.", minutes/(60*24))
	case minutes >= 60 && minutes%60 == 0:
		return fmt.Sprintf("%d ч.", minutes/60)
	default:
		return fmt.Sprintf("%d мин.", minutes)
	}
}
