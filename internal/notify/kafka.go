package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const ReminderTopic = "meetings.reminder.due.v1"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSender публикует напоминание как событие; ключ — ID встречи.
type KafkaSender struct {
	writer messageWriter
	topic  string
}

func NewKafkaSender(brokers []string, topic string) *KafkaSender {
	if topic == "" {
		topic = ReminderTopic
	}
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Balancer: &kafka.Hash{},
	})
	return &KafkaSender{writer: writer, topic: topic}
}

func (s *KafkaSender) Name() string { return "kafka" }

type reminderPayload struct {
	MeetingID           string    `json:"meeting_id"`
	OffsetMinutes       int       `json:"offset_minutes"`
	Title               string    `json:"title"`
	Kind                string    `json:"kind"`
	Location            string    `json:"location,omitempty"`
	MeetingURL          string    `json:"meeting_url,omitempty"`
	StartsAt            time.Time `json:"starts_at"`
	OrganizerTelegramID int64     `json:"organizer_telegram_id"`
}

func (s *KafkaSender) Send(ctx context.Context, r Reminder) error {
	payload, err := json.Marshal(reminderPayload{
		MeetingID:           r.MeetingID.String(),
		OffsetMinutes:       r.OffsetMinutes,
		Title:               r.Title,
		Kind:                r.Kind,
		Location:            r.Location,
		MeetingURL:          r.MeetingURL,
		StartsAt:            r.StartsAt.UTC(),
		OrganizerTelegramID: r.OrganizerTelegramID,
	})
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}
	msg := kafka.Message{
		Topic: s.topic,
		Key:   []byte(r.MeetingID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(s.topic)},
			{Key: "offset_minutes", Value: []byte(strconv.Itoa(r.OffsetMinutes))},
		},
	}
	return s.writer.WriteMessages(ctx, msg)
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}

// KafkaReadyCheck проверяет, что первый брокер принимает соединения.
func KafkaReadyCheck(brokers []string) func(context.Context) error {
	return func(ctx context.Context) error {
		if len(brokers) == 0 {
			return fmt.Errorf("kafka brokers not configured")
		}
		dialer := kafka.Dialer{Timeout: 2 * time.Second}
		conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
		if err != nil {
			return err
		}
		_ = conn.Close()
		return nil
	}
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
