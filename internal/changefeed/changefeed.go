// Package changefeed разносит сигналы "что-то изменилось" по подписчикам.
//
// Доставка не гарантирует порядок и может дублировать сигналы: подписчик
// по сигналу перечитывает данные, а не применяет его как патч.
package changefeed

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrClosed = errors.New("change feed closed")

type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
	KindDeleted Kind = "deleted"
)

// Change — сигнал об изменении встречи. Date — "2006-01-02", день, который
// нужно перечитать (для переноса публикуются оба дня).
type Change struct {
	Kind      Kind      `json:"kind"`
	MeetingID uuid.UUID `json:"meeting_id"`
	Date      string    `json:"date"`
}

type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// Subscriber отдаёт канал сигналов; канал закрывается после отмены ctx.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Change, error)
}

type Feed interface {
	Publisher
	Subscriber
}
