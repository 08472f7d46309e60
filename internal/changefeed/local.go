package changefeed

import (
	"context"
	"sync"
)

const defaultBuffer = 16

// Local — рассылка внутри одного процесса.
// Медленный подписчик с заполненным буфером пропускает сигнал: в буфере
// уже лежит непрочитанный сигнал, по которому он всё равно перечитает данные.
type Local struct {
	mu     sync.RWMutex
	subs   map[chan Change]struct{}
	buffer int
	closed bool
}

func NewLocal(buffer int) *Local {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Local{
		subs:   make(map[chan Change]struct{}),
		buffer: buffer,
	}
}

func (l *Local) Publish(_ context.Context, c Change) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}
	for ch := range l.subs {
		select {
		case ch <- c:
		default:
		}
	}
	return nil
}

func (l *Local) Subscribe(ctx context.Context) (<-chan Change, error) {
	ch := make(chan Change, l.buffer)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrClosed
	}
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.remove(ch)
	}()
	return ch, nil
}

func (l *Local) remove(ch chan Change) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.subs[ch]; ok {
		delete(l.subs, ch)
		close(ch)
	}
}

// Subscribers — число активных подписок.
func (l *Local) Subscribers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.subs)
}

// Close закрывает все подписки.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	for ch := range l.subs {
		delete(l.subs, ch)
		close(ch)
	}
	return nil
}
