package booking

import (
	"log"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives transient user-facing messages.
type Notifier interface {
	Notify(level Level, message string)
}

// BufferedNotifier keeps the most recent notifications until drained.
type BufferedNotifier struct {
	mu    sync.Mutex
	items []Notification
	max   int
}

func NewBufferedNotifier(max int) *BufferedNotifier {
	if max <= 0 {
		max = 20
	}
	return &BufferedNotifier{max: max}
}

func (b *BufferedNotifier) Notify(level Level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, Notification{Level: level, Message: message, At: time.Now()})
	if len(b.items) > b.max {
		b.items = b.items[len(b.items)-b.max:]
	}
}

// Drain returns and forgets the buffered notifications.
func (b *BufferedNotifier) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

type LogNotifier struct{}

func (LogNotifier) Notify(level Level, message string) {
	log.Printf("[booking] %s: %s\n", level, message)
}

type teeNotifier []Notifier

func (t teeNotifier) Notify(level Level, message string) {
	for _, n := range t {
		n.Notify(level, message)
	}
}

// Tee fans a notification out to every non-nil notifier.
func Tee(notifiers ...Notifier) Notifier {
	var out teeNotifier
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
