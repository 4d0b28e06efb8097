package boclient

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Level grades a notification for display purposes.
type Level string

const (
	// LevelError marks failures surfaced from the gateway.
	LevelError Level = "error"
	// LevelWarning marks advisory messages (e.g. permission denials).
	LevelWarning Level = "warning"
)

// Notification is a single user-visible message. The gateway emits exactly
// one per failing call.
type Notification struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	// HTTPStatus is the classifying status code, or 0 for transport failures
	// and business rejections.
	HTTPStatus int `json:"http_status,omitempty"`
}

// Notifier receives [Notification] values from the gateway. Implementations
// must not block for long; the gateway calls Notify on the request path.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NoOpNotifier silently discards all notifications.
type NoOpNotifier struct{}

// Notify discards n.
func (NoOpNotifier) Notify(context.Context, Notification) {}

// ChannelNotifier buffers notifications on a channel without blocking the
// gateway. Overflow is counted, not delivered.
type ChannelNotifier struct {
	ch      chan Notification
	dropped atomic.Uint64
}

// NewChannelNotifier creates a [ChannelNotifier] with the given buffer.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{
		ch: make(chan Notification, buffer),
	}
}

// Notify enqueues n, dropping it when the buffer is full.
func (c *ChannelNotifier) Notify(_ context.Context, n Notification) {
	select {
	case c.ch <- n:
	default:
		c.dropped.Add(1)
	}
}

// Notifications returns the receive side of the buffer.
func (c *ChannelNotifier) Notifications() <-chan Notification {
	return c.ch
}

// Dropped returns how many notifications overflowed the buffer.
func (c *ChannelNotifier) Dropped() uint64 {
	return c.dropped.Load()
}

// WriterNotifier writes JSON-encoded notifications, one per line.
type WriterNotifier struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewWriterNotifier creates a [WriterNotifier] that writes to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{writer: w}
}

// Notify writes n as a JSON line.
func (w *WriterNotifier) Notify(_ context.Context, n Notification) {
	if w == nil || w.writer == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.writer.Write(data)
	_, _ = w.writer.Write([]byte("\n"))
}
