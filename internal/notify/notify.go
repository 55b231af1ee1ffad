package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/access-gate/internal/events"
)

// Sink receives transient user-facing messages. Implementations are
// fire-and-forget: delivery failures are not surfaced to the caller.
type Sink interface {
	Warn(message string)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(message string)

// Warn implements Sink.
func (f SinkFunc) Warn(message string) {
	f(message)
}

// LoggerSink emits notifications as structured warning logs.
type LoggerSink struct {
	logger *zap.Logger
}

// NewLoggerSink builds a sink backed by the given logger.
func NewLoggerSink(logger *zap.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Warn logs the message at warning level.
func (s *LoggerSink) Warn(message string) {
	s.logger.Warn("user notification", zap.String("message", message))
}

// DispatcherSink publishes notifications as access-denied events so
// downstream handlers (webhook, email) can react to them.
type DispatcherSink struct {
	dispatcher events.Dispatcher
	path       string
}

// NewDispatcherSink builds a sink that publishes on the dispatcher. The path
// identifies the view the notification originated from.
func NewDispatcherSink(dispatcher events.Dispatcher, path string) *DispatcherSink {
	return &DispatcherSink{dispatcher: dispatcher, path: path}
}

// Warn publishes an access_denied event carrying the message.
func (s *DispatcherSink) Warn(message string) {
	_ = s.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccessDenied,
		Timestamp: time.Now(),
		Payload: events.AccessDeniedPayload{
			Path:    s.path,
			Message: message,
		},
	})
}

// MultiSink fans a notification out to several sinks.
type MultiSink []Sink

// Warn delivers the message to every sink in order.
func (m MultiSink) Warn(message string) {
	for _, sink := range m {
		sink.Warn(message)
	}
}
