package logging

import (
	"context"
	"log/slog"
	"sync"
)

// logHandlerSpy captures log records for assertions.
type logHandlerSpy struct {
	mu      sync.Mutex
	records []slog.Record
	level   slog.Level
}

func newLogHandlerSpy(level slog.Level) *logHandlerSpy {
	return &logHandlerSpy{level: level}
}

func (s *logHandlerSpy) Handle(_ context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *logHandlerSpy) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.level
}

func (s *logHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler { return s }

func (s *logHandlerSpy) WithGroup(_ string) slog.Handler { return s }

func (s *logHandlerSpy) Records() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]slog.Record(nil), s.records...)
}

func attrs(r slog.Record) map[string]slog.Value {
	out := make(map[string]slog.Value)
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value
		return true
	})
	return out
}
