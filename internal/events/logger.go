package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/charmbracelet/log"
)

// loggerAdapter bridges watermill's logging to charmbracelet/log.
type loggerAdapter struct {
	fields watermill.LogFields
}

func newLoggerAdapter() watermill.LoggerAdapter {
	return &loggerAdapter{}
}

func (l *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	log.Error(msg, append([]any{"error", err}, l.kv(fields)...)...)
}

func (l *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	log.Debug(msg, l.kv(fields)...)
}

func (l *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	log.Debug(msg, l.kv(fields)...)
}

func (l *loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	log.Debug(msg, l.kv(fields)...)
}

func (l *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &loggerAdapter{fields: l.fields.Add(fields)}
}

func (l *loggerAdapter) kv(fields watermill.LogFields) []any {
	merged := l.fields.Add(fields)
	out := make([]any, 0, len(merged)*2)
	for k, v := range merged {
		out = append(out, k, v)
	}
	return out
}
