// Package logging provides a slog handler that doubles WARN-and-above log
// records into the admin activity log, so operational problems show up on
// the dashboard without separate instrumentation.
package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mkcms/mkcms-go/internal/model"
	"github.com/mkcms/mkcms-go/internal/storage"
)

// EventLogHandler wraps another slog.Handler and additionally records WARN
// and ERROR entries as activity log events through the storage facade.
//
// The facade it writes through must log with a plain handler, not this one,
// or a degraded write would feed back into itself.
type EventLogHandler struct {
	inner slog.Handler
	store *storage.Facade
	level slog.Level
}

// NewEventLogHandler wraps inner, forwarding records at WARN and above to
// the activity log.
func NewEventLogHandler(inner slog.Handler, store *storage.Facade) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: store,
		level: slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		// Background context: the event should land even when the
		// triggering request was cancelled.
		_, _, _ = h.store.RecordEvent(context.Background(),
			eventLevel(r.Level), eventCategory(r), r.Message, eventMetadata(r))
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), store: h.store, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), store: h.store, level: h.level}
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// eventCategory takes an explicit "category" attribute when present and
// falls back to guessing from the message.
func eventCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") || strings.Contains(msg, "session"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "store") || strings.Contains(msg, "database") || strings.Contains(msg, "migration"):
		return model.EventCategoryStorage
	case strings.Contains(msg, "post") || strings.Contains(msg, "product") || strings.Contains(msg, "content"):
		return model.EventCategoryContent
	default:
		return model.EventCategorySystem
	}
}

// eventMetadata flattens the record attributes into a small JSON object.
func eventMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})
	sb.WriteString("}")
	return sb.String()
}

func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
