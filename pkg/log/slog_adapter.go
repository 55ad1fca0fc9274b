package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger. Useful during development
// to see parse and dispatch activity on the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates an adapter logging at Debug level; error events
// are always logged at Warn.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}

	level := a.level
	switch {
	case event.Record != nil:
		attrs = append(attrs,
			slog.Int("line", event.Record.Line),
			slog.Bool("accepted", event.Record.Accepted),
		)
		if event.Record.Kind != "" {
			attrs = append(attrs, slog.String("kind", event.Record.Kind))
		}
		if event.Record.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Record.Reason))
		}
	case event.Compile != nil:
		attrs = append(attrs,
			slog.Int("nodes", event.Compile.Nodes),
			slog.Int("roots", event.Compile.Roots),
		)
		if len(event.Compile.Detached) > 0 {
			attrs = append(attrs, slog.Any("detached", event.Compile.Detached))
		}
	case event.Delivery != nil:
		attrs = append(attrs,
			slog.String("fields", event.Delivery.Fields),
			slog.Int("matched", event.Delivery.Matched),
		)
		if event.Delivery.Failed > 0 {
			attrs = append(attrs, slog.Int("failed", event.Delivery.Failed))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "vss event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
