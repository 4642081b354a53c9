package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler copies each record to every sink that wants its level. The zoo
// service uses it to keep console output and the rolling JSON file in step.
type teeHandler struct {
	sinks []slog.Handler
}

// newTeeHandler drops nil sinks. A single remaining sink is returned as is.
func newTeeHandler(sinks ...slog.Handler) slog.Handler {
	kept := make([]slog.Handler, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}

	if len(kept) == 1 {
		return kept[0]
	}

	return &teeHandler{sinks: kept}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range t.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle writes to every enabled sink even when an earlier one fails. Sink
// errors are joined.
func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, s := range t.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}

		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return t
	}

	return t.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

// WithGroup ignores an empty name, as slog.Handler requires.
func (t *teeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}

	return t.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (t *teeHandler) derive(fn func(slog.Handler) slog.Handler) *teeHandler {
	sinks := make([]slog.Handler, len(t.sinks))
	for i, s := range t.sinks {
		sinks[i] = fn(s)
	}

	return &teeHandler{sinks: sinks}
}
