// Package logging builds the service's slog loggers and carries them through
// request contexts.
//
//	logger := logging.New("info", "json", os.Stderr)
//	ctx = logging.WithLogger(ctx, logger.With(logging.RequestID(id)))
//	logging.FromContext(ctx).ErrorContext(ctx, "todo store operation failed",
//	    logging.Operation("UpdateTodo"),
//	    logging.TodoID(t.ID),
//	    logging.Err(err),
//	)
//
// Store failures are logged with the operation name, the todo id when there
// is one, and the full error chain. Loggers taken from a request context
// already carry request_id and correlation_id.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Attribute keys shared by every log line the service emits.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyOperation     = "operation"
	KeyTodoID        = "todo_id"
	KeyError         = "error"
)

// Accepted log.level and log.format values.
var (
	Levels  = []string{"debug", "info", "warn", "error"}
	Formats = []string{"json", "text"}
)

type contextKey struct{}

// New returns a logger writing to w. Unknown levels fall back to info and
// any format other than "text" produces JSON. Debug loggers include the
// source location. Sensitive attributes are masked before they reach w.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// RequestID returns the request_id attribute.
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }

// CorrelationID returns the correlation_id attribute.
func CorrelationID(id string) slog.Attr { return slog.String(KeyCorrelationID, id) }

// Operation returns the operation attribute.
func Operation(name string) slog.Attr { return slog.String(KeyOperation, name) }

// TodoID returns the todo_id attribute.
func TodoID(id int64) slog.Attr { return slog.Int64(KeyTodoID, id) }

// Err returns the error attribute. The whole chain is kept.
func Err(err error) slog.Attr { return slog.Any(KeyError, err) }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
