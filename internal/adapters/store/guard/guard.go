// Package guard decorates a ports.TodoDatabase with a circuit breaker,
// OpenTelemetry spans and store metrics. Every call runs through:
//
//	OTEL Span → Circuit Breaker → Store
//
// Missing todos and validation failures are client outcomes and never count
// toward tripping the breaker. While the breaker is open every call fails
// fast with domain.ErrUnavailable.
//
// Construction:
//
//	store := guard.New(db, "todo-store", guard.Settings{MaxFailures: 5, Timeout: 30 * time.Second}, metrics, logger)
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time checks.
var (
	_ ports.TodoDatabase  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

const tracerName = "github.com/jsamuelsen11/todo-service/internal/adapters/store/guard"

// Operation results recorded on the store.operation.* metrics.
const (
	resultSuccess     = "success"
	resultNotFound    = "not_found"
	resultError       = "error"
	resultCircuitOpen = "circuit_open"
)

// Settings configures the circuit breaker.
type Settings struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures int
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
	// HalfOpenLimit is the number of probe calls allowed while half-open.
	HalfOpenLimit int
}

// Store is a guarded todo store.
type Store struct {
	next    ports.TodoDatabase
	name    string
	breaker *gobreaker.CircuitBreaker[any]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New wraps next. The name identifies the store in health checks, spans and
// metrics. If metrics is nil, metric recording is skipped.
func New(next ports.TodoDatabase, name string, s Settings, metrics *telemetry.Metrics, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: toUint32(s.HalfOpenLimit),
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= s.MaxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Store{
		next:    next,
		name:    name,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// FindByID implements ports.TodoStore.
func (s *Store) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	return call(ctx, s, "FindByID", func(ctx context.Context) (*todo.Todo, error) {
		return s.next.FindByID(ctx, id)
	}, attribute.Int64("todo.id", id))
}

// Save implements ports.TodoStore.
func (s *Store) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	return call(ctx, s, "Save", func(ctx context.Context) (*todo.Todo, error) {
		return s.next.Save(ctx, t)
	})
}

// Replace implements ports.TodoStore.
func (s *Store) Replace(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	return call(ctx, s, "Replace", func(ctx context.Context) (*todo.Todo, error) {
		return s.next.Replace(ctx, t)
	}, attribute.Int64("todo.id", t.ID))
}

// DeleteByID implements ports.TodoStore.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	_, err := call(ctx, s, "DeleteByID", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.next.DeleteByID(ctx, id)
	}, attribute.Int64("todo.id", id))
	return err
}

// FindAll implements ports.TodoStore.
func (s *Store) FindAll(ctx context.Context) ([]todo.Todo, error) {
	return call(ctx, s, "FindAll", s.next.FindAll)
}

// FindPage implements ports.TodoStore.
func (s *Store) FindPage(ctx context.Context, q todo.Query) (*todo.Page, error) {
	return call(ctx, s, "FindPage", func(ctx context.Context) (*todo.Page, error) {
		return s.next.FindPage(ctx, q)
	},
		attribute.String("todo.state", q.State.String()),
		attribute.Int("todo.limit", q.Limit),
		attribute.Int("todo.offset", q.Offset),
	)
}

// Ping checks the wrapped store directly, bypassing the breaker.
func (s *Store) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped store.
func (s *Store) Close() error {
	return s.next.Close()
}

// Name returns the identifier used for health registration.
func (s *Store) Name() string {
	return s.name
}

// HealthCheck combines the breaker state with a ping of the wrapped store.
//
// State mapping:
//   - "closed"    -- the store answers a ping; returns nil, otherwise the
//     ping error.
//   - "half-open" -- the breaker is probing recovery; returns a degraded
//     error without pinging.
//   - "open"      -- the breaker is rejecting calls; returns a failing error.
func (s *Store) HealthCheck(ctx context.Context) error {
	state := s.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		if err := s.next.Ping(ctx); err != nil {
			return fmt.Errorf("%s: ping failed: %w", s.name, err)
		}
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", s.name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", s.name)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", s.name, state)
	}
}

// BreakerState returns the current breaker state name.
func (s *Store) BreakerState() string {
	return s.breaker.State().String()
}

// call runs fn inside a span and the breaker, then records metrics. Metrics
// are recorded outside the breaker so that rejections are captured.
func call[T any](
	ctx context.Context,
	s *Store,
	op string,
	fn func(context.Context) (T, error),
	attrs ...attribute.KeyValue,
) (T, error) {
	start := time.Now()

	ctx, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx, "store."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs,
			telemetry.AttrStoreName.String(s.name),
			telemetry.AttrStoreOperation.String(op),
		)...),
	)
	defer span.End()

	v, err := s.breaker.Execute(func() (any, error) {
		return fn(ctx)
	})
	out, _ := v.(T)

	result := resultOf(err)
	if isBreakerRejection(err) {
		result = resultCircuitOpen
		err = fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, s.name, err)
	}

	if result != resultSuccess && result != resultNotFound {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(telemetry.AttrResult.String(result))

	s.recordMetrics(ctx, op, start, result)

	return out, err
}

func (s *Store) recordMetrics(ctx context.Context, op string, start time.Time, result string) {
	if s.metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		telemetry.AttrStoreName.String(s.name),
		telemetry.AttrStoreOperation.String(op),
		telemetry.AttrResult.String(result),
	)

	s.metrics.StoreOperationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	s.metrics.StoreOperationTotal.Add(ctx, 1, attrs)
}

// isSuccessful reports which outcomes leave the breaker's failure count
// alone. Client-side outcomes and caller cancellation say nothing about the
// health of the store.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, context.Canceled)
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, domain.ErrNotFound):
		return resultNotFound
	default:
		return resultError
	}
}

// toUint32 converts a non-negative int to uint32, clamping at the uint32
// maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
