// Package postgres implements ports.TodoDatabase on PostgreSQL through a
// jackc/pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time check that Store implements ports.TodoDatabase.
var _ ports.TodoDatabase = (*Store)(nil)

const selectColumns = `SELECT id, title, description, due_date, done FROM todos`

// Options tunes the connection pool.
type Options struct {
	// MaxConns caps pool size. Zero keeps the pgxpool default.
	MaxConns int32
}

// Store is a PostgreSQL-backed todo store.
type Store struct {
	pool *pgxpool.Pool
}

// Open builds a pool for dsn and verifies it with a ping. It does not apply
// migrations; call Migrate for that.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Store{pool: pool}, nil
}

// FindByID returns the todo with the given id.
func (s *Store) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	t, err := scanTodo(s.pool.QueryRow(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying todo %d: %w", id, err)
	}
	return t, nil
}

// Save inserts t and returns it with its new id and the due date as stored.
func (s *Store) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	saved := *t
	saved.DueDate = t.DueDate.UTC()

	err := s.pool.QueryRow(ctx,
		`INSERT INTO todos (title, description, due_date, done) VALUES ($1, $2, $3, $4) RETURNING id, due_date`,
		saved.Title, saved.Description, saved.DueDate, saved.Done,
	).Scan(&saved.ID, &saved.DueDate)
	if err != nil {
		return nil, fmt.Errorf("inserting todo: %w", err)
	}
	saved.DueDate = saved.DueDate.UTC()

	return &saved, nil
}

// Replace deletes the row with t.ID and inserts t under the same id in one
// transaction.
func (s *Store) Replace(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	replaced := *t
	replaced.DueDate = t.DueDate.UTC()

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM todos WHERE id = $1`, t.ID)
		if err != nil {
			return fmt.Errorf("deleting todo %d: %w", t.ID, err)
		}
		if err := requireAffected(tag); err != nil {
			return err
		}

		if err := tx.QueryRow(ctx,
			`INSERT INTO todos (id, title, description, due_date, done) VALUES ($1, $2, $3, $4, $5) RETURNING due_date`,
			replaced.ID, replaced.Title, replaced.Description, replaced.DueDate, replaced.Done,
		).Scan(&replaced.DueDate); err != nil {
			return fmt.Errorf("reinserting todo %d: %w", t.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	replaced.DueDate = replaced.DueDate.UTC()

	return &replaced, nil
}

// DeleteByID removes the todo with the given id.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return requireAffected(tag)
}

// FindAll returns every todo in id order.
func (s *Store) FindAll(ctx context.Context) ([]todo.Todo, error) {
	return queryTodos(ctx, s.pool, selectColumns+` ORDER BY id`)
}

// FindPage counts all rows and reads the requested page inside one
// repeatable-read transaction so the total and the items agree.
func (s *Store) FindPage(ctx context.Context, q todo.Query) (*todo.Page, error) {
	page := &todo.Page{Items: []todo.Todo{}}

	txOpts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := pgx.BeginTxFunc(ctx, s.pool, txOpts, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM todos`).Scan(&page.Total); err != nil {
			return fmt.Errorf("counting todos: %w", err)
		}
		if page.Total == 0 || q.Limit == 0 {
			return nil
		}

		items, err := queryTodos(ctx, tx,
			selectColumns+` WHERE ($1 OR NOT done) ORDER BY id LIMIT $2 OFFSET $3`,
			q.State == todo.StateAll, q.Limit, q.Start(),
		)
		if err != nil {
			return err
		}
		page.Items = append(page.Items, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// Ping verifies the pool can reach the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes every connection in the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryTodos(ctx context.Context, q querier, query string, args ...any) ([]todo.Todo, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}

	todos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (todo.Todo, error) {
		t, err := scanTodo(row)
		if err != nil {
			return todo.Todo{}, err
		}
		return *t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning todos: %w", err)
	}
	if todos == nil {
		todos = []todo.Todo{}
	}
	return todos, nil
}

func scanTodo(row pgx.Row) (*todo.Todo, error) {
	var t todo.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Done); err != nil {
		return nil, err
	}
	t.DueDate = t.DueDate.UTC()
	return &t, nil
}

func requireAffected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Truncate removes every todo and resets the id sequence. Used by tests
// against a disposable database.
func (s *Store) Truncate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE TABLE todos RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncating todos: %w", err)
	}
	return nil
}
