// Package sqlite implements ports.TodoDatabase on an embedded SQLite file
// through database/sql and the pure-Go modernc.org/sqlite driver.
//
// Due dates are stored as RFC 3339 text in UTC. Filtering and paging run in
// SQL with the same semantics as todo.Paginate.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time check that Store implements ports.TodoDatabase.
var _ ports.TodoDatabase = (*Store)(nil)

const driverName = "sqlite"

const selectColumns = `SELECT id, title, description, due_date, done FROM todos`

// Options tunes the connection pool.
type Options struct {
	// MaxOpenConns caps open connections. Zero means unlimited, except for
	// in-memory databases which are always pinned to one connection.
	MaxOpenConns int
}

// Store is a SQLite-backed todo store.
type Store struct {
	db *sql.DB
}

// Open connects to the database at dsn and verifies the connection. It does
// not apply migrations; call Migrate for that.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	maxOpen := opts.MaxOpenConns
	if isInMemory(dsn) {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	return &Store{db: db}, nil
}

// FindByID returns the todo with the given id.
func (s *Store) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying todo %d: %w", id, err)
	}
	return t, nil
}

// Save inserts t and returns it with its new id.
func (s *Store) Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (title, description, due_date, done) VALUES (?, ?, ?, ?)`,
		t.Title, t.Description, todo.FormatDueDate(t.DueDate), t.Done,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted id: %w", err)
	}

	saved := *t
	saved.ID = id
	saved.DueDate = t.DueDate.UTC()
	return &saved, nil
}

// Replace deletes the row with t.ID and inserts t under the same id in one
// transaction.
func (s *Store) Replace(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, t.ID)
		if err != nil {
			return fmt.Errorf("deleting todo %d: %w", t.ID, err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO todos (id, title, description, due_date, done) VALUES (?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Description, todo.FormatDueDate(t.DueDate), t.Done,
		); err != nil {
			return fmt.Errorf("reinserting todo %d: %w", t.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	replaced := *t
	replaced.DueDate = t.DueDate.UTC()
	return &replaced, nil
}

// DeleteByID removes the todo with the given id.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return requireAffected(res)
}

// FindAll returns every todo in id order.
func (s *Store) FindAll(ctx context.Context) ([]todo.Todo, error) {
	return s.queryTodos(ctx, s.db, selectColumns+` ORDER BY id`)
}

// FindPage counts all rows and reads the requested page inside one
// transaction so the total and the items agree.
func (s *Store) FindPage(ctx context.Context, q todo.Query) (*todo.Page, error) {
	page := &todo.Page{Items: []todo.Todo{}}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&page.Total); err != nil {
			return fmt.Errorf("counting todos: %w", err)
		}
		if page.Total == 0 || q.Limit == 0 {
			return nil
		}

		var b strings.Builder
		b.WriteString(selectColumns)
		if q.State == todo.StateUnfinished {
			b.WriteString(` WHERE done = 0`)
		}
		b.WriteString(` ORDER BY id LIMIT ? OFFSET ?`)

		items, err := s.queryTodos(ctx, tx, b.String(), q.Limit, q.Start())
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

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) queryTodos(ctx context.Context, q querier, query string, args ...any) ([]todo.Todo, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	todos, err := scanTodos(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning todos: %w", err)
	}
	return todos, nil
}

// inTx runs fn in a transaction, committing on nil and rolling back
// otherwise.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isInMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
