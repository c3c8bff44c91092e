package sqlite

import (
	"fmt"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// rows is the subset of *sql.Rows used for iteration.
type rows interface {
	scanner
	Next() bool
	Err() error
}

func scanTodo(sc scanner) (*todo.Todo, error) {
	var (
		t       todo.Todo
		dueDate string
	)
	if err := sc.Scan(&t.ID, &t.Title, &t.Description, &dueDate, &t.Done); err != nil {
		return nil, err
	}

	d, err := time.Parse(time.RFC3339Nano, dueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing due_date of todo %d: %w", t.ID, err)
	}
	t.DueDate = d.UTC()

	return &t, nil
}

func scanTodos(rs rows) ([]todo.Todo, error) {
	todos := []todo.Todo{}
	for rs.Next() {
		t, err := scanTodo(rs)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *t)
	}
	if err := rs.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}
