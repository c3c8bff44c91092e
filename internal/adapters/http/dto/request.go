package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// Request-shape violation codes, reported before any field rule runs.
const (
	CodeBodyInvalid = "BODY_INVALID"
	CodeIDInvalid   = "ID_INVALID"
)

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

var (
	violationBodyInvalid = domain.Violation{Code: CodeBodyInvalid, Message: "request body must be valid JSON"}
	violationIDInvalid   = domain.Violation{Code: CodeIDInvalid, Message: "id must be an integer"}
)

// TodoRequest is the JSON body of POST /todos and PUT /todos. ID is ignored
// on create. DueDate is kept raw so that a malformed value surfaces as
// DUEDATE_NULL instead of a decode error.
type TodoRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Done        bool   `json:"done"`
}

// ToTodo converts the request to a domain Todo. An absent or unparseable due
// date is flagged as missing.
func (r *TodoRequest) ToTodo() *todo.Todo {
	due, ok := todo.ParseDueDate(r.DueDate)
	return &todo.Todo{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		DueDate:        due,
		Done:           r.Done,
		DueDateMissing: !ok,
	}
}

// DecodeTodoRequest reads a TodoRequest from the request body. The body is
// limited to maxJSONBodyBytes. Malformed JSON yields a validation error
// carrying BODY_INVALID.
func DecodeTodoRequest(w http.ResponseWriter, r *http.Request) (*TodoRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	var req TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Join(
			domain.NewValidationError([]domain.Violation{violationBodyInvalid}),
			err,
		)
	}
	return &req, nil
}

// ParseID parses a path id. A non-integer yields a validation error carrying
// ID_INVALID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError([]domain.Violation{violationIDInvalid})
	}
	return id, nil
}

// ParseListQuery reads state, limit and offset from the query string and
// validates them with todo.ParseQuery.
func ParseListQuery(values url.Values) (todo.Query, error) {
	return todo.ParseQuery(values.Get("state"), values.Get("limit"), values.Get("offset"))
}
