package handlers

import (
	"errors"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// TodoHandler handles HTTP requests for todo CRUD and listing.
type TodoHandler struct {
	service ports.TodoService
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// GetTodo handles GET /todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	t, err := h.service.GetTodo(r.Context(), id)
	if err != nil {
		writeTodoError(w, r, id, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusOK, dto.ToTodoResponse(t))
}

// CreateTodo handles POST /todos. Any id in the body is ignored.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeTodoRequest(w, r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	t := req.ToTodo()
	t.ID = 0

	created, err := h.service.CreateTodo(r.Context(), t)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusCreated, dto.ToTodoResponse(created))
}

// UpdateTodo handles PUT /todos. The body identifies the todo by id and
// replaces it completely.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeTodoRequest(w, r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	updated, err := h.service.UpdateTodo(r.Context(), req.ToTodo())
	if err != nil {
		writeTodoError(w, r, req.ID, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusOK, dto.ToTodoResponse(updated))
}

// DeleteTodo handles DELETE /todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.service.DeleteTodo(r.Context(), id); err != nil {
		writeTodoError(w, r, id, err)
		return
	}

	dto.WriteJSON(w, r, http.StatusOK, dto.MessageResponse{Message: dto.MsgTodoDeleted})
}

// ListTodos handles GET /todos?state=&limit=&offset=. It answers 204 when
// nothing is stored and 206 with the page otherwise, even when the page is
// empty.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	q, err := dto.ParseListQuery(r.URL.Query())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	page, err := h.service.ListTodos(r.Context(), q)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if page.StoreEmpty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	dto.WriteJSON(w, r, http.StatusPartialContent, dto.ToTodoListResponse(page.Items))
}

// writeTodoError rewrites not-found errors so the body names the id.
func writeTodoError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		err = dto.TodoNotFound(id)
	}
	dto.WriteErrorResponse(w, r, err)
}
