package todos

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/todoquest-go/apperror"
	"github.com/user/todoquest-go/auth"
	"github.com/user/todoquest-go/logging"
)

// MsgNotFound is returned for missing todos and for todos owned by someone else alike.
const MsgNotFound = "Todo not found"

// Handler serves the /todos routes. It must be mounted behind auth.RequireSession.
type Handler struct {
	service *Service
	log     logging.Logger
}

func NewHandler(service *Service, log logging.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes registers the todo API routes with a `chi.Router`.
// Mounting happens in the server package, e.g. r.Route("/todos", h.RegisterRoutes).
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Get("/stats", h.stats)
	router.Put("/{id}", h.toggle)
	router.Delete("/{id}", h.remove)
}

// list godoc
// @Summary List the caller's todos
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive match on text or description"
// @Param status query string false "all, active or completed"
// @Success 200 {array} todos.Todo
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse "No token provided / Invalid token"
// @Failure 500 {object} apperror.ErrorResponse "Database error"
// @Router /todos [get]
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	status := Status(r.URL.Query().Get("status"))
	switch status {
	case "", StatusAll, StatusActive, StatusCompleted:
	default:
		auth.WriteError(w, r, apperror.NewBadRequestError("status must be all, active or completed", nil))
		return
	}

	list, err := h.service.List(r.Context(), p.UserID, ListFilter{Search: r.URL.Query().Get("search"), Status: status})
	if err != nil {
		h.fail(w, r, "list todos", err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}

// create godoc
// @Summary Add a todo
// @Tags Todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param todo body todos.CreateTodoRequest true "New todo"
// @Success 200 {object} todos.CreateTodoResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /todos [post]
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req CreateTodoRequest
	if err := auth.DecodeJSON(w, r, &req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError(auth.MsgInvalidBody, err))
		return
	}

	t, err := h.service.Create(r.Context(), p.UserID, req)
	if err != nil {
		h.fail(w, r, "create todo", err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, CreateTodoResponse{Success: true, TodoID: t.ID})
}

// toggle godoc
// @Summary Toggle completion of a todo
// @Description Completing a todo adds one to its reward; un-completing leaves the reward unchanged.
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 200 {object} todos.ToggleTodoResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Todo not found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /todos/{id} [put]
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	t, err := h.service.Toggle(r.Context(), p.UserID, id)
	if err != nil {
		h.fail(w, r, "toggle todo", err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, ToggleTodoResponse{Success: true, Completed: t.Completed, Reward: t.Reward})
}

// remove godoc
// @Summary Delete a todo
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 200 {object} auth.SuccessResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Todo not found"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /todos/{id} [delete]
func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), p.UserID, id); err != nil {
		h.fail(w, r, "delete todo", err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, auth.SuccessResponse{Success: true})
}

// stats godoc
// @Summary Stars and level of the caller
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} todos.Stats
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /todos/stats [get]
func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	st, err := h.service.Stats(r.Context(), p.UserID)
	if err != nil {
		h.fail(w, r, "todo stats", err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, st)
}

func principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError(auth.MsgNoToken, auth.ErrMissingToken))
	}
	return p, ok
}

func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		// A non-numeric id can never name one of the caller's todos.
		auth.WriteError(w, r, apperror.NewNotFoundError(MsgNotFound, err))
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var appErr *apperror.AppError
	switch {
	case errors.Is(err, ErrNotFound):
		appErr = apperror.NewNotFoundError(MsgNotFound, err)
	case errors.Is(err, ErrInvalidTodo):
		appErr = apperror.NewValidationError(err.Error(), err)
	case errors.Is(err, auth.ErrStorageUnavailable):
		appErr = apperror.NewDatabaseError(auth.MsgDatabaseError, err)
	default:
		appErr = apperror.NewInternalError("Internal server error", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.log.Error(r.Context(), op+" failed", "kind", appErr.Type.String(), "error", err)
	}
	auth.WriteError(w, r, appErr)
}
