package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/todotitans/todoapp/internal/controllers"
	"github.com/todotitans/todoapp/internal/models"
	"github.com/todotitans/todoapp/internal/services"
	"github.com/todotitans/todoapp/internal/viewmodel"
)

// APIHandler exposes the app's screens over HTTP.
type APIHandler struct {
	app *App
}

func NewAPIHandler(app *App) *APIHandler {
	return &APIHandler{
		app: app,
	}
}

// Register wires the routes onto the echo instance.
func (h *APIHandler) Register(e *echo.Echo) {
	e.POST("/api/session", h.SignIn)
	e.GET("/api/session", h.Resume)
	e.DELETE("/api/session", h.SignOut)

	e.GET("/api/home", h.Home)
	e.POST("/api/calendar", h.OpenCalendar)
	e.POST("/api/tasks", h.CreateTask)
	e.PUT("/api/tasks/:id/status", h.SetTaskStatus)
	e.POST("/api/tasks/:id/selection", h.ToggleSelection)
	e.DELETE("/api/tasks/selected", h.RemoveSelected)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTaskRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DueDate       string `json:"dueDate"`
	PriorityLevel string `json:"priorityLevel"`
}

type setStatusRequest struct {
	Completed bool `json:"completed"`
}

// taskItem is a task plus its transient selection flag.
type taskItem struct {
	models.Task
	Selected bool `json:"selected"`
}

func (h *APIHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, h.respond(map[string]any{
			"error": "invalid request body",
		}))
	}

	userID, err := h.app.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		code := http.StatusUnauthorized
		if errors.Is(err, controllers.ErrMissingCredentials) {
			code = http.StatusBadRequest
		}
		return c.JSON(code, h.respond(map[string]any{
			"error": err.Error(),
		}))
	}

	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"userId":   userID,
		"redirect": "/home",
	}))
}

func (h *APIHandler) Resume(c echo.Context) error {
	userID, ok := h.app.Resume(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, h.respond(map[string]any{
			"authenticated": false,
		}))
	}

	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"authenticated": true,
		"userId":        userID,
		"redirect":      "/home",
	}))
}

func (h *APIHandler) SignOut(c echo.Context) error {
	h.app.SignOut(c.Request().Context())
	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"redirect": "/signin",
	}))
}

func (h *APIHandler) Home(c echo.Context) error {
	home := h.app.Home()
	if home == nil {
		return c.JSON(http.StatusUnauthorized, h.respond(map[string]any{
			"error":    "not signed in",
			"redirect": "/signin",
		}))
	}

	list := home.Tasks()
	tasks := list.Tasks()
	items := make([]taskItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{Task: *t, Selected: list.IsSelected(t.ID)})
	}

	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"userName": home.DisplayName(),
		"month":    home.MonthLabel(),
		"days":     home.DateStrip(),
		"tasks":    items,
	}))
}

// OpenCalendar routes to the calendar screen. The screen itself is plain
// client-side rendering; the shell only validates that a user is signed in.
func (h *APIHandler) OpenCalendar(c echo.Context) error {
	if h.app.Home() == nil {
		return c.JSON(http.StatusUnauthorized, h.respond(map[string]any{
			"error":    "not signed in",
			"redirect": "/signin",
		}))
	}
	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"redirect": "/calendar",
	}))
}

func (h *APIHandler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, h.respond(map[string]any{
			"error": "invalid request body",
		}))
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, h.respond(map[string]any{
			"error": "task title is required",
		}))
	}

	task, err := h.app.CreateTask(c.Request().Context(), req.Title, req.Description, req.DueDate, req.PriorityLevel)
	if err != nil {
		if errors.Is(err, services.ErrNoSession) {
			return c.JSON(http.StatusUnauthorized, h.respond(map[string]any{
				"error":    "not signed in",
				"redirect": "/signin",
			}))
		}
		return c.JSON(http.StatusInternalServerError, h.respond(map[string]any{
			"error": err.Error(),
		}))
	}

	return c.JSON(http.StatusCreated, h.respond(map[string]any{
		"task": task,
	}))
}

func (h *APIHandler) SetTaskStatus(c echo.Context) error {
	home := h.app.Home()
	if home == nil {
		return c.JSON(http.StatusUnauthorized, h.respond(map[string]any{
			"error":    "not signed in",
			"redirect": "/signin",
		}))
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, h.respond(map[string]any{
			"error": "invalid request body",
		}))
	}

	if err := home.Tasks().SetStatus(c.Request().Context(), c.Param("id"), req.Completed); err != nil {
		if errors.Is(err, viewmodel.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, h.respond(map[string]any{
				"error": "task not found",
			}))
		}
		return c.JSON(http.StatusInternalServerError, h.respond(map[string]any{
			"error": err.Error(),
		}))
	}

	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"status": "ok",
	}))
}

func (h *APIHandler) ToggleSelection(c echo.Context) error {
	home := h.app.Home()
	if home == nil {
		return c.JSON(http.StatusUnauthorized, h.respond(map[string]any{
			"error":    "not signed in",
			"redirect": "/signin",
		}))
	}

	selected, err := home.Tasks().ToggleSelection(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, h.respond(map[string]any{
			"error": "task not found",
		}))
	}

	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"selected": selected,
	}))
}

func (h *APIHandler) RemoveSelected(c echo.Context) error {
	home := h.app.Home()
	if home == nil {
		return c.JSON(http.StatusUnauthorized, h.respond(map[string]any{
			"error":    "not signed in",
			"redirect": "/signin",
		}))
	}

	home.RemoveSelected(c.Request().Context())
	return c.JSON(http.StatusOK, h.respond(map[string]any{
		"status": "ok",
	}))
}

// respond attaches the drained notification feed to every response body.
func (h *APIHandler) respond(body map[string]any) map[string]any {
	body["notices"] = h.app.Notices().Drain()
	return body
}
