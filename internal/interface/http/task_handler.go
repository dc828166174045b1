package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homechores/chorelog/internal/application"
	"github.com/homechores/chorelog/internal/interface/middleware"
	"github.com/homechores/chorelog/pkg/response"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Name       string `json:"name"`
	Frequency  string `json:"frequency"`
	Difficulty string `json:"difficulty"`
}

// Pointer fields make "absent" distinguishable from "zero": absent fields keep
// their prior value on update.
type updateTaskRequest struct {
	Name              *string    `json:"name"`
	Frequency         *string    `json:"frequency"`
	Difficulty        *string    `json:"difficulty"`
	Status            *string    `json:"status"`
	NextDueDate       *time.Time `json:"nextDueDate"`
	LastCompletedDate *time.Time `json:"lastCompletedDate"`
}

// Create POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid payload")
		return
	}

	task, err := h.Svc.Create(c.Request.Context(), uid, application.CreateTaskInput{
		Name:       req.Name,
		Frequency:  req.Frequency,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.MessageWith(c, http.StatusCreated, "task created successfully", "task", task)
}

// List GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	tasks, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		internalError(c, h.Logger, err, "list tasks failed")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Get GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	task, err := h.Svc.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Update PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid payload")
		return
	}

	task, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), application.UpdateTaskInput{
		Name:              req.Name,
		Frequency:         req.Frequency,
		Difficulty:        req.Difficulty,
		Status:            req.Status,
		NextDueDate:       req.NextDueDate,
		LastCompletedDate: req.LastCompletedDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.MessageWith(c, http.StatusOK, "task updated successfully", "task", task)
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "task removed successfully")
}

// respondError maps domain errors to the API contract. The ownership check
// runs before disclosure, so a 403 never confirms anything beyond existence.
func (h *TaskHandler) respondError(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.Is(err, application.ErrInvalidID):
		response.Message(c, http.StatusBadRequest, "invalid task id")
	case errors.Is(err, application.ErrNotFound):
		response.Message(c, http.StatusNotFound, "task not found")
	case errors.Is(err, application.ErrForbidden):
		response.Message(c, http.StatusForbidden, "not authorized to access this task")
	case errors.As(err, &verr):
		response.Message(c, http.StatusBadRequest, verr.Error())
	default:
		internalError(c, h.Logger, err, "task operation failed")
	}
}
