package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homechores/chorelog/internal/application"
	"github.com/homechores/chorelog/internal/interface/middleware"
	"github.com/homechores/chorelog/pkg/response"
)

type ExecutionHandler struct {
	Svc    *application.ExecutionService
	Logger *logrus.Logger
}

func NewExecutionHandler(svc *application.ExecutionService, logger *logrus.Logger) *ExecutionHandler {
	return &ExecutionHandler{Svc: svc, Logger: logger}
}

type logExecutionRequest struct {
	TaskID string `json:"taskId"`
	Note   string `json:"note"`
	Rating *int   `json:"rating"`
}

type amendExecutionRequest struct {
	Note   string `json:"note"`
	Rating *int   `json:"rating"`
}

// Log POST /api/tasks-executions
func (h *ExecutionHandler) Log(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req logExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid payload")
		return
	}

	exec, err := h.Svc.Log(c.Request.Context(), uid, application.LogExecutionInput{
		TaskID: req.TaskID,
		Note:   req.Note,
		Rating: req.Rating,
	})
	if err != nil {
		var verr *application.ValidationError
		var perr *application.PartialWriteError
		switch {
		case errors.Is(err, application.ErrInvalidID):
			response.Message(c, http.StatusBadRequest, "invalid task id")
		case errors.Is(err, application.ErrNotFound):
			response.Message(c, http.StatusNotFound, "task not found")
		case errors.As(err, &verr):
			response.Message(c, http.StatusBadRequest, verr.Error())
		case errors.As(err, &perr):
			// The execution exists but the task's lastCompletedDate was not
			// updated. Must never be reported as plain success.
			if h.Logger != nil {
				h.Logger.WithError(perr.Err).WithField("execution_id", perr.Execution.ID).Error("partial execution write")
			}
			response.Message(c, http.StatusInternalServerError, "execution recorded but task update failed")
		default:
			internalError(c, h.Logger, err, "log execution failed")
		}
		return
	}

	response.MessageWith(c, http.StatusCreated, "task execution logged successfully", "execution", exec)
}

// ListMine GET /api/tasks-executions
func (h *ExecutionHandler) ListMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	execs, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		internalError(c, h.Logger, err, "list executions failed")
		return
	}
	c.JSON(http.StatusOK, execs)
}

// ListForTask GET /api/tasks-executions/task/:taskId
// Household-shared visibility: every execution of the task, whoever logged it.
func (h *ExecutionHandler) ListForTask(c *gin.Context) {
	execs, err := h.Svc.ListForTask(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		if errors.Is(err, application.ErrInvalidID) {
			response.Message(c, http.StatusBadRequest, "invalid task id")
			return
		}
		internalError(c, h.Logger, err, "list executions by task failed")
		return
	}
	c.JSON(http.StatusOK, execs)
}

// Amend PUT /api/tasks-executions/:id
func (h *ExecutionHandler) Amend(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req amendExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "invalid payload")
		return
	}

	exec, err := h.Svc.Amend(c.Request.Context(), uid, c.Param("id"), application.AmendInput{
		Note:   req.Note,
		Rating: req.Rating,
	})
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.Is(err, application.ErrInvalidID):
			response.Message(c, http.StatusBadRequest, "invalid execution id")
		case errors.Is(err, application.ErrNotFound):
			response.Message(c, http.StatusNotFound, "execution not found")
		case errors.Is(err, application.ErrForbidden):
			response.Message(c, http.StatusForbidden, "not authorized to update this execution")
		case errors.As(err, &verr):
			response.Message(c, http.StatusBadRequest, verr.Error())
		default:
			internalError(c, h.Logger, err, "amend execution failed")
		}
		return
	}

	response.MessageWith(c, http.StatusOK, "note and rating updated successfully", "execution", exec)
}
