package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/homechores/chorelog/internal/domain/entity"
	"github.com/homechores/chorelog/internal/domain/repository"
	"github.com/homechores/chorelog/pkg/helpers"
)

// ExecutionService owns the completion-history ledger. Logging a completion
// writes the execution record and then propagates the completion timestamp
// back onto the task's lastCompletedDate.
type ExecutionService struct {
	Executions repository.TaskExecutionRepository
	Tasks      repository.TaskRepository
	Events     *helpers.RabbitPublisher // optional, nil disables publishing
	Logger     *logrus.Logger
}

func NewExecutionService(executions repository.TaskExecutionRepository, tasks repository.TaskRepository, events *helpers.RabbitPublisher, logger *logrus.Logger) *ExecutionService {
	return &ExecutionService{Executions: executions, Tasks: tasks, Events: events, Logger: logger}
}

// ExecutionLoggedEvent is published to the events queue after a completion is
// fully recorded.
type ExecutionLoggedEvent struct {
	ExecutionID    string    `json:"executionId"`
	TaskID         string    `json:"taskId"`
	ExecutedBy     string    `json:"executedBy"`
	CompletionDate time.Time `json:"completionDate"`
}

type LogExecutionInput struct {
	TaskID string
	Note   string
	Rating *int
}

// Log records a completion of an existing task. Any authenticated household
// member may log an execution for any task; the executor is always the
// caller, never the task's creator by implication.
//
// The execution insert and the task timestamp write-back are two separate
// writes. If the second fails the persisted execution is returned inside a
// PartialWriteError so the caller can see the ledger and the task disagree.
func (s *ExecutionService) Log(ctx context.Context, userID string, in LogExecutionInput) (*entity.TaskExecution, error) {
	if _, err := uuid.Parse(in.TaskID); err != nil {
		return nil, ErrInvalidID
	}
	task, err := s.Tasks.GetByID(ctx, in.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e := &entity.TaskExecution{
		TaskID:     task.ID,
		ExecutedBy: userID,
		Note:       in.Note,
		Rating:     in.Rating,
	}
	e.Normalize()
	if msgs := e.Validate(); msgs != nil {
		return nil, &ValidationError{Messages: msgs}
	}

	if err := s.Executions.Create(ctx, e); err != nil {
		return nil, err
	}

	if err := s.Tasks.SetLastCompleted(ctx, task.ID, e.CompletionDate); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"execution_id": e.ID,
				"task_id":      task.ID,
			}).Error("lastCompletedDate write-back failed after execution insert")
		}
		return e, &PartialWriteError{Execution: e, Err: err}
	}

	s.publishLogged(ctx, e)
	return e, nil
}

func (s *ExecutionService) publishLogged(ctx context.Context, e *entity.TaskExecution) {
	if s.Events == nil {
		return
	}
	ev := ExecutionLoggedEvent{
		ExecutionID:    e.ID,
		TaskID:         e.TaskID,
		ExecutedBy:     e.ExecutedBy,
		CompletionDate: e.CompletionDate,
	}
	if err := s.Events.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("execution_id", e.ID).Warn("execution event publish failed")
	}
}

// ListMine returns the caller's executions, newest completion first, enriched
// with task and executor summaries.
func (s *ExecutionService) ListMine(ctx context.Context, userID string) ([]entity.ExecutionDetail, error) {
	return s.Executions.ListByExecutor(ctx, userID)
}

// ListForTask returns every execution of the task regardless of executor,
// newest completion first. Household-shared visibility.
func (s *ExecutionService) ListForTask(ctx context.Context, taskID string) ([]entity.ExecutionDetail, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrInvalidID
	}
	return s.Executions.ListByTask(ctx, taskID)
}

type AmendInput struct {
	Note   string
	Rating *int
}

// Amend overwrites note and rating wholesale. Only the user who logged the
// execution may amend it.
func (s *ExecutionService) Amend(ctx context.Context, userID, executionID string, in AmendInput) (*entity.TaskExecution, error) {
	if _, err := uuid.Parse(executionID); err != nil {
		return nil, ErrInvalidID
	}
	e, err := s.Executions.GetByID(ctx, executionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if e.ExecutedBy != userID {
		return nil, ErrForbidden
	}

	e.Note = strings.TrimSpace(in.Note)
	e.Rating = in.Rating
	if msgs := e.Validate(); msgs != nil {
		return nil, &ValidationError{Messages: msgs}
	}
	if err := s.Executions.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
