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
)

// TaskService owns task records and enforces creator-based ownership on every
// read, update, and delete.
type TaskService struct {
	Tasks  repository.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(tasks repository.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Logger: logger}
}

type CreateTaskInput struct {
	Name       string
	Frequency  string
	Difficulty string
}

// Create stores a new task owned by the caller. Empty enum fields take their
// defaults; every violated constraint is reported in one ValidationError.
func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (*entity.Task, error) {
	t := &entity.Task{
		Name:       in.Name,
		Frequency:  entity.Frequency(in.Frequency),
		Difficulty: entity.Difficulty(in.Difficulty),
		CreatedBy:  userID,
	}
	t.Normalize()
	if msgs := t.Validate(); msgs != nil {
		return nil, &ValidationError{Messages: msgs}
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListMine returns only the caller's tasks, newest-created first.
func (s *TaskService) ListMine(ctx context.Context, userID string) ([]entity.Task, error) {
	return s.Tasks.ListByCreator(ctx, userID)
}

// Get resolves a task and applies the ownership check before disclosing
// anything about it. The check is identical for Get, Update, and Delete:
// task.CreatedBy must equal the caller.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*entity.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrInvalidID
	}
	t, err := s.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return t, nil
}

type UpdateTaskInput struct {
	Name              *string
	Frequency         *string
	Difficulty        *string
	Status            *string
	NextDueDate       *time.Time
	LastCompletedDate *time.Time
}

// Update applies only the fields present in the input; nil pointers keep the
// prior value. The task is re-validated before saving and CreatedBy is never
// touched.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, in UpdateTaskInput) (*entity.Task, error) {
	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Frequency != nil {
		t.Frequency = entity.Frequency(*in.Frequency)
	}
	if in.Difficulty != nil {
		t.Difficulty = entity.Difficulty(*in.Difficulty)
	}
	if in.Status != nil {
		t.Status = entity.Status(*in.Status)
	}
	if in.NextDueDate != nil {
		t.NextDueDate = in.NextDueDate
	}
	if in.LastCompletedDate != nil {
		t.LastCompletedDate = in.LastCompletedDate
	}

	if msgs := t.Validate(); msgs != nil {
		return nil, &ValidationError{Messages: msgs}
	}
	if err := s.Tasks.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Delete removes the task permanently. Executions referencing it are left in
// place; the ledger tolerates orphaned references.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.Tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"task_id": taskID, "user_id": userID}).Info("task deleted")
	}
	return nil
}
