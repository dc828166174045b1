package repository

import (
	"context"
	"time"

	"github.com/homechores/chorelog/internal/domain/entity"
)

// UserRepository defines the storage operations for user identity records.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIdentifier matches either the (lowercased) email or the exact
	// username. Used for both login and duplicate checking.
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

// TaskRepository defines the storage operations for task records.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	// ListByCreator returns the creator's tasks, newest-created first.
	ListByCreator(ctx context.Context, userID string) ([]entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
	// SetLastCompleted writes the denormalized completion timestamp onto the
	// task without touching any other field.
	SetLastCompleted(ctx context.Context, id string, ts time.Time) error
}

// TaskExecutionRepository defines the storage operations for the execution
// history ledger.
type TaskExecutionRepository interface {
	Create(ctx context.Context, e *entity.TaskExecution) error
	GetByID(ctx context.Context, id string) (*entity.TaskExecution, error)
	// ListByExecutor returns the user's executions newest-completion first,
	// enriched with task and executor summaries.
	ListByExecutor(ctx context.Context, userID string) ([]entity.ExecutionDetail, error)
	// ListByTask returns every execution of the task regardless of executor,
	// newest-completion first, enriched with summaries.
	ListByTask(ctx context.Context, taskID string) ([]entity.ExecutionDetail, error)
	// Update overwrites note and rating.
	Update(ctx context.Context, e *entity.TaskExecution) error
}
