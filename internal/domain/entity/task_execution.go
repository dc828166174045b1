package entity

import (
	"strings"
	"time"

	"github.com/homechores/chorelog/pkg/validation"
)

// TaskExecution records that a task was performed: by whom, when, and with
// optional qualitative feedback. The executor is not necessarily the task's
// creator. TaskID may reference a task that was deleted afterwards.
type TaskExecution struct {
	ID             string    `json:"id"`
	TaskID         string    `json:"task" validate:"required"`
	ExecutedBy     string    `json:"executedBy"`
	CompletionDate time.Time `json:"completionDate"`
	Note           string    `json:"note,omitempty" validate:"max=500"`
	Rating         *int      `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (e *TaskExecution) Normalize() {
	e.Note = strings.TrimSpace(e.Note)
	if e.CompletionDate.IsZero() {
		e.CompletionDate = time.Now()
	}
}

// Validate returns every violated field constraint, nil when valid.
func (e *TaskExecution) Validate() []string {
	return validation.Struct(e)
}

// TaskSummary is the read-side projection of a task embedded in execution
// listings. Nil when the task has been deleted since the execution was logged.
type TaskSummary struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Frequency  Frequency  `json:"frequency"`
	Difficulty Difficulty `json:"difficulty"`
}

// UserSummary is the read-side projection of the executing user.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ExecutionDetail is an execution enriched with its task and executor
// summaries. It is assembled by a join at read time, not stored; Task is nil
// when the referenced task has been deleted.
type ExecutionDetail struct {
	ID             string       `json:"id"`
	Task           *TaskSummary `json:"task"`
	Executor       UserSummary  `json:"executedBy"`
	CompletionDate time.Time    `json:"completionDate"`
	Note           string       `json:"note,omitempty"`
	Rating         *int         `json:"rating,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
