package application

import (
	"errors"
	"strings"

	"github.com/homechores/chorelog/internal/domain/entity"
)

var (
	// ErrInvalidCredentials hides whether the identifier or the password was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is authenticated but not the owner.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidID means the identifier is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid id")
)

// ValidationError carries one message per violated field constraint. All
// violations are reported together, not just the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// DuplicateError reports which identity fields collided at registration.
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	return strings.Join(e.Fields, " and ") + " already registered"
}

// PartialWriteError reports that an execution was persisted but the follow-up
// write of the task's lastCompletedDate failed. The two writes are not
// transactional; this surfaces the inconsistency instead of masking it as
// success.
type PartialWriteError struct {
	Execution *entity.TaskExecution
	Err       error
}

func (e *PartialWriteError) Error() string {
	return "execution recorded but task update failed: " + e.Err.Error()
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
