package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homechores/chorelog/internal/domain/entity"
	"github.com/homechores/chorelog/internal/domain/repository"
)

// In-memory repositories. They mirror the postgres contracts: copies out,
// ErrNotFound on misses, DuplicateError on unique collisions.

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return &repository.DuplicateError{Field: "email"}
		}
		if ex.Username == u.Username {
			return &repository.DuplicateError{Field: "username"}
		}
	}
	u.ID = uuid.NewString()
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool {
		return u.Email == strings.ToLower(identifier) || u.Username == identifier
	})
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == strings.ToLower(email) })
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

var errWriteBack = errors.New("write-back failed")

type fakeTaskRepo struct {
	tasks map[string]*entity.Task
	order []string

	failSetLastCompleted bool
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*entity.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *entity.Task) error {
	t.ID = uuid.NewString()
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	f.tasks[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) ListByCreator(_ context.Context, userID string) ([]entity.Task, error) {
	out := make([]entity.Task, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		t, ok := f.tasks[f.order[i]]
		if ok && t.CreatedBy == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *entity.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) SetLastCompleted(_ context.Context, id string, ts time.Time) error {
	if f.failSetLastCompleted {
		return errWriteBack
	}
	t, ok := f.tasks[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.LastCompletedDate = &ts
	t.UpdatedAt = time.Now()
	return nil
}

type fakeExecutionRepo struct {
	execs []*entity.TaskExecution
	tasks *fakeTaskRepo
	users map[string]entity.UserSummary
}

func newFakeExecutionRepo(tasks *fakeTaskRepo) *fakeExecutionRepo {
	return &fakeExecutionRepo{tasks: tasks, users: make(map[string]entity.UserSummary)}
}

func (f *fakeExecutionRepo) Create(_ context.Context, e *entity.TaskExecution) error {
	e.ID = uuid.NewString()
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	f.execs = append(f.execs, &cp)
	return nil
}

func (f *fakeExecutionRepo) GetByID(_ context.Context, id string) (*entity.TaskExecution, error) {
	for _, e := range f.execs {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeExecutionRepo) ListByExecutor(_ context.Context, userID string) ([]entity.ExecutionDetail, error) {
	return f.list(func(e *entity.TaskExecution) bool { return e.ExecutedBy == userID })
}

func (f *fakeExecutionRepo) ListByTask(_ context.Context, taskID string) ([]entity.ExecutionDetail, error) {
	return f.list(func(e *entity.TaskExecution) bool { return e.TaskID == taskID })
}

func (f *fakeExecutionRepo) list(match func(*entity.TaskExecution) bool) ([]entity.ExecutionDetail, error) {
	out := make([]entity.ExecutionDetail, 0)
	for _, e := range f.execs {
		if !match(e) {
			continue
		}
		d := entity.ExecutionDetail{
			ID:             e.ID,
			Executor:       f.users[e.ExecutedBy],
			CompletionDate: e.CompletionDate,
			Note:           e.Note,
			Rating:         e.Rating,
			CreatedAt:      e.CreatedAt,
			UpdatedAt:      e.UpdatedAt,
		}
		if f.tasks != nil {
			if t, ok := f.tasks.tasks[e.TaskID]; ok {
				d.Task = &entity.TaskSummary{
					ID:         t.ID,
					Name:       t.Name,
					Frequency:  t.Frequency,
					Difficulty: t.Difficulty,
				}
			}
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletionDate.After(out[j].CompletionDate)
	})
	return out, nil
}

func (f *fakeExecutionRepo) Update(_ context.Context, e *entity.TaskExecution) error {
	for _, ex := range f.execs {
		if ex.ID == e.ID {
			cp := *e
			*ex = cp
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.UserRepository          = (*fakeUserRepo)(nil)
	_ repository.TaskRepository          = (*fakeTaskRepo)(nil)
	_ repository.TaskExecutionRepository = (*fakeExecutionRepo)(nil)
)
