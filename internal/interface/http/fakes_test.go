package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/homechores/chorelog/internal/domain/entity"
	"github.com/homechores/chorelog/internal/domain/repository"
	"github.com/homechores/chorelog/internal/interface/middleware"
)

// Handlers are exercised through real services over in-memory repositories,
// with the auth middleware replaced by a stub that injects the caller id.

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func asUser(uid string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, uid) }
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type memUserRepo struct {
	users []*entity.User
}

func (f *memUserRepo) Create(_ context.Context, u *entity.User) error {
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

func (f *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ID == id })
}

func (f *memUserRepo) GetByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool {
		return u.Email == strings.ToLower(identifier) || u.Username == identifier
	})
}

func (f *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == strings.ToLower(email) })
}

func (f *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Username == username })
}

func (f *memUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memTaskRepo struct {
	tasks map[string]*entity.Task
	order []string
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*entity.Task)}
}

func (f *memTaskRepo) Create(_ context.Context, t *entity.Task) error {
	t.ID = uuid.NewString()
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	f.tasks[t.ID] = &cp
	f.order = append(f.order, t.ID)
	return nil
}

func (f *memTaskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *memTaskRepo) ListByCreator(_ context.Context, userID string) ([]entity.Task, error) {
	out := make([]entity.Task, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		if t, ok := f.tasks[f.order[i]]; ok && t.CreatedBy == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *memTaskRepo) Update(_ context.Context, t *entity.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *memTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *memTaskRepo) SetLastCompleted(_ context.Context, id string, ts time.Time) error {
	t, ok := f.tasks[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.LastCompletedDate = &ts
	t.UpdatedAt = time.Now()
	return nil
}

type memExecutionRepo struct {
	execs []*entity.TaskExecution
	tasks *memTaskRepo
}

func (f *memExecutionRepo) Create(_ context.Context, e *entity.TaskExecution) error {
	e.ID = uuid.NewString()
	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	f.execs = append(f.execs, &cp)
	return nil
}

func (f *memExecutionRepo) GetByID(_ context.Context, id string) (*entity.TaskExecution, error) {
	for _, e := range f.execs {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *memExecutionRepo) ListByExecutor(_ context.Context, userID string) ([]entity.ExecutionDetail, error) {
	return f.list(func(e *entity.TaskExecution) bool { return e.ExecutedBy == userID })
}

func (f *memExecutionRepo) ListByTask(_ context.Context, taskID string) ([]entity.ExecutionDetail, error) {
	return f.list(func(e *entity.TaskExecution) bool { return e.TaskID == taskID })
}

func (f *memExecutionRepo) list(match func(*entity.TaskExecution) bool) ([]entity.ExecutionDetail, error) {
	out := make([]entity.ExecutionDetail, 0)
	for _, e := range f.execs {
		if !match(e) {
			continue
		}
		d := entity.ExecutionDetail{
			ID:             e.ID,
			CompletionDate: e.CompletionDate,
			Note:           e.Note,
			Rating:         e.Rating,
			CreatedAt:      e.CreatedAt,
			UpdatedAt:      e.UpdatedAt,
		}
		if f.tasks != nil {
			if t, ok := f.tasks.tasks[e.TaskID]; ok {
				d.Task = &entity.TaskSummary{ID: t.ID, Name: t.Name, Frequency: t.Frequency, Difficulty: t.Difficulty}
			}
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletionDate.After(out[j].CompletionDate)
	})
	return out, nil
}

func (f *memExecutionRepo) Update(_ context.Context, e *entity.TaskExecution) error {
	for _, ex := range f.execs {
		if ex.ID == e.ID {
			cp := *e
			*ex = cp
			return nil
		}
	}
	return repository.ErrNotFound
}

// failingTaskRepo wraps memTaskRepo and fails the lastCompletedDate write-back.
type failingTaskRepo struct {
	*memTaskRepo
}

func (f *failingTaskRepo) SetLastCompleted(context.Context, string, time.Time) error {
	return context.DeadlineExceeded
}

var (
	_ repository.UserRepository          = (*memUserRepo)(nil)
	_ repository.TaskRepository          = (*memTaskRepo)(nil)
	_ repository.TaskRepository          = (*failingTaskRepo)(nil)
	_ repository.TaskExecutionRepository = (*memExecutionRepo)(nil)
)

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d: %s", w.Code, want, w.Body.String())
	}
}
