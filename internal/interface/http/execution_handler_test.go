package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/homechores/chorelog/internal/application"
	"github.com/homechores/chorelog/internal/domain/entity"
	"github.com/homechores/chorelog/internal/domain/repository"
)

func executionRouter(tasks repository.TaskRepository, execs *memExecutionRepo, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewExecutionHandler(application.NewExecutionService(execs, tasks, nil, nil), testLogger())

	r := gin.New()
	g := r.Group("/api/tasks-executions", asUser(uid))
	g.POST("", h.Log)
	g.GET("", h.ListMine)
	g.GET("/task/:taskId", h.ListForTask)
	g.PUT("/:id", h.Amend)
	return r
}

func seedTask(t *testing.T, repo *memTaskRepo, name, createdBy string) *entity.Task {
	t.Helper()
	task := &entity.Task{Name: name, CreatedBy: createdBy}
	task.Normalize()
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestExecutionLogEndpoint(t *testing.T) {
	tasks := newMemTaskRepo()
	execs := &memExecutionRepo{tasks: tasks}
	task := seedTask(t, tasks, "Limpar banheiro", aliceID)

	// Bob logs a completion of Alice's task; the ledger is household-wide.
	r := executionRouter(tasks, execs, bobID)
	w := serve(r, http.MethodPost, "/api/tasks-executions", jsonBody(t, gin.H{
		"taskId": task.ID,
		"note":   "Banheiro limpo e brilhando!",
		"rating": 5,
	}))
	mustStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	if body["message"] != "task execution logged successfully" {
		t.Errorf("message = %v", body["message"])
	}
	exec, _ := body["execution"].(map[string]any)
	if exec["executedBy"] != bobID {
		t.Errorf("executedBy = %v", exec["executedBy"])
	}
	if exec["task"] != task.ID {
		t.Errorf("task = %v, want %v", exec["task"], task.ID)
	}

	got, err := tasks.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.LastCompletedDate == nil {
		t.Error("lastCompletedDate not written back")
	}
}

func TestExecutionLogEndpointErrors(t *testing.T) {
	tasks := newMemTaskRepo()
	execs := &memExecutionRepo{tasks: tasks}
	r := executionRouter(tasks, execs, aliceID)

	cases := []struct {
		name    string
		payload gin.H
		status  int
		message string
	}{
		{"malformed task id", gin.H{"taskId": "nope"}, http.StatusBadRequest, "invalid task id"},
		{"unknown task", gin.H{"taskId": "33333333-3333-3333-3333-333333333333"}, http.StatusNotFound, "task not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, http.MethodPost, "/api/tasks-executions", jsonBody(t, tc.payload))
			mustStatus(t, w, tc.status)
			if msg := decodeBody(t, w)["message"]; msg != tc.message {
				t.Errorf("message = %v, want %q", msg, tc.message)
			}
		})
	}
}

func TestExecutionLogEndpointPartialWrite(t *testing.T) {
	tasks := newMemTaskRepo()
	execs := &memExecutionRepo{tasks: tasks}
	task := seedTask(t, tasks, "Lavar louça", aliceID)

	r := executionRouter(&failingTaskRepo{tasks}, execs, aliceID)
	w := serve(r, http.MethodPost, "/api/tasks-executions", jsonBody(t, gin.H{"taskId": task.ID}))

	// Not plain success: the execution exists but the task was not updated.
	mustStatus(t, w, http.StatusInternalServerError)
	if msg := decodeBody(t, w)["message"]; msg != "execution recorded but task update failed" {
		t.Errorf("message = %v", msg)
	}
	if len(execs.execs) != 1 {
		t.Errorf("expected the execution to be persisted, have %d", len(execs.execs))
	}
}

func TestExecutionListEndpoints(t *testing.T) {
	tasks := newMemTaskRepo()
	execs := &memExecutionRepo{tasks: tasks}
	task := seedTask(t, tasks, "Tirar o lixo", aliceID)

	alice := executionRouter(tasks, execs, aliceID)
	bob := executionRouter(tasks, execs, bobID)

	mustStatus(t, serve(alice, http.MethodPost, "/api/tasks-executions", jsonBody(t, gin.H{"taskId": task.ID, "note": "da alice"})), http.StatusCreated)
	mustStatus(t, serve(bob, http.MethodPost, "/api/tasks-executions", jsonBody(t, gin.H{"taskId": task.ID, "note": "do bob"})), http.StatusCreated)

	// ListMine is scoped to the caller.
	w := serve(alice, http.MethodGet, "/api/tasks-executions", nil)
	mustStatus(t, w, http.StatusOK)
	var mine []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(mine) != 1 || mine[0]["note"] != "da alice" {
		t.Errorf("expected only the caller's executions, got %v", mine)
	}
	if taskObj, _ := mine[0]["task"].(map[string]any); taskObj == nil || taskObj["name"] != "Tirar o lixo" {
		t.Errorf("expected an embedded task summary, got %v", mine[0]["task"])
	}

	// ListForTask sees every member's executions.
	w = serve(alice, http.MethodGet, "/api/tasks-executions/task/"+task.ID, nil)
	mustStatus(t, w, http.StatusOK)
	var all []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 executions, got %d", len(all))
	}

	w = serve(alice, http.MethodGet, "/api/tasks-executions/task/not-a-uuid", nil)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestExecutionAmendEndpoint(t *testing.T) {
	tasks := newMemTaskRepo()
	execs := &memExecutionRepo{tasks: tasks}
	task := seedTask(t, tasks, "Limpar banheiro", aliceID)

	alice := executionRouter(tasks, execs, aliceID)
	bob := executionRouter(tasks, execs, bobID)

	w := serve(bob, http.MethodPost, "/api/tasks-executions", jsonBody(t, gin.H{"taskId": task.ID, "note": "ok", "rating": 3}))
	mustStatus(t, w, http.StatusCreated)
	exec, _ := decodeBody(t, w)["execution"].(map[string]any)
	execID, _ := exec["id"].(string)

	// Only the executor may amend.
	w = serve(alice, http.MethodPut, "/api/tasks-executions/"+execID, jsonBody(t, gin.H{"note": "hijacked"}))
	mustStatus(t, w, http.StatusForbidden)
	if msg := decodeBody(t, w)["message"]; msg != "not authorized to update this execution" {
		t.Errorf("message = %v", msg)
	}

	w = serve(bob, http.MethodPut, "/api/tasks-executions/"+execID, jsonBody(t, gin.H{"note": "caprichei", "rating": 4}))
	mustStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if body["message"] != "note and rating updated successfully" {
		t.Errorf("message = %v", body["message"])
	}
	amended, _ := body["execution"].(map[string]any)
	if amended["note"] != "caprichei" {
		t.Errorf("note = %v", amended["note"])
	}

	w = serve(bob, http.MethodPut, "/api/tasks-executions/not-a-uuid", jsonBody(t, gin.H{"note": "x"}))
	mustStatus(t, w, http.StatusBadRequest)
	w = serve(bob, http.MethodPut, "/api/tasks-executions/33333333-3333-3333-3333-333333333333", jsonBody(t, gin.H{"note": "x"}))
	mustStatus(t, w, http.StatusNotFound)
}
