package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homechores/chorelog/internal/domain/entity"
	"github.com/homechores/chorelog/internal/domain/repository"
)

type TaskExecutionRepository struct {
	pool *pgxpool.Pool
}

func NewTaskExecutionRepository(pool *pgxpool.Pool) *TaskExecutionRepository {
	return &TaskExecutionRepository{pool: pool}
}

func (r *TaskExecutionRepository) Create(ctx context.Context, e *entity.TaskExecution) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO task_executions (task_id, executed_by, completion_date, note, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, e.TaskID, e.ExecutedBy, e.CompletionDate, e.Note, e.Rating)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *TaskExecutionRepository) GetByID(ctx context.Context, id string) (*entity.TaskExecution, error) {
	e := &entity.TaskExecution{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, task_id, executed_by, completion_date, note, rating, created_at, updated_at
		FROM task_executions
		WHERE id = $1
	`, id)
	if err := row.Scan(&e.ID, &e.TaskID, &e.ExecutedBy, &e.CompletionDate,
		&e.Note, &e.Rating, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// detailQuery enriches each execution with its task and executor summaries.
// The task join is LEFT because deleting a task keeps its history; the task
// summary then comes back nil.
const detailQuery = `
	SELECT e.id, e.completion_date, e.note, e.rating, e.created_at, e.updated_at,
	       t.id, t.name, t.frequency, t.difficulty,
	       u.id, u.name, u.username, u.email
	FROM task_executions e
	LEFT JOIN tasks t ON t.id = e.task_id
	JOIN users u ON u.id = e.executed_by
`

func (r *TaskExecutionRepository) ListByExecutor(ctx context.Context, userID string) ([]entity.ExecutionDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE e.executed_by = $1
		ORDER BY e.completion_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDetails(rows)
}

func (r *TaskExecutionRepository) ListByTask(ctx context.Context, taskID string) ([]entity.ExecutionDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE e.task_id = $1
		ORDER BY e.completion_date DESC
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDetails(rows)
}

func collectDetails(rows pgx.Rows) ([]entity.ExecutionDetail, error) {
	out := make([]entity.ExecutionDetail, 0)
	for rows.Next() {
		var (
			d        entity.ExecutionDetail
			taskID   *string
			taskName *string
			taskFreq *string
			taskDiff *string
		)
		if err := rows.Scan(&d.ID, &d.CompletionDate, &d.Note, &d.Rating, &d.CreatedAt, &d.UpdatedAt,
			&taskID, &taskName, &taskFreq, &taskDiff,
			&d.Executor.ID, &d.Executor.Name, &d.Executor.Username, &d.Executor.Email); err != nil {
			return nil, err
		}
		if taskID != nil {
			d.Task = &entity.TaskSummary{
				ID:         *taskID,
				Name:       *taskName,
				Frequency:  entity.Frequency(*taskFreq),
				Difficulty: entity.Difficulty(*taskDiff),
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *TaskExecutionRepository) Update(ctx context.Context, e *entity.TaskExecution) error {
	e.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE task_executions
		SET note = $1, rating = $2, updated_at = $3
		WHERE id = $4
	`, e.Note, e.Rating, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TaskExecutionRepository = (*TaskExecutionRepository)(nil)
