package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/epicplan/planner/internal/domain"
)

const taskColumns = "id, title, description, tag, status, date, created_at, updated_at"

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	var status string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Tag, &status, &t.Date, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.TaskStatus(status)
	t.Date = asDatePtr(t.Date)
	return t, nil
}

func (s *Store) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.pool.Query(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, title, description, tag, status, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taskColumns,
		task.ID, task.Title, task.Description, task.Tag, string(task.Status), task.Date, task.CreatedAt)

	saved, err := scanTask(row)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return saved, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (domain.Task, error) {
	// CASE keeps unset fields untouched; ClearDate wins over Date.
	row := s.pool.QueryRow(ctx, `
		UPDATE tasks SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			tag = COALESCE($4, tag),
			status = COALESCE($5, status),
			date = CASE
				WHEN $7 THEN NULL
				WHEN $6::date IS NOT NULL THEN $6::date
				ELSE date
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, update.Title, update.Description, update.Tag, (*string)(update.Status), update.Date, update.ClearDate)

	saved, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return saved, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
