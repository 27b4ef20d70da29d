package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
)

type tasksRepo struct {
	db db
}

const taskColumns = `id, project_id, user_id, assigned_to, title, description,
	status, priority, due_date, estimated_hours, actual_hours, created_at, updated_at`

func scanTask(row interface{ Scan(dest ...any) error }) (domain.Task, error) {
	var (
		t              domain.Task
		assignedTo     sql.NullString
		dueDate        sql.NullTime
		estimatedHours sql.NullFloat64
		actualHours    sql.NullFloat64
	)
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.UserID,
		&assignedTo,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&dueDate,
		&estimatedHours,
		&actualHours,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	t.AssignedTo = mapNullStringPtr(assignedTo)
	t.DueDate = mapNullTimePtr(dueDate)
	t.EstimatedHours = mapNullFloatPtr(estimatedHours)
	t.ActualHours = mapNullFloatPtr(actualHours)
	return t, nil
}

func (r *tasksRepo) ListTasks(ctx context.Context, f store.TaskFilter) ([]domain.Task, error) {
	var (
		where []string
		args  []any
	)
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if f.ProjectID != "" {
		where = append(where, `project_id = ?`)
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		where = append(where, `status = ?`)
		args = append(args, string(f.Status))
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, project_id, user_id, assigned_to, title, description,
		    status, priority, due_date, estimated_hours, actual_hours, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.UserID, mapOptionalString(t.AssignedTo), t.Title,
		t.Description, string(t.Status), string(t.Priority), mapOptionalTime(t.DueDate),
		mapOptionalFloat(t.EstimatedHours), mapOptionalFloat(t.ActualHours),
		t.CreatedAt, t.UpdatedAt)
	return mapConflict(err)
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assigned_to = ?, title = ?, description = ?, status = ?,
		    priority = ?, due_date = ?, estimated_hours = ?, actual_hours = ?, updated_at = ?
		 WHERE id = ?`,
		mapOptionalString(t.AssignedTo), t.Title, t.Description, string(t.Status),
		string(t.Priority), mapOptionalTime(t.DueDate),
		mapOptionalFloat(t.EstimatedHours), mapOptionalFloat(t.ActualHours),
		t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
