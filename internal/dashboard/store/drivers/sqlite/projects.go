package sqlite

import (
	"context"
	"database/sql"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
)

type projectsRepo struct {
	db db
}

const projectColumns = `id, user_id, name, description, status, priority,
	start_date, end_date, budget, progress, created_at, updated_at`

func scanProject(row interface{ Scan(dest ...any) error }) (domain.Project, error) {
	var (
		p         domain.Project
		startDate sql.NullTime
		endDate   sql.NullTime
		budget    sql.NullFloat64
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.Priority,
		&startDate,
		&endDate,
		&budget,
		&p.Progress,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Project{}, err
	}
	p.StartDate = mapNullTimePtr(startDate)
	p.EndDate = mapNullTimePtr(endDate)
	p.Budget = mapNullFloatPtr(budget)
	return p, nil
}

func (r *projectsRepo) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, user_id, name, description, status, priority,
		    start_date, end_date, budget, progress, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Description, string(p.Status), string(p.Priority),
		mapOptionalTime(p.StartDate), mapOptionalTime(p.EndDate),
		mapOptionalFloat(p.Budget), p.Progress, p.CreatedAt, p.UpdatedAt)
	return mapConflict(err)
}

func (r *projectsRepo) UpdateProject(ctx context.Context, p domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, status = ?, priority = ?,
		    start_date = ?, end_date = ?, budget = ?, progress = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, string(p.Status), string(p.Priority),
		mapOptionalTime(p.StartDate), mapOptionalTime(p.EndDate),
		mapOptionalFloat(p.Budget), p.Progress, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
