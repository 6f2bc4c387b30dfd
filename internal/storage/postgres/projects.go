package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/aiig/deliverables-backend/internal/domain"
)

const projectColumns = `id, name, description, status, start_date, end_date, project_manager_id, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p          domain.Project
		start, end sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &start, &end,
		&p.ProjectManagerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if start.Valid {
		d := domain.DateOf(start.Time)
		p.StartDate = &d
	}
	if end.Valid {
		d := domain.DateOf(end.Time)
		p.EndDate = &d
	}
	return &p, nil
}

func dateArg(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

// ListProjects returns all projects, optionally narrowed to those whose name
// or description contains search (case-insensitive).
func (s *Store) ListProjects(ctx context.Context, search string) ([]domain.Project, error) {
	q := `select ` + projectColumns + ` from projects order by created_at desc;`
	args := []any{}
	if search != "" {
		q = `
select ` + projectColumns + `
from projects
where name ilike '%' || $1 || '%' or description ilike '%' || $1 || '%'
order by created_at desc;
`
		args = append(args, search)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	const q = `select ` + projectColumns + ` from projects where id = $1;`
	p, err := scanProject(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("project", id)
	}
	return p, err
}

func (s *Store) InsertProject(ctx context.Context, p *domain.Project) error {
	const q = `
insert into projects (id, name, description, status, start_date, end_date, project_manager_id, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := s.db.Exec(ctx, q, p.ID, p.Name, p.Description, p.Status,
		dateArg(p.StartDate), dateArg(p.EndDate), p.ProjectManagerID, p.CreatedAt, p.UpdatedAt)
	if pgErrCode(err) == codeForeignKeyViolation {
		return domain.BrokenReference("project manager", p.ProjectManagerID)
	}
	return err
}

func (s *Store) UpdateProject(ctx context.Context, p *domain.Project) error {
	const q = `
update projects
set name = $2, description = $3, status = $4, start_date = $5, end_date = $6,
    project_manager_id = $7, updated_at = $8
where id = $1;
`
	ct, err := s.db.Exec(ctx, q, p.ID, p.Name, p.Description, p.Status,
		dateArg(p.StartDate), dateArg(p.EndDate), p.ProjectManagerID, p.UpdatedAt)
	if pgErrCode(err) == codeForeignKeyViolation {
		return domain.BrokenReference("project manager", p.ProjectManagerID)
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.NotFound("project", p.ID)
	}
	return nil
}

// DeleteProject removes a project; its deliverables go with it (cascade).
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	const q = `delete from projects where id = $1;`
	ct, err := s.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.NotFound("project", id)
	}
	return nil
}
