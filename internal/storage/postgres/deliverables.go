package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aiig/deliverables-backend/internal/domain"
)

const deliverableColumns = `id, name, description, due_date, status, project_id, project_manager_id, created_at, updated_at`

func scanDeliverable(row pgx.Row) (*domain.Deliverable, error) {
	var d domain.Deliverable
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.DueDate, &d.Status,
		&d.ProjectID, &d.ProjectManagerID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDeliverables returns deliverables matching every set filter field,
// ordered by due date ascending.
func (s *Store) ListDeliverables(ctx context.Context, f domain.DeliverableFilter) ([]domain.Deliverable, error) {
	q := `select ` + deliverableColumns + ` from deliverables`
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.ProjectID != "" {
		conds = append(conds, "project_id = "+arg(f.ProjectID))
	}
	if f.AssigneeID != "" {
		conds = append(conds, "project_manager_id = "+arg(f.AssigneeID))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.DueBefore != nil {
		conds = append(conds, "due_date <= "+arg(f.DueBefore.Time))
	}
	if f.DueAfter != nil {
		conds = append(conds, "due_date >= "+arg(f.DueAfter.Time))
	}
	for i, c := range conds {
		if i == 0 {
			q += " where " + c
		} else {
			q += " and " + c
		}
	}
	q += " order by due_date asc;"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Deliverable, 0, 16)
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *Store) GetDeliverable(ctx context.Context, id string) (*domain.Deliverable, error) {
	const q = `select ` + deliverableColumns + ` from deliverables where id = $1;`
	d, err := scanDeliverable(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("deliverable", id)
	}
	return d, err
}

func (s *Store) InsertDeliverable(ctx context.Context, d *domain.Deliverable) error {
	const q = `
insert into deliverables (id, name, description, due_date, status, project_id, project_manager_id, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := s.db.Exec(ctx, q, d.ID, d.Name, d.Description, d.DueDate.Time, d.Status,
		d.ProjectID, d.ProjectManagerID, d.CreatedAt, d.UpdatedAt)
	if pgErrCode(err) == codeForeignKeyViolation {
		return domain.BrokenReference("project or project manager", d.ProjectID)
	}
	return err
}

func (s *Store) UpdateDeliverable(ctx context.Context, d *domain.Deliverable) error {
	const q = `
update deliverables
set name = $2, description = $3, due_date = $4, status = $5, project_id = $6,
    project_manager_id = $7, updated_at = $8
where id = $1;
`
	ct, err := s.db.Exec(ctx, q, d.ID, d.Name, d.Description, d.DueDate.Time, d.Status,
		d.ProjectID, d.ProjectManagerID, d.UpdatedAt)
	if pgErrCode(err) == codeForeignKeyViolation {
		return domain.BrokenReference("project or project manager", d.ProjectID)
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.NotFound("deliverable", d.ID)
	}
	return nil
}

func (s *Store) DeleteDeliverable(ctx context.Context, id string) error {
	const q = `delete from deliverables where id = $1;`
	ct, err := s.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.NotFound("deliverable", id)
	}
	return nil
}
