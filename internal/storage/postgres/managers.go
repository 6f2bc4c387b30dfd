package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/aiig/deliverables-backend/internal/domain"
)

const managerColumns = `id, first_name, last_name, email, department, created_at, updated_at`

func scanManager(row pgx.Row) (*domain.ProjectManager, error) {
	var m domain.ProjectManager
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Department, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListManagers(ctx context.Context) ([]domain.ProjectManager, error) {
	const q = `
select ` + managerColumns + `
from project_managers
order by last_name asc, first_name asc;
`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProjectManager, 0, 16)
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *Store) GetManager(ctx context.Context, id string) (*domain.ProjectManager, error) {
	const q = `select ` + managerColumns + ` from project_managers where id = $1;`
	m, err := scanManager(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("project manager", id)
	}
	return m, err
}

func (s *Store) ManagerEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	const q = `select exists (select 1 from project_managers where lower(email) = lower($1) and id <> $2);`
	var taken bool
	err := s.db.QueryRow(ctx, q, email, excludeID).Scan(&taken)
	return taken, err
}

func (s *Store) InsertManager(ctx context.Context, m *domain.ProjectManager) error {
	const q = `
insert into project_managers (id, first_name, last_name, email, department, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := s.db.Exec(ctx, q, m.ID, m.FirstName, m.LastName, m.Email, m.Department, m.CreatedAt, m.UpdatedAt)
	if pgErrCode(err) == codeUniqueViolation {
		return domain.Conflict("project manager with email %s already exists", m.Email)
	}
	return err
}

func (s *Store) UpdateManager(ctx context.Context, m *domain.ProjectManager) error {
	const q = `
update project_managers
set first_name = $2, last_name = $3, email = $4, department = $5, updated_at = $6
where id = $1;
`
	ct, err := s.db.Exec(ctx, q, m.ID, m.FirstName, m.LastName, m.Email, m.Department, m.UpdatedAt)
	if pgErrCode(err) == codeUniqueViolation {
		return domain.Conflict("project manager with email %s already exists", m.Email)
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.NotFound("project manager", m.ID)
	}
	return nil
}

// DeleteManager removes a manager. Deliverables assigned to the manager are
// removed by the cascade rule; a manager that still owns projects is blocked
// by the restrict rule.
func (s *Store) DeleteManager(ctx context.Context, id string) error {
	const q = `delete from project_managers where id = $1;`
	ct, err := s.db.Exec(ctx, q, id)
	if pgErrCode(err) == codeForeignKeyViolation {
		return domain.Conflict("project manager %s still owns projects", id)
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.NotFound("project manager", id)
	}
	return nil
}

func (s *Store) CountProjectsOwned(ctx context.Context, managerID string) (int, error) {
	const q = `select count(*) from projects where project_manager_id = $1;`
	var n int
	err := s.db.QueryRow(ctx, q, managerID).Scan(&n)
	return n, err
}

