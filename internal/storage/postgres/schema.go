package postgres

import "context"

// Schema is applied on startup and by the seed tool. Delete policies carry
// the referential-integrity rules: projects block their owner's deletion,
// deliverables follow their project and assignee.
const Schema = `
CREATE TABLE IF NOT EXISTS project_managers (
    id         UUID PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    email      TEXT NOT NULL UNIQUE,
    department TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS projects (
    id                 UUID PRIMARY KEY,
    name               TEXT NOT NULL,
    description        TEXT NOT NULL DEFAULT '',
    status             TEXT NOT NULL DEFAULT 'active',
    start_date         DATE,
    end_date           DATE,
    project_manager_id UUID NOT NULL REFERENCES project_managers(id) ON DELETE RESTRICT,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS deliverables (
    id                 UUID PRIMARY KEY,
    name               TEXT NOT NULL,
    description        TEXT NOT NULL DEFAULT '',
    due_date           DATE NOT NULL,
    status             TEXT NOT NULL DEFAULT 'pending',
    project_id         UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    project_manager_id UUID NOT NULL REFERENCES project_managers(id) ON DELETE CASCADE,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_deliverables_due_date ON deliverables (due_date);
CREATE INDEX IF NOT EXISTS idx_deliverables_project ON deliverables (project_id);
CREATE INDEX IF NOT EXISTS idx_projects_manager ON projects (project_manager_id);
`

// Migrate creates the tracker tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	return err
}
