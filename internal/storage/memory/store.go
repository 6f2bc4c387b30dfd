// Package memory holds an in-memory implementation of the tracker stores,
// used by tests in place of Postgres. It enforces the same referential
// integrity rules as the SQL schema.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aiig/deliverables-backend/internal/domain"
)

type Store struct {
	mu           sync.RWMutex
	managers     map[string]domain.ProjectManager
	projects     map[string]domain.Project
	deliverables map[string]domain.Deliverable
}

func NewStore() *Store {
	return &Store{
		managers:     make(map[string]domain.ProjectManager),
		projects:     make(map[string]domain.Project),
		deliverables: make(map[string]domain.Deliverable),
	}
}

func (s *Store) ListManagers(_ context.Context) ([]domain.ProjectManager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProjectManager, 0, len(s.managers))
	for _, m := range s.managers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (s *Store) GetManager(_ context.Context, id string) (*domain.ProjectManager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.managers[id]
	if !ok {
		return nil, domain.NotFound("project manager", id)
	}
	return &m, nil
}

func (s *Store) ManagerEmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.managers {
		if m.ID != excludeID && strings.EqualFold(m.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) InsertManager(_ context.Context, m *domain.ProjectManager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.managers {
		if strings.EqualFold(existing.Email, m.Email) {
			return domain.Conflict("project manager with email %s already exists", m.Email)
		}
	}
	s.managers[m.ID] = *m
	return nil
}

func (s *Store) UpdateManager(_ context.Context, m *domain.ProjectManager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.managers[m.ID]; !ok {
		return domain.NotFound("project manager", m.ID)
	}
	for _, existing := range s.managers {
		if existing.ID != m.ID && strings.EqualFold(existing.Email, m.Email) {
			return domain.Conflict("project manager with email %s already exists", m.Email)
		}
	}
	s.managers[m.ID] = *m
	return nil
}

func (s *Store) DeleteManager(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.managers[id]; !ok {
		return domain.NotFound("project manager", id)
	}
	for _, p := range s.projects {
		if p.ProjectManagerID == id {
			return domain.Conflict("project manager %s still owns projects", id)
		}
	}
	// Assigned deliverables follow the manager, as in the SQL cascade rule.
	for did, d := range s.deliverables {
		if d.ProjectManagerID == id {
			delete(s.deliverables, did)
		}
	}
	delete(s.managers, id)
	return nil
}

func (s *Store) CountProjectsOwned(_ context.Context, managerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.projects {
		if p.ProjectManagerID == managerID {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListProjects(_ context.Context, search string) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(search)
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetProject(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.NotFound("project", id)
	}
	return &p, nil
}

func (s *Store) InsertProject(_ context.Context, p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.managers[p.ProjectManagerID]; !ok {
		return domain.BrokenReference("project manager", p.ProjectManagerID)
	}
	s.projects[p.ID] = *p
	return nil
}

func (s *Store) UpdateProject(_ context.Context, p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[p.ID]; !ok {
		return domain.NotFound("project", p.ID)
	}
	if _, ok := s.managers[p.ProjectManagerID]; !ok {
		return domain.BrokenReference("project manager", p.ProjectManagerID)
	}
	s.projects[p.ID] = *p
	return nil
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return domain.NotFound("project", id)
	}
	for did, d := range s.deliverables {
		if d.ProjectID == id {
			delete(s.deliverables, did)
		}
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) ListDeliverables(_ context.Context, f domain.DeliverableFilter) ([]domain.Deliverable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Deliverable, 0, len(s.deliverables))
	for _, d := range s.deliverables {
		if f.Matches(&d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate.Time)
	})
	return out, nil
}

func (s *Store) GetDeliverable(_ context.Context, id string) (*domain.Deliverable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deliverables[id]
	if !ok {
		return nil, domain.NotFound("deliverable", id)
	}
	return &d, nil
}

func (s *Store) InsertDeliverable(_ context.Context, d *domain.Deliverable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[d.ProjectID]; !ok {
		return domain.BrokenReference("project", d.ProjectID)
	}
	if _, ok := s.managers[d.ProjectManagerID]; !ok {
		return domain.BrokenReference("project manager", d.ProjectManagerID)
	}
	s.deliverables[d.ID] = *d
	return nil
}

func (s *Store) UpdateDeliverable(_ context.Context, d *domain.Deliverable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliverables[d.ID]; !ok {
		return domain.NotFound("deliverable", d.ID)
	}
	if _, ok := s.projects[d.ProjectID]; !ok {
		return domain.BrokenReference("project", d.ProjectID)
	}
	if _, ok := s.managers[d.ProjectManagerID]; !ok {
		return domain.BrokenReference("project manager", d.ProjectManagerID)
	}
	s.deliverables[d.ID] = *d
	return nil
}

func (s *Store) DeleteDeliverable(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliverables[id]; !ok {
		return domain.NotFound("deliverable", id)
	}
	delete(s.deliverables, id)
	return nil
}
