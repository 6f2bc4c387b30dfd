// Package managers implements project-manager CRUD and the detail view that
// carries the manager's assigned deliverables.
package managers

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aiig/deliverables-backend/internal/domain"
)

// Store is the persistence surface the service needs. The pgx store and the
// in-memory test store both satisfy it.
type Store interface {
	ListManagers(ctx context.Context) ([]domain.ProjectManager, error)
	GetManager(ctx context.Context, id string) (*domain.ProjectManager, error)
	ManagerEmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	InsertManager(ctx context.Context, m *domain.ProjectManager) error
	UpdateManager(ctx context.Context, m *domain.ProjectManager) error
	DeleteManager(ctx context.Context, id string) error
	CountProjectsOwned(ctx context.Context, managerID string) (int, error)
	ListDeliverables(ctx context.Context, f domain.DeliverableFilter) ([]domain.Deliverable, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all managers ordered by last name.
func (s *Service) List(ctx context.Context) ([]domain.ProjectManager, error) {
	return s.store.ListManagers(ctx)
}

// Get returns one manager with assigned deliverables attached, each carrying
// its project.
func (s *Service) Get(ctx context.Context, id string) (*domain.ProjectManager, error) {
	m, err := s.store.GetManager(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListDeliverables(ctx, domain.DeliverableFilter{AssigneeID: id})
	if err != nil {
		return nil, err
	}

	projects := make(map[string]*domain.Project, len(items))
	for i := range items {
		p, ok := projects[items[i].ProjectID]
		if !ok {
			p, err = s.store.GetProject(ctx, items[i].ProjectID)
			if err != nil {
				return nil, err
			}
			projects[items[i].ProjectID] = p
		}
		items[i].Project = p
	}
	m.Deliverables = items
	return m, nil
}

func (s *Service) Create(ctx context.Context, req *domain.CreateManagerRequest) (*domain.ProjectManager, error) {
	m := &domain.ProjectManager{
		ID:         uuid.New().String(),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
	}
	if err := s.validate(ctx, m); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.store.InsertManager(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update merges the supplied fields over the stored record. Omitted fields
// keep their existing values.
func (s *Service) Update(ctx context.Context, id string, req *domain.UpdateManagerRequest) (*domain.ProjectManager, error) {
	m, err := s.store.GetManager(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		m.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		m.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		m.Email = strings.TrimSpace(*req.Email)
	}
	if req.Department != nil {
		m.Department = strings.TrimSpace(*req.Department)
	}
	if err := s.validate(ctx, m); err != nil {
		return nil, err
	}

	m.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateManager(ctx, m); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a manager. A manager that still owns projects is blocked;
// deliverables assigned to the manager are removed with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetManager(ctx, id); err != nil {
		return err
	}
	owned, err := s.store.CountProjectsOwned(ctx, id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return domain.Conflict("project manager %s still owns %d project(s)", id, owned)
	}
	return s.store.DeleteManager(ctx, id)
}

func (s *Service) validate(ctx context.Context, m *domain.ProjectManager) error {
	if m.FirstName == "" {
		return domain.Invalid("firstName", "is required")
	}
	if m.LastName == "" {
		return domain.Invalid("lastName", "is required")
	}
	if m.Email == "" {
		return domain.Invalid("email", "is required")
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return domain.Invalid("email", "is not a valid email address")
	}
	taken, err := s.store.ManagerEmailTaken(ctx, m.Email, m.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict("project manager with email %s already exists", m.Email)
	}
	return nil
}
