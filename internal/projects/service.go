// Package projects implements project CRUD, the searchable list view and the
// cascade delete of a project's deliverables.
package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aiig/deliverables-backend/internal/domain"
)

type Store interface {
	ListProjects(ctx context.Context, search string) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	InsertProject(ctx context.Context, p *domain.Project) error
	UpdateProject(ctx context.Context, p *domain.Project) error
	DeleteProject(ctx context.Context, id string) error
	GetManager(ctx context.Context, id string) (*domain.ProjectManager, error)
	ListDeliverables(ctx context.Context, f domain.DeliverableFilter) ([]domain.Deliverable, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all projects with their owning manager attached, optionally
// narrowed by a case-insensitive substring match over name and description.
func (s *Service) List(ctx context.Context, search string) ([]domain.Project, error) {
	items, err := s.store.ListProjects(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	managers := make(map[string]*domain.ProjectManager, len(items))
	for i := range items {
		m, ok := managers[items[i].ProjectManagerID]
		if !ok {
			m, err = s.store.GetManager(ctx, items[i].ProjectManagerID)
			if err != nil {
				return nil, err
			}
			managers[items[i].ProjectManagerID] = m
		}
		items[i].ProjectManager = m
	}
	return items, nil
}

// Get returns one project with owning manager and full deliverable list
// attached.
func (s *Service) Get(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	m, err := s.store.GetManager(ctx, p.ProjectManagerID)
	if err != nil {
		return nil, err
	}
	p.ProjectManager = m

	items, err := s.store.ListDeliverables(ctx, domain.DeliverableFilter{ProjectID: id})
	if err != nil {
		return nil, err
	}
	p.Deliverables = items
	return p, nil
}

func (s *Service) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(req.Name),
		Description:      strings.TrimSpace(req.Description),
		Status:           req.Status,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ProjectManagerID: req.ProjectManagerID,
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.InsertProject(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, p.ID)
}

func (s *Service) Update(ctx context.Context, id string, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = req.EndDate
	}
	if req.ProjectManagerID != nil {
		p.ProjectManagerID = *req.ProjectManagerID
	}
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the project and, by cascade, all of its deliverables.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetProject(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteProject(ctx, id)
}

func (s *Service) validate(ctx context.Context, p *domain.Project) error {
	if p.Name == "" {
		return domain.Invalid("name", "is required")
	}
	if !p.Status.Valid() {
		return domain.Invalid("status", "must be one of active, completed, on_hold")
	}
	if p.ProjectManagerID == "" {
		return domain.Invalid("projectManagerId", "is required")
	}
	if _, err := s.store.GetManager(ctx, p.ProjectManagerID); err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return domain.BrokenReference("project manager", p.ProjectManagerID)
		}
		return err
	}
	return nil
}
