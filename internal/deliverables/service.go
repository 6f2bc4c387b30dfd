// Package deliverables implements deliverable CRUD, the filtered list views
// and the upcoming-deliverables window.
package deliverables

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aiig/deliverables-backend/internal/domain"
)

// DefaultUpcomingDays is the window applied when the caller does not ask for
// a specific one.
const DefaultUpcomingDays = 30

// maxUpcomingDays bounds the configurable window.
const maxUpcomingDays = 365

type Store interface {
	ListDeliverables(ctx context.Context, f domain.DeliverableFilter) ([]domain.Deliverable, error)
	GetDeliverable(ctx context.Context, id string) (*domain.Deliverable, error)
	InsertDeliverable(ctx context.Context, d *domain.Deliverable) error
	UpdateDeliverable(ctx context.Context, d *domain.Deliverable) error
	DeleteDeliverable(ctx context.Context, id string) error
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	GetManager(ctx context.Context, id string) (*domain.ProjectManager, error)
}

type Service struct {
	store Store
	cache *Cache
	now   func() time.Time
}

// NewService builds the deliverable service. cache may be nil, in which case
// the upcoming view always hits the store.
func NewService(store Store, cache *Cache) *Service {
	return &Service{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// List returns deliverables matching every set filter field (AND), ordered
// by due date ascending, each with project and assigned manager attached.
func (s *Service) List(ctx context.Context, f domain.DeliverableFilter) ([]domain.Deliverable, error) {
	items, err := s.store.ListDeliverables(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListUpcoming returns deliverables due within [today, today+days] inclusive,
// regardless of status. days defaults to DefaultUpcomingDays when zero or
// negative and is capped at one year.
func (s *Service) ListUpcoming(ctx context.Context, days int) ([]domain.Deliverable, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	if days > maxUpcomingDays {
		days = maxUpcomingDays
	}

	if s.cache != nil {
		if items, ok := s.cache.GetUpcoming(ctx, days); ok {
			return items, nil
		}
	}

	today := domain.DateOf(s.now().UTC())
	until := today.AddDays(days)
	items, err := s.List(ctx, domain.DeliverableFilter{
		DueAfter:  &today,
		DueBefore: &until,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetUpcoming(ctx, days, items)
	}
	return items, nil
}

// Get returns one deliverable with project and assigned manager attached.
func (s *Service) Get(ctx context.Context, id string) (*domain.Deliverable, error) {
	d, err := s.store.GetDeliverable(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req *domain.CreateDeliverableRequest) (*domain.Deliverable, error) {
	d := &domain.Deliverable{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(req.Name),
		Description:      strings.TrimSpace(req.Description),
		Status:           req.Status,
		ProjectID:        req.ProjectID,
		ProjectManagerID: req.ProjectManagerID,
	}
	if req.DueDate != nil {
		d.DueDate = *req.DueDate
	}
	if d.Status == "" {
		d.Status = domain.DeliverablePending
	}
	if err := s.validate(ctx, d); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.store.InsertDeliverable(ctx, d); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	if err := s.attachOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Update merges the supplied fields over the stored record. There is no
// status transition graph: any enumerated value may replace any other.
func (s *Service) Update(ctx context.Context, id string, req *domain.UpdateDeliverableRequest) (*domain.Deliverable, error) {
	d, err := s.store.GetDeliverable(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		d.Description = strings.TrimSpace(*req.Description)
	}
	if req.DueDate != nil {
		d.DueDate = *req.DueDate
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if req.ProjectID != nil {
		d.ProjectID = *req.ProjectID
	}
	if req.ProjectManagerID != nil {
		d.ProjectManagerID = *req.ProjectManagerID
	}
	if err := s.validate(ctx, d); err != nil {
		return nil, err
	}

	d.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateDeliverable(ctx, d); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	if err := s.attachOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteDeliverable(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) validate(ctx context.Context, d *domain.Deliverable) error {
	if d.Name == "" {
		return domain.Invalid("name", "is required")
	}
	if d.DueDate.IsZero() {
		return domain.Invalid("dueDate", "is required")
	}
	if !d.Status.Valid() {
		return domain.Invalid("status", "must be one of pending, in_progress, completed, overdue")
	}
	if d.ProjectID == "" {
		return domain.Invalid("projectId", "is required")
	}
	if d.ProjectManagerID == "" {
		return domain.Invalid("projectManagerId", "is required")
	}
	if _, err := s.store.GetProject(ctx, d.ProjectID); err != nil {
		return asBrokenReference(err, "project", d.ProjectID)
	}
	if _, err := s.store.GetManager(ctx, d.ProjectManagerID); err != nil {
		return asBrokenReference(err, "project manager", d.ProjectManagerID)
	}
	return nil
}

func asBrokenReference(err error, entity, id string) error {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return domain.BrokenReference(entity, id)
	}
	return err
}

func (s *Service) attach(ctx context.Context, items []domain.Deliverable) error {
	projects := make(map[string]*domain.Project)
	managers := make(map[string]*domain.ProjectManager)
	for i := range items {
		p, ok := projects[items[i].ProjectID]
		if !ok {
			var err error
			p, err = s.store.GetProject(ctx, items[i].ProjectID)
			if err != nil {
				return err
			}
			projects[items[i].ProjectID] = p
		}
		items[i].Project = p

		m, ok := managers[items[i].ProjectManagerID]
		if !ok {
			var err error
			m, err = s.store.GetManager(ctx, items[i].ProjectManagerID)
			if err != nil {
				return err
			}
			managers[items[i].ProjectManagerID] = m
		}
		items[i].ProjectManager = m
	}
	return nil
}

func (s *Service) attachOne(ctx context.Context, d *domain.Deliverable) error {
	p, err := s.store.GetProject(ctx, d.ProjectID)
	if err != nil {
		return err
	}
	m, err := s.store.GetManager(ctx, d.ProjectManagerID)
	if err != nil {
		return err
	}
	d.Project = p
	d.ProjectManager = m
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
