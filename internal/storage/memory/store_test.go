package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiig/deliverables-backend/internal/domain"
)

func newManager(email string) *domain.ProjectManager {
	return &domain.ProjectManager{
		ID:        uuid.New().String(),
		FirstName: "Ana",
		LastName:  "Lee",
		Email:     email,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func newProject(managerID string) *domain.Project {
	return &domain.Project{
		ID:               uuid.New().String(),
		Name:             "Bridge",
		Status:           domain.ProjectActive,
		ProjectManagerID: managerID,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
}

func newDeliverable(projectID, managerID string, due domain.Date) *domain.Deliverable {
	return &domain.Deliverable{
		ID:               uuid.New().String(),
		Name:             "Survey",
		DueDate:          due,
		Status:           domain.DeliverablePending,
		ProjectID:        projectID,
		ProjectManagerID: managerID,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
}

func TestInsertManagerDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.InsertManager(ctx, newManager("ana@x.com")))

	err := s.InsertManager(ctx, newManager("ANA@X.COM"))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	items, err := s.ListManagers(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestInsertProjectRequiresManager(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.InsertProject(ctx, newProject(uuid.New().String()))
	var ref *domain.ReferentialIntegrityError
	require.ErrorAs(t, err, &ref)
}

func TestInsertDeliverableRequiresProjectAndManager(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m := newManager("ana@x.com")
	require.NoError(t, s.InsertManager(ctx, m))
	p := newProject(m.ID)
	require.NoError(t, s.InsertProject(ctx, p))

	var ref *domain.ReferentialIntegrityError

	d := newDeliverable(uuid.New().String(), m.ID, domain.Today())
	require.ErrorAs(t, s.InsertDeliverable(ctx, d), &ref)

	d = newDeliverable(p.ID, uuid.New().String(), domain.Today())
	require.ErrorAs(t, s.InsertDeliverable(ctx, d), &ref)

	d = newDeliverable(p.ID, m.ID, domain.Today())
	require.NoError(t, s.InsertDeliverable(ctx, d))
}

func TestDeleteManagerBlockedWhileOwningProjects(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m := newManager("ana@x.com")
	require.NoError(t, s.InsertManager(ctx, m))
	require.NoError(t, s.InsertProject(ctx, newProject(m.ID)))

	var conflict *domain.ConflictError
	require.ErrorAs(t, s.DeleteManager(ctx, m.ID), &conflict)

	_, err := s.GetManager(ctx, m.ID)
	assert.NoError(t, err)
}

func TestDeleteManagerCascadesAssignedDeliverables(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	owner := newManager("owner@x.com")
	assignee := newManager("assignee@x.com")
	require.NoError(t, s.InsertManager(ctx, owner))
	require.NoError(t, s.InsertManager(ctx, assignee))

	p := newProject(owner.ID)
	require.NoError(t, s.InsertProject(ctx, p))

	d := newDeliverable(p.ID, assignee.ID, domain.Today())
	require.NoError(t, s.InsertDeliverable(ctx, d))

	// assignee owns no projects, so deletion is allowed and takes the
	// assigned deliverable with it
	require.NoError(t, s.DeleteManager(ctx, assignee.ID))

	var notFound *domain.NotFoundError
	_, err := s.GetDeliverable(ctx, d.ID)
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteProjectCascadesDeliverables(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m := newManager("ana@x.com")
	require.NoError(t, s.InsertManager(ctx, m))
	p := newProject(m.ID)
	require.NoError(t, s.InsertProject(ctx, p))

	d1 := newDeliverable(p.ID, m.ID, domain.Today())
	d2 := newDeliverable(p.ID, m.ID, domain.Today().AddDays(5))
	require.NoError(t, s.InsertDeliverable(ctx, d1))
	require.NoError(t, s.InsertDeliverable(ctx, d2))

	require.NoError(t, s.DeleteProject(ctx, p.ID))

	var notFound *domain.NotFoundError
	_, err := s.GetDeliverable(ctx, d1.ID)
	require.ErrorAs(t, err, &notFound)
	_, err = s.GetDeliverable(ctx, d2.ID)
	require.ErrorAs(t, err, &notFound)
}

func TestListManagersOrderedByLastName(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, m := range []*domain.ProjectManager{
		{ID: uuid.New().String(), FirstName: "Zoe", LastName: "Young", Email: "zy@x.com"},
		{ID: uuid.New().String(), FirstName: "Al", LastName: "Adams", Email: "aa@x.com"},
		{ID: uuid.New().String(), FirstName: "Mia", LastName: "Young", Email: "my@x.com"},
	} {
		require.NoError(t, s.InsertManager(ctx, m))
	}

	items, err := s.ListManagers(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Adams", items[0].LastName)
	assert.Equal(t, "Mia", items[1].FirstName)
	assert.Equal(t, "Zoe", items[2].FirstName)
}

func TestListDeliverablesOrderedByDueDate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m := newManager("ana@x.com")
	require.NoError(t, s.InsertManager(ctx, m))
	p := newProject(m.ID)
	require.NoError(t, s.InsertProject(ctx, p))

	later := newDeliverable(p.ID, m.ID, domain.Today().AddDays(10))
	sooner := newDeliverable(p.ID, m.ID, domain.Today().AddDays(2))
	require.NoError(t, s.InsertDeliverable(ctx, later))
	require.NoError(t, s.InsertDeliverable(ctx, sooner))

	items, err := s.ListDeliverables(ctx, domain.DeliverableFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, sooner.ID, items[0].ID)
	assert.Equal(t, later.ID, items[1].ID)
}

func TestListProjectsSearch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m := newManager("ana@x.com")
	require.NoError(t, s.InsertManager(ctx, m))

	bridge := newProject(m.ID)
	bridge.Name = "Bridge Rebuild"
	tunnel := newProject(m.ID)
	tunnel.Name = "Tunnel"
	tunnel.Description = "Harbor bridge bypass"
	other := newProject(m.ID)
	other.Name = "Airport"
	for _, p := range []*domain.Project{bridge, tunnel, other} {
		require.NoError(t, s.InsertProject(ctx, p))
	}

	items, err := s.ListProjects(ctx, "BRIDGE")
	require.NoError(t, err)
	assert.Len(t, items, 2) // matches name and description, case-insensitive

	items, err = s.ListProjects(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
