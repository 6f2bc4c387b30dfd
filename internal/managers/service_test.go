package managers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiig/deliverables-backend/internal/domain"
	"github.com/aiig/deliverables-backend/internal/storage/memory"
)

func TestCreateManager(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	m, err := svc.Create(ctx, &domain.CreateManagerRequest{
		FirstName: "Ana",
		LastName:  "Lee",
		Email:     "ana@x.com",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(m.ID)
	assert.NoError(t, err, "id is a generated uuid")
	assert.Equal(t, m.CreatedAt, m.UpdatedAt)
	assert.Equal(t, "Ana", m.FirstName)
	assert.Empty(t, m.Department)
}

func TestCreateManagerValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	var validation *domain.ValidationError

	_, err := svc.Create(ctx, &domain.CreateManagerRequest{LastName: "Lee", Email: "a@x.com"})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "firstName", validation.Field)

	_, err = svc.Create(ctx, &domain.CreateManagerRequest{FirstName: "Ana", Email: "a@x.com"})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "lastName", validation.Field)

	_, err = svc.Create(ctx, &domain.CreateManagerRequest{FirstName: "Ana", LastName: "Lee", Email: "not-an-email"})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "email", validation.Field)

	_, err = svc.Create(ctx, &domain.CreateManagerRequest{FirstName: "  ", LastName: "Lee", Email: "a@x.com"})
	require.ErrorAs(t, err, &validation, "whitespace-only name is rejected")
}

func TestCreateManagerDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store)

	_, err := svc.Create(ctx, &domain.CreateManagerRequest{
		FirstName: "Ana", LastName: "Lee", Email: "ana@x.com",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.CreateManagerRequest{
		FirstName: "Bea", LastName: "Yu", Email: "ana@x.com",
	})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "nothing was persisted for the duplicate")
}

func TestUpdateManagerPartialMerge(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	created, err := svc.Create(ctx, &domain.CreateManagerRequest{
		FirstName: "Ana", LastName: "Lee", Email: "ana@x.com", Department: "Planning",
	})
	require.NoError(t, err)

	dept := "Engineering"
	updated, err := svc.Update(ctx, created.ID, &domain.UpdateManagerRequest{Department: &dept})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "id is immutable")
	assert.Equal(t, "Ana", updated.FirstName)
	assert.Equal(t, "Lee", updated.LastName)
	assert.Equal(t, "ana@x.com", updated.Email)
	assert.Equal(t, "Engineering", updated.Department)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateManagerNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())

	first := "Ana"
	_, err := svc.Update(ctx, uuid.New().String(), &domain.UpdateManagerRequest{FirstName: &first})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteManagerBlockedByOwnedProject(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store)

	m, err := svc.Create(ctx, &domain.CreateManagerRequest{
		FirstName: "Ana", LastName: "Lee", Email: "ana@x.com",
	})
	require.NoError(t, err)

	require.NoError(t, store.InsertProject(ctx, &domain.Project{
		ID:               uuid.New().String(),
		Name:             "Bridge",
		Status:           domain.ProjectActive,
		ProjectManagerID: m.ID,
	}))

	var conflict *domain.ConflictError
	require.ErrorAs(t, svc.Delete(ctx, m.ID), &conflict)

	// still present
	_, err = svc.Get(ctx, m.ID)
	assert.NoError(t, err)
}

func TestGetManagerAttachesDeliverables(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store)

	m, err := svc.Create(ctx, &domain.CreateManagerRequest{
		FirstName: "Ana", LastName: "Lee", Email: "ana@x.com",
	})
	require.NoError(t, err)

	p := &domain.Project{
		ID:               uuid.New().String(),
		Name:             "Bridge",
		Status:           domain.ProjectActive,
		ProjectManagerID: m.ID,
	}
	require.NoError(t, store.InsertProject(ctx, p))
	require.NoError(t, store.InsertDeliverable(ctx, &domain.Deliverable{
		ID:               uuid.New().String(),
		Name:             "Survey",
		DueDate:          domain.Today(),
		Status:           domain.DeliverablePending,
		ProjectID:        p.ID,
		ProjectManagerID: m.ID,
	}))

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Deliverables, 1)
	require.NotNil(t, got.Deliverables[0].Project)
	assert.Equal(t, "Bridge", got.Deliverables[0].Project.Name)
}
