package domain

import "time"

type DeliverableStatus string

const (
	DeliverablePending    DeliverableStatus = "pending"
	DeliverableInProgress DeliverableStatus = "in_progress"
	DeliverableCompleted  DeliverableStatus = "completed"
	DeliverableOverdue    DeliverableStatus = "overdue"
)

func (s DeliverableStatus) Valid() bool {
	switch s {
	case DeliverablePending, DeliverableInProgress, DeliverableCompleted, DeliverableOverdue:
		return true
	}
	return false
}

// Deliverable is a dated task belonging to one Project and assigned to one
// ProjectManager. The assignee is independent of the project's owner.
type Deliverable struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	DueDate          Date              `json:"dueDate"`
	Status           DeliverableStatus `json:"status"`
	ProjectID        string            `json:"projectId"`
	ProjectManagerID string            `json:"projectManagerId"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`

	Project        *Project        `json:"project,omitempty"`
	ProjectManager *ProjectManager `json:"projectManager,omitempty"`
}

type CreateDeliverableRequest struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	DueDate          *Date             `json:"dueDate"`
	Status           DeliverableStatus `json:"status"`
	ProjectID        string            `json:"projectId"`
	ProjectManagerID string            `json:"projectManagerId"`
}

type UpdateDeliverableRequest struct {
	Name             *string            `json:"name"`
	Description      *string            `json:"description"`
	DueDate          *Date              `json:"dueDate"`
	Status           *DeliverableStatus `json:"status"`
	ProjectID        *string            `json:"projectId"`
	ProjectManagerID *string            `json:"projectManagerId"`
}

// DeliverableFilter narrows List results. All set fields must match (AND).
// Date bounds are inclusive. AssigneeID is not exposed on the API; it serves
// the manager detail view.
type DeliverableFilter struct {
	ProjectID  string
	AssigneeID string
	Status     DeliverableStatus
	DueBefore  *Date
	DueAfter   *Date
}

// Matches reports whether d satisfies every set filter field.
func (f DeliverableFilter) Matches(d *Deliverable) bool {
	if f.ProjectID != "" && d.ProjectID != f.ProjectID {
		return false
	}
	if f.AssigneeID != "" && d.ProjectManagerID != f.AssigneeID {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.DueBefore != nil && d.DueDate.After(f.DueBefore.Time) {
		return false
	}
	if f.DueAfter != nil && d.DueDate.Before(f.DueAfter.Time) {
		return false
	}
	return true
}
