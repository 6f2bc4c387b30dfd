package domain

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// Project is a unit of work owned by exactly one ProjectManager.
type Project struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description,omitempty"`
	Status           ProjectStatus `json:"status"`
	StartDate        *Date         `json:"startDate,omitempty"`
	EndDate          *Date         `json:"endDate,omitempty"`
	ProjectManagerID string        `json:"projectManagerId"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`

	// Attached by the service per read operation.
	ProjectManager *ProjectManager `json:"projectManager,omitempty"`
	Deliverables   []Deliverable   `json:"deliverables,omitempty"`
}

type CreateProjectRequest struct {
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Status           ProjectStatus `json:"status"`
	StartDate        *Date         `json:"startDate"`
	EndDate          *Date         `json:"endDate"`
	ProjectManagerID string        `json:"projectManagerId"`
}

type UpdateProjectRequest struct {
	Name             *string        `json:"name"`
	Description      *string        `json:"description"`
	Status           *ProjectStatus `json:"status"`
	StartDate        *Date          `json:"startDate"`
	EndDate          *Date          `json:"endDate"`
	ProjectManagerID *string        `json:"projectManagerId"`
}
