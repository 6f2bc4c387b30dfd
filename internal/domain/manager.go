package domain

import "time"

// ProjectManager is a person who owns projects and is assigned deliverables.
type ProjectManager struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Deliverables is attached by the service on detail reads only.
	Deliverables []Deliverable `json:"deliverables,omitempty"`
}

type CreateManagerRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// UpdateManagerRequest carries only the fields present in the request body.
// Nil means "leave unchanged".
type UpdateManagerRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
}
