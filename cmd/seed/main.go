// Command seed resets the database and loads a small demo data set for the
// dashboard.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aiig/deliverables-backend/config"
	"github.com/aiig/deliverables-backend/internal/domain"
	"github.com/aiig/deliverables-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(postgres.Schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	log.Println("Database connection established")

	// Children first, parents last.
	for _, table := range []string{"deliverables", "projects", "project_managers"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			log.Fatalf("clear %s: %v", table, err)
		}
	}

	managers := []struct {
		first, last, email, department string
	}{
		{"Sarah", "Chen", "sarah.chen@aiig.ca", "Infrastructure"},
		{"Michael", "Thompson", "michael.thompson@aiig.ca", "Engineering"},
		{"Emily", "Rodriguez", "emily.rodriguez@aiig.ca", "Planning"},
		{"David", "Kim", "david.kim@aiig.ca", "Construction"},
		{"Jennifer", "Patel", "jennifer.patel@aiig.ca", "Operations"},
	}
	managerIDs := make([]string, len(managers))
	for i, m := range managers {
		managerIDs[i] = insertManager(db, m.first, m.last, m.email, m.department)
	}

	today := domain.Today()
	projects := []struct {
		name, description string
		status            domain.ProjectStatus
		start, end        domain.Date
		owner             string
	}{
		{"Highway 7 Expansion", "Widening and resurfacing of the Highway 7 corridor",
			domain.ProjectActive, today.AddDays(-120), today.AddDays(240), managerIDs[0]},
		{"Water Treatment Upgrade", "Phase 2 modernization of the municipal water treatment plant",
			domain.ProjectActive, today.AddDays(-60), today.AddDays(300), managerIDs[1]},
		{"Transit Hub Redesign", "Downtown transit hub accessibility and capacity redesign",
			domain.ProjectOnHold, today.AddDays(-200), today.AddDays(100), managerIDs[2]},
		{"Bridge Inspection Program", "Annual structural inspection cycle for regional bridges",
			domain.ProjectCompleted, today.AddDays(-365), today.AddDays(-30), managerIDs[3]},
	}
	projectIDs := make([]string, len(projects))
	for i, p := range projects {
		projectIDs[i] = insertProject(db, p.name, p.description, p.status, p.start, p.end, p.owner)
	}

	deliverables := []struct {
		name    string
		due     domain.Date
		status  domain.DeliverableStatus
		project string
		manager string
	}{
		{"Environmental assessment report", today.AddDays(7), domain.DeliverableInProgress, projectIDs[0], managerIDs[0]},
		{"Traffic impact study", today.AddDays(21), domain.DeliverablePending, projectIDs[0], managerIDs[2]},
		{"Pump station design review", today.AddDays(14), domain.DeliverablePending, projectIDs[1], managerIDs[1]},
		{"Contractor shortlist", today.AddDays(45), domain.DeliverablePending, projectIDs[1], managerIDs[4]},
		{"Stakeholder consultation summary", today.AddDays(-10), domain.DeliverableOverdue, projectIDs[2], managerIDs[2]},
		{"Final inspection report", today.AddDays(-45), domain.DeliverableCompleted, projectIDs[3], managerIDs[3]},
	}
	for _, d := range deliverables {
		insertDeliverable(db, d.name, d.due, d.status, d.project, d.manager)
	}

	log.Printf("Seeded %d managers, %d projects, %d deliverables",
		len(managers), len(projects), len(deliverables))
}

func insertManager(db *sql.DB, first, last, email, department string) string {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := db.Exec(`
INSERT INTO project_managers (id, first_name, last_name, email, department, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		id, first, last, email, department, now)
	if err != nil {
		log.Fatalf("insert manager %s: %v", email, err)
	}
	return id
}

func insertProject(db *sql.DB, name, description string, status domain.ProjectStatus, start, end domain.Date, managerID string) string {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := db.Exec(`
INSERT INTO projects (id, name, description, status, start_date, end_date, project_manager_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		id, name, description, status, start.Time, end.Time, managerID, now)
	if err != nil {
		log.Fatalf("insert project %s: %v", name, err)
	}
	return id
}

func insertDeliverable(db *sql.DB, name string, due domain.Date, status domain.DeliverableStatus, projectID, managerID string) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := db.Exec(`
INSERT INTO deliverables (id, name, due_date, status, project_id, project_manager_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		id, name, due.Time, status, projectID, managerID, now)
	if err != nil {
		log.Fatalf("insert deliverable %s: %v", name, err)
	}
}
