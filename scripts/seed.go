//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mohamim360/kanban-api/internal/database"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"github.com/mohamim360/kanban-api/pkg/config"
	"github.com/mohamim360/kanban-api/pkg/util"
)

// Seeds a demo user with a sample project and tasks. Intended for local
// development only; the user's subject id must match a real provider
// account for authenticated requests to reach the data.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	subjectID := os.Getenv("SEED_SUBJECT_ID")
	email := os.Getenv("SEED_EMAIL")
	name := os.Getenv("SEED_NAME")

	if subjectID == "" {
		subjectID = "user_demo"
	}
	if email == "" {
		email = "demo@example.com"
	}
	if name == "" {
		name = "Demo User"
	}

	var existing models.User
	if err := db.First(&existing, "external_subject_id = ?", subjectID).Error; err == nil {
		fmt.Printf("Demo user already exists: %s\n", email)
		return
	}

	user := models.User{
		ExternalSubjectID: subjectID,
		Email:             email,
		Name:              name,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create demo user: %v", err)
	}

	project := models.Project{
		OwnerUserID: user.ID,
		Name:        "Getting Started",
		Description: "A sample board to explore the API",
	}
	if err := db.Create(&project).Error; err != nil {
		log.Fatalf("failed to create demo project: %v", err)
	}

	tasks := []models.Task{
		{
			ProjectID: project.ID,
			Title:     "Read the README",
			Status:    models.TaskStatusDone,
			Priority:  models.TaskPriorityLow,
			Tags:      models.StringList{"onboarding"},
		},
		{
			ProjectID: project.ID,
			Title:     "Create your first project",
			Status:    models.TaskStatusInProgress,
			Priority:  models.TaskPriorityMedium,
			Tags:      models.StringList{"onboarding"},
		},
		{
			ProjectID: project.ID,
			Title:     "Invite your team",
			Status:    models.TaskStatusTodo,
			Priority:  models.TaskPriorityHigh,
			Tags:      models.StringList{},
		},
	}
	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			log.Fatalf("failed to create demo task: %v", err)
		}
	}

	fmt.Printf("Demo data created!\n")
	fmt.Printf("User: %s (%s)\n", user.Email, user.ExternalSubjectID)
	fmt.Printf("Project: %s with %d tasks\n", project.Name, len(tasks))
}