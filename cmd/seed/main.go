// seed fills the database with deterministic mock data for development.
package main

import (
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nvoloshyn/scrum-api/internal/config"
	"github.com/nvoloshyn/scrum-api/internal/database"
	"github.com/nvoloshyn/scrum-api/internal/models"
	"github.com/nvoloshyn/scrum-api/internal/utils"
	"gorm.io/gorm"
)

const (
	seedValue        = 13371337
	superuser        = "joe"
	userCount        = 100
	userPassword     = "12345678"
	projectCount     = 10
	projectMemberMax = 30
	sprintCount      = 100
	taskCount        = 500
	taskAssigneeMax  = 3
	commentCount     = 1000
)

type seeder struct {
	db   *gorm.DB
	fake *gofakeit.Faker

	users    []models.User
	projects []models.Project
	sprints  []models.Sprint
	tasks    []models.Task
}

func main() {
	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	s := &seeder{
		db:   database.GetDB(),
		fake: gofakeit.New(seedValue),
	}

	s.seedUsers()
	s.seedProjects()
	s.seedSprints()
	s.seedTasks()
	s.seedComments()

	log.Println("Seeding completed")
}

func (s *seeder) seedUsers() {
	log.Println("[*] Users")

	hash, err := utils.HashPassword(userPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	taken := map[string]bool{superuser: true}
	usernames := []string{superuser}
	for len(usernames) < userCount+1 {
		name := s.fake.Username()
		if taken[name] {
			continue
		}
		taken[name] = true
		usernames = append(usernames, name)
	}

	for _, name := range usernames {
		user := models.User{
			Username:     name,
			PasswordHash: hash,
			FullName:     s.fake.FirstName() + " " + s.fake.LastName(),
			Email:        s.fake.Email(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		s.users = append(s.users, user)
	}
}

func (s *seeder) seedProjects() {
	log.Println("[*] Projects")

	taken := map[string]bool{}
	for i := 0; i < projectCount; i++ {
		alias := s.fake.Word()
		for taken[alias] {
			alias = s.fake.Word()
		}
		taken[alias] = true

		description := s.fake.Paragraph(1, 3, 10, " ")
		vcs := s.fake.URL()
		bts := s.fake.URL()
		cis := s.fake.URL()

		project := models.Project{
			Alias:       alias,
			Name:        s.fake.Sentence(3),
			Description: &description,
			VCSLink:     &vcs,
			BTSLink:     &bts,
			CISLink:     &cis,
		}
		if err := s.db.Create(&project).Error; err != nil {
			log.Fatalf("Failed to create project: %v", err)
		}

		// Superuser joins every project; a random slice of users follows.
		members := map[uint64]bool{s.users[0].ID: true}
		memberCount := s.fake.Number(1, projectMemberMax)
		for j := 0; j < memberCount; j++ {
			members[s.users[s.fake.Number(0, len(s.users)-1)].ID] = true
		}
		for userID := range members {
			membership := models.Membership{UserID: userID, ProjectID: project.ID}
			if err := s.db.Create(&membership).Error; err != nil {
				log.Fatalf("Failed to create membership: %v", err)
			}
		}

		s.projects = append(s.projects, project)
	}
}

func (s *seeder) seedSprints() {
	log.Println("[*] Sprints")

	for i := 0; i < sprintCount; i++ {
		project := s.projects[s.fake.Number(0, len(s.projects)-1)]

		start := midnight(s.fake.DateRange(
			time.Now().AddDate(0, -6, 0),
			time.Now().AddDate(0, 1, 0),
		))
		goal := s.fake.Sentence(6)

		sprint := models.Sprint{
			ProjectID: project.ID,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 14),
			Goal:      &goal,
		}
		if err := s.db.Create(&sprint).Error; err != nil {
			log.Fatalf("Failed to create sprint: %v", err)
		}
		s.sprints = append(s.sprints, sprint)
	}
}

func (s *seeder) seedTasks() {
	log.Println("[*] Tasks")

	statuses := []models.TaskStatus{
		models.TaskStatusBacklog,
		models.TaskStatusInProcess,
		models.TaskStatusDone,
	}
	kinds := []models.TaskKind{models.TaskKindFeature, models.TaskKindBug}

	for i := 0; i < taskCount; i++ {
		project := s.projects[s.fake.Number(0, len(s.projects)-1)]

		task := models.Task{
			ProjectID:    project.ID,
			AuthorID:     s.users[s.fake.Number(0, len(s.users)-1)].ID,
			Title:        s.fake.Sentence(5),
			CreationDate: s.fake.DateRange(time.Now().AddDate(0, -6, 0), time.Now()).UTC(),
			Status:       statuses[s.fake.Number(0, len(statuses)-1)],
			Kind:         kinds[s.fake.Number(0, len(kinds)-1)],
			Priority:     s.fake.Number(0, 3),
		}

		// Half the tasks land in one of their project's sprints.
		if s.fake.Number(0, 1) == 1 {
			if sprint := s.projectSprint(project.ID); sprint != nil {
				task.SprintID = &sprint.ID
				if task.Status == models.TaskStatusDone {
					completion := midnight(s.fake.DateRange(sprint.StartDate, sprint.EndDate))
					task.CompletionDate = &completion
				}
			}
		}
		if task.Status == models.TaskStatusDone && task.CompletionDate == nil {
			completion := task.CreationDate.AddDate(0, 0, s.fake.Number(1, 14))
			task.CompletionDate = &completion
		}

		if err := s.db.Create(&task).Error; err != nil {
			log.Fatalf("Failed to create task: %v", err)
		}

		assignees := map[uint64]bool{}
		for j := 0; j < s.fake.Number(0, taskAssigneeMax); j++ {
			assignees[s.users[s.fake.Number(0, len(s.users)-1)].ID] = true
		}
		for userID := range assignees {
			assignment := models.Assignment{TaskID: task.ID, UserID: userID}
			if err := s.db.Create(&assignment).Error; err != nil {
				log.Fatalf("Failed to create assignment: %v", err)
			}
		}

		s.tasks = append(s.tasks, task)
	}
}

func (s *seeder) seedComments() {
	log.Println("[*] Comments")

	for i := 0; i < commentCount; i++ {
		task := s.tasks[s.fake.Number(0, len(s.tasks)-1)]

		comment := models.Comment{
			TaskID:       task.ID,
			AuthorID:     s.users[s.fake.Number(0, len(s.users)-1)].ID,
			CreationDate: s.fake.DateRange(task.CreationDate, time.Now()).UTC(),
			Message:      s.fake.Paragraph(1, 2, 12, " "),
		}
		if err := s.db.Create(&comment).Error; err != nil {
			log.Fatalf("Failed to create comment: %v", err)
		}
	}
}

// projectSprint picks a random sprint belonging to the project, if any.
func (s *seeder) projectSprint(projectID uint64) *models.Sprint {
	var candidates []*models.Sprint
	for i := range s.sprints {
		if s.sprints[i].ProjectID == projectID {
			candidates = append(candidates, &s.sprints[i])
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.fake.Number(0, len(candidates)-1)]
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
