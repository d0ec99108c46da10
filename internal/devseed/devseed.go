// Package devseed loads development fixture data so a fresh local
// environment has groups, users, trainings, and assignments to click
// through. It is only invoked in dev mode and tolerates reruns.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coachbase/traindeck/internal/data"
	domainauth "github.com/coachbase/traindeck/internal/domain/auth"
	"github.com/coachbase/traindeck/internal/domain/model"
	"github.com/coachbase/traindeck/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	groups      *service.GroupService
	users       *service.UserService
	trainings   *service.TrainingService
	assignments *service.AssignmentService

	groupRepo    *data.GroupRepo
	trainingRepo *data.TrainingRepo
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	groupRepo := data.NewGroupRepo(db)
	userRepo := data.NewUserRepo(db)
	trainingRepo := data.NewTrainingRepo(db)
	assignmentRepo := data.NewAssignmentRepo(db)

	return Services{
		groups:       service.NewGroupService(service.GroupServiceOptions{GroupRepo: groupRepo}),
		users:        service.NewUserService(service.UserServiceOptions{UserRepo: userRepo}),
		trainings:    service.NewTrainingService(service.TrainingServiceOptions{TrainingRepo: trainingRepo}),
		assignments:  service.NewAssignmentService(service.AssignmentServiceOptions{AssignmentRepo: assignmentRepo}),
		groupRepo:    groupRepo,
		trainingRepo: trainingRepo,
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	groupIDs, err := seedGroups(ctx, svcs, logger)
	if err != nil {
		return err
	}
	if err := seedUsers(ctx, svcs, groupIDs, logger); err != nil {
		return err
	}
	trainingIDs, err := seedTrainings(ctx, svcs, logger)
	if err != nil {
		return err
	}
	return seedAssignments(ctx, svcs, seedLinks{groups: groupIDs, trainings: trainingIDs}, logger)
}

var seedGroupDefs = []model.CreateGroupRequest{
	{Name: "Engineering", Description: strPtr("Product and platform engineers")},
	{Name: "Sales", Description: strPtr("Field and inside sales")},
}

func seedGroups(ctx context.Context, svcs Services, logger *slog.Logger) (map[string]string, error) {
	ids := make(map[string]string, len(seedGroupDefs))
	for i := range seedGroupDefs {
		req := seedGroupDefs[i]
		group, err := svcs.groups.Create(ctx, &req)
		if errors.Is(err, data.ErrGroupNameExists) {
			group, err = svcs.groupRepo.GetByName(ctx, req.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("seed group %q: %w", req.Name, err)
		}
		ids[req.Name] = group.ID
		logger.InfoContext(ctx, "seeded group", "name", req.Name, "id", group.ID)
	}
	return ids, nil
}

func seedUsers(ctx context.Context, svcs Services, groupIDs map[string]string, logger *slog.Logger) error {
	engineering := groupIDs["Engineering"]
	sales := groupIDs["Sales"]

	defs := []model.CreateUserRequest{
		{
			Email:       "admin@example.com",
			DisplayName: "Portal Admin",
			Role:        domainauth.RoleAdmin,
		},
		{
			Email:       "maria@example.com",
			DisplayName: "Maria Diaz",
			Role:        domainauth.RoleManager,
			GroupID:     &engineering,
		},
		{
			Email:       "sam@example.com",
			DisplayName: "Sam Carter",
			Role:        domainauth.RoleCollaborator,
			GroupID:     &sales,
		},
	}

	for i := range defs {
		req := defs[i]
		user, err := svcs.users.Create(ctx, &req)
		if errors.Is(err, data.ErrUserEmailExists) {
			logger.DebugContext(ctx, "seed user already present", "email", req.Email)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed user %q: %w", req.Email, err)
		}
		logger.InfoContext(ctx, "seeded user", "email", req.Email, "id", user.ID)
	}
	return nil
}

var seedTrainingDefs = []model.CreateTrainingRequest{
	{
		Title:            "Security Basics",
		Description:      strPtr("Annual security awareness training"),
		VideoKey:         "courses/security-basics.mp4",
		VideoFallbackURL: strPtr("https://media.example.com/static/security-basics.mp4"),
		DurationSeconds:  1800,
		Published:        boolPtr(true),
	},
	{
		Title:            "Data Handling",
		Description:      strPtr("How to classify and store customer data"),
		VideoKey:         "courses/data-handling.mp4",
		DurationSeconds:  1200,
		Published:        boolPtr(true),
	},
	{
		Title:           "Manager Onboarding",
		VideoKey:        "courses/manager-onboarding.mp4",
		DurationSeconds: 2400,
	},
}

func seedTrainings(ctx context.Context, svcs Services, logger *slog.Logger) (map[string]string, error) {
	ids := make(map[string]string, len(seedTrainingDefs))
	for i := range seedTrainingDefs {
		req := seedTrainingDefs[i]

		existing, err := svcs.trainingRepo.List(ctx, model.TrainingsListOptions{Q: &req.Title, Limit: 1})
		if err != nil {
			return nil, fmt.Errorf("look up training %q: %w", req.Title, err)
		}
		if len(existing) > 0 {
			ids[req.Title] = existing[0].ID
			continue
		}

		training, err := svcs.trainings.Create(ctx, &req)
		if err != nil {
			return nil, fmt.Errorf("seed training %q: %w", req.Title, err)
		}
		ids[req.Title] = training.ID
		logger.InfoContext(ctx, "seeded training", "title", req.Title, "id", training.ID)
	}
	return ids, nil
}

type seedLinks struct {
	groups    map[string]string
	trainings map[string]string
}

func seedAssignments(ctx context.Context, svcs Services, links seedLinks, logger *slog.Logger) error {
	pairs := []struct {
		training string
		group    string
	}{
		{training: "Security Basics", group: "Engineering"},
		{training: "Security Basics", group: "Sales"},
		{training: "Data Handling", group: "Engineering"},
	}

	for _, p := range pairs {
		req := model.CreateAssignmentRequest{
			TrainingID: links.trainings[p.training],
			GroupID:    links.groups[p.group],
		}
		if _, err := svcs.assignments.Create(ctx, &req); err != nil {
			if errors.Is(err, data.ErrAssignmentExists) {
				continue
			}
			return fmt.Errorf("seed assignment %s -> %s: %w", p.training, p.group, err)
		}
		logger.InfoContext(ctx, "seeded assignment", "training", p.training, "group", p.group)
	}
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
