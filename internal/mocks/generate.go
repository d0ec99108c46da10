// Package mocks provides mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the repository interfaces in internal/core. Generated files are not
// checked in; regenerate after interface changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/coachbase/traindeck/internal/core UserRepository

// Generate mock for GroupRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=group_repository_mock.go github.com/coachbase/traindeck/internal/core GroupRepository

// Generate mock for TrainingRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=training_repository_mock.go github.com/coachbase/traindeck/internal/core TrainingRepository

// Generate mock for AssignmentRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=assignment_repository_mock.go github.com/coachbase/traindeck/internal/core AssignmentRepository

// Generate mock for ProgressRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=progress_repository_mock.go github.com/coachbase/traindeck/internal/core ProgressRepository

// Generate mock for ReportRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=report_repository_mock.go github.com/coachbase/traindeck/internal/core ReportRepository
