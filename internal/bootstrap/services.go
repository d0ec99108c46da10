package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/coachbase/traindeck/config"
	"github.com/coachbase/traindeck/internal/adapters/authroles"
	"github.com/coachbase/traindeck/internal/adapters/videocdn"
	"github.com/coachbase/traindeck/internal/data"
	"github.com/coachbase/traindeck/internal/ports"
	"github.com/coachbase/traindeck/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth         *service.AuthService
	Roles        *authroles.Resolver
	Trainings    *service.TrainingService
	VideoURL     *service.VideoURLService
	Groups       *service.GroupService
	Users        *service.UserService
	Assignments  *service.AssignmentService
	Progress     *service.ProgressService
	Reports      *service.ReportService
	ReportExport *service.ReportExportService
	UserRepo     *data.UserRepo
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	UserRepo       *data.UserRepo
	GroupRepo      *data.GroupRepo
	TrainingRepo   *data.TrainingRepo
	AssignmentRepo *data.AssignmentRepo
	ProgressRepo   *data.ProgressRepo
	ReportRepo     *data.ReportRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		UserRepo:       data.NewUserRepo(db),
		GroupRepo:      data.NewGroupRepo(db),
		TrainingRepo:   data.NewTrainingRepo(db),
		AssignmentRepo: data.NewAssignmentRepo(db),
		ProgressRepo:   data.NewProgressRepo(db),
		ReportRepo:     data.NewReportRepo(db),
	}
}

// NewServices wires repositories, adapters, and services together.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)

	authSvc, err := BuildAuthService(AuthDeps{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Users:       repos.UserRepo,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	roles, err := BuildRoleResolver(AuthDeps{
		Auth:   deps.Config.Auth,
		Users:  repos.UserRepo,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build role resolver: %w", err)
	}

	videoStore, err := buildVideoStore(deps.Config.Video, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	reports := service.NewReportService(service.ReportServiceOptions{ReportRepo: repos.ReportRepo})

	return ServiceContainer{
		Auth:      authSvc,
		Roles:     roles,
		Trainings: service.NewTrainingService(service.TrainingServiceOptions{TrainingRepo: repos.TrainingRepo}),
		VideoURL: service.NewVideoURLService(service.VideoURLServiceOptions{
			Store:  videoStore,
			Logger: logger,
		}),
		Groups:      service.NewGroupService(service.GroupServiceOptions{GroupRepo: repos.GroupRepo}),
		Users:       service.NewUserService(service.UserServiceOptions{UserRepo: repos.UserRepo}),
		Assignments: service.NewAssignmentService(service.AssignmentServiceOptions{AssignmentRepo: repos.AssignmentRepo}),
		Progress: service.NewProgressService(service.ProgressServiceOptions{
			ProgressRepo: repos.ProgressRepo,
			TrainingRepo: repos.TrainingRepo,
		}),
		Reports:      reports,
		ReportExport: service.NewReportExportService(service.ReportExportServiceOptions{Reports: reports}),
		UserRepo:     repos.UserRepo,
	}, nil
}

//nolint:ireturn // the store is optional; nil means fallback URLs only.
func buildVideoStore(cfg config.VideoConfig, logger *slog.Logger) (ports.VideoStore, error) {
	if !cfg.Enabled() {
		logger.Info("video URL signing not configured; serving fallback URLs only")
		return nil, nil //nolint:nilnil // nil store is the documented "fallback only" mode.
	}

	store, err := videocdn.NewStore(videocdn.Config{
		BaseURL:    cfg.BaseURL,
		SigningKey: cfg.SigningKey,
		URLTTL:     cfg.URLTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build video store: %w", err)
	}
	return store, nil
}
