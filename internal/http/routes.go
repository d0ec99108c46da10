package httpx

import (
	"log/slog"
	"net/http"

	"github.com/coachbase/traindeck/internal/core"
	"github.com/coachbase/traindeck/internal/ports"
	"github.com/coachbase/traindeck/internal/service"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Roles        ports.RoleResolver
	Trainings    *service.TrainingService
	VideoURL     *service.VideoURLService
	Groups       *service.GroupService
	Users        *service.UserService
	Assignments  *service.AssignmentService
	Progress     *service.ProgressService
	Reports      *service.ReportService
	ReportExport *service.ReportExportService
	// Users repository for the privileged is-admin function; its role read
	// bypasses the per-user visibility applied to UserService lookups.
	UserRepo     core.UserRepository
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger}
	trainingHandlers := &TrainingHandlers{Svc: services.Trainings, VideoSvc: services.VideoURL}
	groupHandlers := &GroupHandlers{Svc: services.Groups}
	userHandlers := &UserHandlers{Svc: services.Users}
	assignmentHandlers := &AssignmentHandlers{Svc: services.Assignments}
	progressHandlers := &ProgressHandlers{Svc: services.Progress}
	reportHandlers := &ReportHandlers{Svc: services.Reports, Export: services.ReportExport}
	functionHandlers := &FunctionHandlers{Auth: services.Auth, Users: services.UserRepo, Logger: logger}

	guards := routeGuards{Auth: services.Auth, Roles: services.Roles}

	registerAuthRoutes(mux, authHandlers)
	registerTrainingRoutes(mux, trainingHandlers, guards)
	registerGroupRoutes(mux, groupHandlers, guards)
	registerUserRoutes(mux, userHandlers, guards)
	registerAssignmentRoutes(mux, assignmentHandlers, guards)
	registerProgressRoutes(mux, progressHandlers, guards)
	registerReportRoutes(mux, reportHandlers, guards)
	registerFunctionRoutes(mux, functionHandlers)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Recover(logger)(Logging(logger)(mux))
}

// routeGuards bundles the auth service and role resolver used by route
// registration. Both wrappers degrade to a pass-through when the
// corresponding dependency is nil.
type routeGuards struct {
	Auth  AuthServiceInterface
	Roles ports.RoleResolver
}

func (g routeGuards) authWrap() func(http.Handler) http.Handler {
	if g.Auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAuth(g.Auth)
}

func (g routeGuards) adminWrap() func(http.Handler) http.Handler {
	if g.Auth == nil || g.Roles == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAdmin(g.Auth, g.Roles)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerTrainingRoutes(mux *http.ServeMux, h *TrainingHandlers, g routeGuards) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/trainings",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: g.adminWrap(),
		GetWrap:    g.authWrap(),
	})

	wrap := g.authWrap()
	mux.Handle("GET /api/me/trainings", wrap(http.HandlerFunc(h.ListVisible)))
	mux.Handle("GET /api/trainings/{id}/video-url", wrap(http.HandlerFunc(h.VideoURL)))
}

func registerGroupRoutes(mux *http.ServeMux, h *GroupHandlers, g routeGuards) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/groups",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: g.adminWrap(),
	})
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, g routeGuards) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/users",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: g.adminWrap(),
	})
}

func registerAssignmentRoutes(mux *http.ServeMux, h *AssignmentHandlers, g routeGuards) {
	wrapAdmin := g.adminWrap()
	mux.Handle("POST /api/assignments", wrapAdmin(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/assignments", wrapAdmin(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/assignments/{id}", wrapAdmin(http.HandlerFunc(h.GetByID)))
	mux.Handle("DELETE /api/assignments/{id}", wrapAdmin(http.HandlerFunc(h.Delete)))
}

func registerProgressRoutes(mux *http.ServeMux, h *ProgressHandlers, g routeGuards) {
	wrap := g.authWrap()
	wrapAdmin := g.adminWrap()
	mux.Handle("POST /api/progress", wrap(http.HandlerFunc(h.Record)))
	mux.Handle("GET /api/trainings/{id}/progress", wrap(http.HandlerFunc(h.GetOwn)))
	mux.Handle("GET /api/progress", wrapAdmin(http.HandlerFunc(h.List)))
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers, g routeGuards) {
	wrapAdmin := g.adminWrap()
	mux.Handle("GET /api/reports/trainings", wrapAdmin(http.HandlerFunc(h.Trainings)))
	mux.Handle("GET /api/reports/groups", wrapAdmin(http.HandlerFunc(h.Groups)))
	mux.Handle("GET /api/reports/overview", wrapAdmin(http.HandlerFunc(h.Overview)))
	mux.Handle("GET /api/reports/export", wrapAdmin(http.HandlerFunc(h.ExportData)))
}

func registerFunctionRoutes(mux *http.ServeMux, h *FunctionHandlers) {
	// Authenticates its own bearer token; no guard wrapper.
	mux.HandleFunc("POST /api/functions/is-admin", h.IsAdmin)
}

// crudRoutes registers standard CRUD routes for a resource base path.
// Middleware wraps everything; GetWrap, when set, replaces it on the detail
// route so members can read single resources that only admins may list or write.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
	GetWrap    func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil || cfg.List == nil || cfg.GetByID == nil || cfg.Update == nil || cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	getWrap := wrap
	if cfg.GetWrap != nil {
		getWrap = func(h http.HandlerFunc) http.Handler { return cfg.GetWrap(h) }
	}

	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", getWrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}
