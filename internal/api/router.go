package api

import (
	"net/http"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/api/handler"
	"github.com/SamriddhiRoy/user-dashboard/internal/api/middleware"
	"github.com/SamriddhiRoy/user-dashboard/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Services struct {
	Auth       *service.AuthService
	Todos      *service.TodoService
	Users      *service.UserService
	Dashboard  *service.DashboardService
	Properties *service.PropertyService
}

type Options struct {
	CookieName     string
	AllowedOrigins []string
	StaticDir      string // serves the UI pages when set
	Guard          middleware.GuardConfig
}

func NewRouter(svc Services, opts Options) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Page redirects run before any handler and never touch the database.
	guard := opts.Guard
	if guard.CookieName == "" {
		guard.CookieName = opts.CookieName
	}
	r.Use(middleware.RouteGuard(svc.Auth, guard))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Authenticate(svc.Auth, opts.CookieName))

		api.Route("/auth", handler.NewAuthHandler().RegisterRoutes)
		api.Route("/profile", handler.NewProfileHandler(svc.Users).RegisterRoutes)
		api.Route("/dashboard", handler.NewDashboardHandler(svc.Dashboard).RegisterRoutes)
		api.Route("/todos", handler.NewTodoHandler(svc.Todos).RegisterRoutes)
		api.Route("/users", handler.NewUserHandler(svc.Users).RegisterRoutes)
		api.Route("/properties", handler.NewPropertyHandler(svc.Properties).RegisterRoutes)
	})

	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}
