package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
	"github.com/leavehub/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehub/leave-backend-go/internal/pkg/metrics"
)

type RouterOptions struct {
	APIPrefix          string
	CORSAllowedOrigins []string
	LogLevel           slog.Level
	AuthRateLimiter    *middleware.RateLimiter
}

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Leave        LeaveHandler
	Balance      BalanceHandler
	Notice       NoticeHandler
	Notification NotificationHandler
	Wellness     WellnessHandler
	Dashboard    DashboardHandler
}

func NewRouter(logger *slog.Logger, opts RouterOptions, jwtService jwt.Service, users user.UserRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "Retry-After", "X-Request-Id"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(middleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Handle("/metrics", metrics.Handler())

	authenticate := middleware.Authenticate(jwtService, users)
	// EventSource clients cannot set headers, so the stream also takes ?jwt=
	streamAuthenticate := middleware.Authenticate(jwtService, users, jwtauth.TokenFromHeader, jwtauth.TokenFromQuery)

	r.Route(opts.APIPrefix, func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			if opts.AuthRateLimiter != nil {
				r.Use(opts.AuthRateLimiter.Handler)
			}
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/google", h.Auth.LoginWithGoogle)
			r.Get("/google/callback", h.Auth.OAuthCallbackGoogle)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.With(streamAuthenticate).Get("/stream", h.Notification.Stream)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.GetUnreadCount)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
				r.Put("/{id}/read", h.Notification.MarkAsRead)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.GetProfile)
				r.Put("/me", h.User.UpdateProfile)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", h.User.List)
					r.Get("/{id}", h.User.GetByID)
					r.Put("/{id}", h.User.Update)
					r.Delete("/{id}", h.User.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/", h.Leave.ListMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/all", h.Leave.ListAll)
					r.Put("/{id}", h.Leave.UpdateStatus)
				})
			})

			r.Route("/balances", func(r chi.Router) {
				r.Get("/", h.Balance.GetMyBalance)
				r.Get("/with-usage", h.Balance.GetMyBalanceWithUsage)
				r.Post("/request-increase", h.Balance.RequestIncrease)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/all", h.Balance.GetAllBalances)
					r.Put("/update/{employeeId}", h.Balance.UpdateBalance)
				})
			})

			r.Route("/balance-requests", func(r chi.Router) {
				r.Get("/my-requests", h.Balance.ListMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/all", h.Balance.ListAllRequests)
					r.Put("/update-status/{id}", h.Balance.UpdateRequestStatus)
				})
			})

			r.Route("/notices", func(r chi.Router) {
				r.Get("/", h.Notice.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Notice.Create)
					r.Put("/{id}", h.Notice.Update)
					r.Delete("/{id}", h.Notice.Delete)
				})
			})

			r.Route("/wellness", func(r chi.Router) {
				r.Get("/my-events", h.Wellness.ListMyEvents)

				r.Route("/articles", func(r chi.Router) {
					r.Get("/", h.Wellness.ListArticles)
					r.Get("/{id}", h.Wellness.GetArticle)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Wellness.CreateArticle)
						r.Put("/{id}", h.Wellness.UpdateArticle)
						r.Delete("/{id}", h.Wellness.DeleteArticle)
					})
				})

				r.Route("/events", func(r chi.Router) {
					r.Get("/", h.Wellness.ListEvents)
					r.Get("/{id}", h.Wellness.GetEvent)
					r.Post("/{id}/register", h.Wellness.RegisterForEvent)
					r.Post("/{id}/unregister", h.Wellness.UnregisterFromEvent)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", h.Wellness.CreateEvent)
						r.Put("/{id}", h.Wellness.UpdateEvent)
						r.Delete("/{id}", h.Wellness.DeleteEvent)
					})
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/stats", h.Dashboard.GetStats)
				r.Get("/activities", h.Dashboard.GetActivities)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
