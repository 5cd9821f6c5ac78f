package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/leavehub/leave-backend-go/internal/config"
	"github.com/leavehub/leave-backend-go/internal/domain/auth"
	"github.com/leavehub/leave-backend-go/internal/domain/balance"
	"github.com/leavehub/leave-backend-go/internal/domain/dashboard"
	"github.com/leavehub/leave-backend-go/internal/domain/leave"
	"github.com/leavehub/leave-backend-go/internal/domain/notice"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/domain/user"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	appHTTP "github.com/leavehub/leave-backend-go/internal/handler/http"
	"github.com/leavehub/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehub/leave-backend-go/internal/handler/http/response"
	"github.com/leavehub/leave-backend-go/internal/pkg/cron"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/leavehub/leave-backend-go/internal/pkg/email"
	"github.com/leavehub/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehub/leave-backend-go/internal/pkg/oauth"
	"github.com/leavehub/leave-backend-go/internal/pkg/sse"
	"github.com/leavehub/leave-backend-go/internal/repository/postgresql"
	authService "github.com/leavehub/leave-backend-go/internal/service/auth"
	balanceService "github.com/leavehub/leave-backend-go/internal/service/balance"
	dashboardService "github.com/leavehub/leave-backend-go/internal/service/dashboard"
	leaveService "github.com/leavehub/leave-backend-go/internal/service/leave"
	noticeService "github.com/leavehub/leave-backend-go/internal/service/notice"
	notificationService "github.com/leavehub/leave-backend-go/internal/service/notification"
	userService "github.com/leavehub/leave-backend-go/internal/service/user"
	wellnessService "github.com/leavehub/leave-backend-go/internal/service/wellness"
)

// Repositories is the storage the services run on: PostgreSQL in
// production, the memory store in tests.
type Repositories struct {
	Tx              database.Transactor
	Users           user.UserRepository
	Balances        balance.BalanceRepository
	BalanceRequests balance.RequestRepository
	Leaves          leave.LeaveRepository
	Notices         notice.NoticeRepository
	Notifications   notification.NotificationRepository
	Articles        wellness.ArticleRepository
	Events          wellness.EventRepository
	Stats           dashboard.StatsRepository
}

func PostgresRepositories(db *database.DB) Repositories {
	return Repositories{
		Tx:              postgresql.NewTransactor(db),
		Users:           postgresql.NewUserRepository(db),
		Balances:        postgresql.NewBalanceRepository(db),
		BalanceRequests: postgresql.NewBalanceRequestRepository(db),
		Leaves:          postgresql.NewLeaveRepository(db),
		Notices:         postgresql.NewNoticeRepository(db),
		Notifications:   postgresql.NewNotificationRepository(db),
		Articles:        postgresql.NewArticleRepository(db),
		Events:          postgresql.NewEventRepository(db),
		Stats:           postgresql.NewStatsRepository(db),
	}
}

type Services struct {
	Hub            *sse.Hub
	JWT            jwt.Service
	Auth           auth.AuthService
	User           user.UserService
	Balance        balance.BalanceService
	BalanceRequest balance.RequestService
	Leave          leave.LeaveService
	Notice         notice.NoticeService
	Notification   notification.NotificationService
	Article        wellness.ArticleService
	Event          wellness.EventService
	Dashboard      dashboard.DashboardService
	Maintenance    *cron.MaintenanceJobs
}

func NewServices(cfg *config.Config, repos Repositories, emailService email.EmailService) (Services, error) {
	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		return Services{}, fmt.Errorf("failed to create jwt service: %w", err)
	}

	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(repos.Notifications, hub)
	leaveSvc := leaveService.NewLeaveService(repos.Tx, repos.Leaves, repos.Balances, repos.Users, notificationSvc, emailService)

	return Services{
		Hub:            hub,
		JWT:            jwtService,
		Auth:           authService.NewAuthService(repos.Tx, repos.Users, repos.Balances, jwtService),
		User:           userService.NewUserService(repos.Users),
		Balance:        balanceService.NewBalanceService(repos.Users, repos.Balances, repos.Leaves),
		BalanceRequest: balanceService.NewRequestService(repos.Tx, repos.BalanceRequests, repos.Balances, notificationSvc),
		Leave:          leaveSvc,
		Notice:         noticeService.NewNoticeService(repos.Notices),
		Notification:   notificationSvc,
		Article:        wellnessService.NewArticleService(repos.Articles),
		Event:          wellnessService.NewEventService(repos.Tx, repos.Events, repos.Users, notificationSvc, emailService),
		Dashboard:      dashboardService.NewDashboardService(repos.Stats, repos.Leaves, repos.Users),
		Maintenance:    cron.NewMaintenanceJobs(leaveSvc, notificationSvc, cfg.Cron.NotificationRetention),
	}, nil
}

// NewHandler builds the HTTP surface. Google sign-in is mounted only when
// credentials are configured.
func NewHandler(cfg *config.Config, logger *slog.Logger, repos Repositories, services Services) http.Handler {
	response.SetDebug(cfg.IsDevelopment())

	var googleService oauth.GoogleService
	if cfg.Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL, cfg.Google.Scopes)
	}

	handlers := appHTTP.Handlers{
		Auth: appHTTP.NewAuthHandler(
			services.Auth,
			googleService,
			cfg.SMTP.FrontendURL,
			cfg.App.APIPrefix+"/auth/google/callback",
			!cfg.IsDevelopment(),
		),
		User:         appHTTP.NewUserHandler(services.User),
		Leave:        appHTTP.NewLeaveHandler(services.Leave),
		Balance:      appHTTP.NewBalanceHandler(services.Balance, services.BalanceRequest),
		Notice:       appHTTP.NewNoticeHandler(services.Notice),
		Notification: appHTTP.NewNotificationHandler(services.Notification),
		Wellness:     appHTTP.NewWellnessHandler(services.Article, services.Event),
		Dashboard:    appHTTP.NewDashboardHandler(services.Dashboard),
	}

	return appHTTP.NewRouter(logger, appHTTP.RouterOptions{
		APIPrefix:          cfg.App.APIPrefix,
		CORSAllowedOrigins: cfg.App.CORSAllowedOrigins,
		LogLevel:           ParseLevel(cfg.App.LogLevel),
		AuthRateLimiter:    middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}, services.JWT, repos.Users, handlers)
}
