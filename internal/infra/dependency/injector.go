// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/consultorio/dashboard-backend/config"
	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/analysis"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/appointment"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/client"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/dashboard"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/obligation"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/plan"
	"github.com/consultorio/dashboard-backend/internal/application/usecase/reminder"
	"github.com/consultorio/dashboard-backend/internal/domain/clock"
	domainobligation "github.com/consultorio/dashboard-backend/internal/domain/obligation"
	"github.com/consultorio/dashboard-backend/internal/domain/schedule"
	"github.com/consultorio/dashboard-backend/internal/infra/server/router"
	"github.com/consultorio/dashboard-backend/internal/integration/coordination"
	"github.com/consultorio/dashboard-backend/internal/integration/email"
	"github.com/consultorio/dashboard-backend/internal/integration/email/templates"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/controller"
	"github.com/consultorio/dashboard-backend/internal/integration/entrypoint/middleware"
	"github.com/consultorio/dashboard-backend/internal/integration/metrics"
	"github.com/consultorio/dashboard-backend/internal/integration/notifier"
	"github.com/consultorio/dashboard-backend/internal/integration/persistence"
)

// Options carries the infrastructure handles the injector wires together.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	// Redis is optional. Without it locks, the reminder ledger and change
	// notifications stay in-process.
	Redis *redis.Client
	Clock clock.Clock
	// EmailSender overrides the sender picked from configuration.
	EmailSender adapter.EmailSender
	// DBHealthChecker and RedisHealthChecker feed /health.
	DBHealthChecker    func() bool
	RedisHealthChecker func() bool
}

// Injector holds all application dependencies.
type Injector struct {
	Config            *config.Config
	DB                *gorm.DB
	Router            *router.Router
	Metrics           *metrics.Recorder
	Memo              *schedule.Memo
	RateLimiter       *middleware.RateLimiter
	EmailWorker       *email.Worker
	ReminderScheduler *reminder.Scheduler
	SendReminders     *reminder.SendDueRemindersUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(opts Options) (*Injector, error) {
	cfg := opts.Config
	db := opts.DB

	clk := opts.Clock
	if clk == nil {
		clk = clock.InLocation(clock.System{}, cfg.Schedule.Location())
	}

	// Create repositories
	obligationRepo := persistence.NewObligationRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	analysisRepo := persistence.NewAnalysisRepository(db)
	appointmentRepo := persistence.NewAppointmentRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create schedule memo and obligation factory
	policy, err := schedule.ParseEvictionPolicy(cfg.Schedule.MemoPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule memo policy: %w", err)
	}
	memo, err := schedule.NewMemo(cfg.Schedule.MemoCapacity, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule memo: %w", err)
	}
	factory := domainobligation.NewFactory(clk, domainobligation.WithSchedule(memo.Generate))

	// Create coordination adapters
	var (
		locker       adapter.PlanLocker
		ledger       adapter.ReminderLedger
		changeNotify adapter.ChangeNotifier
	)
	if opts.Redis != nil {
		locker = coordination.NewRedisLocker(opts.Redis, cfg.Redis.LockTTL)
		ledger = coordination.NewRedisLedger(opts.Redis)
		changeNotify = notifier.Multi{notifier.NewRedisNotifier(opts.Redis), notifier.LogNotifier{}}
	} else {
		locker = coordination.NewMemoryLocker()
		ledger = coordination.NewMemoryLedger()
		changeNotify = notifier.LogNotifier{}
	}

	recorder := metrics.New()

	// Create email services
	sender := opts.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			resendClient := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ReplyTo)
			if cfg.Email.ResendBaseURL != "" {
				if resendClient, err = resendClient.WithBaseURL(cfg.Email.ResendBaseURL); err != nil {
					return nil, err
				}
			}
			sender = resendClient
		} else {
			slog.Warn("RESEND_API_KEY not set, emails will be logged only")
			sender = email.LogSender{}
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailService := email.NewService(emailQueueRepo, clk, cfg.Email.PracticeName)
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, clk, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		ClaimTimeout: cfg.Email.ClaimTimeout,
		Retention:    cfg.Email.Retention,
	})

	// Create plan use cases
	resyncPlanUseCase := plan.NewResyncPlanUseCase(obligationRepo, analysisRepo, locker, factory, changeNotify, recorder, clk)
	previewPlanUseCase := plan.NewPreviewPlanUseCase(memo, clk)
	activatePlanUseCase := plan.NewActivatePlanUseCase(obligationRepo, analysisRepo, resyncPlanUseCase, factory, changeNotify, recorder, clk)

	// Create obligation use cases
	listObligationsUseCase := obligation.NewListObligationsUseCase(obligationRepo, clk)
	markPaidUseCase := obligation.NewMarkPaidUseCase(obligationRepo, changeNotify, recorder, clk)
	reopenUseCase := obligation.NewReopenUseCase(obligationRepo, changeNotify, clk)
	deleteObligationUseCase := obligation.NewDeleteObligationUseCase(obligationRepo, changeNotify, clk)

	// Create analysis use cases
	listAnalysesUseCase := analysis.NewListAnalysesUseCase(analysisRepo)
	createAnalysisUseCase := analysis.NewCreateAnalysisUseCase(analysisRepo, resyncPlanUseCase, clk)
	getAnalysisUseCase := analysis.NewGetAnalysisUseCase(analysisRepo, obligationRepo)
	updateAnalysisUseCase := analysis.NewUpdateAnalysisUseCase(analysisRepo, obligationRepo, resyncPlanUseCase, changeNotify, clk)
	deleteAnalysisUseCase := analysis.NewDeleteAnalysisUseCase(analysisRepo, obligationRepo, changeNotify, clk)

	// Create client use cases
	listClientsUseCase := client.NewListClientsUseCase(clientRepo)
	createClientUseCase := client.NewCreateClientUseCase(clientRepo, clk)
	updateClientUseCase := client.NewUpdateClientUseCase(clientRepo, clk)
	deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo)

	// Create appointment use cases
	listAppointmentsUseCase := appointment.NewListAppointmentsUseCase(appointmentRepo)
	createAppointmentUseCase := appointment.NewCreateAppointmentUseCase(appointmentRepo, clk)
	updateStatusUseCase := appointment.NewUpdateStatusUseCase(appointmentRepo, clk)

	// Create dashboard use cases
	upcomingDuesUseCase := dashboard.NewGetUpcomingDuesUseCase(obligationRepo, clientRepo, clk, cfg.Schedule.DefaultHorizon)
	summaryUseCase := dashboard.NewGetSummaryUseCase(obligationRepo, appointmentRepo, clk)
	trendsUseCase := dashboard.NewGetTrendsUseCase(obligationRepo, appointmentRepo, clk)

	// Create reminder use cases
	sendRemindersUseCase := reminder.NewSendDueRemindersUseCase(obligationRepo, clientRepo, ledger, emailService, recorder, clk, cfg.Reminder.LeadDays)
	reminderScheduler := reminder.NewScheduler(sendRemindersUseCase, cfg.Reminder.Interval)

	// Create controllers
	healthController := controller.NewHealthController(opts.DBHealthChecker, opts.RedisHealthChecker, clk)
	clientController := controller.NewClientController(listClientsUseCase, createClientUseCase, updateClientUseCase, deleteClientUseCase)
	analysisController := controller.NewAnalysisController(
		listAnalysesUseCase,
		createAnalysisUseCase,
		getAnalysisUseCase,
		updateAnalysisUseCase,
		deleteAnalysisUseCase,
		clk,
	)
	planController := controller.NewPlanController(previewPlanUseCase, activatePlanUseCase, resyncPlanUseCase, clk)
	obligationController := controller.NewObligationController(
		listObligationsUseCase,
		markPaidUseCase,
		reopenUseCase,
		deleteObligationUseCase,
		clk,
	)
	dashboardController := controller.NewDashboardController(upcomingDuesUseCase, summaryUseCase, trendsUseCase)
	appointmentController := controller.NewAppointmentController(listAppointmentsUseCase, createAppointmentUseCase, updateStatusUseCase)
	reminderController := controller.NewReminderController(sendRemindersUseCase)

	// Create middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.Server.WriteRateLimit, 0, clk).WithRedis(opts.Redis)

	// Create router
	r := router.NewRouter(
		healthController,
		clientController,
		analysisController,
		planController,
		obligationController,
		dashboardController,
		appointmentController,
		reminderController,
		rateLimiter,
		recorder,
	)

	return &Injector{
		Config:            cfg,
		DB:                db,
		Router:            r,
		Metrics:           recorder,
		Memo:              memo,
		RateLimiter:       rateLimiter,
		EmailWorker:       emailWorker,
		ReminderScheduler: reminderScheduler,
		SendReminders:     sendRemindersUseCase,
	}, nil
}
