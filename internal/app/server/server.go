package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrerp/internal/domain/attendance"
	"hrerp/internal/domain/audit"
	"hrerp/internal/domain/auth"
	"hrerp/internal/domain/compliance"
	"hrerp/internal/domain/learning"
	"hrerp/internal/domain/org"
	"hrerp/internal/domain/payroll"
	"hrerp/internal/domain/performance"
	"hrerp/internal/domain/planning"
	"hrerp/internal/domain/reports"
	"hrerp/internal/domain/succession"
	"hrerp/internal/platform/config"
	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/db"
	"hrerp/internal/platform/logging"
	"hrerp/internal/platform/metrics"
	"hrerp/internal/platform/querier"
	attendancehandler "hrerp/internal/transport/http/handlers/attendance"
	audithandler "hrerp/internal/transport/http/handlers/audit"
	compliancehandler "hrerp/internal/transport/http/handlers/compliance"
	learninghandler "hrerp/internal/transport/http/handlers/learning"
	orghandler "hrerp/internal/transport/http/handlers/org"
	payrollhandler "hrerp/internal/transport/http/handlers/payroll"
	performancehandler "hrerp/internal/transport/http/handlers/performance"
	planninghandler "hrerp/internal/transport/http/handlers/planning"
	reportshandler "hrerp/internal/transport/http/handlers/reports"
	successionhandler "hrerp/internal/transport/http/handlers/succession"
	systemhandler "hrerp/internal/transport/http/handlers/system"
	"hrerp/internal/transport/http/middleware"
)

const (
	rateWindow      = time.Minute
	shutdownTimeout = 15 * time.Second
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

// Services holds one domain service per module, all sharing one data store.
type Services struct {
	Org         *org.Service
	Planning    *planning.Service
	Succession  *succession.Service
	Learning    *learning.Service
	Compliance  *compliance.Service
	Attendance  *attendance.Service
	Performance *performance.Service
	Payroll     *payroll.Service
	Reports     *reports.Service
	Audit       *audit.Service
}

func NewServices(q querier.Querier, cfg config.Config) Services {
	s := Services{
		Org:         org.NewService(org.NewStore(q)),
		Planning:    planning.NewService(planning.NewStore(q), cfg.SkillGapCriticalThreshold),
		Succession:  succession.NewService(succession.NewStore(q)),
		Learning:    learning.NewService(learning.NewStore(q), cfg.CertExpiryWarning),
		Attendance:  attendance.NewService(attendance.NewStore(q)),
		Performance: performance.NewService(performance.NewStore(q)),
		Payroll:     payroll.NewService(payroll.NewStore(q)),
		Audit:       audit.NewService(q, nil),
	}
	s.Compliance = compliance.NewService(compliance.NewStore(q), s.Org)
	s.Reports = reports.NewService(reports.Sources{
		Org:         s.Org,
		Attendance:  s.Attendance,
		Goals:       s.Performance,
		Enrollments: s.Learning,
		Items:       s.Compliance,
	}, cfg.DashboardTimeout)
	if cfg.AuditEnabled {
		s.observe(s.Audit.Observer())
	}
	return s
}

// observe attaches fn to every writable resource.
func (s Services) observe(fn datastore.Observer) {
	s.Org.Employees.Observe(fn)
	s.Org.Departments.Observe(fn)
	s.Planning.Plans.Observe(fn)
	s.Planning.Skills.Observe(fn)
	s.Planning.Assessments.Observe(fn)
	s.Succession.Positions.Observe(fn)
	s.Succession.Successors.Observe(fn)
	s.Learning.Courses.Observe(fn)
	s.Learning.Enrollments.Observe(fn)
	s.Learning.Certifications.Observe(fn)
	s.Compliance.Policies.Observe(fn)
	s.Compliance.Acknowledgments.Observe(fn)
	s.Compliance.Items.Observe(fn)
	s.Attendance.Records.Observe(fn)
	s.Performance.Goals.Observe(fn)
	s.Payroll.Records.Observe(fn)
}

// NewRouter mounts probes at the root and every module under /api/v1.
func NewRouter(cfg config.Config, logger *slog.Logger, pinger systemhandler.Pinger, svc Services, perms middleware.Authorizer, collector *metrics.Collector, idempotency *middleware.IdempotencyStore) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, rateWindow))
	router.Use(middleware.AggregationRateLimit(cfg.RateLimitPerMinute, rateWindow))

	systemCollector := collector
	if !cfg.MetricsEnabled {
		systemCollector = nil
	}
	systemhandler.NewHandler(pinger, perms, systemCollector).RegisterRoutes(router)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotency))
		orghandler.NewHandler(svc.Org, perms, collector).RegisterRoutes(r)
		planninghandler.NewHandler(svc.Planning, perms, collector).RegisterRoutes(r)
		successionhandler.NewHandler(svc.Succession, perms, collector).RegisterRoutes(r)
		learninghandler.NewHandler(svc.Learning, perms, collector).RegisterRoutes(r)
		compliancehandler.NewHandler(svc.Compliance, perms, collector).RegisterRoutes(r)
		attendancehandler.NewHandler(svc.Attendance, perms, collector).RegisterRoutes(r)
		performancehandler.NewHandler(svc.Performance, perms, collector).RegisterRoutes(r)
		payrollhandler.NewHandler(svc.Payroll, perms, collector).RegisterRoutes(r)
		reportshandler.NewHandler(svc.Reports, perms, collector).RegisterRoutes(r)
		audithandler.NewHandler(svc.Audit, perms).RegisterRoutes(r)
	})
	return router
}

// New connects to the data store, applies migrations when configured and
// builds the router.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, err
		}
	}
	enforcer, err := auth.NewEnforcer()
	if err != nil {
		pool.Close()
		return nil, err
	}
	collector := metrics.New()
	return &App{
		Config:  cfg,
		Logger:  logger,
		DB:      pool,
		Metrics: collector,
		Router:  NewRouter(cfg, logger, pool, NewServices(pool, cfg), enforcer, collector, middleware.NewIdempotencyStore(pool)),
	}, nil
}

// Serve blocks until ctx is cancelled or the listener fails, then drains
// in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("hrerp server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run loads configuration from the environment and serves until ctx ends.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	app, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Serve(ctx)
}
