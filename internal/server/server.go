package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	bodyLimit      = "1M"
	idleTimeout    = 60 * time.Second
	maxHeaderBytes = 1 << 16
)

// Server is the HTTP API over one ledger database
type Server struct {
	cfg     *config.Config
	echo    *echo.Echo
	limiter *middleware.RateLimiter
}

// New wires repositories, services and handlers onto an echo router.
// Application metrics are registered on reg and served from /metrics.
func New(cfg *config.Config, db *database.DB, reg *prometheus.Registry) *Server {
	metrics := services.NewPrometheusMetrics(reg)

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	goalRepo := repositories.NewGoalRepository(db.DB)

	transactionService := services.NewTransactionService(transactionRepo, metrics, nil)
	goalService := services.NewGoalService(goalRepo, metrics)
	reportService := services.NewReportService(transactionRepo, goalRepo, metrics, services.ReportSettings{
		TopCategories: cfg.Reporting.TopCategories,
		MonthsBack:    cfg.Reporting.MonthsBack,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(reg)

	s := &Server{
		cfg:     cfg,
		echo:    e,
		limiter: middleware.NewRateLimiter(cfg.Security),
	}

	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.PanicRecovery(cfg.IsDevelopment()))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(s.limiter.Middleware())

	e.GET("/health", handlers.NewHealthCheckHandler(db).HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	user := e.Group("/api/v1/users/:" + handlers.UserIDParam)
	if cfg.Auth.Enabled {
		user.Use(middleware.RequireAuth(cfg.Auth))
	} else {
		slog.Warn("Bearer token verification is disabled")
	}

	registerRoutes(user,
		handlers.NewTransactionHandler(transactionService, reportService),
		handlers.NewGoalHandler(goalService, reportService),
		handlers.NewReportHandler(reportService),
	)

	return s
}

func registerRoutes(g *echo.Group, txns *handlers.TransactionHandler, goals *handlers.GoalHandler, reports *handlers.ReportHandler) {
	g.POST("/transactions", txns.CreateTransaction)
	g.GET("/transactions", txns.ListTransactions)
	g.GET("/transactions/:id", txns.GetTransaction)
	g.PUT("/transactions/:id", txns.UpdateTransaction)
	g.DELETE("/transactions/:id", txns.DeleteTransaction)

	g.POST("/goals", goals.SetGoal)
	g.GET("/goals", goals.ListGoals)
	g.GET("/goals/progress", goals.GoalsProgress)
	g.GET("/goals/:id", goals.GetGoal)
	g.PUT("/goals/:id", goals.UpdateGoal)
	g.DELETE("/goals/:id", goals.DeleteGoal)

	g.GET("/dashboard", reports.Dashboard)
	g.GET("/reports/monthly", reports.MonthlyReport)
	g.GET("/reports/categories", reports.CategoryReport)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests within the shutdown timeout
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:           net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port),
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: maxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.limiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("Starting finance tracker API", "addr", httpServer.Addr, "env", s.cfg.Server.Environment)
		if err := s.echo.StartServer(httpServer); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.Log(c.Request().Context(), level, "request",
				"trace_id", middleware.GetTraceID(c),
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	})
}
