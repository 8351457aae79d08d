package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/logger"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Name, cfg.App.Version, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Error("Error connecting to database", logger.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	employeeRepo := postgresql.NewEmployeeRepository(db, appMetrics)
	attendanceRepo := postgresql.NewAttendanceRepository(db, appMetrics)
	settingsRepo := postgresql.NewSettingsRepository(db, appMetrics)
	snapshotter := postgresql.NewSnapshotter(db.Pool)

	payrollSvc := payrollService.NewPayrollService(
		employeeRepo,
		attendanceRepo,
		settingsRepo,
		snapshotter,
		payrollService.ServiceConfig{
			Rates: payroll.Rates{
				EmploymentInsurance: cfg.Payroll.EmploymentInsuranceRate,
				IncomeTax:           cfg.Payroll.IncomeTaxRate,
				OvertimePerMinute:   cfg.Payroll.OvertimePayPerMinute,
			},
			RosterConcurrency: cfg.Payroll.RosterConcurrency,
		},
		appMetrics,
	)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(payrollSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         log,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Gatherer:       reg,
		},
		payrollHandler,
		employeeHandler,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", logger.Err(err))
		}
	}()

	log.Info("Server running", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("Server error", logger.Err(err))
		return
	}
	log.Info("Server stopped gracefully")
}
