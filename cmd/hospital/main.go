package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-records/config"
	"github.com/jwalitptl/hospital-records/internal/console"
	"github.com/jwalitptl/hospital-records/internal/database"
	"github.com/jwalitptl/hospital-records/internal/handler/ops"
	"github.com/jwalitptl/hospital-records/internal/repository/postgres"
	"github.com/jwalitptl/hospital-records/internal/router"
	"github.com/jwalitptl/hospital-records/internal/service/appointment"
	"github.com/jwalitptl/hospital-records/internal/service/doctor"
	"github.com/jwalitptl/hospital-records/internal/service/patient"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "hospital",
		Short:         "Hospital records manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.AddCommand(initCmd(&configPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(*configPath)
			if err != nil {
				return err
			}
			return database.Initialize(cmd.Context(), app.provider)
		},
	}
}

type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	provider *database.Provider
}

func setup(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.JSON,
	})
	m := metrics.NewMetrics("hospital", "records")

	provider := database.NewProvider(cfg.Database,
		database.WithLogger(log),
		database.WithMetrics(m),
	)

	return &app{cfg: cfg, log: log, metrics: m, provider: provider}, nil
}

func run(ctx context.Context, configPath string) error {
	a, err := setup(configPath)
	if err != nil {
		return err
	}

	if err := database.Initialize(ctx, a.provider); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opsErr := make(chan error, 1)
	if a.cfg.Metrics.Enabled {
		r := router.NewRouter(ops.NewHandler(a.provider, a.metrics, a.log), a.log, a.metrics, router.RouterConfig{
			RateLimit: rate.Limit(a.cfg.Metrics.RateLimit),
			RateBurst: a.cfg.Metrics.Burst,
		})
		r.Setup()
		go func() { opsErr <- r.Serve(ctx, a.cfg.Metrics.Addr) }()
	}

	c := console.New(os.Stdin, os.Stdout, console.Services{
		Patients:     patient.NewService(postgres.NewPatientRepository(a.provider), a.log),
		Doctors:      doctor.NewService(postgres.NewDoctorRepository(a.provider), a.log),
		Appointments: appointment.NewService(postgres.NewAppointmentRepository(a.provider), a.log),
	}, a.log)

	// The console blocks on stdin, so it runs on its own goroutine and a
	// signal ends the program without waiting for the next line.
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	opsRunning := a.cfg.Metrics.Enabled
	select {
	case err = <-done:
	case err = <-opsErr:
		opsRunning = false
		if err != nil {
			err = fmt.Errorf("ops server failed: %w", err)
		}
	case <-ctx.Done():
		a.log.Info("shutting down")
	}

	cancel()
	if opsRunning {
		if serveErr := <-opsErr; serveErr != nil && err == nil {
			err = fmt.Errorf("ops server failed: %w", serveErr)
		}
	}
	return err
}
