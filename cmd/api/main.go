package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"centavo/internal/interfaces/scheduler"
	"centavo/internal/shared/config"
	"centavo/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize telemetry (if enabled)
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(context.Background(), telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
		log.Println("Telemetry initialized")
	}

	// Initialize dependencies (database, repositories, services, handlers)
	deps, err := NewDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Initialize balance-audit scheduler (if enabled)
	var sched *scheduler.Scheduler
	if cfg.Audit.Enabled {
		log.Println("Initializing balance-audit scheduler...")
		sched, err = scheduler.New(scheduler.Config{
			ScheduleTimes: cfg.Audit.ScheduleTimes,
			WorkerCount:   cfg.Audit.WorkerCount,
			JobDelay:      cfg.Audit.JobDelay,
			QueueSize:     cfg.Audit.QueueSize,
			RunOnStartup:  cfg.Audit.RunOnStartup,
			JobProvider:   auditJobProvider(deps, cfg.Audit.Repair),
		})
		if err != nil {
			return err
		}

		sched.Start()
		log.Printf("Balance-audit scheduler started with times: %v", cfg.Audit.ScheduleTimes)
	} else {
		log.Println("Balance-audit scheduler is disabled")
	}

	// Create router and start servers
	handler := SetupRoutes(deps, cfg)
	srv, redirectSrv := StartServers(NewServerConfigFromConfig(handler, cfg))

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, redirectSrv, sched, 30*time.Second)
	return nil
}

// auditJobProvider builds one balance-audit job per registered user.
func auditJobProvider(deps *Dependencies, repair bool) func(context.Context) ([]scheduler.Job, error) {
	return func(ctx context.Context) ([]scheduler.Job, error) {
		userIDs, err := deps.UserRepo.ListIDs(ctx)
		if err != nil {
			return nil, err
		}

		jobs := make([]scheduler.Job, 0, len(userIDs))
		for _, id := range userIDs {
			jobs = append(jobs, scheduler.NewBalanceAuditJob(id, deps.TransactionService, repair))
		}
		return jobs, nil
	}
}
