package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/raksha360/backend/internal/config"
	"github.com/raksha360/backend/internal/handler/v1"
	"github.com/raksha360/backend/internal/repository"
	"github.com/raksha360/backend/internal/service"
	"github.com/raksha360/backend/pkg/auth"
	"github.com/raksha360/backend/pkg/database"
	"github.com/raksha360/backend/pkg/logger"
	"github.com/raksha360/backend/pkg/metrics"
	"github.com/raksha360/backend/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("starting service",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	hospitalRepo := repository.NewHospitalRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Core collaborators
	jwtManager := auth.NewJWTManager(cfg.JWT)
	resolver := service.NewActorResolver(patientRepo, doctorRepo, hospitalRepo, adminRepo)
	collector := metrics.NewCollector("raksha360")

	var enricher service.Enricher = service.StubEnricher{}
	if cfg.Enrichment.URL != "" {
		enricher = service.NewHTTPEnricher(cfg.Enrichment)
	} else {
		log.Info("no enrichment URL configured, using local stub")
	}

	// Services
	auditSvc := service.NewAuditService(auditRepo, log)
	authSvc := service.NewAuthService(patientRepo, doctorRepo, hospitalRepo, adminRepo, jwtManager, log)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, doctorRepo, auditSvc, log)
	prescriptionSvc := service.NewPrescriptionService(prescriptionRepo, patientRepo, enricher, cfg.Enrichment.Timeout, auditSvc, log)
	ticketSvc := service.NewTicketService(ticketRepo, hospitalRepo, auditSvc, log)
	hospitalSvc := service.NewHospitalService(hospitalRepo, ticketRepo, jwtManager, auditSvc, log)
	directorySvc := service.NewDirectoryService(doctorRepo, patientRepo)

	router := v1.NewRouter(v1.RouterDeps{
		JWTManager: jwtManager,
		Resolver:   resolver,
		Collector:  collector,
		Log:        log,
		PingDB: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},

		Auth:          v1.NewAuthHandler(authSvc, collector, log),
		Appointments:  v1.NewAppointmentHandler(appointmentSvc, collector, log),
		Prescriptions: v1.NewPrescriptionHandler(prescriptionSvc, collector, log),
		Tickets:       v1.NewTicketHandler(ticketSvc, collector, log),
		Hospitals:     v1.NewHospitalHandler(hospitalSvc, collector, log),
		Directory:     v1.NewDirectoryHandler(directorySvc, log),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	// Drain buffered audit entries before exiting.
	auditSvc.Shutdown()

	log.Info("shutdown complete")
}
