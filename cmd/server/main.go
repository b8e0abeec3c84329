package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundscope/fundscope-backend/internal/api"
	"github.com/fundscope/fundscope-backend/internal/config"
	"github.com/fundscope/fundscope-backend/internal/database"
	"github.com/fundscope/fundscope-backend/internal/repository"
	"github.com/fundscope/fundscope-backend/internal/scheduler"
	"github.com/fundscope/fundscope-backend/internal/secrets"
	"github.com/fundscope/fundscope-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	fundRepo := repository.NewFundRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	etfRepo := repository.NewETFRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	disclosureRepo := repository.NewDisclosureRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	jobRepo := repository.NewJobRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)

	// Credential encryption is optional; without a key the credential
	// endpoints report the feature as unavailable.
	var encryptor *secrets.Encryptor
	if cfg.API.FernetKey != "" {
		encryptor, err = secrets.NewEncryptor(cfg.API.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize credential encryption: %v", err)
		}
	}

	// Create services
	systemService := service.NewSystemService(db, credentialRepo, encryptor)
	fundService := service.NewFundService(fundRepo)
	positionService := service.NewPositionService(positionRepo, fundRepo, cfg.Reconcile)
	snapshotService := service.NewSnapshotService(snapshotRepo, fundRepo, positionService, positionRepo)
	holdingsService := service.NewHoldingsService(etfRepo)
	contributorService := service.NewContributorService(contributorRepo, fundRepo)
	disclosureService := service.NewDisclosureService(disclosureRepo)
	articleService := service.NewArticleService(articleRepo)
	jobService := service.NewJobService(jobRepo)
	ingestService := service.NewIngestService(db, positionRepo, etfRepo, fundRepo, jobService)

	// Start the background job scheduler
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(cfg.Scheduler, jobService, snapshotService)
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Fund:        fundService,
		Position:    positionService,
		Snapshot:    snapshotService,
		Holdings:    holdingsService,
		Contributor: contributorService,
		Disclosure:  disclosureService,
		Article:     articleService,
		Job:         jobService,
		Ingest:      ingestService,
	}, sched, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
