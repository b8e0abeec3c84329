// Package api wires the HTTP surface: routing, middleware, and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fundscope/fundscope-backend/internal/api/handlers"
	custommiddleware "github.com/fundscope/fundscope-backend/internal/api/middleware"
	"github.com/fundscope/fundscope-backend/internal/config"
	"github.com/fundscope/fundscope-backend/internal/scheduler"
	"github.com/fundscope/fundscope-backend/internal/service"
)

// Services bundles the service dependencies of the router.
type Services struct {
	System      *service.SystemService
	Fund        *service.FundService
	Position    *service.PositionService
	Snapshot    *service.SnapshotService
	Holdings    *service.HoldingsService
	Contributor *service.ContributorService
	Disclosure  *service.DisclosureService
	Article     *service.ArticleService
	Job         *service.JobService
	Ingest      *service.IngestService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, sched *scheduler.Scheduler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Write and admin endpoints sit behind the API key.
	requireKey := custommiddleware.RequireAPIKey(cfg.API.Key)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.With(requireKey).Put("/credential", systemHandler.SetCredential)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Fund, svc.Position, svc.Snapshot, svc.Ingest)
			contributorHandler := handlers.NewContributorHandler(svc.Contributor)

			r.Get("/", fundHandler.Funds)
			r.With(requireKey).Post("/", fundHandler.CreateFund)

			r.Route("/{fundId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDParam("fundId"))
				r.Get("/", fundHandler.Fund)
				r.Get("/positions", fundHandler.Positions)
				r.Get("/positions/{ticker}/history", fundHandler.PositionHistory)
				r.Get("/snapshots", fundHandler.Snapshots)
				r.Get("/capital", contributorHandler.CapitalSummary)
				r.With(requireKey).Post("/positions/import", fundHandler.ImportPositions)
			})
		})

		r.Route("/snapshot", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Fund, svc.Position, svc.Snapshot, svc.Ingest)
			r.Get("/history", fundHandler.AllSnapshots)
		})

		r.Route("/etf", func(r chi.Router) {
			etfHandler := handlers.NewETFHandler(svc.Holdings, svc.Ingest, cfg.Reconcile)
			r.Get("/", etfHandler.ETFs)
			r.Route("/{ticker}", func(r chi.Router) {
				r.Get("/holdings", etfHandler.Holdings)
				r.Get("/changes", etfHandler.Changes)
				r.With(requireKey).Post("/holdings/import", etfHandler.ImportHoldings)
			})
		})

		r.Route("/contributor", func(r chi.Router) {
			contributorHandler := handlers.NewContributorHandler(svc.Contributor)
			r.Get("/", contributorHandler.Contributors)
			r.With(requireKey).Post("/", contributorHandler.CreateContributor)
			r.With(requireKey).Post("/capital", contributorHandler.RecordCapitalEvent)
		})

		r.Route("/disclosure", func(r chi.Router) {
			disclosureHandler := handlers.NewDisclosureHandler(svc.Disclosure)
			r.Get("/", disclosureHandler.Disclosures)
			r.With(requireKey).Post("/import", disclosureHandler.ImportDisclosures)
		})

		r.Route("/article", func(r chi.Router) {
			articleHandler := handlers.NewArticleHandler(svc.Article)
			r.Get("/", articleHandler.Articles)
			r.With(requireKey).Post("/", articleHandler.CreateArticle)
			r.Route("/{articleId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDParam("articleId"))
				r.Get("/", articleHandler.Article)
			})
		})

		r.Route("/job", func(r chi.Router) {
			jobHandler := handlers.NewJobHandler(svc.Job, sched)
			r.Get("/{jobName}/runs", jobHandler.Runs)
			r.With(requireKey).Post("/snapshot/trigger", jobHandler.TriggerSnapshot)
		})
	})

	return r
}
