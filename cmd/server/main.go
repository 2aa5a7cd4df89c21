package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openhoa/openhoa/internal/api"
	v1 "github.com/openhoa/openhoa/internal/api/v1"
	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/docgen"
	"github.com/openhoa/openhoa/internal/email"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/notify"
	"github.com/openhoa/openhoa/internal/pubsub"
	"github.com/openhoa/openhoa/internal/pubsub/memory"
	"github.com/openhoa/openhoa/internal/repository/postgres"
	"github.com/openhoa/openhoa/internal/service"
	"github.com/openhoa/openhoa/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// UTC everywhere; timestamps in storage and audit rows are UTC
	time.Local = time.UTC
}

func main() {
	validator.NewValidator()

	app := fx.New(
		fx.Provide(
			// Core
			config.NewConfig,
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Repositories
			postgres.NewUserRepository,
			postgres.NewOwnerRepository,
			postgres.NewViolationRepository,
			postgres.NewNoticeRepository,
			postgres.NewAppealRepository,
			postgres.NewARCRepository,
			postgres.NewARCReviewRepository,
			postgres.NewARCConditionRepository,
			postgres.NewElectionRepository,
			postgres.NewCandidateRepository,
			postgres.NewBallotRepository,
			postgres.NewVoteRepository,
			postgres.NewBudgetRepository,
			postgres.NewLineItemRepository,
			postgres.NewReservePlanItemRepository,
			postgres.NewApprovalRepository,
			postgres.NewLedgerRepository,
			postgres.NewFineScheduleRepository,
			postgres.NewAuditLogRepository,
			postgres.NewNotificationRepository,

			// Bus and collaborators
			memory.NewPubSub,
			notify.NewRegistry,
			notify.NewDispatcher,
			email.NewSender,
			provideDocGenerator,

			// Services
			service.NewServiceParams,
			service.NewAuditService,
			service.NewViolationService,
			service.NewARCService,
			service.NewElectionService,
			service.NewBudgetService,
			service.NewLedgerService,
			service.NewNotificationService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func provideDocGenerator(log *logger.Logger) docgen.Generator {
	return docgen.NewLogGenerator(log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	registry *notify.Registry,
	params service.ServiceParams,
	auditService service.AuditService,
	violationService service.ViolationService,
	arcService service.ARCService,
	electionService service.ElectionService,
	budgetService service.BudgetService,
	ledgerService service.LedgerService,
	notificationService service.NotificationService,
) api.Handlers {
	return api.Handlers{
		Health:       v1.NewHealthHandler(log),
		Violation:    v1.NewViolationHandler(violationService, auditService, log),
		ARC:          v1.NewARCHandler(arcService, log),
		Election:     v1.NewElectionHandler(electionService, log),
		Budget:       v1.NewBudgetHandler(budgetService, log),
		Ledger:       v1.NewLedgerHandler(ledgerService, params.FineScheduleRepo, log),
		Notification: v1.NewNotificationHandler(notificationService, log),
		Stream:       v1.NewStreamHandler(registry, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	dispatcher *notify.Dispatcher,
	bus pubsub.PubSub,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := dispatcher.Start(context.Background()); err != nil {
				return err
			}

			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return bus.Close()
		},
	})
}
