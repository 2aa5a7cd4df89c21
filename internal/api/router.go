package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/openhoa/openhoa/internal/api/v1"
	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/rest/middleware"
	"github.com/openhoa/openhoa/internal/types"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Violation    *v1.ViolationHandler
	ARC          *v1.ARCHandler
	Election     *v1.ElectionHandler
	Budget       *v1.BudgetHandler
	Ledger       *v1.LedgerHandler
	Notification *v1.NotificationHandler
	Stream       *v1.StreamHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// Token-addressed public ballot route; carries no session
	public := router.Group("/v1/public")
	{
		public.POST("/ballots/:token/vote", handlers.Election.CastPublicVote)
	}

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthenticateMiddleware(cfg, logger))
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	violations := router.Group("/violations")
	{
		violations.POST("", handlers.Violation.CreateViolation)
		violations.GET("/:id", handlers.Violation.GetViolation)
		violations.POST("/:id/transition", handlers.Violation.TransitionViolation)
		violations.POST("/:id/appeals", handlers.Violation.SubmitAppeal)
		violations.GET("/:id/history", handlers.Violation.GetViolationHistory)
	}
	router.POST("/appeals/:id/decide", handlers.Violation.DecideAppeal)

	arcRequests := router.Group("/arc-requests")
	{
		arcRequests.POST("", handlers.ARC.CreateRequest)
		arcRequests.GET("/:id", handlers.ARC.GetRequest)
		arcRequests.POST("/:id/transition", handlers.ARC.TransitionRequest)
		arcRequests.POST("/:id/reviews", handlers.ARC.SubmitReview)
		arcRequests.POST("/:id/notify-decision", handlers.ARC.NotifyDecision)
	}
	router.POST("/arc-conditions/:id/resolve", handlers.ARC.ResolveCondition)

	elections := router.Group("/elections")
	{
		elections.POST("", handlers.Election.CreateElection)
		elections.GET("/:id", handlers.Election.GetElection)
		elections.POST("/:id/status", handlers.Election.SetElectionStatus)
		elections.POST("/:id/candidates", handlers.Election.AddCandidate)
		elections.POST("/:id/ballots", handlers.Election.GenerateBallots)
		elections.GET("/:id/my-ballot", handlers.Election.GetMyBallot)
		elections.POST("/:id/votes", handlers.Election.CastVote)
		elections.GET("/:id/results", handlers.Election.GetResults)
		elections.GET("/:id/stats", handlers.Election.GetStats)
	}
	router.POST("/ballots/:id/invalidate", handlers.Election.InvalidateBallot)

	budgets := router.Group("/budgets")
	{
		budgets.POST("", handlers.Budget.CreateBudget)
		budgets.GET("/:id", handlers.Budget.GetBudget)
		budgets.POST("/:id/line-items", handlers.Budget.AddLineItem)
		budgets.PUT("/:id/line-items/:itemID", handlers.Budget.UpdateLineItem)
		budgets.DELETE("/:id/line-items/:itemID", handlers.Budget.DeleteLineItem)
		budgets.GET("/:id/assessment-total", handlers.Budget.GetAssessmentTotal)
		budgets.POST("/:id/approve", handlers.Budget.ApproveBudget)
		budgets.POST("/:id/revoke-approval", handlers.Budget.RevokeApproval)
		budgets.POST("/:id/reserve-plan", handlers.Budget.AddReservePlanItem)
		budgets.GET("/:id/reserve-plan/:itemID/contribution", handlers.Budget.GetReserveContribution)
	}

	ledger := router.Group("/ledger")
	{
		ledger.POST("/entries", handlers.Ledger.RecordEntry)
		ledger.GET("/owners/:ownerID/balance", handlers.Ledger.GetBalance)
		ledger.POST("/late-fees/run", handlers.Ledger.RunLateFees)
	}

	notifications := router.Group("/notifications")
	{
		notifications.POST("", handlers.Notification.CreateNotification)
		notifications.GET("", handlers.Notification.ListMyNotifications)
		notifications.POST("/:id/read", handlers.Notification.MarkRead)
		notifications.POST("/read-all", handlers.Notification.MarkAllRead)
		notifications.GET("/stream", handlers.Stream.Stream)
	}
}
