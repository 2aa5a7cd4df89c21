package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openhoa/openhoa/internal/api/dto"
	"github.com/openhoa/openhoa/internal/domain/ledger"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/service"
)

type LedgerHandler struct {
	service      service.LedgerService
	scheduleRepo ledger.FineScheduleRepository
	log          *logger.Logger
}

func NewLedgerHandler(service service.LedgerService, scheduleRepo ledger.FineScheduleRepository, log *logger.Logger) *LedgerHandler {
	return &LedgerHandler{service: service, scheduleRepo: scheduleRepo, log: log}
}

func (h *LedgerHandler) RecordEntry(c *gin.Context) {
	var req dto.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	entry := req.ToEntry()
	if err := h.service.RecordEntry(c.Request.Context(), entry); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *LedgerHandler) GetBalance(c *gin.Context) {
	ownerID := c.Param("ownerID")
	balance, err := h.service.GetRunningBalance(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{OwnerID: ownerID, Balance: balance})
}

func (h *LedgerHandler) RunLateFees(c *gin.Context) {
	var req dto.LateFeeRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	schedule, err := h.scheduleRepo.Get(c.Request.Context(), req.FineScheduleID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	fees, err := h.service.RunLateFeeAssessment(c.Request.Context(), req.OwnerID, schedule, asOf)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, fees)
}
