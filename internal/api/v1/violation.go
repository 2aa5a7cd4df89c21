package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openhoa/openhoa/internal/api/dto"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/service"
	"github.com/openhoa/openhoa/internal/types"
)

type ViolationHandler struct {
	service service.ViolationService
	audit   service.AuditService
	log     *logger.Logger
}

func NewViolationHandler(service service.ViolationService, audit service.AuditService, log *logger.Logger) *ViolationHandler {
	return &ViolationHandler{service: service, audit: audit, log: log}
}

func (h *ViolationHandler) CreateViolation(c *gin.Context) {
	var req dto.CreateViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	v, err := h.service.Create(c.Request.Context(), req.ToViolation(types.GetUserID(c.Request.Context())))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, v)
}

func (h *ViolationHandler) GetViolation(c *gin.Context) {
	v, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

func (h *ViolationHandler) TransitionViolation(c *gin.Context) {
	var req dto.TransitionViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	v, err := h.service.Transition(c.Request.Context(), service.TransitionViolationRequest{
		ViolationID:  c.Param("id"),
		TargetStatus: types.ViolationStatus(req.TargetStatus),
		Note:         req.Note,
		HearingDate:  req.HearingDate,
		FineAmount:   req.FineAmount,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}

func (h *ViolationHandler) SubmitAppeal(c *gin.Context) {
	var req dto.SubmitAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	appeal, err := h.service.SubmitAppeal(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appeal)
}

func (h *ViolationHandler) DecideAppeal(c *gin.Context) {
	var req dto.DecideAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	appeal, err := h.service.DecideAppeal(c.Request.Context(), c.Param("id"), req.Approve, req.Notes)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, appeal)
}

func (h *ViolationHandler) GetViolationHistory(c *gin.Context) {
	logs, err := h.audit.ListByTarget(c.Request.Context(), "violation", c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
