package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openhoa/openhoa/internal/api/dto"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/service"
)

type ARCHandler struct {
	service service.ARCService
	log     *logger.Logger
}

func NewARCHandler(service service.ARCService, log *logger.Logger) *ARCHandler {
	return &ARCHandler{service: service, log: log}
}

func (h *ARCHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateARCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	request, err := h.service.Create(c.Request.Context(), req.ToRequest())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *ARCHandler) GetRequest(c *gin.Context) {
	request, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *ARCHandler) TransitionRequest(c *gin.Context) {
	var req dto.TransitionARCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	request, err := h.service.Transition(c.Request.Context(), service.TransitionARCRequest{
		RequestID:  c.Param("id"),
		Target:     req.Target,
		ReviewerID: req.ReviewerID,
		Notes:      req.Notes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *ARCHandler) SubmitReview(c *gin.Context) {
	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	request, err := h.service.SubmitReview(c.Request.Context(), service.SubmitReviewRequest{
		RequestID: c.Param("id"),
		Decision:  req.Decision,
		Notes:     req.Notes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *ARCHandler) NotifyDecision(c *gin.Context) {
	if err := h.service.NotifyDecision(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ARCHandler) ResolveCondition(c *gin.Context) {
	condition, err := h.service.ResolveCondition(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, condition)
}
