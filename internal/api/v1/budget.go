package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openhoa/openhoa/internal/api/dto"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/service"
)

type BudgetHandler struct {
	service service.BudgetService
	log     *logger.Logger
}

func NewBudgetHandler(service service.BudgetService, log *logger.Logger) *BudgetHandler {
	return &BudgetHandler{service: service, log: log}
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	b, err := h.service.Create(c.Request.Context(), req.ToBudget())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BudgetHandler) GetBudget(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) AddLineItem(c *gin.Context) {
	var req dto.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	item, err := h.service.AddLineItem(c.Request.Context(), req.ToLineItem(c.Param("id")))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *BudgetHandler) UpdateLineItem(c *gin.Context) {
	var req dto.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	item := req.ToLineItem(c.Param("id"))
	item.ID = c.Param("itemID")
	updated, err := h.service.UpdateLineItem(c.Request.Context(), item)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *BudgetHandler) DeleteLineItem(c *gin.Context) {
	if err := h.service.DeleteLineItem(c.Request.Context(), c.Param("itemID")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *BudgetHandler) GetAssessmentTotal(c *gin.Context) {
	total, err := h.service.AssessmentTotal(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget_id": c.Param("id"), "total": total})
}

func (h *BudgetHandler) ApproveBudget(c *gin.Context) {
	b, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) RevokeApproval(c *gin.Context) {
	b, err := h.service.RevokeApproval(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) AddReservePlanItem(c *gin.Context) {
	var req dto.ReservePlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	item, err := h.service.AddReservePlanItem(c.Request.Context(), req.ToReservePlanItem(c.Param("id")))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *BudgetHandler) GetReserveContribution(c *gin.Context) {
	contribution, err := h.service.ReserveContribution(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contribution)
}
