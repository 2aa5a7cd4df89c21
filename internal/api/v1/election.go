package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openhoa/openhoa/internal/api/dto"
	"github.com/openhoa/openhoa/internal/domain/election"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/service"
	"github.com/openhoa/openhoa/internal/types"
)

type ElectionHandler struct {
	service service.ElectionService
	log     *logger.Logger
}

func NewElectionHandler(service service.ElectionService, log *logger.Logger) *ElectionHandler {
	return &ElectionHandler{service: service, log: log}
}

func (h *ElectionHandler) CreateElection(c *gin.Context) {
	var req dto.CreateElectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	e, err := h.service.Create(c.Request.Context(), req.ToElection())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

func (h *ElectionHandler) GetElection(c *gin.Context) {
	e, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

func (h *ElectionHandler) SetElectionStatus(c *gin.Context) {
	var req dto.SetElectionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	e, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), types.ElectionStatus(req.Status))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

func (h *ElectionHandler) AddCandidate(c *gin.Context) {
	var req dto.AddCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	candidate, err := h.service.AddCandidate(c.Request.Context(), &election.Candidate{
		ElectionID: c.Param("id"),
		Name:       req.Name,
		Statement:  req.Statement,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

func (h *ElectionHandler) GenerateBallots(c *gin.Context) {
	var req dto.GenerateBallotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	ballots, err := h.service.GenerateBallots(c.Request.Context(), c.Param("id"), req.OwnerIDs, req.Regenerate)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ballots)
}

// GetMyBallot returns (issuing on demand) the caller's ballot for the
// election, resolved through their linked owner record
func (h *ElectionHandler) GetMyBallot(c *gin.Context) {
	ballot, err := h.service.GetOrCreateOwnerBallot(c.Request.Context(), c.Param("id"), types.GetUserID(c.Request.Context()))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ballot)
}

func (h *ElectionHandler) CastVote(c *gin.Context) {
	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	vote, err := h.service.RecordVote(c.Request.Context(), service.RecordVoteRequest{
		ElectionID:  c.Param("id"),
		BallotID:    req.BallotID,
		CandidateID: req.CandidateID,
		WriteIn:     req.WriteIn,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vote)
}

// CastPublicVote casts a ballot identified only by its voting token;
// the route carries no session and the response reveals no tallies
func (h *ElectionHandler) CastPublicVote(c *gin.Context) {
	var req dto.CastPublicVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindError(err))
		return
	}

	_, err := h.service.RecordPublicVote(c.Request.Context(), c.Param("token"), req.CandidateID, req.WriteIn)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

func (h *ElectionHandler) InvalidateBallot(c *gin.Context) {
	ballot, err := h.service.InvalidateBallot(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ballot)
}

func (h *ElectionHandler) GetResults(c *gin.Context) {
	results, err := h.service.ComputeResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *ElectionHandler) GetStats(c *gin.Context) {
	stats, err := h.service.CalculateStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
