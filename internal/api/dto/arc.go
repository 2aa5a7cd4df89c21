package dto

import (
	"github.com/openhoa/openhoa/internal/domain/arc"
	"github.com/openhoa/openhoa/internal/types"
)

// CreateARCRequest opens a new architectural review request
type CreateARCRequest struct {
	OwnerID     string `json:"owner_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	ProjectType string `json:"project_type,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r *CreateARCRequest) ToRequest() *arc.Request {
	return &arc.Request{
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		ProjectType: r.ProjectType,
		Description: r.Description,
	}
}

// TransitionARCRequest moves a request to a target status. The raw
// target string is normalized by the engine before validation.
type TransitionARCRequest struct {
	Target     string  `json:"target" binding:"required"`
	ReviewerID *string `json:"reviewer_id,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// SubmitReviewRequest records the caller's verdict on a request
type SubmitReviewRequest struct {
	Decision types.ReviewDecision `json:"decision" binding:"required"`
	Notes    string               `json:"notes,omitempty"`
}
