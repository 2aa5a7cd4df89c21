package types

import (
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/samber/lo"
)

// ElectionStatus represents the lifecycle state of an election
type ElectionStatus string

const (
	ElectionStatusDraft     ElectionStatus = "DRAFT"
	ElectionStatusScheduled ElectionStatus = "SCHEDULED"
	ElectionStatusOpen      ElectionStatus = "OPEN"
	ElectionStatusClosed    ElectionStatus = "CLOSED"
	ElectionStatusArchived  ElectionStatus = "ARCHIVED"
)

func (s ElectionStatus) String() string {
	return string(s)
}

func (s ElectionStatus) Validate() error {
	allowed := []ElectionStatus{
		ElectionStatusDraft,
		ElectionStatusScheduled,
		ElectionStatusOpen,
		ElectionStatusClosed,
		ElectionStatusArchived,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid election status").
			WithHint("Please provide a valid election status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrInvalidState)
	}
	return nil
}

// WriteInCandidateName labels the synthetic results bucket that
// aggregates write-in votes.
const WriteInCandidateName = "Write-in"
