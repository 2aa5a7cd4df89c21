package types

import (
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/samber/lo"
)

// NotificationLevel is the severity of a notification
type NotificationLevel string

const (
	NotificationLevelInfo     NotificationLevel = "INFO"
	NotificationLevelWarning  NotificationLevel = "WARNING"
	NotificationLevelCritical NotificationLevel = "CRITICAL"
)

func (l NotificationLevel) Validate() error {
	allowed := []NotificationLevel{
		NotificationLevelInfo,
		NotificationLevelWarning,
		NotificationLevelCritical,
	}
	if !lo.Contains(allowed, l) {
		return ierr.NewError("invalid notification level").
			WithHint("Please provide a valid notification level").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// NotificationCategory groups notifications by the module that emitted them
type NotificationCategory string

const (
	NotificationCategoryViolation NotificationCategory = "VIOLATION"
	NotificationCategoryARC       NotificationCategory = "ARC"
	NotificationCategoryElection  NotificationCategory = "ELECTION"
	NotificationCategoryBudget    NotificationCategory = "BUDGET"
	NotificationCategoryGeneral   NotificationCategory = "GENERAL"
)
