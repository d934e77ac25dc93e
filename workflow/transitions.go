// Package workflow defines the status state machines for applications
// and boosts.
//
// Application status graph:
//
//	PENDING ──► REVIEWED ──► ACCEPTED
//	    │            │
//	    │            └─────► REJECTED
//	    ├──────────────────► ACCEPTED
//	    ├──────────────────► REJECTED
//	    └──────────────────► WITHDRAWN   (applicant only)
//
// ACCEPTED, REJECTED and WITHDRAWN are terminal.
package workflow

import (
	"fmt"

	"github.com/rojgarihub/rojgarihub-backend/models"
)

// applicationTransitions lists every allowed (from → to) pair.
var applicationTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationPending: {
		models.ApplicationReviewed,
		models.ApplicationAccepted,
		models.ApplicationRejected,
		models.ApplicationWithdrawn,
	},
	models.ApplicationReviewed: {
		models.ApplicationAccepted,
		models.ApplicationRejected,
	},
	// ACCEPTED, REJECTED, WITHDRAWN are terminal — no outgoing transitions
}

// ParseApplicationStatus converts a raw string to an ApplicationStatus,
// returning an error for unknown values.
func ParseApplicationStatus(s string) (models.ApplicationStatus, error) {
	st := models.ApplicationStatus(s)
	switch st {
	case models.ApplicationPending, models.ApplicationReviewed,
		models.ApplicationAccepted, models.ApplicationRejected,
		models.ApplicationWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransitionApplication returns true when moving from → to is permitted.
func CanTransitionApplication(from, to models.ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalApplicationStatus returns true for statuses with no outgoing
// transitions.
func IsTerminalApplicationStatus(s models.ApplicationStatus) bool {
	return len(applicationTransitions[s]) == 0
}

// IsReviewStatus reports whether a status is one the job's owning employer
// may set. WITHDRAWN is reserved to the applicant.
func IsReviewStatus(s models.ApplicationStatus) bool {
	switch s {
	case models.ApplicationReviewed, models.ApplicationAccepted, models.ApplicationRejected:
		return true
	}
	return false
}

// OpenApplicationStatuses are the statuses that count against the
// one-open-application-per-(job, seeker) rule.
func OpenApplicationStatuses() []models.ApplicationStatus {
	return []models.ApplicationStatus{
		models.ApplicationPending,
		models.ApplicationReviewed,
		models.ApplicationAccepted,
		models.ApplicationRejected,
	}
}
