package workflow_test

import (
	"testing"

	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/workflow"
)

func TestParseApplicationStatus_ValidValues(t *testing.T) {
	valid := []string{"PENDING", "REVIEWED", "ACCEPTED", "REJECTED", "WITHDRAWN"}
	for _, s := range valid {
		got, err := workflow.ParseApplicationStatus(s)
		if err != nil {
			t.Errorf("ParseApplicationStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseApplicationStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseApplicationStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"UNKNOWN", "", "pending"} {
		if _, err := workflow.ParseApplicationStatus(s); err == nil {
			t.Errorf("ParseApplicationStatus(%q) expected error, got nil", s)
		}
	}
}

func TestCanTransitionApplication_FromPending(t *testing.T) {
	targets := []models.ApplicationStatus{
		models.ApplicationReviewed,
		models.ApplicationAccepted,
		models.ApplicationRejected,
		models.ApplicationWithdrawn,
	}
	for _, to := range targets {
		if !workflow.CanTransitionApplication(models.ApplicationPending, to) {
			t.Errorf("CanTransitionApplication(PENDING → %s) should be true", to)
		}
	}
}

func TestCanTransitionApplication_FromReviewed(t *testing.T) {
	if !workflow.CanTransitionApplication(models.ApplicationReviewed, models.ApplicationAccepted) {
		t.Error("CanTransitionApplication(REVIEWED → ACCEPTED) should be true")
	}
	if !workflow.CanTransitionApplication(models.ApplicationReviewed, models.ApplicationRejected) {
		t.Error("CanTransitionApplication(REVIEWED → REJECTED) should be true")
	}
	// withdraw is only possible while pending
	if workflow.CanTransitionApplication(models.ApplicationReviewed, models.ApplicationWithdrawn) {
		t.Error("CanTransitionApplication(REVIEWED → WITHDRAWN) should be false")
	}
	if workflow.CanTransitionApplication(models.ApplicationReviewed, models.ApplicationPending) {
		t.Error("CanTransitionApplication(REVIEWED → PENDING) should be false")
	}
}

func TestCanTransitionApplication_FromTerminal(t *testing.T) {
	terminals := []models.ApplicationStatus{
		models.ApplicationAccepted,
		models.ApplicationRejected,
		models.ApplicationWithdrawn,
	}
	targets := []models.ApplicationStatus{
		models.ApplicationPending,
		models.ApplicationReviewed,
		models.ApplicationAccepted,
		models.ApplicationRejected,
		models.ApplicationWithdrawn,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if workflow.CanTransitionApplication(from, to) {
				t.Errorf("CanTransitionApplication(%s → %s) should be false (terminal state)", from, to)
			}
		}
	}
}

func TestCanTransitionApplication_Self(t *testing.T) {
	all := []models.ApplicationStatus{
		models.ApplicationPending, models.ApplicationReviewed,
		models.ApplicationAccepted, models.ApplicationRejected,
		models.ApplicationWithdrawn,
	}
	for _, s := range all {
		if workflow.CanTransitionApplication(s, s) {
			t.Errorf("CanTransitionApplication(%s → %s) should be false (self)", s, s)
		}
	}
}

func TestIsTerminalApplicationStatus(t *testing.T) {
	cases := []struct {
		status   models.ApplicationStatus
		terminal bool
	}{
		{models.ApplicationPending, false},
		{models.ApplicationReviewed, false},
		{models.ApplicationAccepted, true},
		{models.ApplicationRejected, true},
		{models.ApplicationWithdrawn, true},
	}
	for _, c := range cases {
		if got := workflow.IsTerminalApplicationStatus(c.status); got != c.terminal {
			t.Errorf("IsTerminalApplicationStatus(%s) = %v, want %v", c.status, got, c.terminal)
		}
	}
}

func TestIsReviewStatus(t *testing.T) {
	review := []models.ApplicationStatus{
		models.ApplicationReviewed, models.ApplicationAccepted, models.ApplicationRejected,
	}
	for _, s := range review {
		if !workflow.IsReviewStatus(s) {
			t.Errorf("IsReviewStatus(%s) should be true", s)
		}
	}
	for _, s := range []models.ApplicationStatus{models.ApplicationPending, models.ApplicationWithdrawn} {
		if workflow.IsReviewStatus(s) {
			t.Errorf("IsReviewStatus(%s) should be false", s)
		}
	}
}

func TestOpenApplicationStatuses_ExcludesWithdrawn(t *testing.T) {
	for _, s := range workflow.OpenApplicationStatuses() {
		if s == models.ApplicationWithdrawn {
			t.Error("OpenApplicationStatuses must not include WITHDRAWN")
		}
	}
	if len(workflow.OpenApplicationStatuses()) != 4 {
		t.Errorf("OpenApplicationStatuses() has %d entries, want 4", len(workflow.OpenApplicationStatuses()))
	}
}

// A job seeker applies, the employer accepts, a late withdraw must fail.
func TestAcceptedApplicationCannotBeWithdrawn(t *testing.T) {
	status := models.ApplicationPending
	if !workflow.CanTransitionApplication(status, models.ApplicationAccepted) {
		t.Fatal("PENDING → ACCEPTED should be allowed")
	}
	status = models.ApplicationAccepted
	if workflow.CanTransitionApplication(status, models.ApplicationWithdrawn) {
		t.Error("ACCEPTED → WITHDRAWN should be rejected")
	}
}
