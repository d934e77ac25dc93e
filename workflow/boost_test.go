package workflow_test

import (
	"testing"
	"time"

	"github.com/rojgarihub/rojgarihub-backend/models"
	"github.com/rojgarihub/rojgarihub-backend/workflow"
)

func TestParseBoostStatus(t *testing.T) {
	valid := []string{"PENDING", "APPROVED", "REJECTED", "EXPIRED"}
	for _, s := range valid {
		got, err := workflow.ParseBoostStatus(s)
		if err != nil {
			t.Errorf("ParseBoostStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseBoostStatus(%q) = %q, want %q", s, got, s)
		}
	}
	if _, err := workflow.ParseBoostStatus("PAID"); err == nil {
		t.Error("ParseBoostStatus(\"PAID\") expected error, got nil")
	}
}

func TestCanTransitionBoost(t *testing.T) {
	cases := []struct {
		from    models.BoostStatus
		to      models.BoostStatus
		allowed bool
	}{
		{models.BoostPending, models.BoostApproved, true},
		{models.BoostPending, models.BoostRejected, true},
		{models.BoostApproved, models.BoostExpired, true},
		{models.BoostPending, models.BoostExpired, false},
		{models.BoostApproved, models.BoostRejected, false},
		{models.BoostApproved, models.BoostPending, false},
		{models.BoostRejected, models.BoostApproved, false},
		{models.BoostRejected, models.BoostPending, false},
		{models.BoostExpired, models.BoostApproved, false},
		{models.BoostExpired, models.BoostPending, false},
	}
	for _, c := range cases {
		if got := workflow.CanTransitionBoost(c.from, c.to); got != c.allowed {
			t.Errorf("CanTransitionBoost(%s → %s) = %v, want %v", c.from, c.to, got, c.allowed)
		}
	}
}

func TestIsTerminalBoostStatus(t *testing.T) {
	if workflow.IsTerminalBoostStatus(models.BoostPending) {
		t.Error("PENDING should not be terminal")
	}
	if workflow.IsTerminalBoostStatus(models.BoostApproved) {
		t.Error("APPROVED should not be terminal")
	}
	if !workflow.IsTerminalBoostStatus(models.BoostRejected) {
		t.Error("REJECTED should be terminal")
	}
	if !workflow.IsTerminalBoostStatus(models.BoostExpired) {
		t.Error("EXPIRED should be terminal")
	}
}

func TestPlatformFee(t *testing.T) {
	cases := []struct {
		price float64
		fee   float64
		net   float64
	}{
		{100, 10, 90},
		{99.99, 10, 89.99},
		{0.05, 0.01, 0.04},
		{19.99, 2, 17.99},
		{1234.56, 123.46, 1111.10},
	}
	for _, c := range cases {
		if got := workflow.PlatformFee(c.price); got != c.fee {
			t.Errorf("PlatformFee(%v) = %v, want %v", c.price, got, c.fee)
		}
		if got := workflow.NetRevenue(c.price); got != c.net {
			t.Errorf("NetRevenue(%v) = %v, want %v", c.price, got, c.net)
		}
	}
}

func TestEffectiveBoostStatus_WithinWindow(t *testing.T) {
	approvedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := models.Boost{
		Status:       models.BoostApproved,
		ApprovedAt:   &approvedAt,
		DurationDays: 7,
	}
	now := approvedAt.Add(6 * 24 * time.Hour)
	if got := workflow.EffectiveBoostStatus(b, now); got != models.BoostApproved {
		t.Errorf("EffectiveBoostStatus within window = %s, want APPROVED", got)
	}
}

func TestEffectiveBoostStatus_PastWindow(t *testing.T) {
	approvedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := models.Boost{
		Status:       models.BoostApproved,
		ApprovedAt:   &approvedAt,
		DurationDays: 7,
	}
	now := approvedAt.Add(7*24*time.Hour + time.Minute)
	if got := workflow.EffectiveBoostStatus(b, now); got != models.BoostExpired {
		t.Errorf("EffectiveBoostStatus past window = %s, want EXPIRED", got)
	}
}

func TestEffectiveBoostStatus_NonApprovedUntouched(t *testing.T) {
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []models.BoostStatus{models.BoostPending, models.BoostRejected, models.BoostExpired} {
		b := models.Boost{Status: s, ApprovedAt: &old, DurationDays: 1}
		if got := workflow.EffectiveBoostStatus(b, now); got != s {
			t.Errorf("EffectiveBoostStatus(%s) = %s, want unchanged", s, got)
		}
	}
	// approved but never stamped — cannot expire
	b := models.Boost{Status: models.BoostApproved, DurationDays: 1}
	if got := workflow.EffectiveBoostStatus(b, now); got != models.BoostApproved {
		t.Errorf("EffectiveBoostStatus without approvedAt = %s, want APPROVED", got)
	}
}

// A rejected boost must never come back: reject from PENDING, then verify
// the approve precondition no longer holds.
func TestRejectedBoostCannotBeApproved(t *testing.T) {
	status := models.BoostPending
	if !workflow.CanTransitionBoost(status, models.BoostRejected) {
		t.Fatal("PENDING → REJECTED should be allowed")
	}
	status = models.BoostRejected
	if workflow.CanTransitionBoost(status, models.BoostApproved) {
		t.Error("REJECTED → APPROVED should be rejected")
	}
}
