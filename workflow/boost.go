// Boost status graph:
//
//	PENDING ──► APPROVED ──► EXPIRED   (refund, or duration elapsed)
//	    │
//	    └─────► REJECTED
//
// REJECTED and EXPIRED are terminal. Expiry is lazy: no sweeper runs;
// readers map an APPROVED boost past its window to EXPIRED via
// EffectiveBoostStatus.
package workflow

import (
	"fmt"
	"math"
	"time"

	"github.com/rojgarihub/rojgarihub-backend/models"
)

// PlatformFeeRate is the platform's cut of every boost sale.
const PlatformFeeRate = 0.10

var boostTransitions = map[models.BoostStatus][]models.BoostStatus{
	models.BoostPending:  {models.BoostApproved, models.BoostRejected},
	models.BoostApproved: {models.BoostExpired},
}

// ParseBoostStatus converts a raw string to a BoostStatus.
func ParseBoostStatus(s string) (models.BoostStatus, error) {
	st := models.BoostStatus(s)
	switch st {
	case models.BoostPending, models.BoostApproved, models.BoostRejected, models.BoostExpired:
		return st, nil
	}
	return "", fmt.Errorf("unknown boost status %q", s)
}

// CanTransitionBoost returns true when moving from → to is permitted.
func CanTransitionBoost(from, to models.BoostStatus) bool {
	for _, s := range boostTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalBoostStatus returns true for statuses with no outgoing
// transitions.
func IsTerminalBoostStatus(s models.BoostStatus) bool {
	return len(boostTransitions[s]) == 0
}

// PlatformFee is the fee charged on a boost price, rounded to cents.
func PlatformFee(price float64) float64 {
	return math.Round(price*PlatformFeeRate*100) / 100
}

// NetRevenue is what the platform passes through after the fee, rounded
// to cents.
func NetRevenue(price float64) float64 {
	return math.Round((price-PlatformFee(price))*100) / 100
}

// BoostWindowEnd is the instant an approved boost stops being visible.
func BoostWindowEnd(approvedAt time.Time, durationDays int) time.Time {
	return approvedAt.Add(time.Duration(durationDays) * 24 * time.Hour)
}

// EffectiveBoostStatus maps an APPROVED boost whose window has elapsed to
// EXPIRED. Every other status is returned unchanged. Callers pass the
// stored status; the stored document is not rewritten.
func EffectiveBoostStatus(b models.Boost, now time.Time) models.BoostStatus {
	if b.Status != models.BoostApproved || b.ApprovedAt == nil {
		return b.Status
	}
	if now.After(BoostWindowEnd(*b.ApprovedAt, b.DurationDays)) {
		return models.BoostExpired
	}
	return b.Status
}
