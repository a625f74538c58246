package billing

import "github.com/theaitel/loginaitel-sub003/models"

// ProrateSeatUpgrade computes the charge, in paise, for moving from the
// current seat plan to the target plan partway through a billing cycle.
// Only the unused remainder of the cycle is charged: the monthly price delta
// scaled by daysRemaining/cycleDays, rounded to the nearest paise.
//
// Downgrades and lateral moves cost nothing now; they take effect at the next
// cycle boundary. The result is never negative.
func ProrateSeatUpgrade(current, target models.SeatPlan, daysRemaining, cycleDays int) int64 {
	if cycleDays <= 0 {
		return 0
	}
	delta := target.MonthlyPaise - current.MonthlyPaise
	if delta <= 0 {
		return 0
	}
	if daysRemaining <= 0 {
		return 0
	}
	if daysRemaining > cycleDays {
		daysRemaining = cycleDays
	}
	// Round half up in integer arithmetic.
	return (delta*int64(daysRemaining) + int64(cycleDays)/2) / int64(cycleDays)
}
