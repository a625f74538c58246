package billing

import (
	"testing"

	"github.com/theaitel/loginaitel-sub003/models"

	"github.com/stretchr/testify/assert"
)

func plan(code string, monthlyPaise int64) models.SeatPlan {
	return models.SeatPlan{Code: code, Seats: 5, MonthlyPaise: monthlyPaise}
}

func TestProrateSeatUpgradeFullCycle(t *testing.T) {
	charge := ProrateSeatUpgrade(plan("starter", 100000), plan("growth", 250000), 30, 30)
	assert.Equal(t, int64(150000), charge)
}

func TestProrateSeatUpgradeHalfCycle(t *testing.T) {
	charge := ProrateSeatUpgrade(plan("starter", 100000), plan("growth", 250000), 15, 30)
	assert.Equal(t, int64(75000), charge)
}

func TestProrateSeatUpgradeRoundsToNearestPaise(t *testing.T) {
	// 100 paise delta over 30 days, 10 days remaining: 33.33 rounds to 33.
	assert.Equal(t, int64(33), ProrateSeatUpgrade(plan("a", 0), plan("b", 100), 10, 30))
	// 100 paise delta, 20 of 30 days: 66.67 rounds to 67.
	assert.Equal(t, int64(67), ProrateSeatUpgrade(plan("a", 0), plan("b", 100), 20, 30))
}

func TestProrateSeatUpgradeDowngradeIsFree(t *testing.T) {
	charge := ProrateSeatUpgrade(plan("growth", 250000), plan("starter", 100000), 20, 30)
	assert.Equal(t, int64(0), charge)
}

func TestProrateSeatUpgradeSamePlanIsFree(t *testing.T) {
	charge := ProrateSeatUpgrade(plan("growth", 250000), plan("growth", 250000), 20, 30)
	assert.Equal(t, int64(0), charge)
}

func TestProrateSeatUpgradeNeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, ProrateSeatUpgrade(plan("a", 500), plan("b", 100), 30, 30), int64(0))
	assert.GreaterOrEqual(t, ProrateSeatUpgrade(plan("a", 100), plan("b", 500), -5, 30), int64(0))
}

func TestProrateSeatUpgradeClampsRemainingDays(t *testing.T) {
	// Remaining days beyond the cycle length cap out at the full delta.
	charge := ProrateSeatUpgrade(plan("a", 100000), plan("b", 200000), 45, 30)
	assert.Equal(t, int64(100000), charge)
}

func TestProrateSeatUpgradeZeroCycle(t *testing.T) {
	assert.Equal(t, int64(0), ProrateSeatUpgrade(plan("a", 0), plan("b", 100000), 10, 0))
}

func TestProrateSeatUpgradeLastDay(t *testing.T) {
	charge := ProrateSeatUpgrade(plan("a", 0), plan("b", 300000), 1, 30)
	assert.Equal(t, int64(10000), charge)
}
