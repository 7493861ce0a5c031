package rebalance

import (
	"time"

	"github.com/quantward/momentum/internal/contracts"
)

// IsRebalanceDay reports whether a strategy on the given timeframe
// trades on this date. Weekends never trade. DAILY trades every
// business day, WEEKLY on the first business day of the week, MONTHLY
// on the first business day of the month.
func IsRebalanceDay(date time.Time, tf contracts.Timeframe) bool {
	if isWeekend(date) {
		return false
	}

	switch tf {
	case contracts.TimeframeDaily:
		return true
	case contracts.TimeframeWeekly:
		return isFirstBusinessDayOfWeek(date)
	case contracts.TimeframeMonthly:
		return isFirstBusinessDayOfMonth(date)
	}
	return false
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func isFirstBusinessDayOfWeek(date time.Time) bool {
	return date.Weekday() == time.Monday
}

func isFirstBusinessDayOfMonth(date time.Time) bool {
	for day := 1; day < date.Day(); day++ {
		earlier := time.Date(date.Year(), date.Month(), day, 0, 0, 0, 0, date.Location())
		if !isWeekend(earlier) {
			return false
		}
	}
	return true
}
