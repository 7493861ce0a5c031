package rebalance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quantward/momentum/internal/contracts"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsRebalanceDay(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		tf   contracts.Timeframe
		want bool
	}{
		{"daily on a weekday", day(2026, time.August, 28), contracts.TimeframeDaily, true}, // Friday
		{"daily on saturday", day(2026, time.August, 29), contracts.TimeframeDaily, false},
		{"daily on sunday", day(2026, time.August, 30), contracts.TimeframeDaily, false},

		{"weekly on monday", day(2026, time.August, 24), contracts.TimeframeWeekly, true},
		{"weekly on friday", day(2026, time.August, 28), contracts.TimeframeWeekly, false},

		{"monthly on first weekday", day(2026, time.September, 1), contracts.TimeframeMonthly, true}, // Tuesday
		{"monthly mid month", day(2026, time.September, 15), contracts.TimeframeMonthly, false},
		// August 2026 starts on a Saturday, so Monday the 3rd is the
		// first business day
		{"monthly first falls on weekend", day(2026, time.August, 3), contracts.TimeframeMonthly, true},
		{"monthly day after shifted first", day(2026, time.August, 4), contracts.TimeframeMonthly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRebalanceDay(tt.date, tt.tf))
		})
	}
}
