package contracts

import "fmt"

// Strategy identifies one of the momentum strategy variants
type Strategy string

const (
	StrategyCore      Strategy = "CORE"
	StrategySmooth    Strategy = "SMOOTH"
	StrategyFrogInPan Strategy = "FROG_IN_PAN"
)

// Timeframe identifies the resampling frequency for momentum calculation
type Timeframe string

const (
	TimeframeDaily   Timeframe = "DAILY"
	TimeframeWeekly  Timeframe = "WEEKLY"
	TimeframeMonthly Timeframe = "MONTHLY"
)

// InvalidParameterError reports an unrecognized enum or out-of-range value.
// It always fails the run; unknown strategies and timeframes never default.
type InvalidParameterError struct {
	Param string
	Value string
}

func (e InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Param, e.Value)
}

// ParseStrategy validates a strategy name
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCore, StrategySmooth, StrategyFrogInPan:
		return Strategy(s), nil
	}
	return "", InvalidParameterError{Param: "strategy", Value: s}
}

// ParseTimeframe validates a timeframe name
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly:
		return Timeframe(s), nil
	}
	return "", InvalidParameterError{Param: "timeframe", Value: s}
}

// Strategies returns all known strategies
func Strategies() []Strategy {
	return []Strategy{StrategyCore, StrategySmooth, StrategyFrogInPan}
}

// Timeframes returns all known timeframes
func Timeframes() []Timeframe {
	return []Timeframe{TimeframeDaily, TimeframeWeekly, TimeframeMonthly}
}
