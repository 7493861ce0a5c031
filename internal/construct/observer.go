package construct

import (
	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/logger"
)

// LoggingObserver logs each stage transition with survivor counts
type LoggingObserver struct {
	log *logger.Logger
}

// NewLoggingObserver creates an observer that logs stage progress
func NewLoggingObserver(log *logger.Logger) *LoggingObserver {
	return &LoggingObserver{log: log}
}

func (o *LoggingObserver) StageStarted(stage string, in *contracts.UniverseTable) {
	o.log.WithFields(map[string]interface{}{
		"stage": stage,
		"rows":  in.Count(),
	}).Debug("Stage started")
}

func (o *LoggingObserver) StageCompleted(stage string, out *contracts.UniverseTable) {
	o.log.WithFields(map[string]interface{}{
		"stage":   stage,
		"rows":    out.Count(),
		"dropped": len(out.Dropped),
	}).Debug("Stage completed")
}
