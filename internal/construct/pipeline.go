package construct

import (
	"time"

	"github.com/quantward/momentum/internal/contracts"
	"github.com/quantward/momentum/pkg/logger"
)

// Stage names, in the vocabulary the observer and logs use
const (
	StageUniverse   = "universe"
	StageVolatility = "volatility"
	StageMomentum   = "momentum"
	StageSmoothness = "smoothness"
	StageRank       = "rank"
)

// StagePlan returns the ordered stage list for a strategy. Strategies
// are data: the same stage functions compose differently per plan.
// FROG_IN_PAN screens volatility before momentum; SMOOTH filters
// smoothness after it.
func StagePlan(strategy contracts.Strategy) ([]string, error) {
	switch strategy {
	case contracts.StrategyCore:
		return []string{StageUniverse, StageMomentum, StageRank}, nil
	case contracts.StrategyFrogInPan:
		return []string{StageUniverse, StageVolatility, StageMomentum, StageRank}, nil
	case contracts.StrategySmooth:
		return []string{StageUniverse, StageMomentum, StageSmoothness, StageRank}, nil
	}
	return nil, contracts.InvalidParameterError{Param: "strategy", Value: string(strategy)}
}

// Pipeline runs one strategy over a frozen price panel. The panel and
// company info are read-only inputs; every stage returns a fresh
// table, so a Pipeline is safe to share across goroutines.
type Pipeline struct {
	panel    *contracts.PricePanel
	info     contracts.CompanyInfo
	log      *logger.Logger
	observer contracts.StageObserver
}

// NewPipeline creates a pipeline over a panel and company snapshot
func NewPipeline(panel *contracts.PricePanel, info contracts.CompanyInfo, log *logger.Logger) *Pipeline {
	return &Pipeline{
		panel:    panel,
		info:     info,
		log:      log,
		observer: contracts.NopObserver{},
	}
}

// WithObserver attaches a stage observer
func (p *Pipeline) WithObserver(obs contracts.StageObserver) *Pipeline {
	p.observer = obs
	return p
}

// Run executes the strategy's stage plan for a run date and returns
// the full report. Parameters are validated up front; an unknown
// strategy or timeframe fails the run before any stage executes.
func (p *Pipeline) Run(date time.Time, params Params) (*contracts.Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	plan, err := StagePlan(params.Strategy)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	log := p.log.WithFields(map[string]interface{}{
		"strategy":  params.Strategy,
		"timeframe": params.Timeframe,
		"date":      date.Format("2006-01-02"),
	})
	log.Info("Signal construction started")

	table := BuildInitialTable(date, p.panel, p.info)

	for _, stage := range plan {
		p.observer.StageStarted(stage, table)
		before := table.Count()

		table, err = p.runStage(stage, table, params)
		if err != nil {
			log.WithField("stage", stage).WithError(err).Error("Stage failed")
			return nil, err
		}

		p.observer.StageCompleted(stage, table)
		log.WithFields(map[string]interface{}{
			"stage":  stage,
			"before": before,
			"after":  table.Count(),
		}).Debug("Stage completed")
	}

	portfolio := SelectPortfolio(table, params)
	duration := time.Since(started)

	log.WithFields(map[string]interface{}{
		"survivors": table.Count(),
		"longs":     len(portfolio.Longs),
		"shorts":    len(portfolio.Shorts),
		"duration":  duration,
	}).Info("Signal construction completed")

	return &contracts.Report{
		Strategy:  params.Strategy,
		Timeframe: params.Timeframe,
		Date:      date,
		Table:     *table,
		Portfolio: portfolio,
		StartedAt: started,
		Duration:  duration,
	}, nil
}

func (p *Pipeline) runStage(stage string, table *contracts.UniverseTable, params Params) (*contracts.UniverseTable, error) {
	switch stage {
	case StageUniverse:
		return FilterUniverse(table, params)
	case StageVolatility:
		return ScreenVolatility(table, p.panel, params)
	case StageMomentum:
		return CalculateMomentum(table, p.panel, params)
	case StageSmoothness:
		return FilterSmoothness(table, p.panel, params)
	case StageRank:
		return RankTable(table, params)
	}
	return nil, contracts.InvalidParameterError{Param: "stage", Value: stage}
}
