package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Theworldzyours/TRADE-SOURCER/internal/contracts"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/forecast"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/gate"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/ranking"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/scoring"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/sizing"
	"github.com/Theworldzyours/TRADE-SOURCER/internal/strategy"
	"github.com/Theworldzyours/TRADE-SOURCER/pkg/logger"
)

const defaultWorkers = 8

// Pipeline coordinates one full scan: per-instrument gate, forecast,
// and scoring in a bounded worker pool, then ranking and sizing
// single-threaded over the drained results.
type Pipeline struct {
	cfg      strategy.Config
	gate     *gate.Gate
	analyzer *forecast.Analyzer
	scorer   *scoring.Scorer
	ranker   *ranking.Ranker
	sizer    *sizing.Sizer

	workers int
	log     *logger.Logger
	now     func() time.Time
}

// New wires the five stages from one validated strategy config.
// workers bounds the per-instrument pool; <= 0 means the default.
func New(cfg strategy.Config, workers int, log *logger.Logger) *Pipeline {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Pipeline{
		cfg:      cfg,
		gate:     gate.New(cfg.Gate, log),
		analyzer: forecast.NewAnalyzer(cfg.Forecast, log),
		scorer:   scoring.NewScorer(cfg.Scoring, log),
		ranker:   ranking.New(cfg.Selection, log),
		sizer:    sizing.New(cfg.Sizing, log),
		workers:  workers,
		log:      log,
		now:      time.Now,
	}
}

// instrumentResult is one worker's output slot. Workers write only
// their own index, so the slice needs no locking.
type instrumentResult struct {
	verdict     contracts.EligibilityVerdict
	profile     *contracts.VolatilityProfile
	forecastErr error
}

// Run executes the scan over one snapshot of bundles. Per-instrument
// failures never abort the batch; they are isolated into the audit
// collections of the result.
func (p *Pipeline) Run(ctx context.Context, bundles []*contracts.MetricBundle) (*contracts.ScanResult, error) {
	start := p.now()
	p.log.WithFields(map[string]interface{}{
		"instruments": len(bundles),
		"workers":     p.workers,
	}).Info("scan started")

	results := make([]instrumentResult, len(bundles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range bundles {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Gate and forecast consume the raw bundle independently.
			results[i].verdict = p.gate.Evaluate(bundles[i])
			profile, err := p.analyzer.Analyze(bundles[i])
			if err != nil {
				results[i].forecastErr = err
			} else {
				results[i].profile = profile
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &contracts.ScanResult{
		GeneratedAt: start.UTC(),
		StrategyID:  p.cfg.Meta.StrategyID,
	}
	if hash, err := strategy.Hash(&p.cfg); err == nil {
		out.ConfigHash = hash
	}

	var scored []contracts.ScoredInstrument
	for i, b := range bundles {
		r := results[i]
		if r.forecastErr != nil {
			out.ForecastFailures = append(out.ForecastFailures, contracts.ForecastFailure{
				Ticker: b.Ticker,
				Reason: forecast.FailureReason(r.forecastErr),
			})
		}
		if !r.verdict.Passed {
			out.Rejected = append(out.Rejected, contracts.RejectedInstrument{
				Ticker:           b.Ticker,
				Sector:           b.Sector,
				FailedPredicates: r.verdict.FailedPredicates,
			})
			continue
		}
		scored = append(scored, contracts.ScoredInstrument{
			Ticker:    b.Ticker,
			Sector:    b.Sector,
			Breakdown: p.scorer.Score(b),
			Profile:   r.profile,
		})
	}

	out.Opportunities = p.ranker.Shortlist(scored)
	p.sizer.Apply(out.Opportunities)

	out.SectorAllocations = sectorAllocations(out.Opportunities)
	out.Warnings = diversificationWarnings(out.SectorAllocations, len(out.Opportunities), p.cfg.Selection.SectorCapPct)

	out.Counts = contracts.ScanCounts{
		Input:          len(bundles),
		Processed:      len(scored),
		Rejected:       len(out.Rejected),
		ForecastFailed: len(out.ForecastFailures),
		Shortlisted:    len(out.Opportunities),
	}

	p.log.WithFields(map[string]interface{}{
		"processed":       out.Counts.Processed,
		"rejected":        out.Counts.Rejected,
		"forecast_failed": out.Counts.ForecastFailed,
		"shortlisted":     out.Counts.Shortlisted,
		"duration":        p.now().Sub(start).String(),
	}).Info("scan finished")

	return out, nil
}
