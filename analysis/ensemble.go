package analysis

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/bistable/algorithms/common"
	"github.com/RyanBlaney/bistable/algorithms/ensemble"
	"github.com/RyanBlaney/bistable/algorithms/residence"
	"github.com/RyanBlaney/bistable/logging"
)

// EnsembleResult aggregates the analysis of many runs
type EnsembleResult struct {
	Runs []*RunResult `json:"runs"`

	// Pooled concatenates every run's residence-time distribution in run order
	Pooled    []float64            `json:"pooled"`
	Summary   residence.Summary    `json:"summary"`
	Histogram *residence.Histogram `json:"histogram"`

	// Heatmap is nil when the runs differ in length
	Heatmap *ensemble.Heatmap `json:"-"`

	// MeanSNR averages the runs that produced an SNR; it is only
	// meaningful when SNRCount > 0
	MeanSNR  float64 `json:"mean_snr_db"`
	SNRCount int     `json:"snr_count"`
	Failed   int     `json:"failed"`
}

// AnalyzeEnsemble analyzes every run concurrently, at most Workers at a
// time. A run that cannot be analyzed records its error in RunResult.Err
// and does not affect the others. Cancelling ctx stops the remaining runs
// and returns the context error.
func (a *Analyzer) AnalyzeEnsemble(ctx context.Context, runs [][]float64) (*EnsembleResult, error) {
	logger := a.logger.WithContext(ctx)
	results := make([]*RunResult, len(runs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)

	for i, run := range runs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.AnalyzeRun(run)
			if err != nil {
				logger.Error(err, "run analysis failed", logging.Fields{"run": i})
				res = &RunResult{Err: err}
			}
			res.Run = i
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &EnsembleResult{Runs: results, Pooled: []float64{}}
	var snrs []float64
	for _, r := range results {
		if r.Err != nil {
			out.Failed++
			continue
		}
		if r.Residence != nil {
			out.Pooled = append(out.Pooled, r.Residence.Distribution...)
		}
		if r.HasSNR {
			snrs = append(snrs, r.SNR)
		}
	}
	out.Summary = residence.Summarize(out.Pooled)
	out.SNRCount = len(snrs)
	if out.SNRCount > 0 {
		out.MeanSNR = common.Mean(snrs)
	}

	hist, err := residence.NewHistogram(out.Pooled, a.config.Residence.HistogramBins)
	if err != nil {
		return nil, err
	}
	out.Histogram = hist

	if len(runs) > 0 {
		heatmap, err := a.heatmap(runs)
		switch {
		case err == nil:
			out.Heatmap = heatmap
		case errors.Is(err, ensemble.ErrRaggedRuns), errors.Is(err, ensemble.ErrEmptyEnsemble):
			logger.Warn("skipping ensemble heatmap", logging.Fields{"reason": err.Error()})
		default:
			return nil, err
		}
	}

	logger.Info("ensemble analyzed", logging.Fields{
		"runs":           len(runs),
		"failed":         out.Failed,
		"intervals":      len(out.Pooled),
		"mean_residence": out.Summary.Mean,
	})

	return out, nil
}

func (a *Analyzer) heatmap(runs [][]float64) (*ensemble.Heatmap, error) {
	e, err := ensemble.New(runs)
	if err != nil {
		return nil, err
	}
	cfg := a.config.Ensemble
	return e.Heatmap(cfg.Bins, cfg.RangeMin, cfg.RangeMax)
}
