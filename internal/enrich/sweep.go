package enrich

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ndwells/wellbook/internal/model"
	"github.com/ndwells/wellbook/internal/normalize"
	"github.com/ndwells/wellbook/internal/store"
)

// SweepOptions controls one enrichment pass.
type SweepOptions struct {
	// Rescrape revisits wells that already carry a DrillingEdge URL.
	Rescrape bool
	// Limit stops the sweep after this many wells when > 0.
	Limit int
	// DryRun fetches and merges but skips the database write.
	DryRun bool
}

// SweepResult summarizes one enrichment pass.
type SweepResult struct {
	Candidates int
	Enriched   int
	NotFound   int
	Failed     int
}

// Sweeper walks enrichment candidates and merges fetched attributes into the
// stored records. The persisted drillingedge_url marks a well as visited, so
// an interrupted sweep resumes where it stopped.
type Sweeper struct {
	store   store.Store
	fetcher Fetcher
}

func NewSweeper(st store.Store, f Fetcher) *Sweeper {
	return &Sweeper{store: st, fetcher: f}
}

// Run performs one sweep. Per-well failures are logged and skipped; only
// candidate listing, run bookkeeping, and context cancellation abort the pass.
func (s *Sweeper) Run(ctx context.Context, opts SweepOptions) (SweepResult, error) {
	var result SweepResult

	candidates, err := s.store.EnrichmentCandidates(ctx, opts.Rescrape)
	if err != nil {
		return result, eris.Wrap(err, "enrich: list candidates")
	}
	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}
	result.Candidates = len(candidates)

	// Dry runs leave no trace, including the run log.
	var runID string
	if !opts.DryRun {
		runID, err = s.store.StartRun(ctx, "enrich")
		if err != nil {
			return result, eris.Wrap(err, "enrich: start run")
		}
	}

	zap.L().Info("enrichment sweep started",
		zap.Int("candidates", len(candidates)),
		zap.Bool("rescrape", opts.Rescrape),
		zap.Bool("dry_run", opts.DryRun))

	var sweepErr error
	for _, well := range candidates {
		if err := ctx.Err(); err != nil {
			sweepErr = err
			break
		}
		switch err := s.enrichOne(ctx, well, opts); {
		case err == nil:
			result.Enriched++
		case eris.Is(err, errNotFound):
			result.NotFound++
		default:
			result.Failed++
			zap.L().Warn("enrichment failed, skipping well",
				zap.Int64("well_id", well.ID),
				zap.String("well_name", well.WellName),
				zap.Error(err))
		}
	}

	if !opts.DryRun {
		processed := result.Enriched + result.NotFound + result.Failed
		if err := s.store.CompleteRun(ctx, runID, processed, sweepErr); err != nil {
			zap.L().Warn("run log update failed", zap.String("run_id", runID), zap.Error(err))
		}
	}

	zap.L().Info("enrichment sweep finished",
		zap.Int("enriched", result.Enriched),
		zap.Int("not_found", result.NotFound),
		zap.Int("failed", result.Failed))
	return result, sweepErr
}

var errNotFound = eris.New("no page for well")

func (s *Sweeper) enrichOne(ctx context.Context, well model.WellRecord, opts SweepOptions) error {
	enr, err := s.fetcher.Fetch(ctx, well)
	if err != nil {
		return err
	}
	if enr == nil {
		// Record the miss so the next sweep skips this well.
		well.DrillingEdgeURL = model.TextNA
		if !opts.DryRun {
			if err := s.store.UpdateEnrichment(ctx, well); err != nil {
				return err
			}
		}
		return errNotFound
	}

	merged := Merge(well, *enr, opts.Rescrape)
	res := normalize.Well(merged)
	for _, f := range res.Findings {
		zap.L().Debug("normalization finding",
			zap.Int64("well_id", well.ID),
			zap.String("field", f.Field),
			zap.String("reason", f.Reason))
	}

	zap.L().Info("well enriched",
		zap.Int64("well_id", well.ID),
		zap.String("well_name", well.WellName),
		zap.String("status", res.Well.WellStatus),
		zap.String("url", res.Well.DrillingEdgeURL))

	if opts.DryRun {
		return nil
	}
	return s.store.UpdateEnrichment(ctx, res.Well)
}
