package usecase

import (
	"fmt"

	"wordfreq/config"
	"wordfreq/internal/adapter/cache"
	"wordfreq/internal/adapter/overlap"
	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

// ComputeBOScores computes BOn1/BOn2 over the document entries of report.
// The master entry is ignored.
func ComputeBOScores(report domain.CorpusReport) domain.BOScores {
	return overlap.ComputeBOScores(overlap.Documents(report))
}

// OverlapUseCase computes overlap metrics from stored corpus reports and
// memoizes them per (corpus, mode).
type OverlapUseCase struct {
	reports   port.ReportStore
	metrics   *config.MetricRegistry
	assurance bool
	memo      *cache.Memo[domain.OverlapResult]
}

// NewOverlapUseCase creates a new overlap use case. Results stay cached
// until Invalidate is called for their corpus.
func NewOverlapUseCase(reports port.ReportStore, metrics *config.MetricRegistry, maxEntries int, assurance bool) *OverlapUseCase {
	u := &OverlapUseCase{
		reports:   reports,
		metrics:   metrics,
		assurance: assurance,
	}
	u.memo = cache.NewMemo[domain.OverlapResult](maxEntries, u.compute)
	return u
}

// Compute returns the overlap result for mode (an overlap_metrics key).
// The result is a copy of the memoized value.
func (u *OverlapUseCase) Compute(corpus, mode string) (domain.OverlapResult, error) {
	if !u.metrics.Has(config.CategoryOverlap, mode) {
		return domain.OverlapResult{}, fmt.Errorf("overlap mode %q: %w", mode, domain.ErrUnknownMetric)
	}
	result, err := u.memo.Get(corpus, mode)
	if err != nil {
		return domain.OverlapResult{}, err
	}
	return result.Clone(), nil
}

// Invalidate drops cached results of corpus.
func (u *OverlapUseCase) Invalidate(corpus string) {
	u.memo.Invalidate(corpus)
}

// CacheStats reports memo hits and misses.
func (u *OverlapUseCase) CacheStats() (hits, misses int) {
	return u.memo.Stats()
}

func (u *OverlapUseCase) compute(corpus, mode string) (domain.OverlapResult, error) {
	report, ok := u.reports.Get(corpus)
	if !ok {
		return domain.OverlapResult{}, fmt.Errorf("overlap for %q: %w", corpus, domain.ErrReportNotFound)
	}
	docs := overlap.Documents(report)

	result := domain.OverlapResult{Corpus: corpus, Mode: mode}
	switch mode {
	case config.MetricBOScore:
		bo := overlap.ComputeBOScores(docs)
		result.BO = &bo
	case config.MetricJaccard:
		result.Pairs = overlap.Pairs(docs)
	default:
		return domain.OverlapResult{}, fmt.Errorf("overlap mode %q has no calculator: %w", mode, domain.ErrUnknownMetric)
	}
	if u.assurance {
		result.Assurance = overlap.Assure(docs)
	}
	return result, nil
}
