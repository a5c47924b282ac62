package port

import "wordfreq/internal/domain"

// ReportStore keeps at most one corpus report per corpus name.
type ReportStore interface {
	Get(corpus string) (domain.CorpusReport, bool)

	Put(report domain.CorpusReport)

	Remove(corpus string) bool

	Has(corpus string) bool

	List() []string
}
