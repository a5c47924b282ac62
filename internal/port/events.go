package port

import "time"

type EventKind string

const (
	EventCorpusAdded         EventKind = "corpus_added"
	EventCorpusRemoved       EventKind = "corpus_removed"
	EventCorpusRenamed       EventKind = "corpus_renamed"
	EventActiveCorpusChanged EventKind = "active_corpus_changed"
	EventComparisonChanged   EventKind = "comparison_changed"
	EventReportUpdated       EventKind = "report_updated"
	EventReportRemoved       EventKind = "report_removed"
)

// Event is a state change notification for the surrounding application.
type Event struct {
	ID     string
	Kind   EventKind
	Corpus string
	At     time.Time
}

// EventPublisher announces state changes. Implementations must not block.
type EventPublisher interface {
	Publish(kind EventKind, corpus string)
}
