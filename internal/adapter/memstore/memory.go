package memstore

import (
	"sort"
	"sync"

	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

// ChangeFunc is called after a corpus report is replaced or removed.
type ChangeFunc = func(corpus string)

// ReportStore is the in-memory Corpus Report Manager: one report per corpus
// name, replaced wholesale and never merged.
type ReportStore struct {
	mu       sync.RWMutex
	reports  map[string]domain.CorpusReport
	onChange []ChangeFunc
	events   port.EventPublisher
}

// NewReportStore creates an empty store. events may be nil.
func NewReportStore(events port.EventPublisher) *ReportStore {
	return &ReportStore{
		reports: make(map[string]domain.CorpusReport),
		events:  events,
	}
}

// OnChange registers fn to run after every Put and successful Remove.
func (s *ReportStore) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *ReportStore) Get(corpus string) (domain.CorpusReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[corpus]
	if !ok {
		return domain.CorpusReport{}, false
	}
	return r.Clone(), true
}

// Put stores report under report.Corpus, replacing any previous report.
func (s *ReportStore) Put(report domain.CorpusReport) {
	s.mu.Lock()
	s.reports[report.Corpus] = report.Clone()
	hooks := append([]ChangeFunc(nil), s.onChange...)
	s.mu.Unlock()

	s.notify(hooks, report.Corpus, port.EventReportUpdated)
}

func (s *ReportStore) Remove(corpus string) bool {
	s.mu.Lock()
	_, ok := s.reports[corpus]
	delete(s.reports, corpus)
	hooks := append([]ChangeFunc(nil), s.onChange...)
	s.mu.Unlock()

	if ok {
		s.notify(hooks, corpus, port.EventReportRemoved)
	}
	return ok
}

func (s *ReportStore) Has(corpus string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.reports[corpus]
	return ok
}

// List returns the stored corpus names sorted.
func (s *ReportStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.reports))
	for name := range s.reports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *ReportStore) notify(hooks []ChangeFunc, corpus string, kind port.EventKind) {
	for _, fn := range hooks {
		fn(corpus)
	}
	if s.events != nil {
		s.events.Publish(kind, corpus)
	}
}

var _ port.ReportStore = (*ReportStore)(nil)
