package usecase

import (
	"fmt"
	"log/slog"

	"wordfreq/internal/adapter/corpus"
	"wordfreq/internal/domain"
	"wordfreq/internal/logging"
	"wordfreq/internal/port"
)

// Workspace is the surface collaborators drive: the corpus registry, the
// report manager, the analysis driver and the overlap calculators, plus the
// report view of the focused corpus. It is not safe for concurrent use.
type Workspace struct {
	registry *corpus.Registry
	reports  port.ReportStore
	analyze  *AnalyzeUseCase
	overlap  *OverlapUseCase
	log      *slog.Logger

	current *domain.CorpusReport
}

// ChangeNotifier is implemented by report stores that announce changes.
type ChangeNotifier interface {
	OnChange(fn func(corpus string))
}

// NewWorkspace assembles a workspace. When reports can notify changes, the
// overlap memo is invalidated from it.
func NewWorkspace(
	registry *corpus.Registry,
	reports port.ReportStore,
	analyze *AnalyzeUseCase,
	overlap *OverlapUseCase,
	log *slog.Logger,
) *Workspace {
	if n, ok := reports.(ChangeNotifier); ok {
		n.OnChange(overlap.Invalidate)
	}
	return &Workspace{
		registry: registry,
		reports:  reports,
		analyze:  analyze,
		overlap:  overlap,
		log:      logging.OrDefault(log),
	}
}

func (w *Workspace) Registry() *corpus.Registry {
	return w.registry
}

// AddCorpus creates the corpus, or returns the existing one of that name.
func (w *Workspace) AddCorpus(name string) *corpus.Corpus {
	return w.registry.AddCorpus(name)
}

// RemoveCorpus deletes the corpus together with its stored report.
func (w *Workspace) RemoveCorpus(name string) bool {
	if !w.registry.RemoveCorpus(name) {
		return false
	}
	w.reports.Remove(name)
	if w.current != nil && w.current.Corpus == name {
		w.current = nil
	}
	return true
}

// RenameCorpus re-keys a corpus and moves its stored report.
func (w *Workspace) RenameCorpus(oldName, newName string) error {
	if oldName == newName {
		return w.ensure(oldName)
	}
	if err := w.registry.RenameCorpus(oldName, newName); err != nil {
		return err
	}
	if report, ok := w.reports.Get(oldName); ok {
		w.reports.Remove(oldName)
		report.Corpus = newName
		w.reports.Put(report)
	}
	if w.current != nil && w.current.Corpus == oldName {
		w.current.Corpus = newName
	}
	return nil
}

// AddFiles appends paths to the named corpus, creating it if needed.
func (w *Workspace) AddFiles(name string, paths ...string) *corpus.Corpus {
	c := w.registry.AddCorpus(name)
	for _, p := range paths {
		c.AddFile(p)
	}
	return c
}

// RemoveFile drops path from the named corpus.
func (w *Workspace) RemoveFile(name, path string) (bool, error) {
	c, ok := w.registry.Get(name)
	if !ok {
		return false, fmt.Errorf("remove file from %q: %w", name, domain.ErrCorpusNotFound)
	}
	return c.RemoveFile(path), nil
}

// ImportFiles appends paths to the default corpus.
func (w *Workspace) ImportFiles(paths ...string) *corpus.Corpus {
	return w.registry.ImportFiles(paths...)
}

// MarkStale flags the corpus as out of date with its stored report.
func (w *Workspace) MarkStale(name string) error {
	c, ok := w.registry.Get(name)
	if !ok {
		return fmt.Errorf("mark stale %q: %w", name, domain.ErrCorpusNotFound)
	}
	c.MarkStale()
	return nil
}

// SetSingleActive focuses name and loads its stored report, if any, as the
// current view.
func (w *Workspace) SetSingleActive(name string) error {
	if err := w.registry.SetSingleActive(name); err != nil {
		return err
	}
	w.current = nil
	if report, ok := w.reports.Get(name); ok {
		w.current = &report
	}
	return nil
}

// ToggleMultiActive flips name's membership in the comparison set.
func (w *Workspace) ToggleMultiActive(name string) (bool, error) {
	return w.registry.ToggleMultiActive(name)
}

// CurrentReport returns the report view of the focused corpus.
func (w *Workspace) CurrentReport() (domain.CorpusReport, bool) {
	if w.current == nil {
		return domain.CorpusReport{}, false
	}
	return w.current.Clone(), true
}

// Analyze rebuilds and stores the report of the named corpus. The current
// view only follows the result when name is the focused corpus. A corpus
// that yields no words returns ErrEmptyCorpus and keeps its previous report.
func (w *Workspace) Analyze(name string, progress ProgressFunc) (AnalysisResult, error) {
	c, ok := w.registry.Get(name)
	if !ok {
		return AnalysisResult{}, fmt.Errorf("analyze %q: %w", name, domain.ErrCorpusNotFound)
	}

	saved := w.current
	defer func() {
		if focused, _ := w.registry.SingleActive(); focused != name {
			w.current = saved
		}
	}()

	if c.Len() == 0 {
		return AnalysisResult{}, fmt.Errorf("analyze %q: %w", name, domain.ErrEmptyCorpus)
	}

	result := w.analyze.Analyze(c, progress)
	if !result.Success {
		return result, fmt.Errorf("analyze %q: %w", name, domain.ErrEmptyCorpus)
	}
	c.MarkAnalyzed()

	if focused, _ := w.registry.SingleActive(); focused == name {
		report := result.Report.Clone()
		w.current = &report
	}
	return result, nil
}

// AnalyzeCorpus analyzes the named corpus and reports whether a report was
// stored.
func (w *Workspace) AnalyzeCorpus(name string) bool {
	_, err := w.Analyze(name, nil)
	if err != nil {
		w.log.Warn("analysis failed", "corpus", name, "error", err)
		return false
	}
	return true
}

// GenerateReportForCorpus analyzes the named corpus and returns its report
// without disturbing the current view of another focused corpus.
func (w *Workspace) GenerateReportForCorpus(name string) (domain.CorpusReport, bool) {
	result, err := w.Analyze(name, nil)
	if err != nil {
		w.log.Warn("report generation failed", "corpus", name, "error", err)
		return domain.CorpusReport{}, false
	}
	return result.Report, true
}

func (w *Workspace) GetReportForCorpus(name string) (domain.CorpusReport, bool) {
	return w.reports.Get(name)
}

func (w *Workspace) HasReportForCorpus(name string) bool {
	return w.reports.Has(name)
}

// Overlap computes the overlap metric mode for the named corpus' stored report.
func (w *Workspace) Overlap(name, mode string) (domain.OverlapResult, error) {
	return w.overlap.Compute(name, mode)
}

// Compare computes mode for every corpus in the comparison set that has a
// report, in comparison-set order.
func (w *Workspace) Compare(mode string) ([]domain.OverlapResult, error) {
	var results []domain.OverlapResult
	for _, name := range w.registry.MultiActive() {
		if !w.reports.Has(name) {
			continue
		}
		r, err := w.overlap.Compute(name, mode)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (w *Workspace) ensure(name string) error {
	if _, ok := w.registry.Get(name); !ok {
		return fmt.Errorf("%q: %w", name, domain.ErrCorpusNotFound)
	}
	return nil
}
