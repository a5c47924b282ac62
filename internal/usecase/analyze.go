package usecase

import (
	"log/slog"
	"path/filepath"

	"wordfreq/internal/adapter/analyzer"
	"wordfreq/internal/adapter/corpus"
	"wordfreq/internal/domain"
	"wordfreq/internal/logging"
	"wordfreq/internal/port"
)

// ProgressFunc is called after each document is processed.
type ProgressFunc func(processed, total int, currentFile string)

// DocumentFailure records a document left out of a report.
type DocumentFailure struct {
	Path string
	Err  error
}

// AnalysisResult is the outcome of analyzing a corpus. Report is only
// meaningful when Success is true.
type AnalysisResult struct {
	Success  bool
	Report   domain.CorpusReport
	Failures []DocumentFailure
}

// AnalyzeUseCase drives tokenize -> count -> statistics -> assurance over
// every document of a corpus and stores the resulting corpus report.
type AnalyzeUseCase struct {
	reader    port.FileReader
	tokenizer port.Tokenizer
	checker   *analyzer.Checker
	store     port.ReportStore
	log       *slog.Logger
}

// NewAnalyzeUseCase creates a new analysis driver.
func NewAnalyzeUseCase(
	reader port.FileReader,
	tokenizer port.Tokenizer,
	checker *analyzer.Checker,
	store port.ReportStore,
	log *slog.Logger,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		reader:    reader,
		tokenizer: tokenizer,
		checker:   checker,
		store:     store,
		log:       logging.OrDefault(log),
	}
}

// Analyze rebuilds the report of c end to end. Documents that cannot be read
// are logged and left out. When no document contributes a word the result is
// unsuccessful and nothing is stored.
func (u *AnalyzeUseCase) Analyze(c *corpus.Corpus, progress ProgressFunc) AnalysisResult {
	files := c.Files()
	result := AnalysisResult{}

	master := analyzer.NewFrequencies()
	var masterTokens []string
	entries := make([]domain.ReportEntry, 0, len(files)+1)

	for i, path := range files {
		entry, tokens, err := u.analyzeDocument(path)
		if progress != nil {
			progress(i+1, len(files), path)
		}
		if err != nil {
			u.log.Warn("skipping document", "corpus", c.Name(), "path", path, "error", err)
			result.Failures = append(result.Failures, DocumentFailure{Path: path, Err: err})
			continue
		}
		master.Merge(analyzer.Count(tokens))
		masterTokens = append(masterTokens, tokens...)
		entries = append(entries, entry)
	}

	if master.Len() == 0 {
		u.log.Info("corpus has no words", "corpus", c.Name(), "files", len(files), "failed", len(result.Failures))
		return result
	}

	masterReport := analyzer.BuildReport(master)
	masterEntry := domain.ReportEntry{
		Key:       domain.MasterReportKey,
		Title:     domain.MasterReportKey,
		Data:      masterReport,
		Assurance: u.checker.Check(masterReport, masterTokens),
	}

	result.Report = domain.CorpusReport{
		Corpus:  c.Name(),
		Entries: append([]domain.ReportEntry{masterEntry}, entries...),
	}
	result.Success = true
	u.store.Put(result.Report)

	u.log.Info("corpus analyzed",
		"corpus", c.Name(),
		"documents", len(entries),
		"failed", len(result.Failures),
		"total_words", masterReport.TotalWords,
		"unique_words", masterReport.UniqueWords,
		"assurance", masterEntry.Assurance.AllPassed,
	)
	return result
}

func (u *AnalyzeUseCase) analyzeDocument(path string) (domain.ReportEntry, []string, error) {
	text, err := u.reader.ReadFile(path)
	if err != nil {
		return domain.ReportEntry{}, nil, err
	}

	tokens, _ := u.tokenizer.Tokenize(text)
	report := analyzer.BuildReport(analyzer.Count(tokens))
	record := u.checker.Check(report, tokens)
	if !record.AllPassed {
		u.log.Warn("assurance failed", "path", path)
	}

	return domain.ReportEntry{
		Key:       path,
		Title:     filepath.Base(path),
		Data:      report,
		Assurance: record,
	}, tokens, nil
}
