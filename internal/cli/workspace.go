package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"wordfreq/config"
	"wordfreq/internal/adapter/analyzer"
	"wordfreq/internal/adapter/corpus"
	"wordfreq/internal/adapter/events"
	"wordfreq/internal/adapter/fs"
	"wordfreq/internal/adapter/memstore"
	"wordfreq/internal/port"
	"wordfreq/internal/usecase"
)

// app bundles the wired components a command works with.
type app struct {
	cfg     *config.Config
	ws      *usecase.Workspace
	bus     *events.Bus
	reports *memstore.ReportStore
	metrics *config.MetricRegistry
	walker  *fs.Walker
}

// newApp wires a workspace from the loaded config. Configured corpora are
// registered first; args are imported into the default corpus.
func newApp(args []string) (*app, error) {
	cfg := GetConfig()
	log := GetLogger()

	metrics, err := loadMetrics()
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	bus.Subscribe(func(ev port.Event) {
		log.Debug("event", "id", ev.ID, "kind", ev.Kind, "corpus", ev.Corpus)
	})

	reports := memstore.NewReportStore(bus)
	registry := corpus.NewRegistry(bus)
	registry.SetDefaultName(cfg.Import.DefaultCorpus)

	analyze := usecase.NewAnalyzeUseCase(
		fs.NewReader(),
		analyzer.NewTokenizer(),
		analyzer.NewChecker(cfg.Analysis.PctTolerance),
		reports,
		log,
	)
	overlap := usecase.NewOverlapUseCase(reports, metrics, cfg.Cache.MaxEntries, cfg.Overlap.Assurance)

	a := &app{
		cfg:     cfg,
		ws:      usecase.NewWorkspace(registry, reports, analyze, overlap, log),
		bus:     bus,
		reports: reports,
		metrics: metrics,
		walker:  fs.NewWalker(cfg.Import.Includes, cfg.Import.Excludes),
	}

	for _, cc := range cfg.Corpora {
		paths := make([]string, 0, len(cc.Files)+len(cc.Dirs))
		for _, p := range append(append([]string(nil), cc.Files...), cc.Dirs...) {
			paths = append(paths, resolvePath(p))
		}
		files, err := a.walker.Expand(paths)
		if err != nil {
			return nil, fmt.Errorf("corpus %q: %w", cc.Name, err)
		}
		a.ws.AddFiles(cc.Name, files...)
	}

	if len(args) > 0 {
		files, err := a.walker.Expand(args)
		if err != nil {
			return nil, err
		}
		a.ws.ImportFiles(files...)
	}
	return a, nil
}

// resolvePath makes config-relative paths relative to the root directory.
func resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GetRootDir(), p)
}

func loadMetrics() (*config.MetricRegistry, error) {
	path := GetConfig().MetricsFile
	if path != "" {
		path = resolvePath(path)
	}
	reg, err := config.LoadMetricRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load metric registry: %w", err)
	}
	return reg, nil
}

// targets returns the corpora a command acts on: the named ones, or every
// registered corpus.
func (a *app) targets(names []string) ([]string, error) {
	if len(names) == 0 {
		return a.ws.Registry().Names(), nil
	}
	for _, n := range names {
		if _, ok := a.ws.Registry().Get(n); !ok {
			return nil, fmt.Errorf("unknown corpus %q", n)
		}
	}
	return names, nil
}

// analyzeAll analyzes each named corpus and prints skipped documents.
// Corpora without words are reported and skipped.
func (a *app) analyzeAll(names []string, quiet bool) ([]usecase.AnalysisResult, error) {
	var results []usecase.AnalysisResult
	for _, name := range names {
		var progress usecase.ProgressFunc
		if a.cfg.Analysis.Progress && !quiet {
			progress = newProgress(name)
		}
		result, err := a.ws.Analyze(name, progress)
		for _, f := range result.Failures {
			fmt.Printf("  skipped %s: %v\n", f.Path, f.Err)
		}
		if err != nil {
			fmt.Printf("%s: %v\n", name, err)
			continue
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no corpus produced a report")
	}
	return results, nil
}

// newProgress returns a progress callback drawing a bar once the document
// count is known.
func newProgress(name string) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	var startTime time.Time

	return func(processed, total int, currentFile string) {
		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", name)),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)

		if processed > 0 && processed < total {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-processed)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]%s[reset] ETA: %s", name, formatDuration(eta)))
			}
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
