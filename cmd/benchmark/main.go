package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"wordfreq/config"
	"wordfreq/internal/adapter/analyzer"
	"wordfreq/internal/adapter/corpus"
	"wordfreq/internal/adapter/fs"
	"wordfreq/internal/adapter/memstore"
	"wordfreq/internal/logging"
	"wordfreq/internal/usecase"
)

const benchCorpus = "benchmark"

func main() {
	dir := flag.String("dir", "", "Directory of documents to analyze")
	runs := flag.Int("runs", 5, "Number of analysis runs")
	flag.Parse()

	if *dir == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir ./texts [-runs 5]")
		fmt.Println("\nMeasures:")
		fmt.Println("  1. Analysis time per run (read, tokenize, count, statistics, assurance)")
		fmt.Println("  2. BO score and Jaccard time, cold and memoized")
		fmt.Println("  3. Report stability across runs")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	files, err := fs.NewWalker(cfg.Import.Includes, cfg.Import.Excludes).Expand([]string{*dir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing documents: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No documents matched in %s\n", *dir)
		os.Exit(1)
	}

	ws, overlapUC := setupWorkspace(cfg)
	ws.AddFiles(benchCorpus, files...)

	fmt.Println("WORD FREQUENCY BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Documents: %d\n", len(files))
	fmt.Printf("Runs:      %d\n\n", *runs)

	var total time.Duration
	var first []byte
	stable := true
	for i := 0; i < *runs; i++ {
		start := time.Now()
		result, err := ws.Analyze(benchCorpus, nil)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Analysis error: %v\n", err)
			os.Exit(1)
		}
		total += elapsed

		encoded, _ := json.Marshal(result.Report)
		if first == nil {
			first = encoded
			master, _ := result.Report.Master()
			fmt.Printf("Total words:  %d\n", master.Data.TotalWords)
			fmt.Printf("Unique words: %d\n", master.Data.UniqueWords)
			fmt.Printf("Skipped:      %d\n\n", len(result.Failures))
		} else if string(encoded) != string(first) {
			stable = false
		}
		fmt.Printf("run %d: %s\n", i+1, elapsed.Round(time.Microsecond))
	}

	fmt.Println(strings.Repeat("-", 70))
	for _, mode := range []string{config.MetricBOScore, config.MetricJaccard} {
		start := time.Now()
		result, err := ws.Overlap(benchCorpus, mode)
		cold := time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Overlap error: %v\n", err)
			os.Exit(1)
		}
		start = time.Now()
		ws.Overlap(benchCorpus, mode)
		warm := time.Since(start)

		fmt.Printf("%-14s cold %-12s memoized %s\n", mode, cold.Round(time.Microsecond), warm.Round(time.Microsecond))
		if mode == config.MetricBOScore {
			ranked := result.BO.Ranked(1)
			fmt.Printf("  shared words: %d\n", len(ranked))
			if len(ranked) > 0 {
				fmt.Printf("  top BOn1:     %s (%.6f)\n", ranked[0].Word, ranked[0].Score)
			}
		}
	}
	hits, misses := overlapUC.CacheStats()

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("RESULTS:\n")
	fmt.Printf("  Mean analysis time: %s\n", (total / time.Duration(*runs)).Round(time.Microsecond))
	fmt.Printf("  Memo hits/misses:   %d/%d\n", hits, misses)
	if stable {
		fmt.Println("  Status: STABLE - every run produced an identical report")
	} else {
		fmt.Println("  Status: UNSTABLE - reports differ between runs")
	}
}

func setupWorkspace(cfg *config.Config) (*usecase.Workspace, *usecase.OverlapUseCase) {
	reports := memstore.NewReportStore(nil)
	log := logging.Discard()
	overlap := usecase.NewOverlapUseCase(reports, config.DefaultMetricRegistry(), cfg.Cache.MaxEntries, cfg.Overlap.Assurance)
	ws := usecase.NewWorkspace(
		corpus.NewRegistry(nil),
		reports,
		usecase.NewAnalyzeUseCase(fs.NewReader(), analyzer.NewTokenizer(), analyzer.NewChecker(cfg.Analysis.PctTolerance), reports, log),
		overlap,
		log,
	)
	return ws, overlap
}
