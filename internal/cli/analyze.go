package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wordfreq/internal/domain"
)

var (
	analyzeCorpora []string
	analyzeTop     int
	analyzeJSON    bool
	analyzeAll     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Build word frequency reports",
	Long: `Analyze documents and print the master report of each corpus.
Paths are files or directories; directories are walked with the configured
include/exclude globs and imported into the default corpus. Corpora from the
config file are analyzed too.

Examples:
  wordfreq analyze notes/ extra.txt
  wordfreq analyze --corpus letters --top 10
  wordfreq analyze a.txt b.txt --all --json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSliceVarP(&analyzeCorpora, "corpus", "c", nil, "corpus to analyze (default: all)")
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "n", 0, "rows per report (default from config, 0 in config means all)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "print every document report, not only the master")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp(args)
	if err != nil {
		return err
	}
	names, err := a.targets(analyzeCorpora)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to analyze: pass paths or configure corpora")
	}

	results, err := a.analyzeAll(names, analyzeJSON)
	if err != nil {
		return err
	}

	if analyzeJSON {
		reports := make([]domain.CorpusReport, len(results))
		for i, r := range results {
			reports[i] = r.Report
		}
		output, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode reports: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	top := a.cfg.Analysis.TopN
	if analyzeTop > 0 {
		top = analyzeTop
	}
	for _, r := range results {
		fmt.Printf("\n== %s ==\n", r.Report.Corpus)
		for _, entry := range r.Report.Entries {
			if !analyzeAll && entry.Key != domain.MasterReportKey {
				continue
			}
			printEntry(entry, top)
		}
	}
	return nil
}

func printEntry(entry domain.ReportEntry, top int) {
	data := entry.Data
	fmt.Printf("\n--- %s ---\n", entry.Title)
	fmt.Printf("  Total words:  %d\n", data.TotalWords)
	fmt.Printf("  Unique words: %d\n", data.UniqueWords)

	rows := data.WordStats
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}
	if len(rows) > 0 {
		fmt.Printf("\n  %-20s %8s %8s %8s %8s\n", "WORD", "COUNT", "PCT", "Z", "LOG Z")
		for _, s := range rows {
			fmt.Printf("  %-20s %8d %8.2f %8.3f %8.3f\n", s.Word, s.Count, s.Percentage, s.ZScore, s.LogZScore)
		}
	}

	status := "passed"
	if !entry.Assurance.AllPassed {
		status = "FAILED"
	}
	fmt.Printf("\n  Assurance: %s\n", status)
	for _, c := range entry.Assurance.Checks {
		if !c.Passed {
			fmt.Printf("    - %s: expected %v, got %v\n", c.Name, c.Expected, c.Actual)
		}
	}
}
