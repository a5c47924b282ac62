package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wordfreq/config"
	"wordfreq/internal/domain"
)

var (
	overlapCorpora []string
	overlapMode    string
	overlapTop     int
	overlapJSON    bool
)

var overlapCmd = &cobra.Command{
	Use:   "overlap [paths...]",
	Short: "Score vocabulary shared between documents",
	Long: `Analyze the corpora and compute an overlap metric over their documents.
bo_score ranks words shared by two or more documents (BOn1 and BOn2);
jaccard_index lists the vocabulary overlap of every document pair.

Examples:
  wordfreq overlap a.txt b.txt c.txt
  wordfreq overlap --corpus letters --mode jaccard_index --json`,
	RunE: runOverlap,
}

func init() {
	rootCmd.AddCommand(overlapCmd)
	overlapCmd.Flags().StringSliceVarP(&overlapCorpora, "corpus", "c", nil, "corpus to score (default: all)")
	overlapCmd.Flags().StringVarP(&overlapMode, "mode", "m", config.MetricBOScore, "overlap metric: bo_score or jaccard_index")
	overlapCmd.Flags().IntVarP(&overlapTop, "top", "n", 0, "rows to print (default from config)")
	overlapCmd.Flags().BoolVar(&overlapJSON, "json", false, "output as JSON")
}

func runOverlap(cmd *cobra.Command, args []string) error {
	a, err := newApp(args)
	if err != nil {
		return err
	}
	names, err := a.targets(overlapCorpora)
	if err != nil {
		return err
	}
	if _, err := a.analyzeAll(names, overlapJSON); err != nil {
		return err
	}

	var results []domain.OverlapResult
	for _, name := range names {
		if !a.ws.HasReportForCorpus(name) {
			continue
		}
		r, err := a.ws.Overlap(name, overlapMode)
		if err != nil {
			return err
		}
		results = append(results, r)
	}
	return printOverlap(results, a.topOverlap(overlapTop), overlapJSON)
}

func (a *app) topOverlap(flag int) int {
	if flag > 0 {
		return flag
	}
	return a.cfg.Overlap.TopN
}

func printOverlap(results []domain.OverlapResult, top int, asJSON bool) error {
	if asJSON {
		output, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode overlap: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	for _, r := range results {
		fmt.Printf("\n== %s (%s) ==\n", r.Corpus, r.Mode)
		switch r.Mode {
		case config.MetricBOScore:
			printRanked("BOn1", r.BO.Ranked(1), top)
			printRanked("BOn2", r.BO.Ranked(2), top)
		case config.MetricJaccard:
			if len(r.Pairs) == 0 {
				fmt.Println("  (fewer than two documents)")
			}
			for _, p := range r.Pairs {
				fmt.Printf("  %.4f  %d/%d  %s <> %s\n", p.Jaccard, p.Shared, p.Union, p.A, p.B)
			}
		}
		for _, c := range r.Assurance.Checks {
			mark := "ok"
			if !c.Passed {
				mark = "FAILED"
			}
			fmt.Printf("  assurance %s: %v (%s)\n", c.Name, c.Actual, mark)
		}
	}
	return nil
}

func printRanked(label string, words []domain.ScoredWord, top int) {
	fmt.Printf("\n  %s:\n", label)
	if len(words) == 0 {
		fmt.Println("    (no shared words)")
		return
	}
	if top > 0 && len(words) > top {
		words = words[:top]
	}
	for i, w := range words {
		fmt.Printf("    %3d. %-20s %.6f\n", i+1, w.Word, w.Score)
	}
}
