package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordfreq/config"
)

var (
	compareMode string
	compareTop  int
	compareJSON bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <corpus> <corpus> [corpus...]",
	Short: "Compare overlap across several corpora",
	Long: `Put the named corpora in the comparison set, analyze them and print the
overlap metric of each, side by side.

Examples:
  wordfreq compare letters diaries --mode jaccard_index`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&compareMode, "mode", "m", config.MetricBOScore, "overlap metric: bo_score or jaccard_index")
	compareCmd.Flags().IntVarP(&compareTop, "top", "n", 0, "rows to print (default from config)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "output as JSON")
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := newApp(nil)
	if err != nil {
		return err
	}
	names, err := a.targets(args)
	if err != nil {
		return err
	}
	for _, name := range names {
		if a.ws.Registry().IsMultiActive(name) {
			continue
		}
		if _, err := a.ws.ToggleMultiActive(name); err != nil {
			return err
		}
	}
	if _, err := a.analyzeAll(names, compareJSON); err != nil {
		return err
	}

	results, err := a.ws.Compare(compareMode)
	if err != nil {
		return err
	}
	if len(results) < len(names) && !compareJSON {
		fmt.Printf("%d of %d corpora have a report\n", len(results), len(names))
	}
	return printOverlap(results, a.topOverlap(compareTop), compareJSON)
}
