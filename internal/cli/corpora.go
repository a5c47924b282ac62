package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var corporaAnalyze bool

var corporaCmd = &cobra.Command{
	Use:   "corpora [paths...]",
	Short: "List corpora and their state",
	Long: `List the configured corpora (and the default corpus, when paths are given)
with their documents and lifecycle state.

Examples:
  wordfreq corpora
  wordfreq corpora --analyze`,
	RunE: runCorpora,
}

func init() {
	rootCmd.AddCommand(corporaCmd)
	corporaCmd.Flags().BoolVar(&corporaAnalyze, "analyze", false, "analyze each corpus before listing")
}

func runCorpora(cmd *cobra.Command, args []string) error {
	a, err := newApp(args)
	if err != nil {
		return err
	}
	reg := a.ws.Registry()
	if corporaAnalyze {
		for _, name := range reg.Names() {
			a.ws.AnalyzeCorpus(name)
		}
	}

	names := reg.Names()
	if len(names) == 0 {
		fmt.Println("No corpora configured.")
		return nil
	}
	for _, name := range names {
		c, _ := reg.Get(name)
		fmt.Printf("%s  [%s]  %d documents\n", name, c.State(), c.Len())
		if report, ok := a.ws.GetReportForCorpus(name); ok {
			if master, ok := report.Master(); ok {
				fmt.Printf("  %d words, %d unique\n", master.Data.TotalWords, master.Data.UniqueWords)
			}
		}
		for _, f := range c.Files() {
			fmt.Printf("  - %s\n", f)
		}
	}
	return nil
}
