package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show the metric registry",
	Long: `Print the metric categories, sub-metrics and visualization hints.
A custom registry can be set with metrics_file in the config.`,
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	reg, err := loadMetrics()
	if err != nil {
		return err
	}

	for _, key := range reg.Categories() {
		cat, _ := reg.Category(key)
		fmt.Printf("%s (%s)\n", key, cat.Label)
		for _, m := range reg.SubMetrics(key) {
			line := fmt.Sprintf("  %-16s %s", m, cat.Metrics[m].Label)
			if views := reg.Visualizations(key, m); len(views) > 0 {
				line += "  [" + strings.Join(views, ", ") + "]"
			}
			fmt.Println(line)
		}
	}
	return nil
}
