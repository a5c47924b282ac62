package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wordfreq/config"
	"wordfreq/internal/adapter/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [paths...]",
	Short: "Write corpus reports to a snapshot file",
	Long: `Analyze every corpus and write the reports to a bolt snapshot for other
tools. The snapshot is an output only; wordfreq never reads it back.

Examples:
  wordfreq export notes/                  # writes .wordfreq/reports.db
  wordfreq export --out /tmp/reports.db`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "snapshot path (default .wordfreq/reports.db)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(args)
	if err != nil {
		return err
	}
	results, err := a.analyzeAll(a.ws.Registry().Names(), false)
	if err != nil {
		return err
	}

	path := exportOut
	if path == "" {
		if err := config.EnsureDataDir(GetRootDir()); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		path = config.SnapshotPath(GetRootDir())
	} else if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	st, err := store.NewSnapshotStore(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer st.Close()

	for _, r := range results {
		if err := st.PutReport(r.Report); err != nil {
			return fmt.Errorf("failed to export %q: %w", r.Report.Corpus, err)
		}
	}
	fmt.Printf("Exported %d corpora to %s\n", len(results), path)
	return nil
}
