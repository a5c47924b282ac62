package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wordfreq/internal/adapter/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-analyze corpora when their documents change",
	Long: `Analyze every corpus, then watch its documents. A change marks the
owning corpora stale and re-runs their analysis. Stop with Ctrl-C.

Examples:
  wordfreq watch notes/
  wordfreq watch --debounce 1s`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "quiet period before re-analyzing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(args)
	if err != nil {
		return err
	}
	names := a.ws.Registry().Names()
	if _, err := a.analyzeAll(names, true); err != nil {
		return err
	}
	printSummary(a, names)

	var files []string
	for _, name := range names {
		c, _ := a.ws.Registry().Get(name)
		files = append(files, c.Files()...)
	}
	w, err := watcher.New(files, watchDebounce, GetLogger())
	if err != nil {
		return fmt.Errorf("failed to watch documents: %w", err)
	}
	defer w.Close()
	w.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %d documents...\n", len(files))
	return watchLoop(ctx, a, w.Changes())
}

func watchLoop(ctx context.Context, a *app, changes <-chan watcher.Change) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ch, ok := <-changes:
			if !ok {
				return nil
			}
			stale := a.staleCorpora(ch.Paths)
			for _, name := range stale {
				if err := a.ws.MarkStale(name); err != nil {
					return err
				}
			}
			for _, name := range stale {
				a.ws.AnalyzeCorpus(name)
			}
			printSummary(a, stale)
		}
	}
}

// staleCorpora lists the corpora holding any of paths, in registry order.
func (a *app) staleCorpora(paths []string) []string {
	var out []string
	reg := a.ws.Registry()
	for _, name := range reg.Names() {
		c, _ := reg.Get(name)
		for _, p := range paths {
			if c.Contains(p) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func printSummary(a *app, names []string) {
	for _, name := range names {
		c, _ := a.ws.Registry().Get(name)
		line := fmt.Sprintf("[%s] %s: %s", time.Now().Format("15:04:05"), name, c.State())
		if report, ok := a.ws.GetReportForCorpus(name); ok {
			if master, ok := report.Master(); ok {
				line += fmt.Sprintf(", %d words, %d unique", master.Data.TotalWords, master.Data.UniqueWords)
				if !master.Assurance.AllPassed {
					line += ", assurance FAILED"
				}
			}
			line += fmt.Sprintf(", %d documents", len(report.Documents()))
		}
		fmt.Println(line)
	}
}
