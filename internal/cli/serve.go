package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"wordfreq/internal/server"
)

var (
	serveAddr    string
	serveAnalyze bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [paths...]",
	Short: "Serve corpora and reports over HTTP",
	Long: `Start a JSON HTTP server over the configured corpora. Collaborators can
create corpora, add files, trigger analysis and read reports and overlap
metrics.

Examples:
  wordfreq serve
  wordfreq serve notes/ --addr :9000 --analyze`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveAnalyze, "analyze", false, "analyze every corpus before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(args)
	if err != nil {
		return err
	}
	if serveAnalyze {
		for _, name := range a.ws.Registry().Names() {
			a.ws.AnalyzeCorpus(name)
		}
	}

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	if a.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	ctrl := server.NewController(a.ws, a.metrics, GetLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx, addr, ctrl.Router(), GetLogger())
}
