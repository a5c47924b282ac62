// Package server exposes a workspace over HTTP as JSON.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"wordfreq/config"
	"wordfreq/internal/domain"
	"wordfreq/internal/logging"
	"wordfreq/internal/usecase"
)

type CreateCorpusRequest struct {
	Name  string   `json:"name" binding:"required"`
	Files []string `json:"files"`
}

type AddFilesRequest struct {
	Files []string `json:"files" binding:"required,min=1"`
}

type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

type RemoveFileRequest struct {
	Path string `form:"path" binding:"required"`
}

type OverlapRequest struct {
	Mode string `form:"mode"`
}

type CorpusView struct {
	Name       string   `json:"name"`
	State      string   `json:"state"`
	Files      []string `json:"files"`
	HasReport  bool     `json:"has_report"`
	Active     bool     `json:"active"`
	Comparison bool     `json:"comparison"`
}

type AnalyzeResponse struct {
	Success  bool                `json:"success"`
	Report   domain.CorpusReport `json:"report"`
	Failures []FailureView       `json:"failures,omitempty"`
}

type FailureView struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Controller serializes access to a workspace, which is single-threaded.
type Controller struct {
	mu      sync.Mutex
	ws      *usecase.Workspace
	metrics *config.MetricRegistry
	log     *slog.Logger
}

func NewController(ws *usecase.Workspace, metrics *config.MetricRegistry, log *slog.Logger) *Controller {
	return &Controller{ws: ws, metrics: metrics, log: logging.OrDefault(log)}
}

// Router builds the gin engine with every route registered.
func (c *Controller) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), c.requestLog())

	r.GET("/corpora", c.ListCorpora)
	r.POST("/corpora", c.CreateCorpus)
	r.DELETE("/corpora/:name", c.RemoveCorpus)
	r.PUT("/corpora/:name", c.RenameCorpus)
	r.POST("/corpora/:name/files", c.AddFiles)
	r.DELETE("/corpora/:name/files", c.RemoveFile)
	r.POST("/corpora/:name/analyze", c.Analyze)
	r.GET("/corpora/:name/report", c.GetReport)
	r.HEAD("/corpora/:name/report", c.HasReport)
	r.GET("/corpora/:name/overlap", c.Overlap)
	r.PUT("/active/:name", c.SetActive)
	r.GET("/active", c.GetActive)
	r.POST("/comparison/:name/toggle", c.ToggleComparison)
	r.GET("/comparison/overlap", c.CompareOverlap)
	r.GET("/metrics", c.Metrics)
	return r
}

func (c *Controller) requestLog() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		c.log.Debug("request",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (c *Controller) ListCorpora(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reg := c.ws.Registry()
	active, _ := reg.SingleActive()
	views := make([]CorpusView, 0)
	for _, name := range reg.Names() {
		corp, _ := reg.Get(name)
		views = append(views, CorpusView{
			Name:       name,
			State:      corp.State().String(),
			Files:      corp.Files(),
			HasReport:  c.ws.HasReportForCorpus(name),
			Active:     name == active,
			Comparison: reg.IsMultiActive(name),
		})
	}
	ctx.JSON(http.StatusOK, views)
}

func (c *Controller) CreateCorpus(ctx *gin.Context) {
	var req CreateCorpusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	corp := c.ws.AddFiles(req.Name, req.Files...)
	ctx.JSON(http.StatusCreated, gin.H{"name": corp.Name(), "files": corp.Files()})
}

func (c *Controller) RemoveCorpus(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ws.RemoveCorpus(ctx.Param("name")) {
		writeError(ctx, domain.ErrCorpusNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) RenameCorpus(ctx *gin.Context) {
	var req RenameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.RenameCorpus(ctx.Param("name"), req.Name); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"name": req.Name})
}

func (c *Controller) AddFiles(ctx *gin.Context) {
	var req AddFilesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	name := ctx.Param("name")
	if _, ok := c.ws.Registry().Get(name); !ok {
		writeError(ctx, domain.ErrCorpusNotFound)
		return
	}
	corp := c.ws.AddFiles(name, req.Files...)
	ctx.JSON(http.StatusOK, gin.H{"name": name, "files": corp.Files(), "state": corp.State().String()})
}

func (c *Controller) RemoveFile(ctx *gin.Context) {
	var req RemoveFileRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	removed, err := c.ws.RemoveFile(ctx.Param("name"), req.Path)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (c *Controller) Analyze(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.ws.Analyze(ctx.Param("name"), nil)
	if err != nil && !errors.Is(err, domain.ErrEmptyCorpus) {
		writeError(ctx, err)
		return
	}
	resp := AnalyzeResponse{Success: result.Success, Report: result.Report}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, FailureView{Path: f.Path, Error: f.Err.Error()})
	}
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	ctx.JSON(status, resp)
}

func (c *Controller) GetReport(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	report, ok := c.ws.GetReportForCorpus(ctx.Param("name"))
	if !ok {
		writeError(ctx, domain.ErrReportNotFound)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (c *Controller) HasReport(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ws.HasReportForCorpus(ctx.Param("name")) {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.Status(http.StatusOK)
}

func (c *Controller) Overlap(ctx *gin.Context) {
	var req OverlapRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = config.MetricBOScore
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.ws.Overlap(ctx.Param("name"), req.Mode)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *Controller) SetActive(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := ctx.Param("name")
	if err := c.ws.SetSingleActive(name); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"active": name})
}

func (c *Controller) GetActive(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name, _ := c.ws.Registry().SingleActive()
	report, ok := c.ws.CurrentReport()
	resp := gin.H{"active": name, "comparison": c.ws.Registry().MultiActive()}
	if ok {
		resp["report"] = report
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) ToggleComparison(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	member, err := c.ws.ToggleMultiActive(ctx.Param("name"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"name": ctx.Param("name"), "member": member})
}

func (c *Controller) CompareOverlap(ctx *gin.Context) {
	var req OverlapRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = config.MetricBOScore
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	results, err := c.ws.Compare(req.Mode)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if results == nil {
		results = []domain.OverlapResult{}
	}
	ctx.JSON(http.StatusOK, results)
}

func (c *Controller) Metrics(ctx *gin.Context) {
	out := make(map[string][]string)
	for _, cat := range c.metrics.Categories() {
		out[cat] = c.metrics.SubMetrics(cat)
	}
	ctx.JSON(http.StatusOK, out)
}

func writeError(ctx *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrCorpusNotFound), errors.Is(err, domain.ErrReportNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownMetric):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyCorpus):
		status = http.StatusUnprocessableEntity
	default:
		// rename collisions
		status = http.StatusConflict
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// Serve runs the HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	log = logging.OrDefault(log)
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
