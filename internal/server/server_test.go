package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordfreq/config"
	"wordfreq/internal/adapter/analyzer"
	"wordfreq/internal/adapter/corpus"
	"wordfreq/internal/adapter/fs"
	"wordfreq/internal/adapter/memstore"
	"wordfreq/internal/domain"
	"wordfreq/internal/logging"
	"wordfreq/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logging.Discard()
	reports := memstore.NewReportStore(nil)
	metrics := config.DefaultMetricRegistry()
	ws := usecase.NewWorkspace(
		corpus.NewRegistry(nil),
		reports,
		usecase.NewAnalyzeUseCase(fs.NewReader(), analyzer.NewTokenizer(), analyzer.NewChecker(analyzer.DefaultPctTolerance), reports, log),
		usecase.NewOverlapUseCase(reports, metrics, 8, true),
		log,
	)
	return NewController(ws, metrics, log).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func writeDocs(t *testing.T, docs map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		content, ok := docs[name]
		if !ok {
			continue
		}
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		paths = append(paths, p)
	}
	return paths
}

func TestCorpusLifecycle(t *testing.T) {
	h := newTestRouter(t)
	paths := writeDocs(t, map[string]string{"a.txt": "x x y", "b.txt": "x y y"})

	w := do(t, h, http.MethodPost, "/corpora", CreateCorpusRequest{Name: "pair", Files: paths})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodGet, "/corpora/pair/report", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/corpora/pair/analyze", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var analyzed AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analyzed))
	assert.True(t, analyzed.Success)
	assert.Equal(t, []string{domain.MasterReportKey, paths[0], paths[1]}, analyzed.Report.Keys())

	w = do(t, h, http.MethodHead, "/corpora/pair/report", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/corpora/pair/overlap", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result domain.OverlapResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.BO)
	assert.InDelta(t, 4.0/9.0, result.BO.BOn1["x"], 1e-9)

	w = do(t, h, http.MethodGet, "/corpora", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []CorpusView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "analyzed", views[0].State)
	assert.True(t, views[0].HasReport)

	w = do(t, h, http.MethodDelete, "/corpora/pair", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/corpora/pair/report", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyze_EmptyCorpus(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/corpora", CreateCorpusRequest{Name: "empty"})

	w := do(t, h, http.MethodPost, "/corpora/empty/analyze", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/corpora/missing/analyze", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFiles(t *testing.T) {
	h := newTestRouter(t)
	paths := writeDocs(t, map[string]string{"a.txt": "a", "b.txt": "b"})
	do(t, h, http.MethodPost, "/corpora", CreateCorpusRequest{Name: "c", Files: paths[:1]})

	w := do(t, h, http.MethodPost, "/corpora/c/files", AddFilesRequest{Files: paths[1:]})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/corpora/c/files", AddFilesRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/corpora/nope/files", AddFilesRequest{Files: paths})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/corpora/c/files?path="+url.QueryEscape(paths[0]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":true}`, w.Body.String())

	w = do(t, h, http.MethodDelete, "/corpora/c/files", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOverlap_UnknownMode(t *testing.T) {
	h := newTestRouter(t)
	paths := writeDocs(t, map[string]string{"a.txt": "x", "b.txt": "x"})
	do(t, h, http.MethodPost, "/corpora", CreateCorpusRequest{Name: "c", Files: paths})
	do(t, h, http.MethodPost, "/corpora/c/analyze", nil)

	w := do(t, h, http.MethodGet, "/corpora/c/overlap?mode=nominal_frequency", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/corpora/c/overlap?mode=jaccard_index", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result domain.OverlapResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Pairs, 1)
	assert.Equal(t, 1.0, result.Pairs[0].Jaccard)
}

func TestActiveAndComparison(t *testing.T) {
	h := newTestRouter(t)
	paths := writeDocs(t, map[string]string{"a.txt": "one two", "b.txt": "two three"})
	do(t, h, http.MethodPost, "/corpora", CreateCorpusRequest{Name: "c", Files: paths})

	w := do(t, h, http.MethodPut, "/active/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, "/active/c", nil)
	require.Equal(t, http.StatusOK, w.Code)
	do(t, h, http.MethodPost, "/corpora/c/analyze", nil)

	w = do(t, h, http.MethodGet, "/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var active struct {
		Active string              `json:"active"`
		Report domain.CorpusReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &active))
	assert.Equal(t, "c", active.Active)
	assert.Equal(t, "c", active.Report.Corpus)

	w = do(t, h, http.MethodPost, "/comparison/c/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"c","member":true}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/comparison/overlap", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []domain.OverlapResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	require.NotNil(t, results[0].BO)
	assert.Contains(t, results[0].BO.BOn1, "two")
}

func TestRename(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/corpora", CreateCorpusRequest{Name: "a"})
	do(t, h, http.MethodPost, "/corpora", CreateCorpusRequest{Name: "b"})

	w := do(t, h, http.MethodPut, "/corpora/a", RenameRequest{Name: "b"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodPut, "/corpora/a", RenameRequest{Name: "z"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetrics(t *testing.T) {
	h := newTestRouter(t)
	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, []string{"bo_score", "jaccard_index"}, out[config.CategoryOverlap])
	assert.Equal(t, []string{"nominal", "percentage", "reports", "z_score"}, out[config.CategoryFrequency])
}
