package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordfreq/config"
	"wordfreq/internal/adapter/corpus"
	"wordfreq/internal/logging"
)

func setupRoot(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	prevCfg, prevDir, prevLog := cfg, rootDir, logger
	t.Cleanup(func() { cfg, rootDir, logger = prevCfg, prevDir, prevLog })

	cfg = config.DefaultConfig()
	cfg.Analysis.Progress = false
	rootDir = dir
	logger = logging.Discard()
	return dir
}

func TestNewApp_ConfiguredCorporaAndArgs(t *testing.T) {
	dir := setupRoot(t, map[string]string{
		"letters/a.txt": "dear friend",
		"letters/b.txt": "dear sir",
		"letters/c.bin": "ignored",
		"loose.txt":     "loose words",
	})
	cfg.Corpora = []config.CorpusConfig{{Name: "letters", Dirs: []string{"letters"}}}

	a, err := newApp([]string{filepath.Join(dir, "loose.txt")})
	require.NoError(t, err)

	reg := a.ws.Registry()
	assert.Equal(t, []string{"letters", corpus.DefaultCorpusName}, reg.Names())

	letters, _ := reg.Get("letters")
	assert.Equal(t, []string{
		filepath.Join(dir, "letters", "a.txt"),
		filepath.Join(dir, "letters", "b.txt"),
	}, letters.Files())

	results, err := a.analyzeAll(reg.Names(), true)
	require.NoError(t, err)
	require.Len(t, results, 2)

	r, err := a.ws.Overlap("letters", config.MetricBOScore)
	require.NoError(t, err)
	assert.Equal(t, []string{"dear"}, keys(r.BO.BOn1))
}

func TestNewApp_MissingPath(t *testing.T) {
	dir := setupRoot(t, nil)
	_, err := newApp([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestNewApp_CustomDefaultCorpus(t *testing.T) {
	dir := setupRoot(t, map[string]string{"a.txt": "x"})
	cfg.Import.DefaultCorpus = "Inbox"

	a, err := newApp([]string{filepath.Join(dir, "a.txt")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Inbox"}, a.ws.Registry().Names())
}

func TestAnalyzeAll_NoReport(t *testing.T) {
	dir := setupRoot(t, map[string]string{"blank.txt": "  "})
	a, err := newApp([]string{filepath.Join(dir, "blank.txt")})
	require.NoError(t, err)

	_, err = a.analyzeAll(a.ws.Registry().Names(), true)
	assert.Error(t, err)
}

func TestStaleCorpora(t *testing.T) {
	dir := setupRoot(t, map[string]string{"a.txt": "x", "b.txt": "y"})
	a, err := newApp(nil)
	require.NoError(t, err)
	a.ws.AddFiles("one", filepath.Join(dir, "a.txt"))
	a.ws.AddFiles("two", filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))

	assert.Equal(t, []string{"one", "two"}, a.staleCorpora([]string{filepath.Join(dir, "a.txt")}))
	assert.Equal(t, []string{"two"}, a.staleCorpora([]string{filepath.Join(dir, "b.txt")}))
	assert.Empty(t, a.staleCorpora([]string{filepath.Join(dir, "c.txt")}))
}

func TestTargets(t *testing.T) {
	setupRoot(t, nil)
	a, err := newApp(nil)
	require.NoError(t, err)
	a.ws.AddCorpus("x")

	names, err := a.targets(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, names)

	_, err = a.targets([]string{"y"})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "<1s"},
		{42 * time.Second, "42s"},
		{125 * time.Second, "2m5s"},
		{2*time.Hour + 3*time.Minute, "2h3m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatDuration(tc.d))
	}
}

func keys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
