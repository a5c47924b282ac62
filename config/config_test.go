package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Analysis.PctTolerance != 0.01 {
		t.Errorf("expected PctTolerance=0.01, got %f", cfg.Analysis.PctTolerance)
	}
	if cfg.Import.DefaultCorpus != "Default Corpus" {
		t.Errorf("expected default corpus name, got %q", cfg.Import.DefaultCorpus)
	}
	if cfg.Cache.MaxEntries != 64 {
		t.Errorf("expected MaxEntries=64, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Level=info, got %s", cfg.Logging.Level)
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "wordfreq.yaml")

	content := `
analysis:
  top_n: 5
logging:
  level: debug
corpora:
  - name: poems
    files: [a.txt, b.txt]
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Analysis.TopN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 0.01, cfg.Analysis.PctTolerance, "unset fields keep defaults")
	require.Len(t, cfg.Corpora, 1)
	assert.Equal(t, "poems", cfg.Corpora[0].Name)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Corpora[0].Files)
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "wordfreq.toml")

	content := `
[server]
addr = "0.0.0.0:9000"

[[corpora]]
name = "letters"
dirs = ["letters"]
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	require.Len(t, cfg.Corpora, 1)
	assert.Equal(t, []string{"letters"}, cfg.Corpora[0].Dirs)
}

func TestLoad_Invalid(t *testing.T) {
	tmpDir := t.TempDir()

	cases := map[string]string{
		"bad-level.yaml": "logging:\n  level: loud\n",
		"no-name.yaml":   "corpora:\n  - files: [a.txt]\n",
		"duplicate.yaml": "corpora:\n  - name: a\n  - name: a\n",
		"bad-cache.yaml": "cache:\n  max_entries: 0\n",
		"broken.yaml":    "analysis: [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDataDir(tmpDir))
	configPath := filepath.Join(tmpDir, ".wordfreq", "config.yaml")

	content := `
overlap:
  top_n: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Overlap.TopN)

	cfg, err = LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordfreq.yaml")
	cfg := DefaultConfig()
	cfg.Corpora = []CorpusConfig{{Name: "x", Files: []string{"x.txt"}}}

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSnapshotPath(t *testing.T) {
	path := SnapshotPath("/home/user/texts")
	expected := filepath.Join("/home/user/texts", ".wordfreq", "reports.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}
