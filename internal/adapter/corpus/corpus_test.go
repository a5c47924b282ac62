package corpus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

type recorder struct {
	kinds []port.EventKind
}

func (r *recorder) Publish(kind port.EventKind, corpus string) {
	r.kinds = append(r.kinds, kind)
}

func TestCorpus_Files(t *testing.T) {
	c := New("c", "a.txt", "b.txt", "a.txt")

	assert.Equal(t, []string{"a.txt", "b.txt"}, c.Files())
	assert.False(t, c.AddFile("b.txt"))
	assert.True(t, c.RemoveFile("a.txt"))
	assert.False(t, c.RemoveFile("a.txt"))
	assert.Equal(t, []string{"b.txt"}, c.Files())

	c.rename("d")
	assert.Equal(t, "d", c.Name())
}

func TestCorpus_StateMachine(t *testing.T) {
	c := New("c")
	assert.Equal(t, StateEmpty, c.State())

	c.AddFile("a.txt")
	assert.Equal(t, StateHasFiles, c.State())

	c.RemoveFile("a.txt")
	assert.Equal(t, StateEmpty, c.State())

	c.AddFile("a.txt")
	c.MarkAnalyzed()
	assert.Equal(t, StateAnalyzed, c.State())

	c.RemoveFile("missing.txt")
	assert.Equal(t, StateAnalyzed, c.State(), "no-op removal keeps the report fresh")

	c.AddFile("b.txt")
	assert.Equal(t, StateStale, c.State())

	c.MarkAnalyzed()
	c.MarkStale()
	assert.Equal(t, StateStale, c.State())
	assert.Equal(t, "stale", c.State().String())
}

func TestRegistry_AddCorpusIsIdempotent(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry(rec)

	a := r.AddCorpus("a")
	a.AddFile("x.txt")
	again := r.AddCorpus("a")

	assert.Same(t, a, again)
	assert.Equal(t, []string{"a"}, r.Names())
	assert.Equal(t, []port.EventKind{port.EventCorpusAdded}, rec.kinds)
}

func TestRegistry_RemoveCorpus(t *testing.T) {
	r := NewRegistry(nil)
	r.AddCorpus("a")
	r.AddCorpus("b")
	require.NoError(t, r.SetSingleActive("a"))
	_, err := r.ToggleMultiActive("a")
	require.NoError(t, err)

	assert.True(t, r.RemoveCorpus("a"))
	assert.False(t, r.RemoveCorpus("a"))

	_, ok := r.Get("a")
	assert.False(t, ok)
	_, focused := r.SingleActive()
	assert.False(t, focused)
	assert.Empty(t, r.MultiActive())
	assert.Equal(t, []string{"b"}, r.Names())
}

func TestRegistry_SingleActive(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry(rec)
	r.AddCorpus("a")

	require.NoError(t, r.SetSingleActive("a"))
	require.NoError(t, r.SetSingleActive("a"))

	name, ok := r.SingleActive()
	assert.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, []port.EventKind{port.EventCorpusAdded, port.EventActiveCorpusChanged}, rec.kinds)

	err := r.SetSingleActive("missing")
	assert.True(t, errors.Is(err, domain.ErrCorpusNotFound))
}

func TestRegistry_ToggleMultiActive(t *testing.T) {
	r := NewRegistry(nil)
	r.AddCorpus("a")
	r.AddCorpus("b")

	on, err := r.ToggleMultiActive("a")
	require.NoError(t, err)
	assert.True(t, on)
	_, _ = r.ToggleMultiActive("b")
	assert.Equal(t, []string{"a", "b"}, r.MultiActive())

	on, _ = r.ToggleMultiActive("a")
	assert.False(t, on)
	assert.Equal(t, []string{"b"}, r.MultiActive())
	assert.False(t, r.IsMultiActive("a"))

	_, err = r.ToggleMultiActive("missing")
	assert.ErrorIs(t, err, domain.ErrCorpusNotFound)
}

func TestRegistry_ImportFiles(t *testing.T) {
	r := NewRegistry(nil)

	c := r.ImportFiles("a.txt", "b.txt")
	assert.Equal(t, DefaultCorpusName, c.Name())

	r.ImportFiles("c.txt", "a.txt")
	c, ok := r.Get(DefaultCorpusName)
	require.True(t, ok)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, c.Files())
}

func TestRegistry_RenameCorpus(t *testing.T) {
	r := NewRegistry(nil)
	r.AddCorpus("a")
	r.AddCorpus("b")
	require.NoError(t, r.SetSingleActive("a"))
	_, _ = r.ToggleMultiActive("a")

	require.NoError(t, r.RenameCorpus("a", "z"))

	assert.Equal(t, []string{"z", "b"}, r.Names())
	name, _ := r.SingleActive()
	assert.Equal(t, "z", name)
	assert.Equal(t, []string{"z"}, r.MultiActive())
	c, ok := r.Get("z")
	require.True(t, ok)
	assert.Equal(t, "z", c.Name())

	assert.Error(t, r.RenameCorpus("z", "b"))
	assert.ErrorIs(t, r.RenameCorpus("missing", "q"), domain.ErrCorpusNotFound)
}
