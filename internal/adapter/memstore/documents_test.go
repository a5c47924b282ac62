package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordfreq/internal/domain"
)

func TestDocuments_ReadFile(t *testing.T) {
	d := NewDocuments()
	d.Put("b.txt", "second")
	d.Put("a.txt", "first")
	d.Put("a.txt", "first again")

	text, err := d.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "first again", text)
	assert.Equal(t, []string{"a.txt", "b.txt"}, d.Paths())

	d.Delete("b.txt")
	_, err = d.ReadFile("b.txt")
	var readErr *domain.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "b.txt", readErr.Path)
	assert.ErrorIs(t, err, domain.ErrUnreadable)
}

func TestDocuments_InvalidUTF8(t *testing.T) {
	d := NewDocuments()
	d.Put("bad.txt", string([]byte{0xff, 0xfe}))

	_, err := d.ReadFile("bad.txt")
	assert.ErrorIs(t, err, domain.ErrNotUTF8)
}
