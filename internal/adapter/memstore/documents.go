package memstore

import (
	"sort"
	"sync"
	"unicode/utf8"

	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

// Documents is an in-memory FileReader for text that never touches disk,
// such as documents handed over by a browser.
type Documents struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewDocuments() *Documents {
	return &Documents{docs: make(map[string]string)}
}

// Put stores text under path, replacing any earlier version.
func (d *Documents) Put(path, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[path] = text
}

func (d *Documents) Delete(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, path)
}

// Paths lists stored paths sorted.
func (d *Documents) Paths() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	paths := make([]string, 0, len(d.docs))
	for p := range d.docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (d *Documents) ReadFile(path string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.docs[path]
	if !ok {
		return "", &domain.ReadError{Path: path, Err: domain.ErrUnreadable}
	}
	if !utf8.ValidString(text) {
		return "", &domain.ReadError{Path: path, Err: domain.ErrNotUTF8}
	}
	return text, nil
}

var _ port.FileReader = (*Documents)(nil)
